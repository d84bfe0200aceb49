package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vibecatalog/internal/progress"
	"vibecatalog/internal/vibe"
)

func newVibeCmd(a *app) *cobra.Command {
	var (
		artist string
		page   int
		year   string
	)

	cmd := &cobra.Command{
		Use:   "vibe <query>",
		Short: "Search an artist's songs by mood or theme",
		Example: `  vibecatalog vibe "rainy night drive" --artist Radiohead
  vibecatalog vibe melancholy --artist Radiohead --page 2 --year 1997`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			var spin *progress.Spinner
			if !a.cfg.Verbose {
				spin = progress.Start(cmd.ErrOrStderr(), "Searching...", 500*time.Millisecond)
			}
			err = a.track(func() error {
				return st.SearchVibe(a.sh.Context(), query, artist, page)
			})
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}

			if year != "" {
				id, ok := findYear(st.Snapshot().Vibe.YearOptions, year)
				if !ok {
					return fmt.Errorf("no songs from %s on page %d", year, page)
				}
				st.FilterByYear(id)
			}

			renderVibe(cmd.OutOrStdout(), st.Snapshot().Vibe)
			return nil
		},
	}

	cmd.Flags().StringVarP(&artist, "artist", "a", "", "Artist whose songs to search")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Results page")
	cmd.Flags().StringVarP(&year, "year", "y", "", "Only show songs from this year on the page")
	return cmd
}

func findYear(opts []vibe.YearOption, year string) (string, bool) {
	for _, o := range opts {
		if o.Year == year || o.ID == year {
			return o.ID, true
		}
	}
	return "", false
}
