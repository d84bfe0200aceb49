package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vibecatalog/internal/progress"
	"vibecatalog/internal/store"
)

func newCatalogCmd(a *app) *cobra.Command {
	var (
		page         int
		itemsPerPage int
		only         string
	)

	cmd := &cobra.Command{
		Use:   "catalog <artist>",
		Short: "Show an artist's catalog and total running time",
		Example: `  vibecatalog catalog Radiohead
  vibecatalog catalog "Thom Yorke" --page 2 --items-per-page 30
  vibecatalog catalog Radiohead --only "Atoms for Peace"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store()
			if err != nil {
				return err
			}
			if itemsPerPage > 0 {
				st.SetItemsPerPage(itemsPerPage)
			}

			artist := strings.Join(args, " ")
			var spin *progress.Spinner
			if !a.cfg.Verbose {
				spin = progress.Start(cmd.ErrOrStderr(), fmt.Sprintf("Fetching catalog for %s...", artist), 500*time.Millisecond)
			}
			err = a.track(func() error {
				return st.LoadCatalogForArtist(a.sh.Context(), artist)
			})
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}

			if only != "" {
				id, ok := findArtist(st.Snapshot().Catalog, only)
				if !ok {
					return fmt.Errorf("no artist %q in this catalog", only)
				}
				st.SelectArtist(id)
			}
			if page > 1 {
				st.ChangeCatalogPage(page)
			}

			renderCatalog(cmd.OutOrStdout(), st.Snapshot().Catalog)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page of songs to show")
	cmd.Flags().IntVarP(&itemsPerPage, "items-per-page", "n", 0, "Songs per page (default from config)")
	cmd.Flags().StringVar(&only, "only", "", "Only list songs by this artist (id or name)")
	return cmd
}

// findArtist resolves an artist by id or case-insensitive name.
func findArtist(c store.CatalogView, ref string) (string, bool) {
	for _, a := range c.Artists {
		if a.ID == ref || strings.EqualFold(a.Name, ref) {
			return a.ID, true
		}
	}
	return "", false
}
