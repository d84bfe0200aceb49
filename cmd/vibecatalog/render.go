package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"vibecatalog/internal/progress"
	"vibecatalog/internal/store"
	"vibecatalog/internal/vibe"
)

func renderCatalog(w io.Writer, c store.CatalogView) {
	fmt.Fprintf(w, "%s: %d songs, %s\n\n", c.SearchedArtist, c.Pagination.TotalItems, c.FormattedDuration)

	fmt.Fprintln(w, "Artists:")
	for _, a := range c.Artists {
		marker := " "
		if a.IsSelected {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-10s %s\n", marker, a.ID, a.Name)
	}
	fmt.Fprintln(w)

	if len(c.Songs) == 0 {
		fmt.Fprintln(w, "No songs.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSONG\tARTIST")
	for _, s := range c.Songs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, s.Artist)
	}
	tw.Flush()

	if c.Pagination.TotalPages > 1 {
		bar := progress.New(c.Pagination.TotalPages)
		bar.Set(c.Pagination.CurrentPage)
		fmt.Fprintf(w, "\n%s\n", bar)
	}
}

func renderVibe(w io.Writer, r vibe.Results) {
	by := ""
	if r.Artist != "" {
		by = " by " + r.Artist
	}
	fmt.Fprintf(w, "Results for %q%s: %d songs\n", r.Query, by, r.TotalItems)

	years := make([]string, 0, len(r.YearOptions))
	selected := ""
	for _, o := range r.YearOptions {
		label := o.Year
		if o.IsSelected {
			label += "*"
			selected = o.Year
		}
		years = append(years, label)
	}
	fmt.Fprintf(w, "Years: %s\n\n", strings.Join(years, ", "))

	if len(r.Songs) == 0 {
		fmt.Fprintln(w, "No songs.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tARTIST\tYEAR\tURL")
	for _, s := range r.Songs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Title, s.Artist, s.Year, s.URL)
	}
	tw.Flush()

	switch {
	case r.IsFiltered:
		fmt.Fprintf(w, "\nShowing %s only (page %d of %d)\n", selected, r.CurrentPage, r.TotalPages)
	case r.ShowPagination:
		bar := progress.New(r.TotalPages)
		bar.Set(r.CurrentPage)
		fmt.Fprintf(w, "\n%s\n", bar)
	}
}
