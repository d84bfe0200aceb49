package main

import (
	"github.com/spf13/cobra"

	"vibecatalog/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and vibe search API with live updates over websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			st, err := a.store()
			if err != nil {
				return err
			}

			server := web.NewServer(a.sh.Context(), st, a.cfg.RequestTimeout, a.log)
			return server.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
