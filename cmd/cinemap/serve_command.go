package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"cinemap/internal/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the collection web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			lib, err := ctx.openLibrary(runCtx, true)
			if err != nil {
				return err
			}
			if _, err := lib.EnsureBootstrapped(runCtx); err != nil {
				return err
			}

			srv, err := web.New(lib, logger)
			if err != nil {
				return err
			}

			bind := strings.TrimSpace(addr)
			if bind == "" {
				bind = cfg.Web.Bind
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving cinemap on http://%s\n", bind)
			return srv.Run(runCtx, bind)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to web.bind)")
	return cmd
}
