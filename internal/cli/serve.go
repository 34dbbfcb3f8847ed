package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/appforge-labs/appforge/internal/artifact"
	"github.com/appforge-labs/appforge/internal/config"
	"github.com/appforge-labs/appforge/internal/generator"
	"github.com/appforge-labs/appforge/internal/output"
	"github.com/appforge-labs/appforge/internal/server"
)

var (
	serveAddr   string
	serveOrigin string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from server.addr)")
	serveCmd.Flags().StringVar(&serveOrigin, "origin", "", "Browser origin allowed by CORS (default from server.allowed_origin)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the generation HTTP service",
	Long: `Serve POST /generate and GET /download/{id} for a web front end.

Archives are kept under artifact.dir until downloaded or until artifact.ttl
elapses. Stop with Ctrl-C; in-flight requests are allowed to finish.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Current()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if serveAddr != "" {
			settings.ServerAddr = serveAddr
		}
		if serveOrigin != "" {
			settings.AllowedOrigin = serveOrigin
		}

		store, err := artifact.NewStore(settings.ArtifactDir,
			artifact.WithTTL(settings.ArtifactTTL),
			artifact.WithLevel(settings.ArchiveLevel),
		)
		if err != nil {
			return fmt.Errorf("opening artifact store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				output.Warn("closing artifact store", "err", err)
			}
		}()

		svc := generator.New(store, generator.WithTitle(settings.ProjectTitle))
		srv := server.New(svc, store, server.Config{
			Addr:          settings.ServerAddr,
			AllowedOrigin: settings.AllowedOrigin,
			PublicURL:     settings.PublicURL,
			SweepInterval: settings.SweepInterval,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		output.Debug("artifact store ready", "dir", settings.ArtifactDir, "ttl", settings.ArtifactTTL)
		return srv.ListenAndServe(ctx)
	},
}
