package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Project-Narvex/narvex-web/internal/config"
	"github.com/Project-Narvex/narvex-web/internal/observability"
)

type rootOptions struct {
	envFile  string
	siteFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCmd(opts)

	root := &cobra.Command{
		Use:           "web",
		Short:         "Narvex marketing site",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the bare binary serves the site.
		RunE: serve.RunE,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file merged under the process environment")
	root.PersistentFlags().StringVar(&opts.siteFile, "site-file", "", "site identity YAML (overrides WEB_SITE_FILE)")

	root.AddCommand(serve, newSnapshotCmd(opts))
	return root
}

// load resolves configuration and a logger for a subcommand.
func (o *rootOptions) load(ctx context.Context) (config.Config, *zap.Logger, error) {
	loadOpts := []config.Option{config.WithEnvFile(o.envFile)}
	if o.siteFile != "" {
		loadOpts = append(loadOpts, config.WithSiteFile(o.siteFile))
	}
	cfg, err := config.Load(ctx, loadOpts...)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.IsDevelopment())
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}
