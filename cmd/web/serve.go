package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/config"
	"github.com/Project-Narvex/narvex-web/internal/contact"
	"github.com/Project-Narvex/narvex-web/internal/handlers"
	"github.com/Project-Narvex/narvex-web/internal/httpserver"
	"github.com/Project-Narvex/narvex-web/internal/i18n"
	"github.com/Project-Narvex/narvex-web/internal/instagram"
	"github.com/Project-Narvex/narvex-web/internal/metrics"
	"github.com/Project-Narvex/narvex-web/internal/pages"
	"github.com/Project-Narvex/narvex-web/internal/render"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, err := opts.load(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv, err := buildServer(cfg, logger)
			if err != nil {
				return err
			}
			return run(ctx, srv, logger)
		},
	}
}

// buildServer wires every collaborator from cfg.
func buildServer(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	if !cfg.IsDevelopment() && cfg.CMS.URL == "" {
		logger.Warn("CMS_URL not set; every page serves fallback content")
	}
	provider := metrics.NewProvider()

	client := cms.NewClient(cfg.CMS.URL,
		cms.WithToken(cfg.CMS.Token),
		cms.WithTimeout(cfg.CMS.Timeout),
		cms.WithRevalidate(cfg.CMS.Revalidate),
		cms.WithLogger(logger),
		cms.WithMetrics(provider),
	)
	pageSvc := pages.NewService(client,
		pages.WithLogger(logger),
		pages.WithMetrics(provider),
		pages.WithAssetBase(client.BaseURL()),
	)
	contactSvc, err := contact.NewService(contact.Deps{Forwarder: client, Logger: logger, Metrics: provider})
	if err != nil {
		return nil, err
	}
	ig := instagram.NewClient(cfg.Instagram.APIURL, cfg.Instagram.AccessToken,
		instagram.WithUsername(cfg.Instagram.Username),
		instagram.WithLogger(logger),
		instagram.WithMetrics(provider),
	)
	if cfg.Instagram.AccessToken == "" {
		logger.Info("INSTAGRAM_ACCESS_TOKEN not set; social feed reports no_token")
	}

	bundle, err := i18n.Default(cfg.Server.Locale, cfg.Site.Locales)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	renderer, err := render.New(render.Config{
		Dir:         cfg.Server.TemplatesDir,
		Development: cfg.IsDevelopment(),
		Bundle:      bundle,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	h, err := handlers.New(handlers.Deps{
		Pages:             pageSvc,
		Contact:           contactSvc,
		Instagram:         ig,
		Renderer:          renderer,
		Bundle:            bundle,
		Site:              cfg.Site,
		BaseURL:           cfg.Server.BaseURL,
		InstagramUsername: cfg.Instagram.Username,
		Logger:            logger,
	})
	if err != nil {
		return nil, err
	}
	return httpserver.New(httpserver.Config{
		Address:      cfg.Addr(),
		Development:  cfg.IsDevelopment(),
		CMSOrigin:    cfg.CMS.URL,
		Handlers:     h,
		Bundle:       bundle,
		Metrics:      provider,
		Logger:       logger,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	})
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
