package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/content"
)

const (
	defaultSnapshotPath = "internal/content/data/snapshot.json"
	snapshotPageSize    = 100
	// snapshotMaxPages bounds how many pages of one collection are read.
	snapshotMaxPages = 50
)

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Refresh the fallback dataset from the CMS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, err := opts.load(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cfg.CMS.URL == "" {
				return fmt.Errorf("snapshot: CMS_URL is required")
			}
			client := cms.NewClient(cfg.CMS.URL,
				cms.WithToken(cfg.CMS.Token),
				cms.WithTimeout(cfg.CMS.Timeout),
				cms.WithRevalidate(0),
				cms.WithLogger(logger),
			)
			snap, err := fetchSnapshot(ctx, client, logger, time.Now())
			if err != nil {
				return err
			}
			if err := writeSnapshot(out, snap); err != nil {
				return err
			}
			logger.Info("snapshot written",
				zap.String("path", out),
				zap.Int("portfolios", len(snap.Portfolios)),
				zap.Int("articles", len(snap.Articles)),
				zap.Int("companies", len(snap.Companies)),
				zap.Int("subsidiaries", len(snap.Subsidiaries)),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", defaultSnapshotPath, "destination file")
	return cmd
}

func fetchSnapshot(ctx context.Context, client *cms.Client, logger *zap.Logger, now time.Time) (content.Snapshot, error) {
	var portfolios, articles, companies, subsidiaries cms.Envelope

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		portfolios, err = fetchAll(gctx, logger, "portfolios", client.PortfolioItems)
		return err
	})
	g.Go(func() (err error) {
		articles, err = fetchAll(gctx, logger, "articles", client.Articles)
		return err
	})
	g.Go(func() (err error) {
		companies, err = client.Companies(gctx)
		return wrap("companies", err)
	})
	g.Go(func() (err error) {
		subsidiaries, err = client.Subsidiaries(gctx)
		return wrap("subsidiaries", err)
	})
	if err := g.Wait(); err != nil {
		return content.Snapshot{}, err
	}
	snap, err := content.BuildSnapshot(now, portfolios, articles, companies, subsidiaries)
	if err != nil {
		return content.Snapshot{}, err
	}
	// Reject output the server could not load back.
	raw, err := json.Marshal(snap)
	if err != nil {
		return content.Snapshot{}, err
	}
	if _, err := content.ParseSnapshot(raw); err != nil {
		return content.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return snap, nil
}

// fetchAll reads a collection page by page and returns one envelope holding
// every item.
func fetchAll(ctx context.Context, logger *zap.Logger, what string, list func(context.Context, cms.Query) (cms.Envelope, error)) (cms.Envelope, error) {
	var (
		items []json.RawMessage
		meta  cms.Pagination
	)
	for page := 1; page <= snapshotMaxPages; page++ {
		env, err := list(ctx, cms.Query{Page: page, PageSize: snapshotPageSize})
		if err != nil {
			return cms.Envelope{}, wrap(what, err)
		}
		got, err := env.Items()
		if err != nil {
			return cms.Envelope{}, wrap(what, err)
		}
		items = append(items, got...)
		meta = env.Meta.Pagination
		if len(got) == 0 || page >= meta.PageCount {
			break
		}
	}
	if meta.Total > len(items) {
		logger.Warn("snapshot collection truncated",
			zap.String("collection", what),
			zap.Int("fetched", len(items)),
			zap.Int("total", meta.Total),
		)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return cms.Envelope{}, wrap(what, err)
	}
	n := len(items)
	return cms.Envelope{Data: data, Meta: cms.Meta{Pagination: cms.Pagination{Page: 1, PageSize: n, PageCount: 1, Total: n}}}, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("snapshot: fetch %s: %w", what, err)
	}
	return nil
}

// writeSnapshot replaces path atomically.
func writeSnapshot(path string, snap content.Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
