package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Project-Narvex/narvex-web/internal/cms"
)

//go:embed data/snapshot.json
var snapshotJSON []byte

// Snapshot is the on-disk fallback dataset. Entries keep the CMS document
// shape so they go through the same normalisers as live responses.
type Snapshot struct {
	GeneratedAt  time.Time         `json:"generatedAt"`
	Portfolios   []json.RawMessage `json:"portfolios"`
	Articles     []json.RawMessage `json:"articles"`
	Companies    []json.RawMessage `json:"companies"`
	Subsidiaries []json.RawMessage `json:"subsidiaries"`
}

// Dataset is a normalised snapshot.
type Dataset struct {
	Portfolio    []PortfolioItem
	Articles     []Article
	Companies    []Company
	Subsidiaries []Company
}

// ParseSnapshot decodes and normalises a snapshot document.
func ParseSnapshot(raw []byte) (Dataset, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Dataset{}, fmt.Errorf("content: parse snapshot: %w", err)
	}
	n := NewNormalizer("")
	ds := Dataset{
		Portfolio:    make([]PortfolioItem, 0, len(snap.Portfolios)),
		Articles:     make([]Article, 0, len(snap.Articles)),
		Companies:    make([]Company, 0, len(snap.Companies)),
		Subsidiaries: make([]Company, 0, len(snap.Subsidiaries)),
	}
	for _, raw := range snap.Portfolios {
		if item, err := n.portfolioItem(raw); err == nil {
			ds.Portfolio = append(ds.Portfolio, item)
		}
	}
	for _, raw := range snap.Articles {
		if a, err := n.article(raw); err == nil {
			ds.Articles = append(ds.Articles, a)
		}
	}
	for _, raw := range snap.Companies {
		if c, err := n.company(raw, KindCompany); err == nil {
			ds.Companies = append(ds.Companies, c)
		}
	}
	for _, raw := range snap.Subsidiaries {
		if c, err := n.company(raw, KindSubsidiary); err == nil {
			ds.Subsidiaries = append(ds.Subsidiaries, c)
		}
	}
	sort.SliceStable(ds.Portfolio, func(i, j int) bool { return ds.Portfolio[i].Date.After(ds.Portfolio[j].Date) })
	sort.SliceStable(ds.Articles, func(i, j int) bool { return ds.Articles[i].PublishedAt.After(ds.Articles[j].PublishedAt) })
	return ds, nil
}

var loadFallback = sync.OnceValue(func() Dataset {
	ds, err := ParseSnapshot(snapshotJSON)
	if err != nil {
		panic(err)
	}
	return ds
})

// Fallback returns the embedded dataset. The returned slices are copies.
func Fallback() Dataset {
	ds := loadFallback()
	return Dataset{
		Portfolio:    append([]PortfolioItem(nil), ds.Portfolio...),
		Articles:     append([]Article(nil), ds.Articles...),
		Companies:    append([]Company(nil), ds.Companies...),
		Subsidiaries: append([]Company(nil), ds.Subsidiaries...),
	}
}

// BuildSnapshot collects raw collection documents into a snapshot.
func BuildSnapshot(now time.Time, portfolios, articles, companies, subsidiaries cms.Envelope) (Snapshot, error) {
	snap := Snapshot{GeneratedAt: now.UTC()}
	var err error
	if snap.Portfolios, err = portfolios.Items(); err != nil {
		return Snapshot{}, fmt.Errorf("content: portfolios: %w", err)
	}
	if snap.Articles, err = articles.Items(); err != nil {
		return Snapshot{}, fmt.Errorf("content: articles: %w", err)
	}
	if snap.Companies, err = companies.Items(); err != nil {
		return Snapshot{}, fmt.Errorf("content: companies: %w", err)
	}
	if snap.Subsidiaries, err = subsidiaries.Items(); err != nil {
		return Snapshot{}, fmt.Errorf("content: subsidiaries: %w", err)
	}
	return snap, nil
}
