// Package ingest turns remote text feeds into registered statements.
//
// Feeds are fetched politely (robots.txt, byte cap, redirect cap); candidate
// statements are extracted by keyword heuristics and registered unverified,
// tagged with their extraction provenance. Registered statements then flow
// through the normal coherence validation.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/registry"
)

// Ingestor fetches a feed and registers extracted statements
type Ingestor struct {
	fetcher   *Fetcher
	extractor *StatementExtractor
	robots    *RobotsChecker
	registry  *registry.Registry
	cfg       model.IngestConfig
	logger    *slog.Logger
}

// Report summarizes one ingestion run
type Report struct {
	SourceURL  string `json:"source_url"`
	Extracted  int    `json:"extracted"`
	Registered int    `json:"registered"`
	Skipped    int    `json:"skipped"`
}

// New creates an ingestor writing into the given registry
func New(reg *registry.Registry, cfg *model.Config, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{
		fetcher:   NewFetcher(cfg.HTTP),
		extractor: NewStatementExtractor(),
		robots:    NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
		registry:  reg,
		cfg:       cfg.Ingest,
		logger:    logger,
	}
}

// Ingest fetches rawURL and registers extracted statements under category.
// An empty category falls back to the configured default.
func (in *Ingestor) Ingest(ctx context.Context, rawURL, category string) (*Report, error) {
	if category == "" {
		category = in.cfg.Category
	}

	if in.cfg.RespectRobots {
		allowed, crawlDelay, err := in.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
		}
		if crawlDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(crawlDelay):
			}
		}
	}

	fetched, err := in.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	candidates, err := in.extractor.Extract(fetched.Body)
	if err != nil {
		return nil, fmt.Errorf("extract statements: %w", err)
	}
	if in.cfg.MaxStatements > 0 && len(candidates) > in.cfg.MaxStatements {
		candidates = candidates[:in.cfg.MaxStatements]
	}

	report := &Report{SourceURL: fetched.FinalURL, Extracted: len(candidates)}
	now := time.Now().UTC()
	for _, c := range candidates {
		st := model.Statement{
			Category:  category,
			Text:      c.Text,
			Verified:  false,
			Timestamp: now,
			Tags:      []string{category, c.Heuristic},
			Metadata: map[string]any{
				"source_url": fetched.FinalURL,
				"sentence":   c.Sentence,
			},
		}
		if _, err := in.registry.Register(st); err != nil {
			report.Skipped++
			continue
		}
		report.Registered++
	}

	in.logger.Info("feed ingested",
		"url", fetched.FinalURL,
		"extracted", report.Extracted,
		"registered", report.Registered,
		"skipped", report.Skipped)
	return report, nil
}
