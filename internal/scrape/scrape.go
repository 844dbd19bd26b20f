package scrape

import (
	"context"
	"fmt"
	"time"

	"careers-engine/internal/config"
	"careers-engine/internal/domain"
	"careers-engine/internal/logging"
	"careers-engine/internal/scrape/browser"
	"careers-engine/internal/scrape/deel"
	"careers-engine/internal/scrape/feed"
	"careers-engine/internal/scrape/types"
)

// NewSource builds the job source named by cfg.Source.Kind.
func NewSource(cfg config.Config, log *logging.Logger) (types.JobSource, error) {
	sc := cfg.Source
	switch sc.Kind {
	case config.SourceFeed:
		return feed.New(feed.Config{
			URL:       sc.Feed.URL,
			UserAgent: sc.Board.UserAgent,
			Timeout:   cfg.Timeout(),
		}, log), nil

	case config.SourceBoard:
		dc := deel.Config{
			BoardURL:     sc.Board.URL,
			BaseURL:      sc.Board.BaseURL,
			UserAgent:    sc.Board.UserAgent,
			Timeout:      cfg.Timeout(),
			FetchDetails: sc.Board.FetchDetails,
		}
		if sc.Board.Render {
			dc.Renderer = browser.NewChrome(sc.Board.UserAgent, 3*cfg.Timeout())
		}
		return deel.New(dc, log), nil

	default:
		return nil, fmt.Errorf("unknown source kind %q", sc.Kind)
	}
}

// FetchOrEmpty runs src with a deadline. A failed fetch is logged and
// returned alongside an empty record set so the site still renders.
func FetchOrEmpty(ctx context.Context, src types.JobSource, timeout time.Duration, log *logging.Logger) ([]domain.RawJob, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	jobs, err := src.Fetch(ctx)
	if err != nil {
		log.Error("fetch failed; continuing with no jobs", "source", src.Name(), "err", err)
		return []domain.RawJob{}, err
	}
	if jobs == nil {
		jobs = []domain.RawJob{}
	}
	log.Info("fetched", "source", src.Name(), "records", len(jobs), "took", time.Since(start).Round(time.Millisecond))
	return jobs, nil
}
