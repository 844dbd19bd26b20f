// Package site runs one generation: fetch, normalize, render, write, and
// optionally publish the careers site.
package site

import (
	"context"
	"fmt"
	"path"
	"time"

	"careers-engine/internal/config"
	"careers-engine/internal/logging"
	"careers-engine/internal/normalize"
	"careers-engine/internal/render"
	"careers-engine/internal/scrape"
	"careers-engine/internal/scrape/types"
	"careers-engine/internal/store"
)

// Publisher ships written files (relative to root) somewhere else.
type Publisher interface {
	Upload(ctx context.Context, root string, files []string) error
}

type Pipeline struct {
	Config config.Config
	Source types.JobSource

	Store     *store.DB // optional run history
	Publisher Publisher // optional

	Log *logging.Logger
	Now func() time.Time
}

// Result summarizes a run. FetchErr is set when the source failed and the
// site was generated with no jobs.
type Result struct {
	Records   int
	Jobs      int
	Files     []string
	FetchErr  error
	Published bool
}

// Run generates the site once. Only write and publish failures are returned;
// a failed fetch degrades to an empty site.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	log := p.Log
	if log == nil {
		log = logging.Nop()
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	cfg := p.Config
	started := now()

	var res Result
	raws, fetchErr := scrape.FetchOrEmpty(ctx, p.Source, cfg.Deadline(), log)
	res.Records = len(raws)
	res.FetchErr = fetchErr

	jobs := newNormalizer(cfg).NormalizeAll(raws)
	res.Jobs = len(jobs)
	log.Info("normalized", "records", len(raws), "unique", len(jobs))

	css := stylesheet(cfg, log)
	lg, copyLogo := logo(cfg, log)

	r := render.New(render.Options{
		Company:    cfg.CompanyInfo(),
		PagesPath:  cfg.Output.PagesPath,
		Stylesheet: css.href,
		Logo:       lg.href,
		Now:        now,
	})
	artifacts, err := r.Render(jobs)
	if err != nil {
		return res, fmt.Errorf("site: render: %w", err)
	}

	files, err := p.write(cfg, artifacts, css, lg, copyLogo)
	res.Files = files
	if err != nil {
		return res, err
	}
	log.Info("site written", "dir", cfg.Output.Dir, "files", len(files))

	if p.Publisher != nil {
		if err := p.Publisher.Upload(ctx, cfg.Output.Dir, files); err != nil {
			p.record(ctx, log, started, now(), res)
			return res, fmt.Errorf("site: publish: %w", err)
		}
		res.Published = true
		log.Info("site published", "files", len(files))
	}

	p.record(ctx, log, started, now(), res)
	return res, nil
}

func (p *Pipeline) write(cfg config.Config, artifacts []render.Artifact, css, lg asset, copyLogo bool) ([]string, error) {
	fl, err := lockOutput(cfg.Output.Dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fl.Unlock() }()

	w := NewWriter(cfg.Output.Dir, cfg.Output.Precompress)
	for _, a := range artifacts {
		dir := cfg.Output.PagesDir
		if a.Kind == render.KindFeed {
			dir = cfg.Output.FeedsDir
		}
		if err := w.Write(path.Join(dir, a.Name), a.Body); err != nil {
			return w.Written(), err
		}
	}

	if err := writeStylesheet(w, cfg.Output.PagesDir, css); err != nil {
		return w.Written(), fmt.Errorf("site: stylesheet: %w", err)
	}
	if copyLogo {
		if err := writeLogo(w, cfg.Output.PagesDir, lg); err != nil {
			return w.Written(), fmt.Errorf("site: logo: %w", err)
		}
	}
	return w.Written(), nil
}

// record stores the run in history. History is best effort.
func (p *Pipeline) record(ctx context.Context, log *logging.Logger, started, finished time.Time, res Result) {
	if p.Store == nil {
		return
	}
	run := store.Run{
		StartedAt:  started,
		FinishedAt: finished,
		Source:     p.Source.Name(),
		Records:    res.Records,
		Jobs:       res.Jobs,
		Artifacts:  len(res.Files),
		Published:  res.Published,
	}
	if res.FetchErr != nil {
		run.FetchError = res.FetchErr.Error()
	}
	if _, err := p.Store.RecordRun(ctx, run); err != nil {
		log.Warn("could not record run", "err", err)
	}
}

func newNormalizer(cfg config.Config) *normalize.Normalizer {
	offices := make([]normalize.Office, 0, len(cfg.Location.Offices))
	for _, o := range cfg.Location.Offices {
		offices = append(offices, normalize.Office{City: o.City, State: o.State, StateName: o.StateName})
	}
	ex := normalize.NewExtractor(cfg.Location.DefaultCountry, offices)
	return normalize.NewNormalizer(ex, cfg.Normalize.DetailMarker)
}
