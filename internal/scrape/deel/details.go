package deel

import (
	"context"

	"careers-engine/internal/domain"
	"careers-engine/internal/normalize"
	"careers-engine/internal/scrape/util"

	"github.com/gocolly/colly/v2"
)

// hydrate fills in descriptions from each job's detail page. Failures leave
// the record as it was.
func (s *Scraper) hydrate(ctx context.Context, jobs []domain.RawJob) {
	opts := []colly.CollectorOption{colly.AllowURLRevisit()}
	if s.cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(s.cfg.UserAgent))
	}
	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(s.cfg.Timeout)

	var current *domain.RawJob
	c.OnHTML("div[class], section[class]", func(e *colly.HTMLElement) {
		if current == nil || current.Description != "" {
			return
		}
		if !util.HasClassLike(e.DOM, "description") {
			return
		}
		current.Description = normalize.CleanText(e.DOM.Text())
	})

	for i := range jobs {
		if ctx.Err() != nil {
			return
		}
		if jobs[i].URL == "" || jobs[i].URL == s.cfg.BoardURL {
			continue
		}
		current = &jobs[i]
		if err := c.Visit(jobs[i].URL); err != nil {
			s.log.Debug("detail page failed", "url", jobs[i].URL, "err", err)
		}
	}
	current = nil
}
