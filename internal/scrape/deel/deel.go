// Package deel scrapes a Deel hosted job board. The board markup is not a
// stable API, so parsing is best effort: anything that looks like a job card
// becomes a record and everything else is skipped.
package deel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"careers-engine/internal/domain"
	"careers-engine/internal/logging"
	"careers-engine/internal/normalize"
	"careers-engine/internal/scrape/types"
	"careers-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

type Config struct {
	BoardURL  string // e.g. https://jobs.deel.com/job-boards/zonos
	BaseURL   string // origin relative links resolve against; BoardURL when empty
	UserAgent string
	Timeout   time.Duration

	// FetchDetails visits every job page for its description.
	FetchDetails bool

	// Renderer, when set, loads the board in a browser instead of a plain GET.
	Renderer types.PageRenderer

	Now func() time.Time
}

type Scraper struct {
	cfg Config
	hc  *http.Client
	log *logging.Logger
}

func New(cfg Config, log *logging.Logger) *Scraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = cfg.BoardURL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Scraper{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		log: log.With("source", "deel"),
	}
}

func (s *Scraper) Name() string { return "deel" }

func (s *Scraper) Fetch(ctx context.Context) ([]domain.RawJob, error) {
	page, err := s.board(ctx)
	if err != nil {
		return nil, fmt.Errorf("deel: %w", err)
	}

	jobs, err := Parse(bytes.NewReader(page), s.cfg, s.log)
	if err != nil {
		return nil, fmt.Errorf("deel: parse board: %w", err)
	}
	if len(jobs) == 0 {
		s.log.Warn("no jobs found; the board markup may have changed", "url", s.cfg.BoardURL)
	}

	if s.cfg.FetchDetails && len(jobs) > 0 {
		s.hydrate(ctx, jobs)
	}
	return jobs, nil
}

func (s *Scraper) board(ctx context.Context) ([]byte, error) {
	if s.cfg.Renderer != nil {
		html, err := s.cfg.Renderer.Render(ctx, s.cfg.BoardURL)
		if err != nil {
			return nil, fmt.Errorf("render board: %w", err)
		}
		return []byte(html), nil
	}
	return util.Get(ctx, s.hc, s.cfg.BoardURL, s.cfg.UserAgent)
}

var (
	cardKeywords     = []string{"job", "position", "listing", "opening"}
	locationKeywords = []string{"remote", "location", "anywhere"}
	jobTypeKeywords  = []string{"full-time", "part-time", "contract", "full time", "part time"}
)

var errNoTitle = errors.New("no usable title")

// Parse extracts job records from board HTML.
//
// Cards are div/article/li elements whose class mentions job, position,
// listing or opening. Boards without such classes fall back to links
// containing "/job/". Cards that fail to parse are skipped.
func Parse(r io.Reader, cfg Config, log *logging.Logger) ([]domain.RawJob, error) {
	if log == nil {
		log = logging.Nop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = cfg.BoardURL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	cards := doc.Find("div, article, li").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return util.HasClassLike(s, cardKeywords...)
	})
	if cards.Length() == 0 {
		cards = doc.Find(`a[href*="/job/"]`)
	}
	log.Debug("candidate elements", "count", cards.Length())

	today := cfg.Now().Format("2006-01-02")
	var out []domain.RawJob
	cards.Each(func(i int, card *goquery.Selection) {
		job, err := parseCard(card, cfg, today)
		if err != nil {
			log.Debug("skipped element", "index", i, "err", err)
			return
		}
		out = append(out, job)
	})
	return out, nil
}

func parseCard(card *goquery.Selection, cfg Config, today string) (domain.RawJob, error) {
	link := card
	if goquery.NodeName(card) != "a" {
		link = card.Find("a[href]").First()
	}

	jobURL := cfg.BoardURL
	if href, ok := link.Attr("href"); ok && strings.TrimSpace(href) != "" {
		abs, err := util.ResolveURL(cfg.BaseURL, href)
		if err != nil {
			return domain.RawJob{}, fmt.Errorf("resolve %q: %w", href, err)
		}
		jobURL = abs
	}

	heading := card.Find("h2, h3, h4").First()
	if heading.Length() == 0 {
		heading = card
	}
	title := normalize.CleanText(heading.Text())
	if title == "" && jobURL != cfg.BoardURL {
		title = util.TitleFromURL(jobURL)
	}
	if utf8.RuneCountInString(title) <= 3 {
		return domain.RawJob{}, errNoTitle
	}

	location := util.FindText(card, locationKeywords...)
	if location == "" {
		location = "Remote"
	}
	jobType := util.FindText(card, jobTypeKeywords...)
	if jobType == "" {
		jobType = "Full-time"
	}

	return domain.RawJob{
		Title:    title,
		URL:      jobURL,
		Location: location,
		JobType:  jobType,
		Date:     today,
	}, nil
}
