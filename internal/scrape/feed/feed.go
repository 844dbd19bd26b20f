package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"careers-engine/internal/domain"
	"careers-engine/internal/logging"
	"careers-engine/internal/scrape/util"
)

type Config struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// Source reads jobs from a JSON feed: either an array of job objects or an
// object with a "jobs" array.
type Source struct {
	cfg Config
	hc  *http.Client
	log *logging.Logger
}

func New(cfg Config, log *logging.Logger) *Source {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Source{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		log: log.With("source", "feed"),
	}
}

func (s *Source) Name() string { return "feed" }

func (s *Source) Fetch(ctx context.Context) ([]domain.RawJob, error) {
	body, err := util.Get(ctx, s.hc, s.cfg.URL, s.cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}

	jobs, skipped, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("feed: decode %s: %w", s.cfg.URL, err)
	}
	if skipped > 0 {
		s.log.Warn("skipped malformed records", "count", skipped)
	}
	s.log.Debug("fetched", "url", s.cfg.URL, "records", len(jobs))
	return jobs, nil
}

var ErrNotJSON = errors.New("not a JSON array or object")

// Decode parses a feed document. Elements that are not job objects are
// skipped and counted. An object without a "jobs" key yields no records.
func Decode(b []byte) (jobs []domain.RawJob, skipped int, err error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, 0, ErrNotJSON
	}

	var elems []json.RawMessage
	switch b[0] {
	case '[':
		if err := json.Unmarshal(b, &elems); err != nil {
			return nil, 0, err
		}
	case '{':
		var wrapper struct {
			Jobs []json.RawMessage `json:"jobs"`
		}
		if err := json.Unmarshal(b, &wrapper); err != nil {
			return nil, 0, err
		}
		elems = wrapper.Jobs
	default:
		return nil, 0, ErrNotJSON
	}

	jobs = make([]domain.RawJob, 0, len(elems))
	for _, e := range elems {
		var r domain.RawJob
		if err := json.Unmarshal(e, &r); err != nil || r == (domain.RawJob{}) {
			skipped++
			continue
		}
		jobs = append(jobs, r)
	}
	return jobs, skipped, nil
}
