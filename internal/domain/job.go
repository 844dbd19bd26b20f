package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawJob is a job record as received from a feed or scraped from a board.
// Every field is optional.
type RawJob struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	JobType     string `json:"jobtype,omitempty"`
	URL         string `json:"url,omitempty"`
	Location    string `json:"location,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	Date        string `json:"date,omitempty"`
	ID          string `json:"id,omitempty"`
}

// UnmarshalJSON accepts the field aliases seen across feeds (job_type,
// date_posted, referencenumber) and non-string scalars such as numeric ids.
func (r *RawJob) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v := scalar(m[k]); v != "" {
				return v
			}
		}
		return ""
	}
	*r = RawJob{
		Title:       pick("title"),
		Description: pick("description"),
		JobType:     pick("jobtype", "job_type"),
		URL:         pick("url"),
		Location:    pick("location"),
		City:        pick("city"),
		State:       pick("state"),
		Country:     pick("country"),
		Date:        pick("date", "date_posted"),
		ID:          pick("id", "referencenumber"),
	}
	return nil
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// json numbers: keep integers free of exponent/decimal noise
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return ""
	}
}

// Location is where a position is based.
type Location struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	IsRemote bool   `json:"is_remote"`
}

// HasOffice reports whether the location names a concrete city.
func (l Location) HasOffice() bool {
	c := strings.TrimSpace(l.City)
	return c != "" && !strings.EqualFold(c, "remote")
}

// Job is the normalized view of a RawJob. Values are copied, never mutated
// after the normalizer builds them.
type Job struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	JobType     string   `json:"jobtype"`
	Location    Location `json:"location"`
	URL         string   `json:"url"`
	Date        string   `json:"date"`
}
