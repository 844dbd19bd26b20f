package render

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Feed file names inside the feeds directory.
const (
	FeedRSS        = "jobs.rss"
	FeedIndeed     = "indeed.xml"
	FeedGoogleJobs = "google-jobs.json"
	FeedJobs       = "jobs.json"
)

const rfc1123GMT = "Mon, 02 Jan 2006 15:04:05 GMT"

func (r *Renderer) feeds(entries []entry, now time.Time) ([]Artifact, error) {
	builders := []struct {
		name  string
		build func([]entry, time.Time) ([]byte, error)
	}{
		{FeedRSS, r.rss},
		{FeedIndeed, r.indeed},
		{FeedGoogleJobs, r.googleJobs},
		{FeedJobs, r.jobsJSON},
	}

	out := make([]Artifact, 0, len(builders))
	for _, b := range builders {
		body, err := b.build(entries, now)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", b.name, err)
		}
		out = append(out, Artifact{Kind: KindFeed, Name: b.name, Body: body})
	}
	return out, nil
}

// link is where a feed entry points: the job board posting when known,
// else our own page.
func link(e entry) string {
	if e.Job.URL != "" {
		return e.Job.URL
	}
	return e.PageURL
}

// summary is the feed description of a job, falling back to its title.
func summary(e entry) string {
	if e.Job.Description != "" {
		return e.Job.Description
	}
	return e.Job.Title
}

// ---- RSS 2.0 ----

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

func (r *Renderer) rss(entries []entry, now time.Time) ([]byte, error) {
	c := r.opts.Company
	doc := rssDoc{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         c.Name + " Jobs",
			Link:          c.URL,
			Description:   "Current job openings at " + c.Name,
			Language:      "en-us",
			LastBuildDate: now.UTC().Format(rfc1123GMT),
		},
	}

	for _, e := range entries {
		pub := now
		if t, err := time.Parse("2006-01-02", e.Job.Date); err == nil {
			pub = t
		}
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       e.Job.Title,
			Link:        link(e),
			Description: e.Job.Title + " - " + e.Location,
			PubDate:     pub.UTC().Format(rfc1123GMT),
			GUID:        rssGUID{IsPermaLink: "true", Value: link(e)},
		})
	}
	return marshalXML(doc)
}

// ---- Indeed XML ----

type indeedSource struct {
	XMLName       xml.Name        `xml:"source"`
	Publisher     indeedPublisher `xml:"publisher"`
	PublisherURL  string          `xml:"publisherurl"`
	LastBuildDate string          `xml:"lastBuildDate"`
	Jobs          []indeedJob     `xml:"job"`
}

type indeedPublisher struct {
	Name string `xml:"name"`
}

type indeedJob struct {
	Title           string `xml:"title"`
	Date            string `xml:"date"`
	ReferenceNumber string `xml:"referencenumber"`
	URL             string `xml:"url"`
	Company         string `xml:"company"`
	City            string `xml:"city"`
	State           string `xml:"state"`
	Country         string `xml:"country"`
	PostalCode      string `xml:"postalcode"`
	Description     string `xml:"description"`
	JobType         string `xml:"jobtype"`
	Category        string `xml:"category"`
	Experience      string `xml:"experience"`
	Education       string `xml:"education"`
}

func (r *Renderer) indeed(entries []entry, now time.Time) ([]byte, error) {
	c := r.opts.Company
	doc := indeedSource{
		Publisher:     indeedPublisher{Name: c.Name},
		PublisherURL:  c.URL,
		LastBuildDate: now.Format("2006-01-02"),
	}

	for _, e := range entries {
		loc := e.Job.Location
		city := loc.City
		if !loc.HasOffice() && loc.IsRemote {
			city = "Remote"
		}
		date := e.Job.Date
		if date == "" {
			date = now.Format("2006-01-02")
		}
		doc.Jobs = append(doc.Jobs, indeedJob{
			Title:           e.Job.Title,
			Date:            date,
			ReferenceNumber: e.Job.ID,
			URL:             link(e),
			Company:         c.Name,
			City:            city,
			State:           loc.State,
			Country:         loc.Country,
			Description:     summary(e),
			JobType:         e.Job.JobType,
		})
	}
	return marshalXML(doc)
}

// ---- Google Jobs JSON-LD ----

func (r *Renderer) googleJobs(entries []entry, now time.Time) ([]byte, error) {
	postings := make([]jobPosting, 0, len(entries))
	for _, e := range entries {
		p := r.posting(e, now)
		p.Description = summary(e)
		p.URL = link(e)
		postings = append(postings, p)
	}
	return marshalJSONLD(postings)
}

// ---- jobs.json ----

// feedRecord is the flat record shape the JSON feed source reads, so one
// run's jobs.json can serve as another run's input.
type feedRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	JobType     string `json:"jobtype"`
	URL         string `json:"url"`
	Location    string `json:"location"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	Date        string `json:"date"`
}

func (r *Renderer) jobsJSON(entries []entry, _ time.Time) ([]byte, error) {
	recs := make([]feedRecord, 0, len(entries))
	for _, e := range entries {
		j := e.Job
		where := j.Location.City
		if j.Location.IsRemote {
			where = "Remote"
		}
		recs = append(recs, feedRecord{
			ID:          j.ID,
			Title:       j.Title,
			Description: j.Description,
			JobType:     j.JobType,
			URL:         j.URL,
			Location:    where,
			City:        j.Location.City,
			State:       j.Location.State,
			Country:     j.Location.Country,
			Date:        j.Date,
		})
	}
	return json.MarshalIndent(recs, "", "  ")
}

func marshalXML(v any) ([]byte, error) {
	b, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.Write(b)
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}
