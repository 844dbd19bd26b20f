package render_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"careers-engine/internal/domain"
	"careers-engine/internal/normalize"
	"careers-engine/internal/render"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newRenderer() *render.Renderer {
	return render.New(render.Options{
		Company: domain.Company{
			Name:          "Zonos",
			URL:           "https://www.zonos.com",
			Logo:          "https://www.zonos.com/logo.png",
			CareersEmail:  "careers@zonos.com",
			DefaultOffice: "St. George, UT",
		},
		PagesPath:  "/careers/",
		Stylesheet: "/careers/careers.css",
		Logo:       "/careers/zonos-logo-black.png",
		Now:        func() time.Time { return fixedNow },
	})
}

func normalizeAll(raws ...domain.RawJob) []domain.Job {
	ex := normalize.NewExtractor("US", []normalize.Office{{City: "St. George", State: "UT", StateName: "Utah"}})
	return normalize.NewNormalizer(ex, "/job-details/").NormalizeAll(raws)
}

func split(arts []render.Artifact) (pages, feeds map[string][]byte) {
	pages, feeds = map[string][]byte{}, map[string][]byte{}
	for _, a := range arts {
		switch a.Kind {
		case render.KindPage:
			pages[a.Name] = a.Body
		case render.KindFeed:
			feeds[a.Name] = a.Body
		}
	}
	return pages, feeds
}

func parseHTML(t *testing.T, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}

func jsonLD(t *testing.T, doc *goquery.Document) map[string]any {
	t.Helper()
	raw := doc.Find(`script[type="application/ld+json"]`).Text()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m), raw)
	return m
}

func TestRenderSingleJob(t *testing.T) {
	jobs := normalizeAll(domain.RawJob{
		Title: "Engineer · Remote · Full-time",
		URL:   "https://x/job-details/abc123",
	})

	arts, err := newRenderer().Render(jobs)
	require.NoError(t, err)

	pages, feeds := split(arts)
	require.Len(t, pages, 2)
	require.Contains(t, pages, "index.html")
	require.Contains(t, pages, "engineer-abc123.html")
	assert.Len(t, feeds, 4)

	index := parseHTML(t, pages["index.html"])
	assert.Equal(t, "1 position available", index.Find(".job-count").Text())
	assert.Equal(t, 1, index.Find(".job-card").Length())
	href, _ := index.Find(".job-card h3 a").Attr("href")
	assert.Equal(t, "engineer-abc123.html", href)
	assert.Equal(t, 0, index.Find(".no-jobs").Length())

	og, _ := index.Find(`meta[property="og:description"]`).Attr("content")
	assert.Contains(t, og, "1 open positions")
}

func TestRenderEmpty(t *testing.T) {
	arts, err := newRenderer().Render(nil)
	require.NoError(t, err)

	pages, feeds := split(arts)
	require.Len(t, pages, 1, "only the index page")

	index := parseHTML(t, pages["index.html"])
	assert.Equal(t, "0 positions available", index.Find(".job-count").Text())
	noJobs := index.Find(".no-jobs").Text()
	assert.Contains(t, noJobs, "don't have any open positions")
	assert.Contains(t, noJobs, "careers@zonos.com")

	feed, err := gofeed.NewParser().ParseString(string(feeds[render.FeedRSS]))
	require.NoError(t, err)
	assert.Empty(t, feed.Items)
	assert.JSONEq(t, "[]", string(feeds[render.FeedGoogleJobs]))
	assert.JSONEq(t, "[]", string(feeds[render.FeedJobs]))
}

func TestJobPageSchema(t *testing.T) {
	jobs := normalizeAll(
		domain.RawJob{Title: "Support Lead (Remote)", URL: "https://x/job-details/aa11", Date: "2025-01-15", JobType: "Part-time"},
		domain.RawJob{Title: "Warehouse Lead", City: "St.George UT", ID: "77", Description: "Run the floor"},
	)
	arts, err := newRenderer().Render(jobs)
	require.NoError(t, err)
	pages, _ := split(arts)

	t.Run("remote", func(t *testing.T) {
		doc := parseHTML(t, pages["support-lead-remote-aa11.html"])
		ld := jsonLD(t, doc)

		assert.Equal(t, "JobPosting", ld["@type"])
		assert.Equal(t, "2025-01-15T00:00:00", ld["datePosted"])
		assert.Equal(t, "FULL_TIME", ld["employmentType"])
		assert.Equal(t, "https://www.zonos.com/careers/support-lead-remote-aa11.html", ld["url"])

		addr := ld["jobLocation"].(map[string]any)["address"].(map[string]any)
		assert.Equal(t, map[string]any{"@type": "PostalAddress", "addressCountry": "US"}, addr)
		assert.Equal(t, map[string]any{"@type": "Country", "name": "US"}, ld["applicantLocationRequirements"])

		id := ld["identifier"].(map[string]any)
		assert.Equal(t, "aa11", id["value"])
	})

	t.Run("office", func(t *testing.T) {
		doc := parseHTML(t, pages["warehouse-lead-77.html"])
		ld := jsonLD(t, doc)

		addr := ld["jobLocation"].(map[string]any)["address"].(map[string]any)
		assert.Equal(t, "St. George", addr["addressLocality"])
		assert.Equal(t, "UT", addr["addressRegion"])
		assert.Equal(t, "US", addr["addressCountry"])
		assert.NotContains(t, ld, "applicantLocationRequirements")
		assert.Equal(t, "2025-03-01T12:00:00", ld["datePosted"], "missing date falls back to now")

		assert.Equal(t, "St. George, UT", doc.Find(".job-meta .location").Text())
		assert.Equal(t, "Run the floor", strings.TrimSpace(doc.Find(".description-content").Text()))
	})
}

func TestJobPageFallbacks(t *testing.T) {
	jobs := []domain.Job{{Title: "Customer Success Manager - Enterprise Accounts", Location: domain.Location{Country: "US"}}}
	arts, err := newRenderer().Render(jobs)
	require.NoError(t, err)
	pages, _ := split(arts)

	body, ok := pages["customer-success-manager-enterprise-accounts-job-0.html"]
	require.True(t, ok)
	doc := parseHTML(t, body)

	assert.Equal(t, "St. George, UT", doc.Find(".job-meta .location").Text())
	assert.Contains(t, doc.Find(".description-content").Text(), "talented professional")
	assert.Equal(t, 1, doc.Find("h1 br").Length())
	apply, _ := doc.Find(".job-actions a").Attr("href")
	assert.Equal(t, "#", apply)
	assert.Equal(t, 0, doc.Find(".meta-item.date").Length())
}

func TestFeeds(t *testing.T) {
	jobs := normalizeAll(
		domain.RawJob{Title: "Engineer · Remote", URL: "https://x/job-details/abc123", Date: "2025-02-10", Description: "Build APIs"},
		domain.RawJob{Title: "Warehouse Lead", City: "St.George UT", ID: "77"},
	)
	arts, err := newRenderer().Render(jobs)
	require.NoError(t, err)
	_, feeds := split(arts)

	t.Run("rss", func(t *testing.T) {
		feed, err := gofeed.NewParser().ParseString(string(feeds[render.FeedRSS]))
		require.NoError(t, err)

		assert.Equal(t, "Zonos Jobs", feed.Title)
		assert.Equal(t, "en-us", feed.Language)
		require.Len(t, feed.Items, 2)
		assert.Equal(t, "Engineer", feed.Items[0].Title)
		assert.Equal(t, "https://x/job-details/abc123", feed.Items[0].Link)
		assert.Equal(t, "https://x/job-details/abc123", feed.Items[0].GUID)
		assert.Equal(t, "Engineer - St. George, UT", feed.Items[0].Description)
		require.NotNil(t, feed.Items[0].PublishedParsed)
		assert.Equal(t, 2025, feed.Items[0].PublishedParsed.Year())

		// no url: the item links to the generated page
		assert.Equal(t, "https://www.zonos.com/careers/warehouse-lead-77.html", feed.Items[1].Link)
	})

	t.Run("indeed", func(t *testing.T) {
		body := feeds[render.FeedIndeed]
		assert.True(t, strings.HasPrefix(string(body), xml.Header))

		var doc struct {
			Publisher string `xml:"publisher>name"`
			Jobs      []struct {
				Title       string `xml:"title"`
				Reference   string `xml:"referencenumber"`
				Company     string `xml:"company"`
				City        string `xml:"city"`
				State       string `xml:"state"`
				Country     string `xml:"country"`
				Description string `xml:"description"`
				JobType     string `xml:"jobtype"`
				Date        string `xml:"date"`
			} `xml:"job"`
		}
		require.NoError(t, xml.Unmarshal(body, &doc))
		assert.Equal(t, "Zonos", doc.Publisher)
		require.Len(t, doc.Jobs, 2)

		assert.Equal(t, "abc123", doc.Jobs[0].Reference)
		assert.Equal(t, "Remote", doc.Jobs[0].City)
		assert.Equal(t, "Build APIs", doc.Jobs[0].Description)
		assert.Equal(t, "2025-02-10", doc.Jobs[0].Date)

		assert.Equal(t, "St. George", doc.Jobs[1].City)
		assert.Equal(t, "UT", doc.Jobs[1].State)
		assert.Equal(t, "Warehouse Lead", doc.Jobs[1].Description, "description falls back to title")
		assert.Equal(t, "Full-time", doc.Jobs[1].JobType)
		assert.Equal(t, "2025-03-01", doc.Jobs[1].Date)
	})

	t.Run("google jobs", func(t *testing.T) {
		var postings []map[string]any
		require.NoError(t, json.Unmarshal(feeds[render.FeedGoogleJobs], &postings))
		require.Len(t, postings, 2)
		assert.Equal(t, "Build APIs", postings[0]["description"])
		assert.Equal(t, "Warehouse Lead", postings[1]["description"])
		assert.Equal(t, "https://x/job-details/abc123", postings[0]["url"])
	})

	t.Run("jobs json reads back as feed input", func(t *testing.T) {
		var raws []domain.RawJob
		require.NoError(t, json.Unmarshal(feeds[render.FeedJobs], &raws))
		require.Len(t, raws, 2)

		again := normalizeAll(raws...)
		assert.Equal(t, jobs[0].Title, again[0].Title)
		assert.Equal(t, jobs[0].ID, again[0].ID)
		assert.Equal(t, jobs[1].Location, again[1].Location)
	})
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		job  domain.Job
		want string
	}{
		{"title and id", domain.Job{Title: "Senior Engineer (Remote)", ID: "abc"}, "senior-engineer-remote-abc.html"},
		{"no title", domain.Job{ID: "abc"}, "position-3-abc.html"},
		{"no id", domain.Job{Title: "Designer"}, "designer-job-3.html"},
		{"id is slugged", domain.Job{Title: "Designer", ID: "A/B 12"}, "designer-ab-12.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.FileName(tt.job, 3))
		})
	}
}

func TestRenderDistinctFileNames(t *testing.T) {
	jobs := []domain.Job{
		{Title: "C++ Developer", ID: "1"},
		{Title: "C Developer", ID: "1"},
	}
	arts, err := newRenderer().Render(jobs)
	require.NoError(t, err)
	pages, _ := split(arts)

	assert.Contains(t, pages, "c-developer-1.html")
	assert.Contains(t, pages, "c-developer-1-2.html")
}

func TestEmploymentType(t *testing.T) {
	assert.Equal(t, "FULL_TIME", render.EmploymentType("Full-time"))
	assert.Equal(t, "PART_TIME", render.EmploymentType("part time"))
	assert.Equal(t, "CONTRACT", render.EmploymentType("Contract"))
	assert.Equal(t, "FULL_TIME", render.EmploymentType(""))
}
