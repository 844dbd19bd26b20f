// Package render turns normalized jobs into the careers site: one HTML page
// per job, an index page, and the aggregator feeds. It never touches the
// network or the filesystem; callers write the returned artifacts.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"careers-engine/internal/domain"
	"careers-engine/internal/normalize"
)

// Artifact kinds. Pages and feeds land in different output directories.
const (
	KindPage = "pages"
	KindFeed = "feeds"
)

// Artifact is one rendered file.
type Artifact struct {
	Kind string
	Name string
	Body []byte
}

type Options struct {
	Company domain.Company

	// PagesPath is the URL path the pages are served under, e.g. "/careers/".
	PagesPath  string
	Stylesheet string // href of the stylesheet
	Logo       string // href of the header logo

	Now func() time.Time
}

type Renderer struct {
	opts Options
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("careers").
		Funcs(template.FuncMap{"titleLines": normalize.TitleLines}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

func New(opts Options) *Renderer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PagesPath == "" {
		opts.PagesPath = "/"
	}
	if !strings.HasSuffix(opts.PagesPath, "/") {
		opts.PagesPath += "/"
	}
	if opts.Company.DefaultOffice == "" {
		opts.Company.DefaultOffice = "Remote"
	}
	return &Renderer{opts: opts}
}

// Render produces every page and feed for jobs. An empty slice still yields
// an index page (with the no-openings message) and empty feeds.
func (r *Renderer) Render(jobs []domain.Job) ([]Artifact, error) {
	now := r.opts.Now()
	entries := r.entries(jobs)

	out := make([]Artifact, 0, len(entries)+5)
	for _, e := range entries {
		body, err := r.jobPage(e, now)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", e.File, err)
		}
		out = append(out, Artifact{Kind: KindPage, Name: e.File, Body: body})
	}

	index, err := r.indexPage(entries, now)
	if err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	out = append(out, Artifact{Kind: KindPage, Name: "index.html", Body: index})

	feeds, err := r.feeds(entries, now)
	if err != nil {
		return nil, err
	}
	return append(out, feeds...), nil
}

// entry is a job plus everything derived from it for display.
type entry struct {
	Job      domain.Job
	File     string
	PageURL  string
	Location string
}

func (r *Renderer) entries(jobs []domain.Job) []entry {
	out := make([]entry, 0, len(jobs))
	used := make(map[string]int, len(jobs))

	for i, j := range jobs {
		base := FileName(j, i)
		name := base
		if n := used[base]; n > 0 {
			name = fmt.Sprintf("%s-%d.html", strings.TrimSuffix(base, ".html"), n+1)
		}
		used[base]++

		out = append(out, entry{
			Job:      j,
			File:     name,
			PageURL:  r.pageURL(name),
			Location: r.locationDisplay(j.Location),
		})
	}
	return out
}

// FileName is "<title slug>-<id>.html" for the i-th job.
func FileName(j domain.Job, i int) string {
	slug := normalize.Slugify(j.Title)
	if slug == "" {
		slug = fmt.Sprintf("position-%d", i)
	}
	id := normalize.Slugify(j.ID)
	if id == "" {
		id = fmt.Sprintf("job-%d", i)
	}
	return slug + "-" + id + ".html"
}

func (r *Renderer) pageURL(file string) string {
	return strings.TrimRight(r.opts.Company.URL, "/") + r.opts.PagesPath + file
}

// locationDisplay shows the office a job belongs to; jobs without a concrete
// city are listed under the default office.
func (r *Renderer) locationDisplay(loc domain.Location) string {
	if !loc.HasOffice() {
		return r.opts.Company.DefaultOffice
	}
	if loc.State == "" {
		return loc.City
	}
	return loc.City + ", " + loc.State
}

type layout struct {
	Company      domain.Company
	Stylesheet   string
	Logo         string
	IndexURL     string
	CanonicalURL string
	Year         int
}

func (r *Renderer) layout(canonical string, now time.Time) layout {
	return layout{
		Company:      r.opts.Company,
		Stylesheet:   r.opts.Stylesheet,
		Logo:         r.opts.Logo,
		IndexURL:     r.pageURL(""),
		CanonicalURL: canonical,
		Year:         now.Year(),
	}
}

type jobPageData struct {
	layout
	Job             domain.Job
	Location        string
	MetaDescription string
	ApplyURL        string
	Schema          template.JS
}

func (r *Renderer) jobPage(e entry, now time.Time) ([]byte, error) {
	schema, err := marshalJSONLD(r.posting(e, now))
	if err != nil {
		return nil, err
	}

	meta := e.Job.Title + " at " + r.opts.Company.Name + "."
	if d := truncate(e.Job.Description, 150); d != "" {
		meta += " " + d
	}

	apply := e.Job.URL
	if apply == "" {
		apply = "#"
	}

	return execute("job", jobPageData{
		layout:          r.layout(e.PageURL, now),
		Job:             e.Job,
		Location:        e.Location,
		MetaDescription: meta,
		ApplyURL:        apply,
		// json.Marshal escapes <, > and &, so the block cannot close the script tag.
		Schema: template.JS(schema),
	})
}

type indexData struct {
	layout
	Entries []entry
	Count   int
}

func (r *Renderer) indexPage(entries []entry, now time.Time) ([]byte, error) {
	return execute("index", indexData{
		layout:  r.layout(r.pageURL(""), now),
		Entries: entries,
		Count:   len(entries),
	})
}

func execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
