package render

import (
	"encoding/json"
	"strings"
	"time"
)

// schema.org JobPosting, as read by Google for Jobs.
type jobPosting struct {
	Context                       string          `json:"@context"`
	Type                          string          `json:"@type"`
	Title                         string          `json:"title"`
	Description                   string          `json:"description"`
	Identifier                    *propertyValue  `json:"identifier,omitempty"`
	DatePosted                    string          `json:"datePosted"`
	HiringOrganization            organization    `json:"hiringOrganization"`
	JobLocation                   place           `json:"jobLocation"`
	EmploymentType                string          `json:"employmentType"`
	URL                           string          `json:"url"`
	ApplicantLocationRequirements *countryMention `json:"applicantLocationRequirements,omitempty"`
}

type propertyValue struct {
	Type  string `json:"@type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type organization struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	SameAs string `json:"sameAs"`
	Logo   string `json:"logo,omitempty"`
}

type place struct {
	Type    string        `json:"@type"`
	Address postalAddress `json:"address"`
}

type postalAddress struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	AddressCountry  string `json:"addressCountry"`
}

type countryMention struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

const isoSeconds = "2006-01-02T15:04:05"

// posting builds the JobPosting for a detail page. Remote jobs only carry a
// country in their address and name the country applicants must live in.
func (r *Renderer) posting(e entry, now time.Time) jobPosting {
	j := e.Job
	loc := j.Location

	addr := postalAddress{Type: "PostalAddress", AddressCountry: loc.Country}
	var applicants *countryMention
	if loc.IsRemote {
		applicants = &countryMention{Type: "Country", Name: loc.Country}
	} else {
		addr.AddressLocality = loc.City
		addr.AddressRegion = loc.State
	}

	p := jobPosting{
		Context:     "https://schema.org",
		Type:        "JobPosting",
		Title:       j.Title,
		Description: j.Description,
		DatePosted:  datePosted(j.Date, now),
		HiringOrganization: organization{
			Type:   "Organization",
			Name:   r.opts.Company.Name,
			SameAs: r.opts.Company.URL,
			Logo:   r.opts.Company.Logo,
		},
		JobLocation:                   place{Type: "Place", Address: addr},
		EmploymentType:                EmploymentType(j.JobType),
		URL:                           e.PageURL,
		ApplicantLocationRequirements: applicants,
	}
	if j.ID != "" {
		p.Identifier = &propertyValue{Type: "PropertyValue", Name: r.opts.Company.Name, Value: j.ID}
	}
	return p
}

// EmploymentType maps a job type to the schema.org enumeration style,
// "Full-time" -> "FULL_TIME".
func EmploymentType(jobType string) string {
	t := strings.TrimSpace(jobType)
	if t == "" {
		return "FULL_TIME"
	}
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(t))
}

// datePosted converts a YYYY-MM-DD date; anything else becomes now.
func datePosted(date string, now time.Time) string {
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(date)); err == nil {
		return t.Format(isoSeconds)
	}
	return now.Format(isoSeconds)
}

func marshalJSONLD(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
