package normalize

import (
	"regexp"
	"strings"

	"careers-engine/internal/domain"
)

// Office is a known office whose name shows up in free text, e.g. "St.George UT".
type Office struct {
	City      string
	State     string
	StateName string
}

type officePattern struct {
	re    *regexp.Regexp
	city  string
	state string
}

// Extractor derives a structured location from a raw record.
type Extractor struct {
	defaultCountry string
	offices        []officePattern
}

func NewExtractor(defaultCountry string, offices []Office) *Extractor {
	if strings.TrimSpace(defaultCountry) == "" {
		defaultCountry = "US"
	}
	e := &Extractor{defaultCountry: defaultCountry}
	for _, o := range offices {
		if re := officeRegexp(o); re != nil {
			e.offices = append(e.offices, officePattern{re: re, city: o.City, state: o.State})
		}
	}
	return e
}

// officeRegexp matches the city with loose punctuation/spacing between its
// words, optionally followed by the state code or state name.
func officeRegexp(o Office) *regexp.Regexp {
	words := strings.FieldsFunc(o.City, func(r rune) bool { return r == ' ' || r == '.' })
	if len(words) == 0 {
		return nil
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	pat := `(?i)\b` + strings.Join(words, `\.?\s*`)

	var states []string
	for _, s := range []string{o.State, o.StateName} {
		if s = strings.TrimSpace(s); s != "" {
			states = append(states, regexp.QuoteMeta(s))
		}
	}
	if len(states) > 0 {
		pat += `(?:\s*,?\s*(?:` + strings.Join(states, "|") + `)\b)?`
	}
	return regexp.MustCompile(pat)
}

func (e *Extractor) matchOffice(s string) (officePattern, bool) {
	if s == "" {
		return officePattern{}, false
	}
	for _, o := range e.offices {
		if o.re.MatchString(s) {
			return o, true
		}
	}
	return officePattern{}, false
}

// Extract returns city/state/country and whether the job is remote.
// A recognised office overrides a generic "Remote" label.
func (e *Extractor) Extract(raw domain.RawJob) domain.Location {
	city := strings.TrimSpace(raw.City)
	if city == "" {
		city = strings.TrimSpace(raw.Location)
	}
	loc := domain.Location{
		City:    city,
		State:   strings.TrimSpace(raw.State),
		Country: strings.TrimSpace(raw.Country),
	}
	if loc.Country == "" {
		loc.Country = e.defaultCountry
	}

	loc.IsRemote = strings.EqualFold(city, "remote") ||
		strings.Contains(strings.ToLower(raw.Title), "remote")

	office, ok := e.matchOffice(city)
	if !ok && (city == "" || strings.EqualFold(city, "remote")) {
		office, ok = e.matchOffice(raw.JobType)
	}
	if ok {
		loc.City = office.city
		loc.State = office.state
		loc.IsRemote = false
	}
	return loc
}
