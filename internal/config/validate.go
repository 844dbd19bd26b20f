package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return fmt.Errorf("config validation failed:\n- %s", strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trim := func(s *string) { *s = strings.TrimSpace(*s) }
	trim(&out.Company.Name)
	trim(&out.Company.URL)
	trim(&out.Source.Feed.URL)
	trim(&out.Source.Board.URL)
	trim(&out.Normalize.DetailMarker)

	out.Source.Kind = strings.ToLower(strings.TrimSpace(out.Source.Kind))
	out.Company.URL = strings.TrimSuffix(out.Company.URL, "/")
	out.Source.Board.BaseURL = strings.TrimSuffix(strings.TrimSpace(out.Source.Board.BaseURL), "/")

	if out.Location.DefaultCountry = strings.TrimSpace(out.Location.DefaultCountry); out.Location.DefaultCountry == "" {
		out.Location.DefaultCountry = "US"
	}
	if out.Output.PagesPath == "" {
		out.Output.PagesPath = "/" + strings.Trim(out.Output.PagesDir, "/") + "/"
	}
	if !strings.HasSuffix(out.Output.PagesPath, "/") {
		out.Output.PagesPath += "/"
	}

	// Offices: drop blanks, dedupe by city.
	seen := map[string]bool{}
	var offices []Office
	for _, o := range out.Location.Offices {
		o.City = strings.TrimSpace(o.City)
		o.State = strings.ToUpper(strings.TrimSpace(o.State))
		o.StateName = strings.TrimSpace(o.StateName)
		key := strings.ToLower(o.City)
		if o.City == "" || seen[key] {
			continue
		}
		seen[key] = true
		offices = append(offices, o)
	}
	out.Location.Offices = offices

	// ---- Validation rules ----

	if out.Company.Name == "" {
		res.addErr("company.name is required")
	}
	if !isHTTPURL(out.Company.URL) {
		res.addErr("company.url must be an absolute http(s) url, got %q", out.Company.URL)
	}

	switch out.Source.Kind {
	case SourceFeed:
		if !isHTTPURL(out.Source.Feed.URL) {
			res.addErr("source.feed.url must be an absolute http(s) url when source.kind=feed")
		}
	case SourceBoard:
		if !isHTTPURL(out.Source.Board.URL) {
			res.addErr("source.board.url must be an absolute http(s) url when source.kind=board")
		}
		if out.Source.Board.BaseURL == "" {
			res.addWarn("source.board.base_url is empty; relative job links will resolve against source.board.url")
		}
	default:
		res.addErr("source.kind must be %q or %q, got %q", SourceFeed, SourceBoard, out.Source.Kind)
	}

	if out.Source.TimeoutSeconds <= 0 {
		res.addErr("source.timeout_seconds must be > 0")
	} else if out.Source.TimeoutSeconds > 120 {
		res.addWarn("source.timeout_seconds is very high (%d)", out.Source.TimeoutSeconds)
	}

	if out.Source.DeadlineSeconds > 0 && out.Source.DeadlineSeconds < out.Source.TimeoutSeconds {
		res.addWarn("source.deadline_seconds (%d) is shorter than source.timeout_seconds (%d)",
			out.Source.DeadlineSeconds, out.Source.TimeoutSeconds)
	}

	if out.Normalize.DetailMarker == "" {
		res.addWarn("normalize.detail_marker is empty; duplicate titles keep the first record")
	}
	if len(out.Location.Offices) == 0 {
		res.addWarn("location.offices is empty; no office pattern fallback")
	}

	if strings.TrimSpace(out.Output.Dir) == "" {
		res.addErr("output.dir is required")
	}
	if out.Output.PagesDir == out.Output.FeedsDir {
		res.addErr("output.pages_dir and output.feeds_dir must differ")
	}

	if out.Publish.Enabled {
		if strings.TrimSpace(out.Publish.Host) == "" {
			res.addErr("publish.host is required when publish.enabled=true")
		}
		if strings.TrimSpace(out.Publish.User) == "" {
			res.addErr("publish.user is required when publish.enabled=true")
		}
		if out.Publish.Port <= 0 || out.Publish.Port > 65535 {
			res.addErr("publish.port must be 1..65535")
		}
		if out.Publish.KnownHosts == "" && !out.Publish.InsecureIgnoreHostKey {
			res.addErr("publish.known_hosts is required unless publish.insecure_ignore_host_key=true")
		}
		if out.Publish.InsecureIgnoreHostKey {
			res.addWarn("publish.insecure_ignore_host_key=true disables host key checking")
		}
	}

	return out, res
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
