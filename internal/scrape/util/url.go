package util

import (
	"net/url"
	"path"
	"strings"

	"careers-engine/internal/normalize"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ResolveURL makes href absolute against base. Absolute hrefs are returned as is.
func ResolveURL(base, href string) (string, error) {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(ref).String(), nil
}

// TitleFromURL guesses a title from the last path segment,
// ".../job/senior-go-engineer" -> "Senior Go Engineer".
func TitleFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	p := strings.TrimSuffix(u.Path, "/")
	if p == "" {
		return ""
	}
	seg := path.Base(p)
	if seg == "." || seg == "/" {
		return ""
	}
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return cases.Title(language.Und).String(normalize.CleanText(seg))
}
