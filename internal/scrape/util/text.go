package util

import (
	"strings"

	"careers-engine/internal/normalize"

	"github.com/PuerkitoBio/goquery"
)

// FindText returns the first text node under sel (document order) that
// mentions any keyword, trimmed. Empty when none does.
func FindText(sel *goquery.Selection, keywords ...string) string {
	var found string
	var walk func(*goquery.Selection) bool
	walk = func(s *goquery.Selection) bool {
		stop := false
		s.Contents().EachWithBreak(func(_ int, c *goquery.Selection) bool {
			if goquery.NodeName(c) == "#text" {
				if t := normalize.CleanText(c.Text()); t != "" && ContainsAny(t, keywords...) {
					found = t
					stop = true
				}
			} else {
				stop = walk(c)
			}
			return !stop
		})
		return stop
	}
	walk(sel)
	return found
}

// HasClassLike reports whether the element's class attribute contains any
// of the keywords, ignoring case.
func HasClassLike(sel *goquery.Selection, keywords ...string) bool {
	class, ok := sel.Attr("class")
	if !ok || strings.TrimSpace(class) == "" {
		return false
	}
	return ContainsAny(class, keywords...)
}
