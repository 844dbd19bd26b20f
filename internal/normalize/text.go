// Package normalize turns raw feed/board records into clean, de-duplicated jobs.
//
// Job boards pad titles, descriptions and job types with the same tags they
// show on their cards ("Engineering Department · Remote · Full-time"). The
// cleaners here strip that boilerplate. Every function accepts any string,
// including the empty one, and is idempotent.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const DefaultJobType = "Full-time"

var (
	// Any of these ends the useful part of a title.
	titleCut = regexp.MustCompile(`(?i)Department\s*[·•]|Department\s*-|\s*[·•]\s*(?:Remote|Full-time|Part-time)`)

	descDeptSpan = regexp.MustCompile(`(?i)Department\s*[·•]\s*[^·•\n]+`)
	descDeptWord = regexp.MustCompile(`(?i)\bDepartment\b[·•\s-]*`)
	descTag      = regexp.MustCompile(`(?i)\s*[·•]\s*(?:Remote|Full-time|Part-time)\s*[·•]?\s*`)

	typeDeptCut  = regexp.MustCompile(`(?i)Department\s*[·•]`)
	typeLocation = regexp.MustCompile(`\s*[·•]\s*(?:[A-Z][a-z]+\.?\s*)+,?\s*[A-Z]{2}\b\s*`)
	typeTag      = regexp.MustCompile(`(?i)\s*[·•]?\s*(?:Remote|Full-time|Part-time)\s*[·•]?\s*`)

	whitespace     = regexp.MustCompile(`\s+`)
	trailingBullet = regexp.MustCompile(`(?:\s*[·•])+\s*$`)
)

// CleanText replaces non-breaking spaces and collapses whitespace runs.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// CleanTitle keeps the text before the first department marker or
// bullet-joined Remote/Full-time/Part-time tag.
func CleanTitle(raw string) string {
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	if loc := titleCut.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.TrimSpace(s)
}

// CleanDescription strips department spans and employment tags. It returns ""
// when what is left only repeats the title.
func CleanDescription(raw, title string) string {
	if title != "" && strings.EqualFold(strings.TrimSpace(raw), title) {
		return ""
	}

	s := untilStable(strings.ReplaceAll(raw, "\u00a0", " "), func(s string) string {
		s = descDeptSpan.ReplaceAllString(s, "")
		s = descDeptWord.ReplaceAllString(s, "")
		s = descTag.ReplaceAllString(s, " ")
		s = whitespace.ReplaceAllString(s, " ")
		s = trailingBullet.ReplaceAllString(s, "")
		return strings.TrimSpace(s)
	})

	if title != "" && strings.EqualFold(s, title) {
		return ""
	}
	return s
}

// CleanJobType drops department, location and remote/full/part-time noise
// from a job type. An empty result becomes DefaultJobType.
func CleanJobType(raw string) string {
	s := untilStable(strings.ReplaceAll(raw, "\u00a0", " "), func(s string) string {
		if loc := typeDeptCut.FindStringIndex(s); loc != nil {
			s = s[:loc[0]]
		}
		s = typeLocation.ReplaceAllString(s, " ")
		s = typeTag.ReplaceAllString(s, " ")
		s = whitespace.ReplaceAllString(s, " ")
		s = trailingBullet.ReplaceAllString(s, "")
		return strings.TrimSpace(s)
	})

	if s == "" {
		return DefaultJobType
	}
	return s
}

// untilStable applies pass until the string stops changing. A pass only
// deletes text or folds whitespace, so the loop ends.
func untilStable(s string, pass func(string) string) string {
	for {
		next := pass(s)
		if next == s {
			return s
		}
		s = next
	}
}

var (
	slugDrop = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSep  = regexp.MustCompile(`[-\s]+`)
)

// Slugify lowercases s, drops punctuation and joins words with single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugDrop.ReplaceAllString(s, "")
	s = slugSep.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var (
	breakParen = regexp.MustCompile(`\s*\(`)
	breakDash  = regexp.MustCompile(`\s+-\s+`)
)

const lineBreak = "<br>"

// TitleLines splits a long title into display lines: before a parenthesis
// (titles over 30 chars) and at the first " - " (over 35 chars).
func TitleLines(title string) []string {
	if title == "" {
		return nil
	}
	if strings.Contains(title, "(") && utf8.RuneCountInString(title) > 30 {
		title = breakParen.ReplaceAllString(title, lineBreak+"(")
	}
	if strings.Contains(title, " - ") && utf8.RuneCountInString(title) > 35 {
		if loc := breakDash.FindStringIndex(title); loc != nil {
			title = title[:loc[0]] + lineBreak + "- " + title[loc[1]:]
		}
	}

	var out []string
	for _, l := range strings.Split(title, lineBreak) {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
