package util_test

import (
	"strings"
	"testing"

	"careers-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div class="Job-Card">
  <h3>Engineer</h3>
  <span>Full-time</span>
  <p><em>Location:&nbsp;St.George
     UT</em></p>
</div>`))
	require.NoError(t, err)
	card := doc.Find("div").First()

	assert.Equal(t, "Location: St.George UT", util.FindText(card, "location"))
	assert.Equal(t, "Full-time", util.FindText(card, "full-time", "location"), "first match in document order")
	assert.Empty(t, util.FindText(card, "contract"))

	assert.True(t, util.HasClassLike(card, "job"))
	assert.False(t, util.HasClassLike(card.Find("h3"), "job"))
}

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://jobs.deel.com/job/senior-go-engineer", "Senior Go Engineer"},
		{"https://jobs.deel.com/job/data__analyst/", "Data Analyst"},
		{"https://jobs.deel.com/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, util.TitleFromURL(tt.in), "TitleFromURL(%q)", tt.in)
	}
}

func TestResolveURL(t *testing.T) {
	got, err := util.ResolveURL("https://jobs.deel.com/job-boards/zonos", " /job/7 ")
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.deel.com/job/7", got)

	got, err = util.ResolveURL("https://jobs.deel.com", "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got)
}
