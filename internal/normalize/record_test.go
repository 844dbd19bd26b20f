package normalize

import (
	"testing"

	"careers-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marker = "/job-details/"

func newTestNormalizer() *Normalizer {
	return NewNormalizer(NewExtractor("US", stGeorge), marker)
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer()

	job := n.Normalize(domain.RawJob{
		Title:       "Engineer · Remote · Full-time",
		Description: "Engineer",
		URL:         " https://x/job-details/abc123 ",
		Date:        "2025-01-15",
	})

	assert.Equal(t, "Engineer", job.Title)
	assert.Equal(t, "", job.Description)
	assert.Equal(t, "Full-time", job.JobType)
	assert.Equal(t, "abc123", job.ID)
	assert.Equal(t, "https://x/job-details/abc123", job.URL)
	assert.Equal(t, "2025-01-15", job.Date)
	assert.True(t, job.Location.IsRemote)
	assert.Equal(t, "US", job.Location.Country)
}

func TestJobID(t *testing.T) {
	n := newTestNormalizer()

	t.Run("explicit id wins", func(t *testing.T) {
		job := n.Normalize(domain.RawJob{ID: " 42 ", Title: "Ops", URL: "https://x/job-details/ff00"})
		assert.Equal(t, "42", job.ID)
	})

	t.Run("detail url id", func(t *testing.T) {
		job := n.Normalize(domain.RawJob{Title: "Ops", URL: "https://jobs.deel.com/job-boards/zonos/job-details/9f1c2a7e-1b2c"})
		assert.Equal(t, "9f1c2a7e-1b2c", job.ID)
	})

	t.Run("content hash is stable", func(t *testing.T) {
		a := n.Normalize(domain.RawJob{Title: "Ops", URL: "https://x/jobs/1"})
		b := n.Normalize(domain.RawJob{Title: "Ops", URL: "https://x/jobs/1"})
		c := n.Normalize(domain.RawJob{Title: "Ops", URL: "https://x/jobs/2"})

		assert.Len(t, a.ID, 8)
		assert.Equal(t, a.ID, b.ID)
		assert.NotEqual(t, a.ID, c.ID)
		assert.Equal(t, ContentID("Ops", "https://x/jobs/1"), a.ID)
	})
}

func TestDedupe(t *testing.T) {
	plain := domain.Job{Title: "Engineer", URL: "https://x/jobs"}
	detail := domain.Job{Title: "engineer", URL: "https://x/job-details/abc"}
	detail2 := domain.Job{Title: "ENGINEER", URL: "https://x/job-details/def"}
	other := domain.Job{Title: "Designer", URL: "https://x/jobs"}

	tests := []struct {
		name string
		in   []domain.Job
		want []domain.Job
	}{
		{"later detail url wins", []domain.Job{plain, detail}, []domain.Job{detail}},
		{"first kept without detail url", []domain.Job{detail, plain}, []domain.Job{detail}},
		{"last detail url wins", []domain.Job{detail, detail2}, []domain.Job{detail2}},
		{"replacement keeps position", []domain.Job{plain, other, detail}, []domain.Job{detail, other}},
		{"plain duplicates keep first", []domain.Job{other, plain, {Title: "Engineer", URL: "https://y"}}, []domain.Job{other, plain}},
		{"empty", nil, []domain.Job{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedupe(tt.in, marker))
		})
	}
}

func TestDedupeWithoutMarker(t *testing.T) {
	in := []domain.Job{
		{Title: "Engineer", URL: "https://x/jobs"},
		{Title: "Engineer", URL: "https://x/job-details/abc"},
	}
	out := Dedupe(in, "")
	require.Len(t, out, 1)
	assert.Equal(t, "https://x/jobs", out[0].URL)
}

func TestNormalizeAll(t *testing.T) {
	n := newTestNormalizer()
	raws := []domain.RawJob{
		{Title: "Engineer · Remote", URL: "https://x/board"},
		{Title: "Designer", URL: "https://x/board"},
		{Title: "Engineer Department - Eng", URL: "https://x/job-details/abc123"},
	}

	jobs := n.NormalizeAll(raws)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Engineer", jobs[0].Title)
	assert.Equal(t, "abc123", jobs[0].ID)
	assert.Equal(t, "Designer", jobs[1].Title)

	assert.Empty(t, n.NormalizeAll(nil))
}
