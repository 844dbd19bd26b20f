package normalize

import (
	"regexp"
	"strings"

	"careers-engine/internal/domain"

	"github.com/google/uuid"
)

// Normalizer builds domain.Jobs from raw records.
type Normalizer struct {
	extractor    *Extractor
	detailMarker string
	detailID     *regexp.Regexp
}

func NewNormalizer(extractor *Extractor, detailMarker string) *Normalizer {
	n := &Normalizer{extractor: extractor, detailMarker: detailMarker}
	if detailMarker != "" {
		n.detailID = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(detailMarker) + `([a-f0-9-]+)`)
	}
	if n.extractor == nil {
		n.extractor = NewExtractor("", nil)
	}
	return n
}

// Normalize cleans one record.
func (n *Normalizer) Normalize(raw domain.RawJob) domain.Job {
	title := CleanTitle(raw.Title)
	url := strings.TrimSpace(raw.URL)

	return domain.Job{
		ID:          n.jobID(raw.ID, title, url),
		Title:       title,
		Description: CleanDescription(raw.Description, title),
		JobType:     CleanJobType(raw.JobType),
		Location:    n.extractor.Extract(raw),
		URL:         url,
		Date:        strings.TrimSpace(raw.Date),
	}
}

// NormalizeAll cleans every record and collapses duplicates.
func (n *Normalizer) NormalizeAll(raws []domain.RawJob) []domain.Job {
	jobs := make([]domain.Job, 0, len(raws))
	for _, r := range raws {
		jobs = append(jobs, n.Normalize(r))
	}
	return Dedupe(jobs, n.detailMarker)
}

// jobID prefers the record's own id, then the id in a detail URL, then a
// content hash of title and url so file names survive regeneration.
func (n *Normalizer) jobID(id, title, url string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	if n.detailID != nil {
		if m := n.detailID.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ContentID(title, url)
}

// ContentID is a stable 8 character id for a title/url pair.
func ContentID(title, url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(title+"\n"+url)).String()[:8]
}
