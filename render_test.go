package arxivreport

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalPaper() *Paper {
	pub := time.Date(2024, 3, 8, 17, 30, 0, 0, time.UTC)
	return &Paper{
		EntryID:         "http://arxiv.org/abs/2403.01234v1",
		Title:           "A Study of Things",
		Authors:         []string{"Ada Lovelace", "Alan Turing"},
		Published:       pub,
		Updated:         pub,
		PrimaryCategory: "cs.CL",
		Categories:      []string{"cs.CL", "cs.LG"},
		Links: []Link{
			{Href: "http://arxiv.org/abs/2403.01234v1"},
			{Href: "http://arxiv.org/pdf/2403.01234v1", Title: "pdf"},
		},
		Abstract: "We study things.",
	}
}

func TestFormatPaperMinimal(t *testing.T) {
	want := `# A Study of Things
- URL: http://arxiv.org/abs/2403.01234v1
- Published: 2024-03-08
- Authors: Ada Lovelace, Alan Turing
- Primary category: cs.CL
- Categories: cs.CL, cs.LG
- Abstract: "We study things."`

	assert.Equal(t, want, FormatPaper(minimalPaper()))
}

func TestFormatPaperOmitsAbsentOptionalLines(t *testing.T) {
	got := FormatPaper(minimalPaper())

	assert.NotContains(t, got, "- Comments:")
	assert.NotContains(t, got, "- Journal:")
	assert.NotContains(t, got, "- DOI:")
	assert.NotContains(t, got, "- Links:")
	assert.NotContains(t, got, "(updated")
}

func TestFormatPaperAllFields(t *testing.T) {
	p := minimalPaper()
	p.Updated = time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	p.Comment = "10 pages, 3 figures"
	p.JournalRef = "J. Things 42 (2024) 1-10"
	p.DOI = "10.1234/things.2024"
	p.Links = append(p.Links, Link{Href: "https://doi.org/10.1234/things.2024", Title: "doi"})

	want := `# A Study of Things
- URL: http://arxiv.org/abs/2403.01234v1
- Published: 2024-03-08 (updated 2024-03-12)
- Authors: Ada Lovelace, Alan Turing
- Comments: 10 pages, 3 figures
- Journal: J. Things 42 (2024) 1-10
- DOI: 10.1234/things.2024
- Primary category: cs.CL
- Categories: cs.CL, cs.LG
- Links: https://doi.org/10.1234/things.2024
- Abstract: "We study things."`

	assert.Equal(t, want, FormatPaper(p))
}

func TestFormatPaperUpdatedClauseOnlyWhenDatesDiffer(t *testing.T) {
	p := minimalPaper()
	assert.NotContains(t, FormatPaper(p), "(updated")

	p.Updated = p.Published.Add(48 * time.Hour)
	assert.Contains(t, FormatPaper(p), "- Published: 2024-03-08 (updated 2024-03-10)")
}

func TestRenderReport(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	w := NewWindow(now, 3)

	p := minimalPaper()
	col := &Collection{
		Papers: []*Paper{p},
		Counts: DayCounts{"2024-03-08": 1},
	}

	got := RenderReport(w, col, false)

	wantPrefix := `# Distribution of paper count by date of submission
- 2024-03-07: 0
- 2024-03-08: 1
- 2024-03-09: 0

********************

`
	require.True(t, strings.HasPrefix(got, wantPrefix), "got:\n%s", got)
	assert.Equal(t, wantPrefix+FormatPaper(p)+"\n\n\n", got)
}

func TestRenderReportUpdateHeader(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	w := NewWindow(now, 1)
	col := &Collection{Counts: DayCounts{}}

	got := RenderReport(w, col, true)
	assert.True(t, strings.HasPrefix(got, "# Distribution of paper count by date of update\n"))

	got = RenderReport(w, col, false)
	assert.True(t, strings.HasPrefix(got, "# Distribution of paper count by date of submission\n"))
}

func TestRenderReportZeroCountDaysListed(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	w := NewWindow(now, 5)
	col := &Collection{Counts: DayCounts{"2024-03-07": 2}}

	got := RenderReport(w, col, false)
	for _, line := range []string{
		"- 2024-03-05: 0\n",
		"- 2024-03-06: 0\n",
		"- 2024-03-07: 2\n",
		"- 2024-03-08: 0\n",
		"- 2024-03-09: 0\n",
	} {
		assert.Contains(t, got, line)
	}
}
