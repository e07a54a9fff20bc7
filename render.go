package arxivreport

import (
	"fmt"
	"strings"
)

const reportSeparator = "********************"

// FormatPaper renders the report block for a single paper. Optional
// fields (comment, journal, DOI, titled links) are omitted entirely
// when absent, and the "(updated ...)" clause only appears when the
// update date differs from the publication date.
func FormatPaper(p *Paper) string {
	var b strings.Builder

	b.WriteString("# " + p.Title)
	b.WriteString("\n- URL: " + p.EntryID)
	b.WriteString("\n- Published: " + p.Published.Format(dateFormat))
	if !p.Updated.Equal(p.Published) {
		b.WriteString(" (updated " + p.Updated.Format(dateFormat) + ")")
	}
	b.WriteString("\n- Authors: " + strings.Join(p.Authors, ", "))
	if p.Comment != "" {
		b.WriteString("\n- Comments: " + p.Comment)
	}
	if p.JournalRef != "" {
		b.WriteString("\n- Journal: " + p.JournalRef)
	}
	if p.DOI != "" {
		b.WriteString("\n- DOI: " + p.DOI)
	}
	b.WriteString("\n- Primary category: " + p.PrimaryCategory)
	b.WriteString("\n- Categories: " + strings.Join(p.Categories, ", "))

	// Only titled links, and never the bare pdf link; the PDF URL is
	// derivable from the entry URL anyway.
	var links []string
	for _, l := range p.Links {
		if l.Title != "" && l.Title != "pdf" {
			links = append(links, l.Href)
		}
	}
	if len(links) > 0 {
		b.WriteString("\n- Links: " + strings.Join(links, ", "))
	}

	b.WriteString("\n- Abstract: \"" + p.Abstract + "\"")
	return b.String()
}

// RenderReport renders the full report document: a histogram header
// naming the counted date field, one count line per window day in
// chronological order, a separator, then one block per retained paper
// in retrieval order.
func RenderReport(w Window, col *Collection, includeUpdates bool) string {
	var b strings.Builder

	b.WriteString("# Distribution of paper count by date of ")
	if includeUpdates {
		b.WriteString("update")
	} else {
		b.WriteString("submission")
	}
	b.WriteString("\n")

	for _, day := range w.DayKeys() {
		fmt.Fprintf(&b, "- %s: %d\n", day, col.Counts[day])
	}

	b.WriteString("\n" + reportSeparator + "\n\n")

	for _, p := range col.Papers {
		b.WriteString(FormatPaper(p))
		b.WriteString("\n\n\n")
	}

	return b.String()
}
