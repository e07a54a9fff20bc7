package arxivreport

import (
	"strings"
	"time"
)

// Link is one of the URLs attached to a search result.
type Link struct {
	Href  string
	Title string
}

// Paper holds the metadata the search API returns for one result.
type Paper struct {
	// EntryID is the canonical abstract URL
	// (e.g., "http://arxiv.org/abs/2301.00001v1").
	EntryID string

	// Title of the paper
	Title string

	// Authors in announcement order
	Authors []string

	// Published is when the paper was first submitted
	Published time.Time

	// Updated is when the paper was last revised; equals Published
	// for papers with a single version
	Updated time.Time

	// Comment from the submitter (e.g., "10 pages, 3 figures")
	Comment string

	// JournalRef is the journal reference if published
	JournalRef string

	// DOI is the Digital Object Identifier if available
	DOI string

	// PrimaryCategory is the primary arXiv category
	PrimaryCategory string

	// Categories lists all arXiv categories
	Categories []string

	// Links are the URLs associated with the result (abs page, pdf,
	// DOI resolution)
	Links []Link

	// Abstract of the paper
	Abstract string
}

// ID returns the bare arXiv identifier extracted from the entry URL
// (e.g., "http://arxiv.org/abs/2301.00001v1" -> "2301.00001"), or ""
// if the URL has an unexpected shape.
func (p *Paper) ID() string {
	idx := strings.LastIndex(p.EntryID, "/abs/")
	if idx < 0 {
		return ""
	}
	id := p.EntryID[idx+len("/abs/"):]
	// Strip the version suffix
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		id = id[:vIdx]
	}
	return id
}

// AbstractURL returns the arXiv abstract page URL.
func (p *Paper) AbstractURL() string {
	return "https://arxiv.org/abs/" + p.ID()
}

// PDFURL returns the arXiv PDF download URL.
func (p *Paper) PDFURL() string {
	return "https://arxiv.org/pdf/" + p.ID()
}
