package arxivreport

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://export.arxiv.org/api/query"

	// pageSize is how many entries a single API call asks for.
	pageSize = 100

	// pageDelay is the wait between consecutive API requests required
	// by arXiv's terms of use.
	pageDelay = 3 * time.Second
)

// SortBy selects the date field the API sorts results on.
type SortBy string

const (
	SortBySubmitted   SortBy = "submittedDate"
	SortByLastUpdated SortBy = "lastUpdatedDate"
)

// Search describes one query against the search API. Results always
// come back in descending order of the sort field.
type Search struct {
	// Query is a search_query expression, e.g. "cat:cs.CL OR cat:cs.IR".
	Query string

	// MaxResults caps the total number of results delivered.
	MaxResults int

	// SortBy is the date field to sort on.
	SortBy SortBy
}

// CategoryQuery builds the search expression matching any of the given
// subject categories.
func CategoryQuery(categories []string) string {
	terms := make([]string, len(categories))
	for i, c := range categories {
		terms[i] = "cat:" + c
	}
	return strings.Join(terms, " OR ")
}

// Client talks to the arXiv search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageDelay  time.Duration
}

// NewClient creates a search API client with the standard endpoint and
// rate limiting.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		pageDelay:  pageDelay,
	}
}

// Search starts a query. No network traffic happens until the first
// Next call on the returned results.
func (c *Client) Search(search Search) *Results {
	return &Results{client: c, search: search, total: -1}
}

// ProbeTimezone issues a one-result query and reports the location the
// service stamps on its timestamps. Window arithmetic must happen in
// that location or papers near midnight land in the wrong day bucket.
func (c *Client) ProbeTimezone(ctx context.Context) (*time.Location, error) {
	feed, err := c.fetchFeed(ctx, Search{Query: "language", SortBy: SortBySubmitted}, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("timezone probe: %w", err)
	}
	if len(feed.Entries) == 0 {
		return nil, fmt.Errorf("timezone probe: feed returned no entries")
	}
	p, err := parseAtomEntry(feed.Entries[0])
	if err != nil {
		return nil, fmt.Errorf("timezone probe: %w", err)
	}
	return p.Published.Location(), nil
}

// Results is a lazily paginated stream of search results. Pages are
// fetched on demand, so Next may block on network I/O when the current
// page is exhausted.
type Results struct {
	client *Client
	search Search

	entries []Paper
	pos     int
	start   int // absolute index of the next page
	total   int // totalResults reported by the feed; -1 until known
	fetched int // results delivered so far
	done    bool
}

var _ Stream = (*Results)(nil)

// Next returns the next result, fetching further pages as needed.
// It returns io.EOF once the cap or the end of the feed is reached.
func (r *Results) Next(ctx context.Context) (*Paper, error) {
	for r.pos >= len(r.entries) {
		if r.done {
			return nil, io.EOF
		}
		if err := r.fetchPage(ctx); err != nil {
			return nil, err
		}
	}

	p := r.entries[r.pos]
	r.pos++
	r.fetched++
	if r.search.MaxResults > 0 && r.fetched >= r.search.MaxResults {
		r.done = true
	}
	return &p, nil
}

func (r *Results) fetchPage(ctx context.Context) error {
	if r.start > 0 && r.client.pageDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.client.pageDelay):
		}
	}

	size := pageSize
	if r.search.MaxResults > 0 {
		if remaining := r.search.MaxResults - r.fetched; remaining < size {
			size = remaining
		}
	}

	feed, err := r.client.fetchFeed(ctx, r.search, r.start, size)
	if err != nil {
		return err
	}

	r.entries = r.entries[:0]
	for _, entry := range feed.Entries {
		p, err := parseAtomEntry(entry)
		if err != nil {
			return fmt.Errorf("entry %s: %w", entry.ID, err)
		}
		r.entries = append(r.entries, p)
	}
	r.pos = 0
	r.start += len(feed.Entries)
	r.total = feed.TotalResults

	if len(feed.Entries) == 0 || r.start >= r.total {
		r.done = true
	}
	return nil
}

func (c *Client) fetchFeed(ctx context.Context, search Search, start, max int) (*atomFeed, error) {
	params := url.Values{}
	params.Set("search_query", search.Query)
	params.Set("start", strconv.Itoa(start))
	params.Set("max_results", strconv.Itoa(max))
	if search.SortBy != "" {
		params.Set("sortBy", string(search.SortBy))
		params.Set("sortOrder", "descending")
	}

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}

	return &feed, nil
}

// Atom feed structures for the arXiv API

type atomFeed struct {
	XMLName      xml.Name    `xml:"feed"`
	TotalResults int         `xml:"totalResults"`
	StartIndex   int         `xml:"startIndex"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string         `xml:"id"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Authors         []atomAuthor   `xml:"author"`
	Categories      []atomCategory `xml:"category"`
	PrimaryCategory atomCategory   `xml:"primary_category"`
	Links           []atomLink     `xml:"link"`
	Published       string         `xml:"published"`
	Updated         string         `xml:"updated"`
	Comment         string         `xml:"comment"`
	JournalRef      string         `xml:"journal_ref"`
	DOI             string         `xml:"doi"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

// parseAtomEntry converts an atom entry to a Paper. A timestamp that
// does not parse is an error: the date filter downstream would read a
// zero time as "before the window" and silently end the run.
func parseAtomEntry(entry atomEntry) (Paper, error) {
	var authors []string
	for _, a := range entry.Authors {
		authors = append(authors, a.Name)
	}

	var categories []string
	for _, c := range entry.Categories {
		categories = append(categories, c.Term)
	}

	var links []Link
	for _, l := range entry.Links {
		links = append(links, Link{Href: l.Href, Title: l.Title})
	}

	p := Paper{
		EntryID:         entry.ID,
		Title:           strings.TrimSpace(entry.Title),
		Abstract:        strings.TrimSpace(entry.Summary),
		Authors:         authors,
		Categories:      categories,
		Links:           links,
		Comment:         entry.Comment,
		JournalRef:      entry.JournalRef,
		DOI:             entry.DOI,
		PrimaryCategory: entry.PrimaryCategory.Term,
	}
	if p.PrimaryCategory == "" && len(categories) > 0 {
		p.PrimaryCategory = categories[0]
	}

	var err error
	p.Published, err = time.Parse(time.RFC3339, entry.Published)
	if err != nil {
		return Paper{}, fmt.Errorf("parse published timestamp %q: %w", entry.Published, err)
	}
	if entry.Updated == "" {
		p.Updated = p.Published
	} else {
		p.Updated, err = time.Parse(time.RFC3339, entry.Updated)
		if err != nil {
			return Paper{}, fmt.Errorf("parse updated timestamp %q: %w", entry.Updated, err)
		}
	}

	return p, nil
}
