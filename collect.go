package arxivreport

import (
	"context"
	"errors"
	"io"
	"time"
)

// Stream is a lazily produced sequence of search results. Next returns
// io.EOF when the sequence is exhausted.
type Stream interface {
	Next(ctx context.Context) (*Paper, error)
}

// Searcher is the upstream collaborator a report run pulls papers from.
type Searcher interface {
	ProbeTimezone(ctx context.Context) (*time.Location, error)
	Search(s Search) Stream
}

// clientSearcher adapts Client to the Searcher interface.
type clientSearcher struct {
	c *Client
}

func (s clientSearcher) ProbeTimezone(ctx context.Context) (*time.Location, error) {
	return s.c.ProbeTimezone(ctx)
}

func (s clientSearcher) Search(search Search) Stream {
	return s.c.Search(search)
}

// Collection is the outcome of draining a result stream against a
// window.
type Collection struct {
	// Papers retained, in retrieval order (descending by date).
	Papers []*Paper

	// Counts per window day.
	Counts DayCounts

	// Covered is true when the stream produced a paper older than the
	// window start, meaning the whole window was seen before the
	// result cap ran out.
	Covered bool
}

// Collect consumes results in order until one falls before the window
// start or the stream ends. The relevant date is the update date when
// includeUpdates is set, the submission date otherwise. Stopping at the
// first out-of-window paper keeps the stream from fetching pages the
// report will never use.
func Collect(ctx context.Context, results Stream, window Window, includeUpdates bool) (*Collection, error) {
	col := &Collection{Counts: make(DayCounts)}
	for {
		p, err := results.Next(ctx)
		if errors.Is(err, io.EOF) {
			return col, nil
		}
		if err != nil {
			return nil, err
		}

		d := p.Published
		if includeUpdates {
			d = p.Updated
		}
		if !window.Contains(d) {
			col.Covered = true
			return col, nil
		}

		col.Counts[d.In(window.Start.Location()).Format(dateFormat)]++
		col.Papers = append(col.Papers, p)
	}
}
