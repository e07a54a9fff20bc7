package arxivreport

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultCategory is queried when no categories are configured.
	DefaultCategory = "cs.CL"

	// DefaultPerDayCap is the expected ceiling on papers per window
	// day, used to size the result cap for a query.
	DefaultPerDayCap = 200

	// ServiceMaxResults is the hard ceiling the arXiv API places on a
	// single search.
	ServiceMaxResults = 300000
)

// Options configures one report run.
type Options struct {
	// Categories are the arXiv subject categories to query, combined
	// with OR. Must not be empty.
	Categories []string

	// Days is the trailing window length in calendar days. Valid
	// range is 1 through 366.
	Days int

	// IncludeUpdates counts papers by their last-update date rather
	// than their submission date, picking up revisions of older
	// papers.
	IncludeUpdates bool

	// OutputPath is where the report is written. The file must not
	// already exist.
	OutputPath string

	// PerDayCap and ServiceMax override the compiled policy constants
	// when positive.
	PerDayCap  int
	ServiceMax int
}

// Generator produces date-windowed paper reports.
type Generator struct {
	searcher Searcher
	history  *History

	// out receives progress and warning messages; os.Stdout outside
	// of tests.
	out io.Writer

	// now returns the current time in the given location; tests
	// replace it with a fixed clock.
	now func(loc *time.Location) time.Time
}

// NewGenerator builds a generator backed by the given client. history
// may be nil, in which case runs are not recorded.
func NewGenerator(client *Client, history *History) *Generator {
	return &Generator{
		searcher: clientSearcher{client},
		history:  history,
		out:      os.Stdout,
		now:      func(loc *time.Location) time.Time { return time.Now().In(loc) },
	}
}

// Run executes one report generation end to end: validate, probe the
// service timezone, search, filter against the window, and write the
// report file.
//
// Zero retained papers and a truncated window are warnings, not
// errors; only precondition and upstream failures return a non-nil
// error. No file is written when nothing was retained.
func (g *Generator) Run(ctx context.Context, opts Options) error {
	if opts.Days <= 0 || opts.Days > 366 {
		return fmt.Errorf("nb-days must be between 1 and 366, got %d", opts.Days)
	}
	if len(opts.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	if _, err := os.Stat(opts.OutputPath); err == nil {
		return fmt.Errorf("output path already exists: %s", opts.OutputPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat output path: %w", err)
	}

	loc, err := g.searcher.ProbeTimezone(ctx)
	if err != nil {
		return err
	}
	window := NewWindow(g.now(loc), opts.Days)

	perDay := opts.PerDayCap
	if perDay <= 0 {
		perDay = DefaultPerDayCap
	}
	serviceMax := opts.ServiceMax
	if serviceMax <= 0 {
		serviceMax = ServiceMaxResults
	}
	maxResults := perDay * opts.Days
	if maxResults > serviceMax {
		maxResults = serviceMax
	}

	sortBy := SortBySubmitted
	if opts.IncludeUpdates {
		sortBy = SortByLastUpdated
	}

	fmt.Fprintf(g.out, "\nINFO: getting papers from last %d days.\n", opts.Days)
	results := g.searcher.Search(Search{
		Query:      CategoryQuery(opts.Categories),
		MaxResults: maxResults,
		SortBy:     sortBy,
	})

	col, err := Collect(ctx, results, window, opts.IncludeUpdates)
	if err != nil {
		return err
	}

	if len(col.Papers) == 0 {
		msg := fmt.Sprintf("WARNING: No papers found in last %d days. Consider increasing -nb-days", opts.Days)
		if !opts.IncludeUpdates {
			msg += " or adding the flag -include-updates"
		}
		fmt.Fprintln(g.out, msg+".")
		return nil
	}

	if !col.Covered {
		msg := fmt.Sprintf("WARNING: max results (%d) was too low to get all papers for the last %d days.", maxResults, opts.Days)
		if maxResults < serviceMax {
			msg += fmt.Sprintf(" Consider increasing the per-day cap (%d).", perDay)
		} else {
			msg += fmt.Sprintf(" The API limits the number of results to %d.", serviceMax)
		}
		fmt.Fprintln(g.out, msg)
	}

	if err := writeReport(opts.OutputPath, window, col, opts.IncludeUpdates); err != nil {
		return err
	}

	if g.history != nil {
		run := RunRecord{
			RanAt:          g.now(loc),
			Query:          CategoryQuery(opts.Categories),
			Days:           opts.Days,
			IncludeUpdates: opts.IncludeUpdates,
			WindowStart:    window.Start,
			Retained:       len(col.Papers),
			Covered:        col.Covered,
			OutputPath:     opts.OutputPath,
		}
		if err := g.history.RecordRun(ctx, run, col.Papers); err != nil {
			fmt.Fprintf(g.out, "WARNING: could not record run in history: %v\n", err)
		}
	}

	abs, err := filepath.Abs(opts.OutputPath)
	if err != nil {
		abs = opts.OutputPath
	}
	fmt.Fprintf(g.out, "INFO: Wrote %d results in %s\n", len(col.Papers), abs)
	return nil
}

// writeReport renders and writes the report. O_EXCL guards against a
// file appearing between the precondition check and the write.
func writeReport(path string, w Window, col *Collection, includeUpdates bool) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if _, err := f.WriteString(RenderReport(w, col, includeUpdates)); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
