// Package arxivreport generates date-windowed activity reports over
// arXiv subject categories.
//
// A report run asks the arXiv search API for papers in a set of
// categories, sorted descending by submission (or last-update) date,
// consumes the lazily paginated results until they fall out of the
// trailing day window, and writes a plain-text report: a per-day
// histogram followed by one formatted block per retained paper.
//
// Date arithmetic happens in the timezone the service stamps on its
// results, learned via a one-result probe query, so papers submitted
// near midnight land in the right day bucket.
//
// Basic usage:
//
//	gen := arxivreport.NewGenerator(arxivreport.NewClient(), nil)
//	err := gen.Run(ctx, arxivreport.Options{
//		Categories: []string{"cs.CL"},
//		Days:       7,
//		OutputPath: "report.txt",
//	})
//
// Runs can optionally record what they retained in a local SQLite
// history database, opened with OpenHistory.
package arxivreport
