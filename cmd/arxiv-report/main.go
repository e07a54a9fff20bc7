package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	arxivreport "github.com/tmc/arxiv-report"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Println(usageText)
		os.Exit(1)
	}

	cfg, err := arxivreport.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "generate":
		cmdGenerate(ctx, cfg, args)
	case "stats":
		cmdStats(ctx, cfg, args)
	case "history":
		cmdHistory(ctx, cfg, args)
	case "help":
		fmt.Println(usageText)
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}

func cmdGenerate(ctx context.Context, cfg *arxivreport.Config, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)

	defaultCats := strings.Join(cfg.Categories, " ")
	var (
		categories     string
		days           int
		includeUpdates bool
		noCache        bool
	)
	fs.StringVar(&categories, "categories", defaultCats, "space- or comma-separated arXiv categories (e.g. \"cs.CL cs.IR\")")
	fs.StringVar(&categories, "c", defaultCats, "shorthand for -categories")
	fs.IntVar(&days, "nb-days", 7, "number of days to go back to")
	fs.IntVar(&days, "n", 7, "shorthand for -nb-days")
	fs.BoolVar(&includeUpdates, "include-updates", false, "count papers by their last update date instead of submission date")
	fs.BoolVar(&includeUpdates, "i", false, "shorthand for -include-updates")
	fs.BoolVar(&noCache, "no-cache", false, "do not record the run in the local history database")
	fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatal("usage: arxiv-report generate [options] <output-path>")
	}

	var history *arxivreport.History
	if !noCache {
		h, err := arxivreport.OpenHistory(cfg.CacheDir)
		if err != nil {
			fmt.Printf("WARNING: history database unavailable: %v\n", err)
		} else {
			history = h
			defer history.Close()
		}
	}

	gen := arxivreport.NewGenerator(arxivreport.NewClient(), history)
	err := gen.Run(ctx, arxivreport.Options{
		Categories:     arxivreport.SplitCategories(categories),
		Days:           days,
		IncludeUpdates: includeUpdates,
		OutputPath:     fs.Arg(0),
		PerDayCap:      cfg.PerDayCap,
		ServiceMax:     cfg.ServiceMax,
	})
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
}

func cmdStats(ctx context.Context, cfg *arxivreport.Config, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	categoriesOnly := fs.Bool("categories", false, "Show only per-category counts")
	fs.Parse(args)

	history, err := arxivreport.OpenHistory(cfg.CacheDir)
	if err != nil {
		log.Fatalf("open history: %v", err)
	}
	defer history.Close()

	if !*categoriesOnly {
		stats, err := history.Stats(ctx)
		if err != nil {
			log.Fatalf("stats: %v", err)
		}

		fmt.Printf("History: %s\n", history.Root())
		fmt.Printf("Total papers: %d\n", stats.TotalPapers)
		fmt.Printf("Total runs:   %d\n", stats.TotalRuns)
		if stats.LastRun != nil {
			fmt.Printf("Last run:     %s\n", stats.LastRun.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}

	counts, err := history.CategoryCounts(ctx)
	if err != nil {
		log.Fatalf("category counts: %v", err)
	}
	for _, c := range counts {
		fmt.Printf("%6d  %s\n", c.Count, c.Name)
	}
}

func cmdHistory(ctx context.Context, cfg *arxivreport.Config, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Max runs to show")
	fs.Parse(args)

	history, err := arxivreport.OpenHistory(cfg.CacheDir)
	if err != nil {
		log.Fatalf("open history: %v", err)
	}
	defer history.Close()

	runs, err := history.Runs(ctx, *limit)
	if err != nil {
		log.Fatalf("list runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return
	}

	for _, r := range runs {
		covered := "covered"
		if !r.Covered {
			covered = "truncated"
		}
		fmt.Printf("%s  %-40s  %3dd  %4d papers  %s\n",
			r.RanAt.Format("2006-01-02 15:04"), r.Query, r.Days, r.Retained, covered)
	}
}
