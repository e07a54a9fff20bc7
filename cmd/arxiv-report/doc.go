/*
arxiv-report writes date-windowed activity reports over arXiv subject
categories.

It queries the arXiv search API for papers in the requested categories
over a trailing window of days, tallies per-day counts, and writes a
plain-text report with a histogram followed by one block per paper.
Runs are recorded in a local SQLite history database.

# Usage

	arxiv-report <command> [options]

# Commands

	generate   Query arXiv and write a report file
	stats      Show history database statistics
	history    Show recent report runs
	help       Show this help

# Environment

	ARXIV_REPORT_CONFIG       Config file (default: ~/.config/arxiv-report/config.yaml)
	ARXIV_REPORT_CACHE        History directory (default: ~/.cache/arxiv-report)
	ARXIV_REPORT_CATEGORIES   Default categories when no flag is given
	ARXIV_REPORT_PER_DAY_CAP  Expected papers/day ceiling (default 200)
	ARXIV_REPORT_MAX_RESULTS  API hard result ceiling (default 300000)

# Generating Reports

	arxiv-report generate report.txt                   # last 7 days of cs.CL
	arxiv-report generate -c "cs.CL cs.IR" report.txt  # several categories
	arxiv-report generate -n 30 report.txt             # last 30 days
	arxiv-report generate -i report.txt                # count by update date
	arxiv-report generate -no-cache report.txt         # skip the history db

The output path must not already exist; the tool never overwrites a
report. When no papers fall inside the window, a warning is printed and
no file is written. When the result cap runs out before the window is
fully covered, a warning is printed and the partial report is still
written.

# History

	arxiv-report stats                  # paper/run totals, category counts
	arxiv-report history -limit 10      # 10 most recent runs

# Config File

Optional YAML defaults, looked up at ARXIV_REPORT_CONFIG or
~/.config/arxiv-report/config.yaml:

	categories: [cs.CL, cs.IR]
	per_day_cap: 200
	service_max_results: 300000
	cache_dir: /tmp/arxiv-report
*/
package main

const usageText = `arxiv-report - date-windowed arXiv activity reports

Usage: arxiv-report <command> [options]

Commands:
  generate   Query arXiv and write a report file
  stats      Show history database statistics
  history    Show recent report runs
  help       Show this help

Environment:
  ARXIV_REPORT_CONFIG  Config file (default: ~/.config/arxiv-report/config.yaml)
  ARXIV_REPORT_CACHE   History directory (default: ~/.cache/arxiv-report)

Examples:
  arxiv-report generate report.txt                   Last 7 days of cs.CL
  arxiv-report generate -c "cs.CL cs.IR" report.txt  Several categories
  arxiv-report generate -n 30 -i report.txt          30 days, count updates
  arxiv-report stats                                 History statistics
  arxiv-report history -limit 10                     Recent runs

Run 'go doc github.com/tmc/arxiv-report/cmd/arxiv-report' for full documentation.`
