package arxivreport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func historyPaper(id string, cats ...string) *Paper {
	ts := time.Date(2024, 3, 8, 17, 30, 0, 0, time.UTC)
	return &Paper{
		EntryID:         "http://arxiv.org/abs/" + id + "v1",
		Title:           "Paper " + id,
		Authors:         []string{"Jane Doe"},
		Published:       ts,
		Updated:         ts,
		PrimaryCategory: cats[0],
		Categories:      cats,
		Abstract:        "An abstract.",
	}
}

func TestHistoryRecordRun(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	run := RunRecord{
		RanAt:       time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		Query:       "cat:cs.CL",
		Days:        7,
		WindowStart: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		Retained:    2,
		Covered:     true,
		OutputPath:  "report.txt",
	}
	papers := []*Paper{
		historyPaper("2403.00001", "cs.CL"),
		historyPaper("2403.00002", "cs.CL", "cs.LG"),
	}
	require.NoError(t, h.RecordRun(ctx, run, papers))

	stats, err := h.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPapers)
	assert.Equal(t, int64(1), stats.TotalRuns)
	require.NotNil(t, stats.LastRun)
	assert.Equal(t, run.RanAt.Unix(), stats.LastRun.Unix())

	rec, err := h.GetPaper(ctx, "2403.00002")
	require.NoError(t, err)
	assert.Equal(t, "Paper 2403.00002", rec.Title)
	assert.Equal(t, "cs.CL, cs.LG", rec.Categories)
	assert.Equal(t, "Jane Doe", rec.Authors)
}

func TestHistorySavePapersUpsert(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	p := historyPaper("2403.00001", "cs.CL")
	require.NoError(t, h.SavePapers(ctx, []*Paper{p}))

	// Same paper again, revised title; the seen-set short-circuits
	// within one process, so reset it to force the upsert path.
	h.seen = newLRUCache(10)
	p.Title = "Paper 2403.00001 (revised)"
	require.NoError(t, h.SavePapers(ctx, []*Paper{p}))

	stats, err := h.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPapers, "upsert must not duplicate rows")

	rec, err := h.GetPaper(ctx, "2403.00001")
	require.NoError(t, err)
	assert.Equal(t, "Paper 2403.00001 (revised)", rec.Title)
	assert.False(t, rec.FirstSeen.IsZero())
}

func TestHistorySeenSetSkipsRewrite(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	p := historyPaper("2403.00001", "cs.CL")
	require.NoError(t, h.SavePapers(ctx, []*Paper{p}))
	assert.Equal(t, 1, h.seen.Len())

	require.NoError(t, h.SavePapers(ctx, []*Paper{p}))
	assert.Equal(t, 1, h.seen.Len())
}

func TestHistoryRunsNewestFirst(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		run := RunRecord{
			RanAt: time.Date(2024, 3, 10+i, 12, 0, 0, 0, time.UTC),
			Query: "cat:cs.CL",
			Days:  i,
		}
		require.NoError(t, h.RecordRun(ctx, run, nil))
	}

	runs, err := h.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].Days)
	assert.Equal(t, 2, runs[1].Days)
}

func TestHistoryCategoryCounts(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	require.NoError(t, h.SavePapers(ctx, []*Paper{
		historyPaper("2403.00001", "cs.CL"),
		historyPaper("2403.00002", "cs.CL", "cs.LG"),
		historyPaper("2403.00003", "cs.LG"),
		historyPaper("2403.00004", "cs.CL"),
	}))

	counts, err := h.CategoryCounts(ctx)
	require.NoError(t, err)

	assert.Equal(t, []CategoryCount{
		{Name: "cs.CL", Count: 3},
		{Name: "cs.LG", Count: 2},
	}, counts)
}

func TestLRUCacheEviction(t *testing.T) {
	lru := newLRUCache(2)

	lru.Add("a")
	lru.Add("b")
	assert.True(t, lru.Contains("a")) // refresh "a"
	lru.Add("c")                      // evicts "b"

	assert.True(t, lru.Contains("a"))
	assert.False(t, lru.Contains("b"))
	assert.True(t, lru.Contains("c"))
	assert.Equal(t, 2, lru.Len())
}
