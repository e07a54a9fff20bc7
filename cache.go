package arxivreport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// History keeps a local SQLite record of the papers and runs this tool
// has seen across invocations.
type History struct {
	root string
	db   *gorm.DB
	seen *lruCache // paper IDs already upserted by this process
}

// PaperRecord is the stored form of a paper.
type PaperRecord struct {
	// ID is the bare arXiv identifier (e.g., "2301.00001")
	ID string `gorm:"primaryKey"`

	// EntryID is the canonical abstract URL
	EntryID string `gorm:"column:entry_id"`

	Published time.Time `gorm:"index"`
	Updated   time.Time

	Title    string
	Abstract string

	// Authors and Categories are comma-separated, arXiv style
	Authors    string
	Categories string `gorm:"index"`

	Comments        string
	JournalRef      string `gorm:"column:journal_ref"`
	DOI             string
	PrimaryCategory string `gorm:"column:primary_category"`

	// FirstSeen is when this tool first retained the paper
	FirstSeen time.Time `gorm:"column:first_seen"`
}

func (PaperRecord) TableName() string {
	return "papers"
}

// RunRecord describes one completed report run.
type RunRecord struct {
	ID             uint      `gorm:"primaryKey"`
	RanAt          time.Time `gorm:"column:ran_at;index"`
	Query          string
	Days           int
	IncludeUpdates bool      `gorm:"column:include_updates"`
	WindowStart    time.Time `gorm:"column:window_start"`
	Retained       int
	Covered        bool
	OutputPath     string `gorm:"column:output_path"`
}

func (RunRecord) TableName() string {
	return "runs"
}

// OpenHistory opens or creates the history database under root.
func OpenHistory(root string) (*History, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	dbPath := filepath.Join(root, "history.db")
	dsn := dbPath + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite3",
		DSN:        dsn,
	}, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&PaperRecord{}, &RunRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &History{
		root: root,
		db:   db,
		seen: newLRUCache(10000),
	}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Root returns the history root directory.
func (h *History) Root() string {
	return h.root
}

// SavePapers upserts the given papers. The first-seen timestamp of a
// paper already on record is preserved.
func (h *History) SavePapers(ctx context.Context, papers []*Paper) error {
	now := time.Now()
	for _, p := range papers {
		id := p.ID()
		if id == "" {
			continue
		}
		if h.seen.Contains(id) {
			continue
		}

		rec := PaperRecord{
			ID:              id,
			EntryID:         p.EntryID,
			Published:       p.Published,
			Updated:         p.Updated,
			Title:           p.Title,
			Abstract:        p.Abstract,
			Authors:         strings.Join(p.Authors, ", "),
			Categories:      strings.Join(p.Categories, ", "),
			Comments:        p.Comment,
			JournalRef:      p.JournalRef,
			DOI:             p.DOI,
			PrimaryCategory: p.PrimaryCategory,
			FirstSeen:       now,
		}

		err := h.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"entry_id", "published", "updated", "title", "abstract",
				"authors", "categories", "comments", "journal_ref",
				"doi", "primary_category",
			}),
		}).Create(&rec).Error
		if err != nil {
			return fmt.Errorf("save paper %s: %w", id, err)
		}
		h.seen.Add(id)
	}
	return nil
}

// RecordRun stores the run row and the papers it retained.
func (h *History) RecordRun(ctx context.Context, run RunRecord, papers []*Paper) error {
	if err := h.SavePapers(ctx, papers); err != nil {
		return err
	}
	if err := h.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// GetPaper returns a stored paper by its arXiv identifier.
func (h *History) GetPaper(ctx context.Context, id string) (*PaperRecord, error) {
	var rec PaperRecord
	err := h.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Runs returns the most recent run records, newest first.
func (h *History) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []RunRecord
	err := h.db.WithContext(ctx).Order("ran_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// HistoryStats contains statistics about the history database.
type HistoryStats struct {
	TotalPapers int64
	TotalRuns   int64
	LastRun     *time.Time
}

// Stats returns history statistics.
func (h *History) Stats(ctx context.Context) (*HistoryStats, error) {
	stats := &HistoryStats{}

	if err := h.db.WithContext(ctx).Model(&PaperRecord{}).Count(&stats.TotalPapers).Error; err != nil {
		return nil, err
	}
	if err := h.db.WithContext(ctx).Model(&RunRecord{}).Count(&stats.TotalRuns).Error; err != nil {
		return nil, err
	}

	var last RunRecord
	err := h.db.WithContext(ctx).Order("ran_at DESC").First(&last).Error
	if err == nil {
		stats.LastRun = &last.RanAt
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	return stats, nil
}

// CategoryCount represents a category with its stored paper count.
type CategoryCount struct {
	Name  string
	Count int
}

// CategoryCounts returns per-category paper counts across the whole
// history, most populated first.
func (h *History) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	var recs []PaperRecord
	if err := h.db.WithContext(ctx).Select("categories").Where("categories != ?", "").Find(&recs).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range recs {
		for _, cat := range strings.Split(r.Categories, ",") {
			cat = strings.TrimSpace(cat)
			if cat != "" {
				counts[cat]++
			}
		}
	}

	result := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, CategoryCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}
