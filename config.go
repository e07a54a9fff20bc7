package arxivreport

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries the run defaults that are not worth a flag on every
// invocation.
type Config struct {
	// Categories queried when the -categories flag is absent.
	Categories []string `yaml:"categories"`

	// PerDayCap is the expected ceiling of papers per window day.
	PerDayCap int `yaml:"per_day_cap"`

	// ServiceMax is the hard result ceiling of the search API.
	ServiceMax int `yaml:"service_max_results"`

	// CacheDir is where the history database lives.
	CacheDir string `yaml:"cache_dir"`
}

// LoadConfig resolves defaults from, in increasing precedence:
// compiled defaults, the YAML config file (ARXIV_REPORT_CONFIG or
// ~/.config/arxiv-report/config.yaml), then environment variables.
// A .env file in the working directory is loaded first if present.
func LoadConfig() (*Config, error) {
	// .env is optional
	godotenv.Load()

	cfg := &Config{
		Categories: []string{DefaultCategory},
		PerDayCap:  DefaultPerDayCap,
		ServiceMax: ServiceMaxResults,
		CacheDir:   defaultCacheDir(),
	}

	path := os.Getenv("ARXIV_REPORT_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "arxiv-report", "config.yaml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if v := os.Getenv("ARXIV_REPORT_CATEGORIES"); v != "" {
		cfg.Categories = SplitCategories(v)
	}
	if v := os.Getenv("ARXIV_REPORT_PER_DAY_CAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ARXIV_REPORT_PER_DAY_CAP: %w", err)
		}
		cfg.PerDayCap = n
	}
	if v := os.Getenv("ARXIV_REPORT_MAX_RESULTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ARXIV_REPORT_MAX_RESULTS: %w", err)
		}
		cfg.ServiceMax = n
	}
	if v := os.Getenv("ARXIV_REPORT_CACHE"); v != "" {
		cfg.CacheDir = v
	}

	if len(cfg.Categories) == 0 {
		cfg.Categories = []string{DefaultCategory}
	}

	return cfg, nil
}

// SplitCategories parses a space- or comma-separated category list.
func SplitCategories(s string) []string {
	return strings.Fields(strings.ReplaceAll(s, ",", " "))
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arxiv-report"
	}
	return filepath.Join(home, ".cache", "arxiv-report")
}
