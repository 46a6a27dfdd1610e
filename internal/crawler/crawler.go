package crawler

import (
	"io/fs"
	"path/filepath"
	"strings"

	"gomend/internal/extractor"
)

// Crawler scans a directory tree for Python source files.
type Crawler struct {
	extractor *extractor.Extractor
	ignored   []string
}

// NewCrawler creates a new crawler instance. Extra directory names to skip
// can be passed on top of the built-in ignore list.
func NewCrawler(ext *extractor.Extractor, extraIgnored ...string) *Crawler {
	ignored := []string{".git", ".venv", "venv", "node_modules", "__pycache__", ".tox", ".mypy_cache"}
	ignored = append(ignored, extraIgnored...)
	return &Crawler{
		extractor: ext,
		ignored:   ignored,
	}
}

// ScanProject walks the root directory and processes all Python files.
// It uses a callback to stream units, preventing large memory buildup.
func (c *Crawler) ScanProject(root string, onUnit func(*extractor.Unit)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}

		// Extract units from file
		units, err := c.extractor.ExtractFromFile(path)
		if err != nil {
			// Skip unreadable or unparsable files instead of failing the scan
			return nil
		}

		// Stream results back
		for _, unit := range units {
			onUnit(unit)
		}

		return nil
	})
}
