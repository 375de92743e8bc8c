package collector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/joescharf/codereview/internal/models"
	"github.com/joescharf/codereview/internal/output"
)

// DefaultExtensions is the file extension allowlist applied when none is
// configured.
var DefaultExtensions = []string{
	".py", ".js", ".jsx", ".ts", ".tsx", ".json", ".yaml", ".yml", ".md",
}

// DefaultExcludeDirs are directory names pruned from traversal entirely,
// subtrees included.
var DefaultExcludeDirs = []string{
	"node_modules", "__pycache__", ".git", "venv", "dist", "build",
}

// DefaultMaxFileSize is the content-length bound above which files are
// skipped, in bytes.
const DefaultMaxFileSize = 50000

// Collector walks a directory tree and loads review candidates into memory.
type Collector struct {
	Root        string
	Extensions  []string
	ExcludeDirs []string
	MaxFileSize int
	UI          *output.UI
}

// New creates a Collector rooted at root with the default filters.
func New(root string, ui *output.UI) *Collector {
	return &Collector{
		Root:        root,
		Extensions:  DefaultExtensions,
		ExcludeDirs: DefaultExcludeDirs,
		MaxFileSize: DefaultMaxFileSize,
		UI:          ui,
	}
}

// Collect walks the root and returns every allowlisted, size-bounded text
// file in lexical traversal order. Unreadable or non-text files are skipped
// with a warning; only a failure to walk the root itself is an error.
func (c *Collector) Collect() ([]models.SourceFile, error) {
	var files []models.SourceFile

	err := filepath.WalkDir(c.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.Root {
				return err
			}
			c.UI.Warning("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != c.Root && c.excluded(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if !c.accepted(d.Name()) {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			c.UI.Warning("Skipping %s: %v", path, readErr)
			return nil
		}
		if len(data) >= c.MaxFileSize {
			c.UI.VerboseLog("Skipping %s: %d bytes exceeds limit", path, len(data))
			return nil
		}
		if !utf8.Valid(data) {
			c.UI.Warning("Skipping %s: not valid UTF-8 text", path)
			return nil
		}

		rel, relErr := filepath.Rel(c.Root, path)
		if relErr != nil {
			rel = path
		}
		files = append(files, models.SourceFile{
			Path:    filepath.ToSlash(rel),
			Content: string(data),
		})
		c.UI.VerboseLog("Collected %s (%d bytes)", rel, len(data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", c.Root, err)
	}

	return files, nil
}

func (c *Collector) accepted(name string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (c *Collector) excluded(dir string) bool {
	for _, d := range c.ExcludeDirs {
		if dir == d {
			return true
		}
	}
	return false
}
