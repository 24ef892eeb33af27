// Package localstore implements the persistence backend as a small file-based
// key-value store: the note collection and the theme preference, kept under a
// state directory and written atomically.
package localstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/jot/internal/fsutil"
	"github.com/aretw0/jot/pkg/core"
)

const (
	notesFile = "notes.json"
	themeFile = "theme"
)

// Config holds the configuration for the backend.
type Config struct {
	// Path is the state directory, e.g. ".jot".
	Path   string
	Logger *slog.Logger
}

// Backend implements core.Backend over plain files.
type Backend struct {
	path   string
	logger *slog.Logger
}

// New creates a file-backed backend rooted at the configured path.
func New(config Config) *Backend {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{path: config.Path, logger: logger}
}

// Initialize ensures the state directory exists.
func (b *Backend) Initialize() error {
	if err := os.MkdirAll(b.path, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}

// LoadNotes reads the persisted collection. It never fails past this
// boundary: a missing file, unreadable data or a shape mismatch yields an
// empty collection, and each record is sanitized field-by-field with zero
// values substituted for anything of the wrong type.
func (b *Backend) LoadNotes() []core.Note {
	data, err := os.ReadFile(filepath.Join(b.path, notesFile))
	if err != nil {
		if !os.IsNotExist(err) {
			b.logger.Warn("failed to read notes file", "error", err)
		}
		return nil
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		b.logger.Warn("stored notes are malformed, starting empty")
		return nil
	}

	notes := make([]core.Note, 0, len(raw))
	for _, record := range raw {
		notes = append(notes, sanitize(record))
	}
	return notes
}

// SaveNotes persists the full collection atomically. Best-effort: the caller
// is expected to log failures without note contents.
func (b *Backend) SaveNotes(notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	return fsutil.WriteFileAtomic(filepath.Join(b.path, notesFile), data, 0644)
}

// LoadTheme reads the stored theme. Missing or invalid values default to
// light.
func (b *Backend) LoadTheme() core.Theme {
	data, err := os.ReadFile(filepath.Join(b.path, themeFile))
	if err != nil {
		return core.DefaultTheme
	}
	theme := core.Theme(strings.TrimSpace(string(data)))
	if !theme.Valid() {
		return core.DefaultTheme
	}
	return theme
}

// SaveTheme persists the theme. Values outside the enumeration are rejected.
func (b *Backend) SaveTheme(theme core.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("invalid theme %q", theme)
	}
	return fsutil.WriteFileAtomic(filepath.Join(b.path, themeFile), []byte(theme+"\n"), 0644)
}

// sanitize coerces a stored record into a well-typed Note, substituting zero
// values for missing fields or fields of the wrong type.
func sanitize(record map[string]any) core.Note {
	var n core.Note
	if v, ok := record["id"].(string); ok {
		n.ID = v
	}
	if v, ok := record["title"].(string); ok {
		n.Title = v
	}
	if v, ok := record["content"].(string); ok {
		n.Content = v
	}
	switch v := record["updatedAt"].(type) {
	case float64:
		n.UpdatedAt = int64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			n.UpdatedAt = i
		}
	}
	return n
}

var _ core.Backend = (*Backend)(nil)
