// Package export renders notes as Markdown files with YAML frontmatter, for
// taking a collection out of the engine's keeping.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

// frontmatter is the YAML header written ahead of the note body.
type frontmatter struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Updated string `yaml:"updated"`
}

// Render serializes a single note as Markdown with a frontmatter block.
func Render(n core.Note) (string, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	fm := frontmatter{
		ID:      n.ID,
		Title:   n.Title,
		Updated: time.UnixMilli(n.UpdatedAt).UTC().Format(time.RFC3339),
	}
	if err := encoder.Encode(fm); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	encoder.Close()
	buf.WriteString("---\n")

	buf.WriteString(n.Content)
	if n.Content != "" && !bytes.HasSuffix([]byte(n.Content), []byte("\n")) {
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// Notes writes each matching note to dir as <id>.md and returns how many
// files were written. pattern is a doublestar glob matched against note
// titles; empty matches everything. IDs are opaque tokens, so filenames are
// derived from them with path separators escaped.
func Notes(notes []core.Note, dir string, pattern string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	written := 0
	for _, n := range notes {
		if pattern != "" {
			ok, err := doublestar.Match(pattern, n.Title)
			if err != nil {
				return written, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}

		data, err := Render(n)
		if err != nil {
			return written, err
		}

		name := filename(n.ID)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", name, err)
		}
		written++
	}
	return written, nil
}

// filename maps an opaque ID to a flat file name without interpreting it.
func filename(id string) string {
	safe := make([]rune, 0, len(id))
	for _, r := range id {
		switch r {
		case '/', '\\', 0:
			safe = append(safe, '_')
		default:
			safe = append(safe, r)
		}
	}
	if len(safe) == 0 {
		safe = []rune{'_'}
	}
	return string(safe) + ".md"
}
