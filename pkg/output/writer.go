// Package output writes the published JSON artifacts. Every write goes
// through a temp file and rename, so readers never observe a partial file.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

// Writer publishes pipeline results under a base directory
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// weeklyDoc is the weekly artifact envelope
type weeklyDoc struct {
	Updated time.Time     `json:"updated"`
	Items   []domain.Item `json:"items"`
}

// WriteRecent writes the recent view as a bare ordered array (news.json)
func (w *Writer) WriteRecent(items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}
	return w.writeJSON("news.json", items)
}

// WriteWeekly writes the weekly view with its update timestamp
func (w *Writer) WriteWeekly(items []domain.Item, updated time.Time) error {
	if items == nil {
		items = []domain.Item{}
	}
	return w.writeJSON("weekly.json", weeklyDoc{Updated: updated, Items: items})
}

// WriteShortlinks writes the shareId -> snapshot side table
func (w *Writer) WriteShortlinks(links map[string]domain.ShareRecord) error {
	if links == nil {
		links = map[string]domain.ShareRecord{}
	}
	return w.writeJSON("shortlinks.json", links)
}

// WriteShareRecords writes one minimal share artifact per shortlink under
// s/<shareId>.json, consumed by the static page generator
func (w *Writer) WriteShareRecords(links map[string]domain.ShareRecord) error {
	for id, record := range links {
		if err := w.writeJSON(filepath.Join("s", id+".json"), record); err != nil {
			return fmt.Errorf("share record %s: %w", id, err)
		}
	}
	return nil
}

// writeJSON marshals v and atomically replaces dir/name
func (w *Writer) writeJSON(name string, v any) error {
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint:gosec // published artifacts are public
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
