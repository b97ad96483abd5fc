package test

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/afero"
)

// ContentRoot is the root directory of every in-memory content tree.
const ContentRoot = "/content"

// ContentFS is an in-memory content tree for tests.
type ContentFS struct {
	t  *testing.T
	Fs afero.Fs
}

// NewContentFS creates an empty content root on a fresh in-memory file system.
func NewContentFS(t *testing.T) *ContentFS {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(ContentRoot, 0755); err != nil {
		t.Fatalf("failed to create content root: %v", err)
	}
	return &ContentFS{t: t, Fs: fs}
}

// Root returns the content root path.
func (c *ContentFS) Root() string {
	return ContentRoot
}

// AddFile writes a raw file at <root>/<dir>/<name>.
func (c *ContentFS) AddFile(dir, name, data string) {
	c.t.Helper()
	d := filepath.Join(ContentRoot, dir)
	if err := c.Fs.MkdirAll(d, 0755); err != nil {
		c.t.Fatalf("failed to create %s: %v", d, err)
	}
	if err := afero.WriteFile(c.Fs, filepath.Join(d, name), []byte(data), 0644); err != nil {
		c.t.Fatalf("failed to write %s/%s: %v", d, name, err)
	}
}

// AddMeta marshals meta as the meta.json of dir.
func (c *ContentFS) AddMeta(dir string, meta map[string]any) {
	c.t.Helper()
	data, err := json.Marshal(meta)
	if err != nil {
		c.t.Fatalf("failed to marshal meta: %v", err)
	}
	c.AddFile(dir, "meta.json", string(data))
}

// AddEpisode writes a numbered episode into the directory named after number.
func (c *ContentFS) AddEpisode(number int, slug, title string) {
	c.t.Helper()
	c.AddMeta(strconv.Itoa(number), map[string]any{
		"number":    number,
		"type":      "episode",
		"title":     title,
		"slug":      slug,
		"youtubeId": "yt" + strconv.Itoa(number),
		"duration":  "45:00",
	})
}
