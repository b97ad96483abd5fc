// Package content reads episodes and transcripts from the on-disk content tree.
//
// Layout:
//
//	<root>/<episode-dir>/meta.json
//	<root>/<N>/transcript.<locale>.json
//	<root>/<N>/transcript.<locale>.md
//	<root>/<N>/transcript.<locale>.html
//
// Every call reads the file system afresh. Missing data is reported as absent
// (ok == false) and never as an error; files that exist but fail to decode are
// reported as *MalformedContentError.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/afero"
	"inaudible/internal/locale"
	"inaudible/internal/models"
)

const metaFile = "meta.json"

// Repository is a read-only view over a content root. It holds no mutable
// state and is safe for concurrent use.
type Repository struct {
	fs   afero.Fs
	root string
}

// NewRepository creates a Repository reading root from fs.
func NewRepository(fs afero.Fs, root string) *Repository {
	return &Repository{fs: fs, root: root}
}

// NewDiskRepository creates a Repository over a directory on the local disk.
// The file system is wrapped read-only.
func NewDiskRepository(root string) *Repository {
	return NewRepository(afero.NewReadOnlyFs(afero.NewOsFs()), root)
}

// Root returns the content root path.
func (r *Repository) Root() string {
	return r.root
}

type entry struct {
	dir     string
	episode models.Episode
}

// scan decodes every episode directory. Directories without meta.json are
// skipped; per-directory failures are collected so one bad entry does not hide
// the others.
func (r *Repository) scan() ([]entry, []error, error) {
	infos, err := afero.ReadDir(r.fs, r.root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read content root %s: %w", r.root, err)
	}

	var entries []entry
	var errs []error
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		path := filepath.Join(r.root, info.Name(), metaFile)
		data, ok, err := r.readFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}

		if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			errs = append(errs, &MalformedContentError{Path: path, Err: errors.New("expected an episode object")})
			continue
		}
		var ep models.Episode
		if err := json.Unmarshal(data, &ep); err != nil {
			errs = append(errs, &MalformedContentError{Path: path, Err: err})
			continue
		}
		entries = append(entries, entry{dir: info.Name(), episode: ep})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return numberLess(entries[j].episode.Number, entries[i].episode.Number)
	})
	return entries, errs, nil
}

// numberLess orders absent numbers before every present number.
func numberLess(a, b *int) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return *a < *b
	}
}

// ListEpisodes returns every episode sorted by number descending, unnumbered
// episodes last.
//
// When some meta.json files are malformed, the valid episodes are still
// returned together with a joined error wrapping one *MalformedContentError per
// bad file.
func (r *Repository) ListEpisodes() ([]models.Episode, error) {
	entries, errs, err := r.scan()
	if err != nil {
		return nil, err
	}

	episodes := make([]models.Episode, 0, len(entries))
	for _, e := range entries {
		episodes = append(episodes, e.episode)
	}
	return episodes, errors.Join(errs...)
}

// FindBySlug returns the first episode, in ListEpisodes order, whose slug
// matches exactly. If nothing matches and some meta.json was malformed, the
// malformed error is returned since the slug may belong to that entry.
func (r *Repository) FindBySlug(slug string) (models.Episode, bool, error) {
	episodes, err := r.ListEpisodes()
	for _, ep := range episodes {
		if ep.Slug == slug {
			return ep, true, nil
		}
	}
	if err != nil {
		return models.Episode{}, false, err
	}
	return models.Episode{}, false, nil
}

// GetSegments returns the structured transcript for an episode and locale.
func (r *Repository) GetSegments(number int, loc string) ([]models.TranscriptSegment, bool, error) {
	if !locale.Valid(loc) {
		return nil, false, nil
	}
	path := r.transcriptPath(number, loc, "json")
	data, ok, err := r.readFile(path)
	if err != nil || !ok {
		return nil, false, err
	}

	var segments []models.TranscriptSegment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, false, &MalformedContentError{Path: path, Err: err}
	}
	if segments == nil {
		return nil, false, &MalformedContentError{Path: path, Err: errors.New("expected an array of segments")}
	}
	return segments, true, nil
}

// GetMarkdown returns the Markdown transcript verbatim.
func (r *Repository) GetMarkdown(number int, loc string) (string, bool, error) {
	return r.readText(number, loc, "md")
}

// HasEditedTranscript reports whether an edited HTML transcript exists. It
// never reads the file.
func (r *Repository) HasEditedTranscript(number int, loc string) bool {
	if !locale.Valid(loc) {
		return false
	}
	info, err := r.fs.Stat(r.transcriptPath(number, loc, "html"))
	return err == nil && !info.IsDir()
}

// GetEditedHTML returns the edited HTML transcript verbatim. The content is
// trusted and not sanitized.
func (r *Repository) GetEditedHTML(number int, loc string) (string, bool, error) {
	return r.readText(number, loc, "html")
}

func (r *Repository) readText(number int, loc, ext string) (string, bool, error) {
	if !locale.Valid(loc) {
		return "", false, nil
	}
	data, ok, err := r.readFile(r.transcriptPath(number, loc, ext))
	if err != nil || !ok {
		return "", false, err
	}
	return string(data), true, nil
}

// readFile attempts the read directly and maps a missing file to ok == false.
func (r *Repository) readFile(path string) ([]byte, bool, error) {
	data, err := afero.ReadFile(r.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

func (r *Repository) episodeDir(number int) string {
	return filepath.Join(r.root, strconv.Itoa(number))
}

func (r *Repository) transcriptPath(number int, loc, ext string) string {
	return filepath.Join(r.episodeDir(number), "transcript."+loc+"."+ext)
}
