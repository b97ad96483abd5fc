package content

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"inaudible/internal/locale"
	"inaudible/internal/models"
)

// TranscriptKind names the representation a resolved transcript came from.
type TranscriptKind string

const (
	TranscriptNone     TranscriptKind = "none"
	TranscriptSegments TranscriptKind = "segments"
	TranscriptMarkdown TranscriptKind = "markdown"
)

// Transcript is the result of the segments -> Markdown fallback chain.
type Transcript struct {
	Locale   string                     `json:"locale"`
	Kind     TranscriptKind             `json:"kind"`
	Segments []models.TranscriptSegment `json:"segments,omitempty"`
	Markdown string                     `json:"markdown,omitempty"`
}

// Available reports whether any transcript was found.
func (t Transcript) Available() bool {
	return t.Kind != TranscriptNone
}

// ResolveTranscript prefers structured segments, then Markdown. The edited
// HTML transcript is a separate view and is not consulted.
func (r *Repository) ResolveTranscript(number int, loc string) (Transcript, error) {
	t := Transcript{Locale: loc, Kind: TranscriptNone}

	segments, ok, err := r.GetSegments(number, loc)
	if err != nil {
		return t, err
	}
	if ok {
		t.Kind = TranscriptSegments
		t.Segments = segments
		return t, nil
	}

	md, ok, err := r.GetMarkdown(number, loc)
	if err != nil {
		return t, err
	}
	if ok {
		t.Kind = TranscriptMarkdown
		t.Markdown = md
	}
	return t, nil
}

var transcriptExts = map[string]bool{"json": true, "md": true, "html": true}

// Locales lists the locales with at least one transcript artifact for the
// episode, sorted.
func (r *Repository) Locales(number int) ([]string, error) {
	infos, err := afero.ReadDir(r.fs, r.episodeDir(number))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var locales []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		loc, ok := parseTranscriptName(info.Name())
		if !ok || seen[loc] {
			continue
		}
		seen[loc] = true
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	return locales, nil
}

// parseTranscriptName extracts the locale from "transcript.<locale>.<ext>".
func parseTranscriptName(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, "transcript.")
	if !ok {
		return "", false
	}
	dot := strings.LastIndex(rest, ".")
	if dot <= 0 || !transcriptExts[rest[dot+1:]] {
		return "", false
	}
	loc := rest[:dot]
	if !locale.Valid(loc) {
		return "", false
	}
	return loc, true
}
