package models

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EpisodeKind controls how an episode is labelled on the site.
type EpisodeKind string

const (
	KindEpisode EpisodeKind = "episode"
	KindBonus   EpisodeKind = "bonus"
	KindMeta    EpisodeKind = "meta"
)

// Episode is one published item, decoded from an episode directory's meta.json.
type Episode struct {
	Number      *int        `json:"number,omitempty"`
	Kind        EpisodeKind `json:"type"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	YoutubeID   string      `json:"youtubeId"`
	Duration    string      `json:"duration"`
	Description string      `json:"description,omitempty"`
	Categories  []string    `json:"categories,omitempty"`
}

// HasNumber reports whether the episode carries a number.
func (e Episode) HasNumber() bool {
	return e.Number != nil
}

// Label returns the display label, e.g. "Episode 7" or "Bonus".
func (e Episode) Label() string {
	if e.Kind == KindEpisode || e.Kind == "" {
		if e.Number != nil {
			return fmt.Sprintf("Episode %d", *e.Number)
		}
		return "Episode"
	}
	return cases.Title(language.Und).String(string(e.Kind))
}

// DurationSeconds parses the display duration ("45:00", "1:02:03").
func (e Episode) DurationSeconds() (int64, error) {
	return ParseDuration(e.Duration)
}

// ParseDuration converts an "M:SS" or "H:MM:SS" string into seconds.
func ParseDuration(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var total int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		// minutes and seconds after the leading field are bounded
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}
