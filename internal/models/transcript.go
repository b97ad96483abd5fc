package models

import "fmt"

// TranscriptSegment is one timed line of a structured transcript.
type TranscriptSegment struct {
	Start    float64  `json:"start"`
	Duration *float64 `json:"duration,omitempty"`
	Text     string   `json:"text"`
}

// Timestamp returns the segment start formatted for display.
func (s TranscriptSegment) Timestamp() string {
	return FormatTimestamp(s.Start)
}

// FormatTimestamp renders seconds as "M:SS", or "H:MM:SS" past the hour.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
