package feed

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eduncan911/podcast"
	"inaudible/internal/models"
)

// Channel describes the podcast as a whole.
type Channel struct {
	Title       string
	Description string
	Author      string
	Language    string
	// Updated is the channel pubDate and lastBuildDate; zero means now.
	Updated time.Time
}

// BaseURL returns the configured base URL, or derives one from the request.
func BaseURL(configured string, r *http.Request) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}

	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "https"
		if r.Header.Get("X-Forwarded-Proto") != "" {
			scheme = r.Header.Get("X-Forwarded-Proto")
		}
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// EpisodeURL is the public page of an episode.
func EpisodeURL(baseURL, slug string) string {
	return fmt.Sprintf("%s/episodes/%s", baseURL, url.PathEscape(slug))
}

// ThumbnailURL is the video thumbnail for a YouTube id.
func ThumbnailURL(youtubeID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", url.PathEscape(youtubeID))
}

// GenerateRSS renders the episode list as an RSS 2.0 feed with iTunes tags.
// Episodes link to their site page; there is no audio enclosure.
func GenerateRSS(ch Channel, episodes []models.Episode, baseURL string) (string, error) {
	updated := ch.Updated
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	p := podcast.New(
		ch.Title,
		baseURL+"/",
		ch.Description,
		&updated, &updated,
	)
	p.Language = ch.Language
	p.IAuthor = ch.Author
	if ch.Description != "" {
		p.AddSummary(ch.Description)
	}

	for _, ep := range episodes {
		description := ep.Description
		if description == "" {
			description = ep.Title
		}

		item := podcast.Item{
			Title:       fmt.Sprintf("%s: %s", ep.Label(), ep.Title),
			Link:        EpisodeURL(baseURL, ep.Slug),
			Description: description,
		}
		if secs, err := ep.DurationSeconds(); err == nil {
			item.AddDuration(secs)
		}
		if ep.YoutubeID != "" {
			item.AddImage(ThumbnailURL(ep.YoutubeID))
		}
		if _, err := p.AddItem(item); err != nil {
			return "", fmt.Errorf("failed to add episode %q to feed: %w", ep.Slug, err)
		}
	}

	return p.String(), nil
}
