package handlers

import (
	"log"
	"net/http"

	"inaudible/internal/feed"
)

func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	episodes, err := h.repo.ListEpisodes()
	if err != nil {
		log.Printf("Error getting episodes: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	channel := feed.Channel{
		Title:       h.site.Title,
		Description: h.site.Description,
		Author:      h.site.Author,
		Language:    h.locales.Fallback(),
	}
	rss, err := feed.GenerateRSS(channel, episodes, h.siteBaseURL(r))
	if err != nil {
		log.Printf("Error generating RSS: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(rss))
}
