package handlers

import (
	"log"
	"net/http"
	"strconv"

	"inaudible/internal/locale"
)

// GetEditedTranscript serves the edited HTML transcript verbatim for
// ?episode=<number>&locale=<locale>.
func (h *Handlers) GetEditedTranscript(w http.ResponseWriter, r *http.Request) {
	episodeParam := r.URL.Query().Get("episode")
	if episodeParam == "" {
		http.Error(w, "episode is required", http.StatusBadRequest)
		return
	}
	number, err := strconv.Atoi(episodeParam)
	if err != nil {
		http.Error(w, "episode must be a number", http.StatusBadRequest)
		return
	}

	loc := r.URL.Query().Get("locale")
	if loc == "" {
		loc = h.locales.Fallback()
	}
	if !locale.Valid(loc) {
		http.Error(w, "Invalid locale", http.StatusBadRequest)
		return
	}

	html, ok, err := h.repo.GetEditedHTML(number, loc)
	if err != nil {
		log.Printf("Error reading edited transcript %d/%s: %v", number, loc, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Edited transcript not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
