package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"
	"inaudible/internal/content"
	"inaudible/internal/feed"
	"inaudible/internal/models"
	"inaudible/internal/search"
)

const searchLimit = 20

type episodeSummary struct {
	Episode models.Episode `json:"episode"`
	Label   string         `json:"label"`
	URL     string         `json:"url"`
}

type episodeDetail struct {
	episodeSummary
	Transcript       content.Transcript `json:"transcript"`
	Locales          []string           `json:"locales"`
	EditedTranscript bool               `json:"editedTranscript"`
	EditedURL        string             `json:"editedUrl,omitempty"`
	EditedSections   []string           `json:"editedSections,omitempty"`
}

type searchResult struct {
	episodeSummary
	Distance int    `json:"distance"`
	Field    string `json:"field"`
}

type page struct {
	Site   Site
	Locale string
	Title  string
	Query  string
}

type indexPage struct {
	page
	Episodes []episodeSummary
}

type episodePage struct {
	page
	Detail         episodeDetail
	TranscriptHTML template.HTML
}

func summarize(ep models.Episode, baseURL string) episodeSummary {
	return episodeSummary{Episode: ep, Label: ep.Label(), URL: feed.EpisodeURL(baseURL, ep.Slug)}
}

// findEpisode resolves the {slug} route variable, writing 404/500 itself.
func (h *Handlers) findEpisode(w http.ResponseWriter, r *http.Request) (models.Episode, bool) {
	slug := mux.Vars(r)["slug"]
	ep, ok, err := h.repo.FindBySlug(slug)
	if err != nil {
		log.Printf("Error finding episode %q: %v", slug, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return models.Episode{}, false
	}
	if !ok {
		http.Error(w, "Episode not found", http.StatusNotFound)
		return models.Episode{}, false
	}
	return ep, true
}

func (h *Handlers) detail(ep models.Episode, loc, baseURL string) (episodeDetail, error) {
	d := episodeDetail{
		episodeSummary: summarize(ep, baseURL),
		Transcript:     content.Transcript{Locale: loc, Kind: content.TranscriptNone},
	}
	if ep.Number == nil {
		return d, nil
	}
	n := *ep.Number

	var err error
	if d.Transcript, err = h.repo.ResolveTranscript(n, loc); err != nil {
		return d, err
	}
	if d.Locales, err = h.repo.Locales(n); err != nil {
		return d, err
	}

	html, ok, err := h.repo.GetEditedHTML(n, loc)
	if err != nil {
		return d, err
	}
	if !ok {
		return d, nil
	}
	d.EditedTranscript = true
	d.EditedURL = editedTranscriptURL(baseURL, n, loc)
	d.EditedSections, err = content.EditedSections(html)
	return d, err
}

func editedTranscriptURL(baseURL string, number int, loc string) string {
	q := url.Values{}
	q.Set("episode", fmt.Sprint(number))
	q.Set("locale", loc)
	return fmt.Sprintf("%s/api/transcript?%s", baseURL, q.Encode())
}

func (h *Handlers) listSummaries(r *http.Request) ([]episodeSummary, error) {
	episodes, err := h.repo.ListEpisodes()
	if err != nil {
		return nil, err
	}
	baseURL := h.siteBaseURL(r)

	query := r.URL.Query().Get("q")
	if query == "" {
		summaries := make([]episodeSummary, 0, len(episodes))
		for _, ep := range episodes {
			summaries = append(summaries, summarize(ep, baseURL))
		}
		return summaries, nil
	}

	summaries := []episodeSummary{}
	for _, res := range search.Episodes(query, episodes, searchLimit) {
		summaries = append(summaries, summarize(res.Episode, baseURL))
	}
	return summaries, nil
}

func (h *Handlers) GetIndex(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.listSummaries(r)
	if err != nil {
		log.Printf("Error listing episodes: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "index.html", indexPage{
		page: page{
			Site:   h.site,
			Locale: h.locales.FromRequest(r),
			Query:  r.URL.Query().Get("q"),
		},
		Episodes: summaries,
	})
}

func (h *Handlers) GetEpisodePage(w http.ResponseWriter, r *http.Request) {
	ep, ok := h.findEpisode(w, r)
	if !ok {
		return
	}
	loc := h.locales.FromRequest(r)

	d, err := h.detail(ep, loc, h.siteBaseURL(r))
	if err != nil {
		log.Printf("Error loading episode %q: %v", ep.Slug, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := episodePage{
		page:   page{Site: h.site, Locale: loc, Title: ep.Title},
		Detail: d,
	}
	if d.Transcript.Kind == content.TranscriptMarkdown {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(d.Transcript.Markdown), &buf); err != nil {
			log.Printf("Error rendering markdown transcript for %q: %v", ep.Slug, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		data.TranscriptHTML = template.HTML(buf.String())
	}

	h.render(w, "episode.html", data)
}

func (h *Handlers) GetEditedRedirect(w http.ResponseWriter, r *http.Request) {
	ep, ok := h.findEpisode(w, r)
	if !ok {
		return
	}
	loc := h.locales.FromRequest(r)
	if ep.Number == nil || !h.repo.HasEditedTranscript(*ep.Number, loc) {
		http.Error(w, "Edited transcript not found", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, editedTranscriptURL("", *ep.Number, loc), http.StatusFound)
}

func (h *Handlers) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.listSummaries(r)
	if err != nil {
		log.Printf("Error listing episodes: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, summaries)
}

func (h *Handlers) GetEpisode(w http.ResponseWriter, r *http.Request) {
	ep, ok := h.findEpisode(w, r)
	if !ok {
		return
	}
	loc := h.locales.FromRequest(r)

	d, err := h.detail(ep, loc, h.siteBaseURL(r))
	if err != nil {
		log.Printf("Error loading episode %q: %v", ep.Slug, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, d)
}

func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	episodes, err := h.repo.ListEpisodes()
	if err != nil {
		log.Printf("Error listing episodes: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	baseURL := h.siteBaseURL(r)

	results := []searchResult{}
	for _, res := range search.Episodes(r.URL.Query().Get("q"), episodes, searchLimit) {
		results = append(results, searchResult{
			episodeSummary: summarize(res.Episode, baseURL),
			Distance:       res.Distance,
			Field:          res.Field,
		})
	}
	writeJSON(w, results)
}
