package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"inaudible/internal/content"
	"inaudible/internal/feed"
	"inaudible/internal/locale"
	"inaudible/internal/models"
	"inaudible/web"
)

// Repository is the read side of the content tree used by the handlers.
type Repository interface {
	ListEpisodes() ([]models.Episode, error)
	FindBySlug(slug string) (models.Episode, bool, error)
	ResolveTranscript(number int, loc string) (content.Transcript, error)
	Locales(number int) ([]string, error)
	HasEditedTranscript(number int, loc string) bool
	GetEditedHTML(number int, loc string) (string, bool, error)
}

// Site is the static information shown on every page and in the feed.
type Site struct {
	Title       string
	Description string
	Author      string
}

type Handlers struct {
	repo      Repository
	templates *template.Template
	locales   *locale.Negotiator
	site      Site
	baseURL   string
}

func New(repo Repository, templates *template.Template, locales *locale.Negotiator, site Site, baseURL string) *Handlers {
	return &Handlers{
		repo:      repo,
		templates: templates,
		locales:   locales,
		site:      site,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// ParseTemplates loads the embedded page templates.
func ParseTemplates() (*template.Template, error) {
	return web.Templates(template.FuncMap{
		"join": strings.Join,
	})
}

// Router wires every route. Middlewares run in the order given.
func (h *Handlers) Router(middlewares ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(middlewares...)

	r.HandleFunc("/", h.GetIndex).Methods(http.MethodGet)
	r.HandleFunc("/episodes/{slug}", h.GetEpisodePage).Methods(http.MethodGet)
	r.HandleFunc("/episodes/{slug}/edited", h.GetEditedRedirect).Methods(http.MethodGet)
	r.HandleFunc("/feed.xml", h.GetRSSFeed).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.GetHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/episodes", h.ListEpisodes).Methods(http.MethodGet)
	api.HandleFunc("/episodes/{slug}", h.GetEpisode).Methods(http.MethodGet)
	api.HandleFunc("/transcript", h.GetEditedTranscript).Methods(http.MethodGet)
	api.HandleFunc("/search", h.Search).Methods(http.MethodGet)

	return r
}

func (h *Handlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (h *Handlers) siteBaseURL(r *http.Request) string {
	return feed.BaseURL(h.baseURL, r)
}

func (h *Handlers) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("Error executing template %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
