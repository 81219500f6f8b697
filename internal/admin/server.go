package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"curator/internal/domain"
	"curator/internal/ports"
)

const summaryPreviewLen = 100

// Server exposes the curation trigger surface as a JSON API: create and list
// articles, and process a selection through the enrichment pipeline.
type Server struct {
	store   ports.ArticleStore
	trigger *Trigger
	logger  *slog.Logger
}

// NewServer wires handlers onto the store and bulk trigger.
func NewServer(store ports.ArticleStore, trigger *Trigger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: store, trigger: trigger, logger: logger}
}

// Router builds the chi router for the admin API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api/articles", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Post("/process", s.handleProcess)
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

type articleView struct {
	ID                 string    `json:"id"`
	URL                string    `json:"url"`
	Title              string    `json:"title"`
	SummaryPreview     string    `json:"summary_preview"`
	Summary            string    `json:"summary,omitempty"`
	TranslatedSummary  string    `json:"translated_summary,omitempty"`
	ReadingTimeMinutes *int      `json:"reading_time_minutes"`
	Categories         []string  `json:"categories,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.ListArticles(r.Context())
	if err != nil {
		s.logger.Error("list articles", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	views := make([]articleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, toView(a, false))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(payload.URL) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	article, err := s.store.CreateArticle(r.Context(), strings.TrimSpace(payload.URL), strings.TrimSpace(payload.Title))
	if err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, toView(article, true))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	article, err := s.store.GetArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toView(article, true))
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if len(payload.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "ids is required"})
		return
	}

	result := s.trigger.ProcessByID(r.Context(), payload.IDs)

	statuses := make([]map[string]string, 0, len(result.Reports))
	for _, report := range result.Reports {
		statuses = append(statuses, map[string]string{
			"url":    report.URL,
			"status": report.Message(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"processed": result.Processed,
		"succeeded": result.Succeeded,
		"errors":    result.Errors,
		"message":   result.Message(),
		"statuses":  statuses,
	})
}

func toView(a domain.Article, full bool) articleView {
	v := articleView{
		ID:                 a.ID,
		URL:                a.URL,
		Title:              a.Title,
		SummaryPreview:     previewOf(a.Summary),
		ReadingTimeMinutes: a.ReadingTimeMinutes,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if full {
		v.Summary = a.Summary
		v.TranslatedSummary = a.TranslatedSummary
		for _, cat := range a.Categories {
			v.Categories = append(v.Categories, cat.Name)
		}
	}
	return v
}

func previewOf(summary string) string {
	if summary == "" {
		return "No summary available"
	}
	runes := []rune(summary)
	if len(runes) <= summaryPreviewLen {
		return summary
	}
	return string(runes[:summaryPreviewLen]) + "..."
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
