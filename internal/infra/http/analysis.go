package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"follow-analyzer/internal/domain"
	"follow-analyzer/internal/usecase/analysis"
	"follow-analyzer/internal/usecase/report"
)

const (
	fieldFollowers = "followers"
	fieldFollowing = "following"
)

// AnalysisHandler обслуживает загрузку выгрузок и выборки из сессий анализа.
type AnalysisHandler struct {
	reports   domain.ReportService
	maxUpload int64
	clock     domain.Clock
	log       zerolog.Logger
}

// NewAnalysisHandler создаёт обработчик. maxUpload ограничивает размер тела загрузки.
func NewAnalysisHandler(reports domain.ReportService, maxUpload int64, clock domain.Clock, logger zerolog.Logger) *AnalysisHandler {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &AnalysisHandler{reports: reports, maxUpload: maxUpload, clock: clock, log: logger}
}

// Mount регистрирует маршруты /api/v1/analyses.
func (h *AnalysisHandler) Mount(r chi.Router) {
	r.Route("/api/v1/analyses", func(r chi.Router) {
		r.Post("/", h.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Get("/summary", h.summary)
			r.Get("/lists/{list}", h.list)
			r.Get("/search", h.search)
			r.Get("/export/{list}", h.export)
		})
	})
}

type analysisResponse struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"createdAt"`
	Stats     domain.DetailedStats `json:"stats"`
	Summary   domain.Summary       `json:"summary"`
	Warnings  []string             `json:"warnings,omitempty"`
}

func newAnalysisResponse(rep domain.Report) analysisResponse {
	return analysisResponse{
		ID:        rep.ID,
		CreatedAt: rep.CreatedAt,
		Stats:     analysis.DetailedStats(rep.Analysis),
		Summary:   analysis.Summarize(rep.Analysis),
		Warnings:  rep.Warnings,
	}
}

func (h *AnalysisHandler) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", h.maxUpload))
			return
		}
		writeError(w, http.StatusBadRequest, "expected multipart form with followers and following files")
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	followersHTML, err := formFile(r, fieldFollowers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	followingHTML, err := formFile(r, fieldFollowing)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.reports.AnalyzeDocuments(r.Context(), followersHTML, followingHTML)
	if err != nil {
		h.log.Error().Err(err).Msg("api: analyze export files")
		writeError(w, http.StatusInternalServerError, "failed to analyze export files")
		return
	}
	writeJSON(w, http.StatusCreated, newAnalysisResponse(rep))
}

func (h *AnalysisHandler) get(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAnalysisResponse(rep))
}

func (h *AnalysisHandler) summary(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis.Summarize(rep.Analysis))
}

func (h *AnalysisHandler) list(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := h.reports.Query(r.Context(), chi.URLParam(r, "id"), q)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": records, "total": len(records)})
}

func (h *AnalysisHandler) search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		writeError(w, http.StatusBadRequest, "missing required parameter: q")
		return
	}
	results, err := h.reports.Search(r.Context(), chi.URLParam(r, "id"), term)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results, "total": len(results)})
}

func (h *AnalysisHandler) export(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	exp, err := h.reports.Export(r.Context(), chi.URLParam(r, "id"), q, h.clock.Now())
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(exp.Data); err != nil {
		h.log.Error().Err(err).Msg("api: write export")
	}
}

func (h *AnalysisHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, report.ErrAnalysisNotFound):
		writeError(w, http.StatusNotFound, "analysis not found or expired")
	case errors.Is(err, domain.ErrUnknownListType):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("api: analysis request")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseQuery собирает domain.Query из пути и параметров запроса.
func parseQuery(r *http.Request) (domain.Query, error) {
	list, err := domain.ParseListType(chi.URLParam(r, "list"))
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid list: %s (must be one of: followers, following, mutual, not_following_back, followers_not_following_back)", chi.URLParam(r, "list"))
	}
	params := r.URL.Query()

	key, err := domain.ParseSortKey(params.Get("sort"), domain.SortByDate)
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid sort: %s (must be one of: username, date)", params.Get("sort"))
	}
	order, err := domain.ParseSortOrder(params.Get("order"), domain.OrderDesc)
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid order: %s (must be one of: asc, desc)", params.Get("order"))
	}
	from, err := parseDateParam(params.Get("from"), false)
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid from: %w", err)
	}
	to, err := parseDateParam(params.Get("to"), true)
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid to: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return domain.Query{}, errors.New("invalid range: to is before from")
	}

	return domain.Query{
		List:     list,
		Criteria: domain.Criteria{Search: params.Get("search"), From: from, To: to},
		SortKey:  key,
		Order:    order,
	}, nil
}

// parseDateParam принимает 2006-01-02 или RFC3339. Для даты без времени
// endOfDay сдвигает границу на конец суток.
func parseDateParam(raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s (expected 2006-01-02 or RFC3339)", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func formFile(r *http.Request, field string) (string, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("missing required file: %s", field)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %s", field)
	}
	return string(data), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
