// Package api exposes the HTTP handlers for studylog.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"example.com/studylog/internal/auth"
	"example.com/studylog/internal/domain"
	"example.com/studylog/internal/observability"
	"example.com/studylog/internal/query"
	"example.com/studylog/internal/view"
)

// Handler coordinates HTTP requests with the domain service and the
// in-memory snapshot the listing engine queries.
type Handler struct {
	service  *domain.Service
	snapshot *view.Snapshot
	logger   *log.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, snapshot *view.Snapshot, opts ...Option) *Handler {
	h := &Handler{
		service:  service,
		snapshot: snapshot,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/activities", h.activities)
	mux.HandleFunc("/v1/activities/", h.activitySubresource)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createActivity(w, r)
	case http.MethodGet:
		h.listActivities(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) activitySubresource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/activities/")
	parts := strings.SplitN(rest, "/", 2)
	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid activity id")
		return
	}

	sub := ""
	if len(parts) == 2 {
		sub = parts[1]
	}

	switch {
	case sub == "detail" && r.Method == http.MethodGet:
		h.activityDetail(w, r, id)
	case sub == "results" && r.Method == http.MethodPost:
		h.addResult(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown resource")
	}
}

// listActivities runs the query engine over the current snapshot. Query
// parameters map onto the engine's control surface: type/area select filter
// dimensions, q is the free-text search, sort+dir pick the ordering, and
// variant=compact switches to the reduced listing configuration.
func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeActivitiesRead) && !claims.HasScope(auth.ScopeActivitiesWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope activities:read required")
		return
	}

	params := r.URL.Query()
	variant := params.Get("variant")

	opts := query.DefaultOptions()
	if variant == "compact" {
		opts = query.CompactOptions()
	} else {
		variant = "default"
	}

	session := query.NewView(opts)
	session.Replace(h.snapshot.Records())
	session.SetFilter(domain.FieldType, params.Get("type"))
	session.SetFilter(domain.FieldArea, params.Get("area"))
	session.SetSearchQuery(params.Get("q"))

	if field := params.Get("sort"); field != "" {
		session.ToggleSort(field)
		if params.Get("dir") == string(query.Descending) {
			session.ToggleSort(field)
		}
	}

	results := session.Results()
	items := make([]ActivityView, 0, len(results))
	for _, record := range results {
		items = append(items, toActivityView(record))
	}

	resp := ListActivitiesResponse{
		Items:    items,
		Filtered: len(items),
		Total:    session.Total(),
		Sort: SortView{
			Field:     session.Sort().Field,
			Direction: string(session.Sort().Direction),
		},
		Filters: FilterOptionsView{
			Types: session.FilterValues(domain.FieldType),
		},
	}
	if variant != "compact" {
		resp.Filters.Areas = session.FilterValues(domain.FieldArea)
	}

	observability.RecordListingQuery(variant)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) activityDetail(w http.ResponseWriter, r *http.Request, id int) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeActivitiesRead) && !claims.HasScope(auth.ScopeActivitiesWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope activities:read required")
		return
	}

	activity, err := h.service.GetActivity(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "activity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	detail := query.AggregateDetail(*activity)
	writeJSON(w, http.StatusOK, toDetailViewResponse(detail))
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeActivitiesWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope activities:write required")
		return
	}

	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	activity, err := h.service.CreateActivity(r.Context(), domain.CreateActivityInput{
		Title:   req.Title,
		Type:    req.Type,
		Elapsed: req.Elapsed,
		Comment: req.Comment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		if errors.Is(err, domain.ErrReadOnly) {
			writeError(w, http.StatusServiceUnavailable, "read_only", "the configured source does not accept writes")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	// Best-effort immediate refresh so the record shows up without waiting
	// for the event round trip.
	if err := h.snapshot.Refresh(r.Context()); err != nil {
		h.logger.Printf("post-create refresh failed: %v", err)
	}

	writeJSON(w, http.StatusCreated, CreateActivityResponse{
		ActivityID: activity.ID,
		IncludedAt: activity.IncludedAt,
	})
}

func (h *Handler) addResult(w http.ResponseWriter, r *http.Request, id int) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeActivitiesWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope activities:write required")
		return
	}

	var req AddResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	entry, err := h.service.AddResult(r.Context(), id, domain.AddResultInput{
		Area:       req.Area,
		Subject:    req.Subject,
		Topic:      req.Topic,
		Questions:  req.Questions,
		Correct:    req.Correct,
		Elapsed:    req.Elapsed,
		Comment:    req.Comment,
		ExecutedAt: req.ExecutedAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "activity not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		if errors.Is(err, domain.ErrReadOnly) {
			writeError(w, http.StatusServiceUnavailable, "read_only", "the configured source does not accept writes")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	if err := h.snapshot.Refresh(r.Context()); err != nil {
		h.logger.Printf("post-result refresh failed: %v", err)
	}

	percent := domain.ComputePercent(entry.Correct, entry.Questions)
	writeJSON(w, http.StatusCreated, AddResultResponse{
		ActivityID: id,
		Area:       entry.Area,
		Percentage: percentValue(percent),
		Band:       string(percent.Band()),
	})
}
