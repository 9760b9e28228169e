package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tradebook/internal/analytics"
	"tradebook/internal/domain/trade"
	svc "tradebook/internal/services/analytics"
	"tradebook/pkg/errors"
	"tradebook/pkg/logger"
)

const (
	userIDHeader = "X-User-ID"
	dateLayout   = "2006-01-02"
)

// AnalyticsService is the part of the analytics service the API depends on
type AnalyticsService interface {
	Dashboard(ctx context.Context, accountID, userID uuid.UUID, f trade.Filter) (*svc.DashboardReport, error)
	Advanced(ctx context.Context, accountID, userID uuid.UUID, f trade.Filter) (*analytics.AdvancedMetrics, error)
	Playbooks(ctx context.Context, accountID, userID uuid.UUID, f trade.Filter) ([]analytics.PlaybookStats, error)
}

type analyticsHandler struct {
	analytics AnalyticsService
	log       *logger.Logger
}

func newAnalyticsHandler(analytics AnalyticsService, log *logger.Logger) *analyticsHandler {
	return &analyticsHandler{analytics: analytics, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *analyticsHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	accountID, userID, filter, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	report, err := h.analytics.Dashboard(r.Context(), accountID, userID, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *analyticsHandler) advanced(w http.ResponseWriter, r *http.Request) {
	accountID, userID, filter, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	metrics, err := h.analytics.Advanced(r.Context(), accountID, userID, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

func (h *analyticsHandler) playbooks(w http.ResponseWriter, r *http.Request) {
	accountID, userID, filter, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.analytics.Playbooks(r.Context(), accountID, userID, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// parseRequest extracts and validates the account ID, user identity, and the
// optional trade filter. On failure it writes the 4xx response itself and
// returns ok=false.
func (h *analyticsHandler) parseRequest(w http.ResponseWriter, r *http.Request) (accountID, userID uuid.UUID, filter trade.Filter, ok bool) {
	accountID, err := uuid.Parse(mux.Vars(r)["accountID"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid account id"})
		return
	}

	userID, err = uuid.Parse(r.Header.Get(userIDHeader))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing or invalid user identity"})
		return
	}

	query := r.URL.Query()
	filter.Symbol = query.Get("symbol")

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid from date, expected YYYY-MM-DD"})
			return
		}
		filter.From = from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid to date, expected YYYY-MM-DD"})
			return
		}
		filter.To = to
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "to date precedes from date"})
		return
	}

	return accountID, userID, filter, true
}

// writeError maps service errors to HTTP responses. Storage faults surface as
// a 502 with a generic body; the underlying error goes to the log only.
func (h *analyticsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *errors.ValidationError

	switch {
	case errors.Is(err, errors.ErrInvalidInput), errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, errors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		h.log.Errorw("failed to compute metrics",
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "unable to load metrics"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
