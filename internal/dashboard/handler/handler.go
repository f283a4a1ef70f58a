// Package handler exposes the dashboard API over HTTP. It stays thin:
// parsing, validation, and error translation live here, everything else is
// delegated to the domain services.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pulseboard/internal/airtable"
	"pulseboard/internal/automation"
	"pulseboard/internal/dashboard"
	"pulseboard/internal/platform/middleware"
	dErrors "pulseboard/pkg/domain-errors"
	"pulseboard/pkg/platform/httputil"
)

// StatisticsService assembles the dashboard statistics document.
type StatisticsService interface {
	GetStatistics(ctx context.Context, forceRefresh bool) (*dashboard.Document, error)
}

// TableFetcher serves raw table queries.
type TableFetcher interface {
	FetchTable(ctx context.Context, table string, opts airtable.Options) ([]airtable.Record, error)
}

// AutomationTrigger starts workflow runs on the automation platform.
type AutomationTrigger interface {
	TriggerResubmission(ctx context.Context, payload map[string]any) automation.Result
	TriggerAudit(ctx context.Context) automation.Result
}

// Handler handles the dashboard API endpoints.
type Handler struct {
	logger     *slog.Logger
	stats      StatisticsService
	tables     TableFetcher
	automation AutomationTrigger
}

// New creates a dashboard API Handler.
func New(stats StatisticsService, tables TableFetcher, auto AutomationTrigger, logger *slog.Logger) *Handler {
	return &Handler{
		logger:     logger,
		stats:      stats,
		tables:     tables,
		automation: auto,
	}
}

// Register registers the API routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/statistics", h.handleGetStatistics)
	r.Get("/api/tables/{table}", h.handleGetTable)
	r.Post("/api/actions", h.handlePostAction)
}

func (h *Handler) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refresh := r.URL.Query().Get("refresh")
	force := refresh == "true" || refresh == "1"

	doc, err := h.stats.GetStatistics(ctx, force)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to assemble statistics",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, doc)
}

// tableResponse wraps raw table queries with a record count.
type tableResponse struct {
	Records []airtable.Record `json:"records"`
	Count   int               `json:"count"`
}

func (h *Handler) handleGetTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	table := chi.URLParam(r, "table")

	opts, err := parseTableOptions(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid table query",
			"request_id", middleware.GetRequestID(ctx),
			"table", table,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	records, err := h.tables.FetchTable(ctx, table, opts)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch table",
			"request_id", middleware.GetRequestID(ctx),
			"table", table,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tableResponse{Records: records, Count: len(records)})
}

// parseTableOptions translates the query string into fetch options.
// fields is comma-separated, sort is comma-separated field:direction pairs.
func parseTableOptions(r *http.Request) (airtable.Options, error) {
	q := r.URL.Query()
	opts := airtable.Options{
		FilterByFormula: q.Get("filterByFormula"),
		View:            q.Get("view"),
	}

	if raw := q.Get("fields"); raw != "" {
		opts.Fields = strings.Split(raw, ",")
	}

	if raw := q.Get("maxRecords"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return airtable.Options{}, dErrors.New(dErrors.CodeValidation,
				"maxRecords must be a non-negative integer")
		}
		opts.MaxRecords = n
	}

	if raw := q.Get("sort"); raw != "" {
		for _, pair := range strings.Split(raw, ",") {
			field, direction, _ := strings.Cut(strings.TrimSpace(pair), ":")
			if field == "" {
				return airtable.Options{}, dErrors.New(dErrors.CodeValidation,
					"sort entries must be field or field:direction")
			}
			if direction != "" && direction != "asc" && direction != "desc" {
				return airtable.Options{}, dErrors.New(dErrors.CodeValidation,
					"sort direction must be asc or desc")
			}
			opts.Sort = append(opts.Sort, airtable.SortSpec{Field: field, Direction: direction})
		}
	}

	return opts, nil
}

// actionRequest is the trigger envelope accepted by POST /api/actions.
type actionRequest struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
}

func (h *Handler) handlePostAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeJSON[actionRequest](w, r, h.logger)
	if !ok {
		return
	}

	var result automation.Result
	switch req.Action {
	case "resubmit":
		if len(req.Payload) == 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation,
				"resubmit requires a non-empty payload"))
			return
		}
		result = h.automation.TriggerResubmission(ctx, req.Payload)
	case "audit":
		result = h.automation.TriggerAudit(ctx)
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation,
			"action must be one of: resubmit, audit"))
		return
	}

	status := http.StatusOK
	if !result.Success {
		h.logger.WarnContext(ctx, "automation action failed",
			"request_id", middleware.GetRequestID(ctx),
			"action", req.Action,
			"message", result.Message,
		)
		status = http.StatusBadGateway
	}
	httputil.WriteJSON(w, status, result)
}
