package evaluationshandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pact/internal/domain/audit"
	"pact/internal/domain/auth"
	"pact/internal/domain/employee"
	"pact/internal/domain/evaluation"
	"pact/internal/domain/tracker"
	"pact/internal/platform/config"
	"pact/internal/platform/jobs"
	"pact/internal/platform/metrics"
	"pact/internal/transport/http/api"
	"pact/internal/transport/http/middleware"
	"pact/internal/transport/http/shared"
)

type Handler struct {
	Tracker   *tracker.Service
	Jobs      *jobs.Service
	Audit     *audit.Service
	Collector *metrics.Collector
	Cfg       config.Config
	Perms     middleware.PermissionStore
}

func NewHandler(trackerSvc *tracker.Service, jobsSvc *jobs.Service, auditSvc *audit.Service,
	collector *metrics.Collector, cfg config.Config, perms middleware.PermissionStore) *Handler {
	return &Handler{
		Tracker:   trackerSvc,
		Jobs:      jobsSvc,
		Audit:     auditSvc,
		Collector: collector,
		Cfg:       cfg,
		Perms:     perms,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermEvaluateRun, h.Perms)).
		Post("/employees/{employeeID}/evaluate", h.handleEvaluate)
	r.With(middleware.RequirePermission(auth.PermEvaluateRun, h.Perms)).
		Post("/evaluations/run", h.handleRunAll)
	r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).
		Get("/transitions", h.handleTransitions)
	r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).
		Get("/employees/{employeeID}/transitions", h.handleEmployeeTransitions)
}

// handleEvaluate runs one on-demand evaluation. An explicit asOf query
// parameter reproduces a past run against the same ledger view.
func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil || parsed.IsZero() {
			api.Fail(w, http.StatusBadRequest, "invalid_as_of", "asOf must be RFC3339 or YYYY-MM-DD", requestID)
			return
		}
		asOf = parsed
	}

	outcome, err := h.Tracker.Evaluate(r.Context(), employeeID, asOf)
	if h.Collector != nil {
		h.Collector.RecordEvaluation(err != nil, err == nil && outcome.Transitioned,
			err == nil && outcome.ToState == evaluation.StateExit)
	}
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		case errors.Is(err, tracker.ErrInvalidState):
			api.Fail(w, http.StatusConflict, "employee_exited", "employee tracking has terminated", requestID)
		case errors.Is(err, tracker.ErrConcurrentEvaluation):
			api.Fail(w, http.StatusConflict, "concurrent_evaluation", "another evaluation committed first", requestID)
		case errors.Is(err, evaluation.ErrConfiguration):
			api.Fail(w, http.StatusUnprocessableEntity, "invalid_configuration", err.Error(), requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "evaluation_failed", "evaluation failed", requestID)
		}
		return
	}

	if user, ok := middleware.GetUser(r.Context()); ok {
		if err := h.Audit.Record(r.Context(), user.UserID, "evaluation.run", "employee", employeeID, requestID, r.RemoteAddr, nil, outcome); err != nil {
			slog.Warn("audit record failed", "err", err)
		}
	}
	api.Success(w, outcome, requestID)
}

func (h *Handler) handleRunAll(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	result, err := h.Jobs.RunNow(r.Context(), jobs.JobEvaluationSweep, func(ctx context.Context) (any, error) {
		return h.Tracker.EvaluateAll(ctx, time.Now().UTC(), h.Cfg.EvaluationConcurrency)
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_sweep_failed", "evaluation sweep failed", requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleTransitions(w http.ResponseWriter, r *http.Request) {
	h.listTransitions(w, r, r.URL.Query().Get("employeeId"))
}

func (h *Handler) handleEmployeeTransitions(w http.ResponseWriter, r *http.Request) {
	h.listTransitions(w, r, chi.URLParam(r, "employeeID"))
}

func (h *Handler) listTransitions(w http.ResponseWriter, r *http.Request, employeeID string) {
	requestID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	transitions, err := h.Tracker.Transitions(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "transitions_list_failed", "failed to list transitions", requestID)
		return
	}
	api.Success(w, transitions, requestID)
}
