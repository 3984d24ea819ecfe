package ledgerhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pact/internal/domain/audit"
	"pact/internal/domain/auth"
	"pact/internal/domain/ledger"
	"pact/internal/transport/http/api"
	"pact/internal/transport/http/middleware"
	"pact/internal/transport/http/shared"
)

type Handler struct {
	Service *ledger.Service
	Audit   *audit.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *ledger.Service, auditSvc *audit.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/ledger", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLedgerRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLedgerWrite, h.Perms)).Post("/", h.handleAppend)
		r.With(middleware.RequirePermission(auth.PermLedgerDelete, h.Perms)).Delete("/{entryID}", h.handleDelete)
	})
}

type appendRequest struct {
	EmployeeID  string  `json:"employeeId"`
	MetricKey   string  `json:"metricKey"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	PeriodStart string  `json:"periodStart"`
	PeriodEnd   string  `json:"periodEnd"`
	SourceType  string  `json:"sourceType"`
}

func (h *Handler) handleAppend(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload appendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("metricKey", payload.MetricKey, "metric key is required")
	v.Enum("sourceType", payload.SourceType,
		[]string{ledger.SourceManualAdmin, ledger.SourceSelfReport, ledger.SourceSystemIntegration},
		"must be one of manual_admin, self_report, system_integration")
	periodStart, _ := v.Date("periodStart", payload.PeriodStart)
	periodEnd, _ := v.Date("periodEnd", payload.PeriodEnd)
	v.DateOrder("periodStart", periodStart, "periodEnd", periodEnd)
	if v.Reject(w, requestID) {
		return
	}

	sourceType := payload.SourceType
	if sourceType == "" {
		sourceType = ledger.SourceManualAdmin
	}
	entry, err := h.Service.Append(r.Context(), ledger.Entry{
		EmployeeID:  payload.EmployeeID,
		MetricKey:   payload.MetricKey,
		Value:       payload.Value,
		Unit:        payload.Unit,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		SourceType:  sourceType,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidEntry) {
			api.Fail(w, http.StatusBadRequest, "invalid_entry", err.Error(), requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "ledger_append_failed", "failed to append ledger entry", requestID)
		return
	}
	api.Created(w, entry, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	page := shared.ParsePagination(r, 50, 200)
	filter := ledger.ListFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		MetricKey:  r.URL.Query().Get("metricKey"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if from, err := shared.ParseDate(r.URL.Query().Get("from")); err == nil {
		filter.From = from
	}
	if to, err := shared.ParseDate(r.URL.Query().Get("to")); err == nil {
		filter.To = to
	}

	entries, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "ledger_list_failed", "failed to list ledger entries", requestID)
		return
	}
	api.Success(w, entries, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	deleted, err := h.Service.Delete(r.Context(), chi.URLParam(r, "entryID"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "entry_not_found", "ledger entry not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "ledger_delete_failed", "failed to delete ledger entry", requestID)
		return
	}

	if user, ok := middleware.GetUser(r.Context()); ok {
		if err := h.Audit.Record(r.Context(), user.UserID, "ledger.delete", "ledger_entry", deleted.ID, requestID, r.RemoteAddr, deleted, nil); err != nil {
			slog.Warn("audit record failed", "err", err)
		}
	}
	api.Success(w, deleted, requestID)
}
