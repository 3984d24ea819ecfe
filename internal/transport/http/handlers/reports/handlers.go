package reportshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"pact/internal/domain/audit"
	"pact/internal/domain/auth"
	"pact/internal/domain/report"
	"pact/internal/transport/http/api"
	"pact/internal/transport/http/middleware"
	"pact/internal/transport/http/shared"
)

type Handler struct {
	Service *report.Service
	Audit   *audit.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *report.Service, auditSvc *audit.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/{reportID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermReportsWrite, h.Perms)).Post("/generate", h.handleGenerate)
		r.With(middleware.RequirePermission(auth.PermReportsFinalize, h.Perms)).Post("/{reportID}/finalize", h.handleFinalize)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/{reportID}/pdf", h.handlePDF)
	})
}

type generateRequest struct {
	EmployeeID  string         `json:"employeeId"`
	Type        string         `json:"type"`
	PeriodStart string         `json:"periodStart"`
	PeriodEnd   string         `json:"periodEnd"`
	Content     report.Content `json:"content"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Enum("type", payload.Type,
		[]string{report.TypeSalaryAdjustment, report.TypeRoleContinuation, report.TypePactReport},
		"must be one of salary_adjustment, role_continuation, pact_report")
	v.Required("type", payload.Type, "report type is required")
	periodStart, _ := v.Date("periodStart", payload.PeriodStart)
	periodEnd, _ := v.Date("periodEnd", payload.PeriodEnd)
	v.DateOrder("periodStart", periodStart, "periodEnd", periodEnd)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.Create(r.Context(), report.Report{
		EmployeeID:  payload.EmployeeID,
		Type:        payload.Type,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Content:     payload.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, report.ErrOverlappingReport):
			api.Fail(w, http.StatusConflict, "report_overlap", "a report of this type already covers part of the period", requestID)
		case errors.Is(err, report.ErrInvalidReport):
			api.Fail(w, http.StatusBadRequest, "invalid_report", err.Error(), requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "report_create_failed", "failed to generate report", requestID)
		}
		return
	}

	if user, ok := middleware.GetUser(r.Context()); ok {
		if err := h.Audit.Record(r.Context(), user.UserID, "report.generate", "report", created.ID, requestID, r.RemoteAddr, nil, created); err != nil {
			slog.Warn("audit record failed", "err", err)
		}
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	reports, err := h.Service.List(r.Context(),
		r.URL.Query().Get("employeeId"),
		r.URL.Query().Get("type"),
		r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "reports_list_failed", "failed to list reports", requestID)
		return
	}
	api.Success(w, reports, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	rep, err := h.Service.Get(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "report_not_found", "report not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_get_failed", "failed to load report", requestID)
		return
	}
	api.Success(w, rep, requestID)
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	reportID := chi.URLParam(r, "reportID")

	finalized, err := h.Service.Finalize(r.Context(), reportID)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "report_not_found", "report not found", requestID)
		case errors.Is(err, report.ErrAlreadyFinalized):
			api.Fail(w, http.StatusConflict, "report_finalized", "report is already finalized", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "report_finalize_failed", "failed to finalize report", requestID)
		}
		return
	}

	if user, ok := middleware.GetUser(r.Context()); ok {
		if err := h.Audit.Record(r.Context(), user.UserID, "report.finalize", "report", reportID, requestID, r.RemoteAddr, nil, finalized); err != nil {
			slog.Warn("audit record failed", "err", err)
		}
	}
	api.Success(w, finalized, requestID)
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	reportID := chi.URLParam(r, "reportID")

	rep, err := h.Service.Get(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "report_not_found", "report not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_get_failed", "failed to load report", requestID)
		return
	}

	if rep.FileURL == "" {
		if _, err := h.Service.GeneratePDF(r.Context(), reportID); err != nil {
			api.Fail(w, http.StatusInternalServerError, "report_pdf_failed", "failed to render report pdf", requestID)
			return
		}
	}

	data, err := h.Service.ReadPDF(r.Context(), reportID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_pdf_failed", "failed to read report pdf", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(reportID)+".pdf")
	if _, err := w.Write(data); err != nil {
		slog.Warn("report pdf write failed", "err", err)
	}
}
