package employeeshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pact/internal/domain/audit"
	"pact/internal/domain/auth"
	"pact/internal/domain/contract"
	"pact/internal/domain/employee"
	"pact/internal/transport/http/api"
	"pact/internal/transport/http/middleware"
)

type Handler struct {
	Service *employee.Service
	Audit   *audit.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *employee.Service, auditSvc *audit.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.List(r.Context(), r.URL.Query().Get("state"))
	if err != nil {
		if errors.Is(err, employee.ErrInvalidEmployee) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", err.Error(), requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	created, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrInvalidEmployee):
			api.Fail(w, http.StatusBadRequest, "invalid_employee", err.Error(), requestID)
		case errors.Is(err, contract.ErrNotFound):
			api.Fail(w, http.StatusBadRequest, "contract_not_found", "role config does not exist", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", requestID)
		}
		return
	}

	if user, ok := middleware.GetUser(r.Context()); ok {
		if err := h.Audit.Record(r.Context(), user.UserID, "employee.create", "employee", created.ID, requestID, r.RemoteAddr, nil, created); err != nil {
			slog.Warn("audit record failed", "err", err)
		}
	}
	api.Created(w, created, requestID)
}
