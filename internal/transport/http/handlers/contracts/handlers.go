package contractshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pact/internal/domain/audit"
	"pact/internal/domain/auth"
	"pact/internal/domain/contract"
	"pact/internal/domain/evaluation"
	"pact/internal/transport/http/api"
	"pact/internal/transport/http/middleware"
)

type Handler struct {
	Service *contract.Service
	Audit   *audit.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *contract.Service, auditSvc *audit.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/contracts", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermContractsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermContractsRead, h.Perms)).Get("/{contractID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermContractsWrite, h.Perms)).Post("/", h.handleCreate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	configs, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contracts_list_failed", "failed to list role configs", requestID)
		return
	}
	api.Success(w, configs, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cfg, err := h.Service.Get(r.Context(), chi.URLParam(r, "contractID"))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "contract_not_found", "role config not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "contract_get_failed", "failed to load role config", requestID)
		return
	}
	api.Success(w, cfg, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload contract.RoleConfig
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	created, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		if errors.Is(err, evaluation.ErrConfiguration) {
			api.Fail(w, http.StatusBadRequest, "invalid_configuration", err.Error(), requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "contract_create_failed", "failed to create role config", requestID)
		return
	}

	if user, ok := middleware.GetUser(r.Context()); ok {
		if err := h.Audit.Record(r.Context(), user.UserID, "contract.create", "role_config", created.ID, requestID, r.RemoteAddr, nil, created); err != nil {
			slog.Warn("audit record failed", "err", err)
		}
	}
	api.Created(w, created, requestID)
}
