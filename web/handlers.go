package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apops/apops/domain/tenant"
	"github.com/apops/apops/domain/unit"
)

// GetSummary returns the workspace dashboard counters.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), workspaceID(r))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.svc.ListUnits(r.Context(), workspaceID(r))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"units": units})
}

func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var u unit.Unit
	if !decodeBody(w, r, &u) {
		return
	}
	created, err := h.svc.CreateUnit(r.Context(), workspaceID(r), u)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	var u unit.Unit
	if !decodeBody(w, r, &u) {
		return
	}
	u.ID = chi.URLParam(r, "id")
	updated, err := h.svc.UpdateUnit(r.Context(), workspaceID(r), u)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteUnit(r.Context(), workspaceID(r), chi.URLParam(r, "id")); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.svc.ListTenants(r.Context(), workspaceID(r))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tenants": tenants})
}

func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var t tenant.Tenant
	if !decodeBody(w, r, &t) {
		return
	}
	created, err := h.svc.CreateTenant(r.Context(), workspaceID(r), t)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var t tenant.Tenant
	if !decodeBody(w, r, &t) {
		return
	}
	t.ID = chi.URLParam(r, "id")
	updated, err := h.svc.UpdateTenant(r.Context(), workspaceID(r), t)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTenant(r.Context(), workspaceID(r), chi.URLParam(r, "id")); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
