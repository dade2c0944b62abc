package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apops/apops/app"
	"github.com/apops/apops/domain/lease"
)

func (h *Handler) ListLeases(w http.ResponseWriter, r *http.Request) {
	leases, err := h.svc.ListLeases(r.Context(), workspaceID(r))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leases": leases})
}

// SignLease creates a lease and, when requested, the move-in invoice.
func (h *Handler) SignLease(w http.ResponseWriter, r *http.Request) {
	var in app.SignLeaseInput
	if !decodeBody(w, r, &in) {
		return
	}
	ws := workspaceID(r)
	result, err := h.svc.SignLease(r.Context(), ws, in)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	if h.metrics != nil && result.Invoice != nil {
		h.metrics.InvoicesGenerated.WithLabelValues(ws, "signing").Inc()
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) UpdateLease(w http.ResponseWriter, r *http.Request) {
	var l lease.Lease
	if !decodeBody(w, r, &l) {
		return
	}
	l.ID = chi.URLParam(r, "id")
	updated, err := h.svc.UpdateLease(r.Context(), workspaceID(r), l)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) EndLease(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.EndLease(r.Context(), workspaceID(r), chi.URLParam(r, "id")); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

func (h *Handler) DeleteLease(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteLease(r.Context(), workspaceID(r), chi.URLParam(r, "id")); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
