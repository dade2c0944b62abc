package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apops/apops/domain/maintenance"
	"github.com/apops/apops/domain/settings"
	"github.com/apops/apops/domain/workspace"
)

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.svc.ListTickets(r.Context(), workspaceID(r))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tickets": tickets})
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var t maintenance.Ticket
	if !decodeBody(w, r, &t) {
		return
	}
	created, err := h.svc.CreateTicket(r.Context(), workspaceID(r), t)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	var t maintenance.Ticket
	if !decodeBody(w, r, &t) {
		return
	}
	t.ID = chi.URLParam(r, "id")
	updated, err := h.svc.UpdateTicket(r.Context(), workspaceID(r), t)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTicket(r.Context(), workspaceID(r), chi.URLParam(r, "id")); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.GetSettings(r.Context(), workspaceID(r))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s settings.Settings
	if !decodeBody(w, r, &s) {
		return
	}
	if err := h.svc.UpdateSettings(r.Context(), workspaceID(r), s); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ExportBackup returns the full workspace snapshot as JSON.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.svc.Export(r.Context(), workspaceID(r))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// ImportBackup replaces the workspace with an uploaded snapshot.
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	var snapshot workspace.State
	if !decodeBody(w, r, &snapshot) {
		return
	}
	if err := h.svc.Import(r.Context(), workspaceID(r), snapshot); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}
