package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apops/apops/domain/meter"
)

func (h *Handler) ListReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := h.svc.ListReadings(r.Context(), workspaceID(r), r.URL.Query().Get("month"))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"readings": readings})
}

func (h *Handler) CreateReading(w http.ResponseWriter, r *http.Request) {
	var rd meter.Reading
	if !decodeBody(w, r, &rd) {
		return
	}
	created, err := h.svc.CreateReading(r.Context(), workspaceID(r), rd)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateReading(w http.ResponseWriter, r *http.Request) {
	var rd meter.Reading
	if !decodeBody(w, r, &rd) {
		return
	}
	rd.ID = chi.URLParam(r, "id")
	updated, err := h.svc.UpdateReading(r.Context(), workspaceID(r), rd)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteReading(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteReading(r.Context(), workspaceID(r), chi.URLParam(r, "id")); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
