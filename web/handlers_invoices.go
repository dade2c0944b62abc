package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apops/apops/domain/invoice"
)

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.ListInvoices(r.Context(), workspaceID(r), r.URL.Query().Get("month"))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

// GenerateRequest names the billing month for a generation run.
type GenerateRequest struct {
	Month string `json:"month"`
}

// GenerateInvoices runs batch generation for the given month and
// returns what was created and what was skipped, with per-unit reasons.
func (h *Handler) GenerateInvoices(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ws := workspaceID(r)
	result, err := h.svc.GenerateInvoices(r.Context(), ws, req.Month)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.InvoicesGenerated.WithLabelValues(ws, "batch").Add(float64(len(result.Created)))
		for _, skip := range result.Skipped {
			h.metrics.GenerationSkips.WithLabelValues(ws, skip.Reason).Inc()
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.GetInvoice(r.Context(), workspaceID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInvoice(r.Context(), workspaceID(r), chi.URLParam(r, "id")); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.InvoicesDeleted.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetReminder returns the reminder message for an invoice. The kind
// query parameter picks the closing line; it defaults to overdue.
func (h *Handler) GetReminder(w http.ResponseWriter, r *http.Request) {
	kind := invoice.ReminderKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = invoice.ReminderOverdue
	}
	switch kind {
	case invoice.ReminderBeforeDue, invoice.ReminderDueToday, invoice.ReminderOverdue, invoice.ReminderPartial:
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "Unknown reminder kind: "+string(kind))
		return
	}

	text, err := h.svc.Reminder(r.Context(), workspaceID(r), chi.URLParam(r, "id"), kind)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"kind": string(kind), "text": text})
}
