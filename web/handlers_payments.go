package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apops/apops/app"
	"github.com/apops/apops/domain/payment"
)

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.ListPayments(r.Context(), workspaceID(r))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payments": payments})
}

// RecordPayment applies a collected amount against an invoice.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var in app.PaymentInput
	if !decodeBody(w, r, &in) {
		return
	}
	ws := workspaceID(r)
	result, err := h.svc.RecordPayment(r.Context(), ws, in)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.PaymentsRecorded.WithLabelValues(ws, string(result.Payment.Method)).Inc()
		if result.Surplus > 0 {
			h.metrics.CreditSurplus.Inc()
		}
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePayment(r.Context(), workspaceID(r), chi.URLParam(r, "id")); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.PaymentsDeleted.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ApplyCredit settles part of an invoice from the tenant's credit balance.
func (h *Handler) ApplyCredit(w http.ResponseWriter, r *http.Request) {
	ws := workspaceID(r)
	entry, err := h.svc.ApplyCredit(r.Context(), ws, chi.URLParam(r, "id"))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CreditApplied.Inc()
		h.metrics.PaymentsRecorded.WithLabelValues(ws, string(entry.Method)).Inc()
	}
	writeJSON(w, http.StatusCreated, entry)
}

// TopUpRequest adds money to a tenant's credit balance.
type TopUpRequest struct {
	Amount int64          `json:"amount"`
	Method payment.Method `json:"method"`
	Note   string         `json:"note"`
}

func (h *Handler) TopUpCredit(w http.ResponseWriter, r *http.Request) {
	var req TopUpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ws := workspaceID(r)
	entry, err := h.svc.TopUpCredit(r.Context(), ws, chi.URLParam(r, "id"), req.Amount, req.Method, req.Note)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.PaymentsRecorded.WithLabelValues(ws, string(entry.Method)).Inc()
	}
	writeJSON(w, http.StatusCreated, entry)
}
