package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/invotrack/invotrack/internal/auth"
	"github.com/invotrack/invotrack/internal/httpapi/respond"
	"github.com/invotrack/invotrack/internal/middleware"
	"github.com/invotrack/invotrack/internal/models"
	"github.com/invotrack/invotrack/internal/storage"
)

// InvoiceHandler serves invoice CRUD for the authenticated user.
// Every operation is scoped to the user id established by the auth
// middleware; no handler ever queries outside that scope.
type InvoiceHandler struct {
	store  storage.Store
	logger *slog.Logger
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(store storage.Store, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	invoices, err := h.store.ListInvoices(r.Context(), userID)
	if err != nil {
		storeError(w, h.logger, "list invoices", "invoice", err)
		return
	}

	respond.JSON(w, http.StatusOK, invoices)
}

// Create handles POST /invoices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDateField(req.Date)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	invoice, err := h.store.CreateInvoice(r.Context(), userID, req.Number, *req.Amount, date)
	if err != nil {
		storeError(w, h.logger, "create invoice", "invoice", err)
		return
	}

	h.logger.Info("invoice created", "invoice_id", invoice.ID, "user_id", userID)
	respond.JSON(w, http.StatusCreated, invoice)
}

// Get handles GET /invoices/{id}.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, invoiceID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	invoice, err := h.store.GetInvoice(r.Context(), userID, invoiceID)
	if err != nil {
		storeError(w, h.logger, "get invoice", "invoice", err)
		return
	}

	respond.JSON(w, http.StatusOK, invoice)
}

// Update handles PUT /invoices/{id}. Only fields present in the body are
// modified; ownership and invoice number never change.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, invoiceID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	upd := storage.InvoiceUpdate{Amount: req.Amount}
	if req.Date != nil {
		date, err := models.ParseDate(*req.Date)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid date format, use "+models.DateLayout)
			return
		}
		upd.Date = &date
	}

	invoice, err := h.store.UpdateInvoice(r.Context(), userID, invoiceID, upd)
	if err != nil {
		storeError(w, h.logger, "update invoice", "invoice", err)
		return
	}

	h.logger.Info("invoice updated", "invoice_id", invoiceID, "user_id", userID)
	respond.JSON(w, http.StatusOK, invoice)
}

// Delete handles DELETE /invoices/{id}.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, invoiceID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteInvoice(r.Context(), userID, invoiceID); err != nil {
		storeError(w, h.logger, "delete invoice", "invoice", err)
		return
	}

	h.logger.Info("invoice deleted", "invoice_id", invoiceID, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// requestScope resolves the authenticated user and the {id} path value.
// A non-numeric id cannot match any invoice, so it reads as not found
// rather than a validation failure.
func (h *InvoiceHandler) requestScope(w http.ResponseWriter, r *http.Request) (userID, invoiceID int64, ok bool) {
	userID, authed := middleware.UserID(r.Context())
	if !authed {
		respond.Error(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return 0, 0, false
	}

	invoiceID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "invoice not found")
		return 0, 0, false
	}
	return userID, invoiceID, true
}
