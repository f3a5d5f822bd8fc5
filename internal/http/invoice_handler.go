package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/sounddesk/internal/application"
)

type invoiceService interface {
	CreateInvoice(ctx context.Context, input application.InvoiceInput) (application.Invoice, error)
	GetInvoice(ctx context.Context, id string) (application.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, input application.InvoiceInput) (application.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context, filter application.InvoiceFilter) ([]application.Invoice, error)
	CalculateFromSessions(ctx context.Context, sessionIDs []string) (application.InvoiceCalculation, error)
}

// InvoiceHandler serves the billing endpoints.
type InvoiceHandler struct {
	service   invoiceService
	responder responder
	logger    *slog.Logger
}

// NewInvoiceHandler constructs an invoice handler.
func NewInvoiceHandler(service invoiceService, logger *slog.Logger) *InvoiceHandler {
	base := defaultLogger(logger)
	return &InvoiceHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *InvoiceHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "InvoiceHandler", operation, attrs...)
}

// List serves GET /invoices with optional artistId and status query
// parameters.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := application.InvoiceFilter{
		ArtistID: query.Get("artistId"),
		Status:   application.InvoiceStatus(query.Get("status")),
	}

	logger := h.log(r.Context(), "List")
	invoices, err := h.service.ListInvoices(r.Context(), filter)
	if err != nil {
		logger.ErrorContext(r.Context(), "invoice list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(invoices)).InfoContext(r.Context(), "invoices listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listInvoicesResponse{Invoices: toInvoiceDTOs(invoices)})
}

// Get serves GET /invoices/{id}.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	invoice, err := h.service.GetInvoice(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "invoice_id", id).ErrorContext(r.Context(), "invoice fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, invoiceResponse{Invoice: toInvoiceDTO(invoice)})
}

// Create serves POST /invoices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode invoice request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "artist_id", req.ArtistID)
	invoice, err := h.service.CreateInvoice(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "invoice creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("invoice_id", invoice.ID).InfoContext(r.Context(), "invoice created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, invoiceResponse{Invoice: toInvoiceDTO(invoice)})
}

// Update serves PUT /invoices/{id}.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "invoice_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode invoice update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "invoice_id", id)
	invoice, err := h.service.UpdateInvoice(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "invoice update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "invoice updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, invoiceResponse{Invoice: toInvoiceDTO(invoice)})
}

// Delete serves DELETE /invoices/{id}.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	logger := h.log(r.Context(), "Delete", "invoice_id", id)
	if err := h.service.DeleteInvoice(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "invoice delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "invoice deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Calculate serves POST /invoices/calculate, deriving line items from the
// submitted session IDs without persisting anything.
func (h *InvoiceHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Calculate", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode calculate request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Calculate", "session_count", len(req.SessionIDs))
	calc, err := h.service.CalculateFromSessions(r.Context(), req.SessionIDs)
	if err != nil {
		logger.ErrorContext(r.Context(), "invoice calculation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("item_count", len(calc.Items)).InfoContext(r.Context(), "invoice calculated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, calculateResponse{
		Items:    toInvoiceItemDTOs(calc.Items),
		Subtotal: calc.Subtotal,
		Tax:      calc.Tax,
		Total:    calc.Total,
		Currency: string(calc.Currency),
	})
}

type invoiceItemDTO struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

func toInvoiceItemDTOs(items []application.InvoiceItem) []invoiceItemDTO {
	out := make([]invoiceItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, invoiceItemDTO{Label: item.Label, Amount: item.Amount})
	}
	return out
}

type invoiceRequest struct {
	ArtistID   string           `json:"artistId"`
	SessionIDs []string         `json:"sessionIds"`
	Items      []invoiceItemDTO `json:"items"`
	Subtotal   float64          `json:"subtotal"`
	Tax        float64          `json:"tax"`
	Total      float64          `json:"total"`
	Currency   string           `json:"currency"`
	Status     string           `json:"status"`
	DueDate    string           `json:"dueDate"`
	PaidDate   *string          `json:"paidDate"`
	Notes      string           `json:"notes"`
}

func (r invoiceRequest) toInput() application.InvoiceInput {
	items := make([]application.InvoiceItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, application.InvoiceItem{Label: item.Label, Amount: item.Amount})
	}
	return application.InvoiceInput{
		ArtistID:   strings.TrimSpace(r.ArtistID),
		SessionIDs: r.SessionIDs,
		Items:      items,
		Subtotal:   r.Subtotal,
		Tax:        r.Tax,
		Total:      r.Total,
		Currency:   application.Currency(r.Currency),
		Status:     application.InvoiceStatus(r.Status),
		DueDate:    strings.TrimSpace(r.DueDate),
		PaidDate:   r.PaidDate,
		Notes:      r.Notes,
	}
}

type calculateRequest struct {
	SessionIDs []string `json:"sessionIds"`
}

type calculateResponse struct {
	Items    []invoiceItemDTO `json:"items"`
	Subtotal float64          `json:"subtotal"`
	Tax      float64          `json:"tax"`
	Total    float64          `json:"total"`
	Currency string           `json:"currency"`
}

type invoiceResponse struct {
	Invoice invoiceDTO `json:"invoice"`
}

type listInvoicesResponse struct {
	Invoices []invoiceDTO `json:"invoices"`
}

type invoiceDTO struct {
	ID         string           `json:"id"`
	ArtistID   string           `json:"artistId"`
	SessionIDs []string         `json:"sessionIds"`
	Items      []invoiceItemDTO `json:"items"`
	Subtotal   float64          `json:"subtotal"`
	Tax        float64          `json:"tax"`
	Total      float64          `json:"total"`
	Currency   string           `json:"currency"`
	Status     string           `json:"status"`
	DueDate    string           `json:"dueDate,omitempty"`
	PaidDate   *string          `json:"paidDate,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	CreatedAt  string           `json:"createdAt"`
	UpdatedAt  string           `json:"updatedAt"`
}

func toInvoiceDTO(invoice application.Invoice) invoiceDTO {
	sessionIDs := invoice.SessionIDs
	if sessionIDs == nil {
		sessionIDs = []string{}
	}
	return invoiceDTO{
		ID:         invoice.ID,
		ArtistID:   invoice.ArtistID,
		SessionIDs: sessionIDs,
		Items:      toInvoiceItemDTOs(invoice.Items),
		Subtotal:   invoice.Subtotal,
		Tax:        invoice.Tax,
		Total:      invoice.Total,
		Currency:   string(invoice.Currency),
		Status:     string(invoice.Status),
		DueDate:    invoice.DueDate,
		PaidDate:   invoice.PaidDate,
		Notes:      invoice.Notes,
		CreatedAt:  invoice.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  invoice.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toInvoiceDTOs(invoices []application.Invoice) []invoiceDTO {
	out := make([]invoiceDTO, 0, len(invoices))
	for _, invoice := range invoices {
		out = append(out, toInvoiceDTO(invoice))
	}
	return out
}
