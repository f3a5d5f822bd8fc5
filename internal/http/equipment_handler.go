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

type equipmentService interface {
	CreateEquipment(ctx context.Context, input application.EquipmentInput) (application.Equipment, error)
	GetEquipment(ctx context.Context, id string) (application.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, input application.EquipmentInput) (application.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
	ListEquipment(ctx context.Context, filter application.EquipmentFilter) ([]application.Equipment, error)
}

// EquipmentHandler serves the gear inventory endpoints.
type EquipmentHandler struct {
	service   equipmentService
	responder responder
	logger    *slog.Logger
}

// NewEquipmentHandler constructs an equipment handler.
func NewEquipmentHandler(service equipmentService, logger *slog.Logger) *EquipmentHandler {
	base := defaultLogger(logger)
	return &EquipmentHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EquipmentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EquipmentHandler", operation, attrs...)
}

// List serves GET /equipment with optional category and roomId query
// parameters.
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := application.EquipmentFilter{
		Category: application.EquipmentCategory(query.Get("category")),
		RoomID:   query.Get("roomId"),
	}

	logger := h.log(r.Context(), "List")
	equipment, err := h.service.ListEquipment(r.Context(), filter)
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(equipment)).InfoContext(r.Context(), "equipment listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEquipmentResponse{Equipment: toEquipmentDTOs(equipment)})
}

// Get serves GET /equipment/{id}.
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	equipment, err := h.service.GetEquipment(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "equipment_id", id).ErrorContext(r.Context(), "equipment fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, equipmentResponse{Equipment: toEquipmentDTO(equipment)})
}

// Create serves POST /equipment.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode equipment request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "name", req.Name)
	equipment, err := h.service.CreateEquipment(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("equipment_id", equipment.ID).InfoContext(r.Context(), "equipment created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, equipmentResponse{Equipment: toEquipmentDTO(equipment)})
}

// Update serves PUT /equipment/{id}.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "equipment_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode equipment update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "equipment_id", id)
	equipment, err := h.service.UpdateEquipment(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "equipment updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, equipmentResponse{Equipment: toEquipmentDTO(equipment)})
}

// Delete serves DELETE /equipment/{id}.
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	logger := h.log(r.Context(), "Delete", "equipment_id", id)
	if err := h.service.DeleteEquipment(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "equipment delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "equipment deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type equipmentRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	SerialNumber  string  `json:"serialNumber"`
	PurchaseDate  string  `json:"purchaseDate"`
	PurchasePrice float64 `json:"purchasePrice"`
	Condition     string  `json:"condition"`
	RoomID        *string `json:"location"`
	IsAvailable   bool    `json:"isAvailable"`
}

func (r equipmentRequest) toInput() application.EquipmentInput {
	return application.EquipmentInput{
		Name:          strings.TrimSpace(r.Name),
		Category:      application.EquipmentCategory(r.Category),
		Brand:         strings.TrimSpace(r.Brand),
		Model:         strings.TrimSpace(r.Model),
		SerialNumber:  strings.TrimSpace(r.SerialNumber),
		PurchaseDate:  strings.TrimSpace(r.PurchaseDate),
		PurchasePrice: r.PurchasePrice,
		Condition:     application.EquipmentCondition(r.Condition),
		RoomID:        r.RoomID,
		IsAvailable:   r.IsAvailable,
	}
}

type equipmentResponse struct {
	Equipment equipmentDTO `json:"equipment"`
}

type listEquipmentResponse struct {
	Equipment []equipmentDTO `json:"equipment"`
}

type equipmentDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand,omitempty"`
	Model         string  `json:"model,omitempty"`
	SerialNumber  string  `json:"serialNumber,omitempty"`
	PurchaseDate  string  `json:"purchaseDate,omitempty"`
	PurchasePrice float64 `json:"purchasePrice"`
	Condition     string  `json:"condition"`
	RoomID        *string `json:"location,omitempty"`
	IsAvailable   bool    `json:"isAvailable"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toEquipmentDTO(equipment application.Equipment) equipmentDTO {
	return equipmentDTO{
		ID:            equipment.ID,
		Name:          equipment.Name,
		Category:      string(equipment.Category),
		Brand:         equipment.Brand,
		Model:         equipment.Model,
		SerialNumber:  equipment.SerialNumber,
		PurchaseDate:  equipment.PurchaseDate,
		PurchasePrice: equipment.PurchasePrice,
		Condition:     string(equipment.Condition),
		RoomID:        equipment.RoomID,
		IsAvailable:   equipment.IsAvailable,
		CreatedAt:     equipment.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     equipment.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toEquipmentDTOs(equipment []application.Equipment) []equipmentDTO {
	out := make([]equipmentDTO, 0, len(equipment))
	for _, item := range equipment {
		out = append(out, toEquipmentDTO(item))
	}
	return out
}
