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

type studioService interface {
	GetStudio(ctx context.Context) (application.Studio, error)
	UpdateStudio(ctx context.Context, input application.StudioInput) (application.Studio, error)
	GetSettings(ctx context.Context) (application.Settings, error)
	UpdateSettings(ctx context.Context, settings application.Settings) (application.Settings, error)
}

// StudioHandler serves the studio profile and billing settings endpoints.
type StudioHandler struct {
	service   studioService
	responder responder
	logger    *slog.Logger
}

// NewStudioHandler constructs a studio handler.
func NewStudioHandler(service studioService, logger *slog.Logger) *StudioHandler {
	base := defaultLogger(logger)
	return &StudioHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *StudioHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "StudioHandler", operation, attrs...)
}

// GetStudio serves GET /studio.
func (h *StudioHandler) GetStudio(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	studio, err := h.service.GetStudio(r.Context())
	if err != nil {
		h.log(r.Context(), "GetStudio").ErrorContext(r.Context(), "studio fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, studioResponse{Studio: toStudioDTO(studio)})
}

// UpdateStudio serves PUT /studio.
func (h *StudioHandler) UpdateStudio(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req studioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateStudio", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode studio request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateStudio")
	studio, err := h.service.UpdateStudio(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "studio update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "studio updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, studioResponse{Studio: toStudioDTO(studio)})
}

// GetSettings serves GET /settings.
func (h *StudioHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.log(r.Context(), "GetSettings").ErrorContext(r.Context(), "settings fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSettingsDTO(settings))
}

// UpdateSettings serves PUT /settings.
func (h *StudioHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req settingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateSettings", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode settings request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateSettings", "currency", req.DefaultCurrency)
	settings, err := h.service.UpdateSettings(r.Context(), application.Settings{
		DefaultCurrency: application.Currency(req.DefaultCurrency),
		TaxRate:         req.TaxRate,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "settings update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "settings updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSettingsDTO(settings))
}

type studioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`
}

func (r studioRequest) toInput() application.StudioInput {
	return application.StudioInput{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Address:     r.Address,
		Phone:       r.Phone,
		Email:       r.Email,
		OpenTime:    strings.TrimSpace(r.OpenTime),
		CloseTime:   strings.TrimSpace(r.CloseTime),
	}
}

type studioResponse struct {
	Studio studioDTO `json:"studio"`
}

type studioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toStudioDTO(studio application.Studio) studioDTO {
	return studioDTO{
		ID:          studio.ID,
		Name:        studio.Name,
		Description: studio.Description,
		Address:     studio.Address,
		Phone:       studio.Phone,
		Email:       studio.Email,
		OpenTime:    studio.OpenTime,
		CloseTime:   studio.CloseTime,
		CreatedAt:   studio.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   studio.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type settingsDTO struct {
	DefaultCurrency string  `json:"defaultCurrency"`
	TaxRate         float64 `json:"taxRate"`
}

func toSettingsDTO(settings application.Settings) settingsDTO {
	return settingsDTO{
		DefaultCurrency: string(settings.DefaultCurrency),
		TaxRate:         settings.TaxRate,
	}
}
