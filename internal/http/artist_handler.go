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

type artistService interface {
	CreateArtist(ctx context.Context, input application.ArtistInput) (application.Artist, error)
	GetArtist(ctx context.Context, id string) (application.Artist, error)
	UpdateArtist(ctx context.Context, id string, input application.ArtistInput) (application.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
	ListArtists(ctx context.Context) ([]application.Artist, error)
}

// ArtistHandler serves the artist roster endpoints.
type ArtistHandler struct {
	service   artistService
	responder responder
	logger    *slog.Logger
}

// NewArtistHandler constructs an artist handler.
func NewArtistHandler(service artistService, logger *slog.Logger) *ArtistHandler {
	base := defaultLogger(logger)
	return &ArtistHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ArtistHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ArtistHandler", operation, attrs...)
}

// List serves GET /artists.
func (h *ArtistHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	artists, err := h.service.ListArtists(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "artist list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(artists)).InfoContext(r.Context(), "artists listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listArtistsResponse{Artists: toArtistDTOs(artists)})
}

// Get serves GET /artists/{id}.
func (h *ArtistHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	artist, err := h.service.GetArtist(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "artist_id", id).ErrorContext(r.Context(), "artist fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, artistResponse{Artist: toArtistDTO(artist)})
}

// Create serves POST /artists.
func (h *ArtistHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req artistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode artist request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "name", req.Name)
	artist, err := h.service.CreateArtist(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "artist creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("artist_id", artist.ID).InfoContext(r.Context(), "artist created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, artistResponse{Artist: toArtistDTO(artist)})
}

// Update serves PUT /artists/{id}.
func (h *ArtistHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	var req artistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "artist_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode artist update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "artist_id", id)
	artist, err := h.service.UpdateArtist(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "artist update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "artist updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, artistResponse{Artist: toArtistDTO(artist)})
}

// Delete serves DELETE /artists/{id}.
func (h *ArtistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	logger := h.log(r.Context(), "Delete", "artist_id", id)
	if err := h.service.DeleteArtist(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "artist delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "artist deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type artistRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Genre string `json:"genre"`
	Label string `json:"label"`
	Bio   string `json:"bio"`
}

func (r artistRequest) toInput() application.ArtistInput {
	return application.ArtistInput{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
		Phone: strings.TrimSpace(r.Phone),
		Genre: strings.TrimSpace(r.Genre),
		Label: strings.TrimSpace(r.Label),
		Bio:   r.Bio,
	}
}

type artistResponse struct {
	Artist artistDTO `json:"artist"`
}

type listArtistsResponse struct {
	Artists []artistDTO `json:"artists"`
}

type artistDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Label     string `json:"label,omitempty"`
	Bio       string `json:"bio,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toArtistDTO(artist application.Artist) artistDTO {
	return artistDTO{
		ID:        artist.ID,
		Name:      artist.Name,
		Email:     artist.Email,
		Phone:     artist.Phone,
		Genre:     artist.Genre,
		Label:     artist.Label,
		Bio:       artist.Bio,
		CreatedAt: artist.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: artist.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toArtistDTOs(artists []application.Artist) []artistDTO {
	out := make([]artistDTO, 0, len(artists))
	for _, artist := range artists {
		out = append(out, toArtistDTO(artist))
	}
	return out
}
