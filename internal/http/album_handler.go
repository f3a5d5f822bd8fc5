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

type albumService interface {
	CreateAlbum(ctx context.Context, input application.AlbumInput) (application.Album, error)
	GetAlbum(ctx context.Context, id string) (application.Album, error)
	UpdateAlbum(ctx context.Context, id string, input application.AlbumInput) (application.Album, error)
	DeleteAlbum(ctx context.Context, id string) error
	ListAlbums(ctx context.Context, filter application.AlbumFilter) ([]application.Album, error)
}

// AlbumHandler serves the album production endpoints.
type AlbumHandler struct {
	service   albumService
	responder responder
	logger    *slog.Logger
}

// NewAlbumHandler constructs an album handler.
func NewAlbumHandler(service albumService, logger *slog.Logger) *AlbumHandler {
	base := defaultLogger(logger)
	return &AlbumHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AlbumHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AlbumHandler", operation, attrs...)
}

// List serves GET /albums with optional artistId and status query parameters.
func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := application.AlbumFilter{
		ArtistID: query.Get("artistId"),
		Status:   application.AlbumStatus(query.Get("status")),
	}

	logger := h.log(r.Context(), "List")
	albums, err := h.service.ListAlbums(r.Context(), filter)
	if err != nil {
		logger.ErrorContext(r.Context(), "album list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(albums)).InfoContext(r.Context(), "albums listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAlbumsResponse{Albums: toAlbumDTOs(albums)})
}

// Get serves GET /albums/{id}.
func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	album, err := h.service.GetAlbum(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "album_id", id).ErrorContext(r.Context(), "album fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, albumResponse{Album: toAlbumDTO(album)})
}

// Create serves POST /albums.
func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode album request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "title", req.Title)
	album, err := h.service.CreateAlbum(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "album creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("album_id", album.ID).InfoContext(r.Context(), "album created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, albumResponse{Album: toAlbumDTO(album)})
}

// Update serves PUT /albums/{id}.
func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "album_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode album update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "album_id", id)
	album, err := h.service.UpdateAlbum(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "album update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "album updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, albumResponse{Album: toAlbumDTO(album)})
}

// Delete serves DELETE /albums/{id}.
func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	logger := h.log(r.Context(), "Delete", "album_id", id)
	if err := h.service.DeleteAlbum(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "album delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "album deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type albumRequest struct {
	ArtistID    string  `json:"artistId"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	ReleaseDate *string `json:"releaseDate"`
	Status      string  `json:"status"`
	TotalTracks int     `json:"totalTracks"`
}

func (r albumRequest) toInput() application.AlbumInput {
	return application.AlbumInput{
		ArtistID:    strings.TrimSpace(r.ArtistID),
		Title:       strings.TrimSpace(r.Title),
		Genre:       strings.TrimSpace(r.Genre),
		ReleaseDate: r.ReleaseDate,
		Status:      application.AlbumStatus(r.Status),
		TotalTracks: r.TotalTracks,
	}
}

type albumResponse struct {
	Album albumDTO `json:"album"`
}

type listAlbumsResponse struct {
	Albums []albumDTO `json:"albums"`
}

type albumDTO struct {
	ID          string  `json:"id"`
	ArtistID    string  `json:"artistId"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre,omitempty"`
	ReleaseDate *string `json:"releaseDate,omitempty"`
	Status      string  `json:"status"`
	TotalTracks int     `json:"totalTracks"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toAlbumDTO(album application.Album) albumDTO {
	return albumDTO{
		ID:          album.ID,
		ArtistID:    album.ArtistID,
		Title:       album.Title,
		Genre:       album.Genre,
		ReleaseDate: album.ReleaseDate,
		Status:      string(album.Status),
		TotalTracks: album.TotalTracks,
		CreatedAt:   album.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   album.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toAlbumDTOs(albums []application.Album) []albumDTO {
	out := make([]albumDTO, 0, len(albums))
	for _, album := range albums {
		out = append(out, toAlbumDTO(album))
	}
	return out
}
