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

type trackService interface {
	CreateTrack(ctx context.Context, input application.TrackInput) (application.Track, error)
	GetTrack(ctx context.Context, id string) (application.Track, error)
	UpdateTrack(ctx context.Context, id string, input application.TrackInput) (application.Track, error)
	DeleteTrack(ctx context.Context, id string) error
	ListTracks(ctx context.Context, albumID string) ([]application.Track, error)
}

// TrackHandler serves the album track endpoints.
type TrackHandler struct {
	service   trackService
	responder responder
	logger    *slog.Logger
}

// NewTrackHandler constructs a track handler.
func NewTrackHandler(service trackService, logger *slog.Logger) *TrackHandler {
	base := defaultLogger(logger)
	return &TrackHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *TrackHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "TrackHandler", operation, attrs...)
}

// List serves GET /tracks with an optional albumId query parameter.
func (h *TrackHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	albumID := r.URL.Query().Get("albumId")
	logger := h.log(r.Context(), "List", "album_id", albumID)

	tracks, err := h.service.ListTracks(r.Context(), albumID)
	if err != nil {
		logger.ErrorContext(r.Context(), "track list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(tracks)).InfoContext(r.Context(), "tracks listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTracksResponse{Tracks: toTrackDTOs(tracks)})
}

// Get serves GET /tracks/{id}.
func (h *TrackHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	track, err := h.service.GetTrack(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "track_id", id).ErrorContext(r.Context(), "track fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, trackResponse{Track: toTrackDTO(track)})
}

// Create serves POST /tracks.
func (h *TrackHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode track request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "album_id", req.AlbumID, "title", req.Title)
	track, err := h.service.CreateTrack(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "track creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("track_id", track.ID).InfoContext(r.Context(), "track created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, trackResponse{Track: toTrackDTO(track)})
}

// Update serves PUT /tracks/{id}.
func (h *TrackHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "track_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode track update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "track_id", id)
	track, err := h.service.UpdateTrack(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "track update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "track updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, trackResponse{Track: toTrackDTO(track)})
}

// Delete serves DELETE /tracks/{id}.
func (h *TrackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	logger := h.log(r.Context(), "Delete", "track_id", id)
	if err := h.service.DeleteTrack(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "track delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "track deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type trackRequest struct {
	AlbumID         string  `json:"albumId"`
	Title           string  `json:"title"`
	DurationSeconds int     `json:"duration"`
	TrackNumber     int     `json:"trackNumber"`
	Status          string  `json:"status"`
	BPM             *int    `json:"bpm"`
	Key             *string `json:"key"`
	Notes           string  `json:"notes"`
}

func (r trackRequest) toInput() application.TrackInput {
	return application.TrackInput{
		AlbumID:         strings.TrimSpace(r.AlbumID),
		Title:           strings.TrimSpace(r.Title),
		DurationSeconds: r.DurationSeconds,
		TrackNumber:     r.TrackNumber,
		Status:          application.TrackStatus(r.Status),
		BPM:             r.BPM,
		Key:             r.Key,
		Notes:           r.Notes,
	}
}

type trackResponse struct {
	Track trackDTO `json:"track"`
}

type listTracksResponse struct {
	Tracks []trackDTO `json:"tracks"`
}

type trackDTO struct {
	ID              string  `json:"id"`
	AlbumID         string  `json:"albumId"`
	Title           string  `json:"title"`
	DurationSeconds int     `json:"duration"`
	TrackNumber     int     `json:"trackNumber"`
	Status          string  `json:"status"`
	BPM             *int    `json:"bpm,omitempty"`
	Key             *string `json:"key,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

func toTrackDTO(track application.Track) trackDTO {
	return trackDTO{
		ID:              track.ID,
		AlbumID:         track.AlbumID,
		Title:           track.Title,
		DurationSeconds: track.DurationSeconds,
		TrackNumber:     track.TrackNumber,
		Status:          string(track.Status),
		BPM:             track.BPM,
		Key:             track.Key,
		Notes:           track.Notes,
		CreatedAt:       track.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       track.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toTrackDTOs(tracks []application.Track) []trackDTO {
	out := make([]trackDTO, 0, len(tracks))
	for _, track := range tracks {
		out = append(out, toTrackDTO(track))
	}
	return out
}
