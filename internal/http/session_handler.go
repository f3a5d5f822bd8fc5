package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/sounddesk/internal/application"
	"github.com/example/sounddesk/internal/scheduler"
)

type sessionService interface {
	ListSessions(ctx context.Context, filter application.SessionFilter) ([]application.Session, error)
	GetSession(ctx context.Context, id string) (application.Session, error)
	CheckAvailability(ctx context.Context, query application.AvailabilityQuery) (bool, []application.Session, error)
	CreateSession(ctx context.Context, input application.SessionInput) (application.Session, error)
	UpdateSession(ctx context.Context, id string, patch application.SessionPatch) (application.Session, error)
	SetSessionStatus(ctx context.Context, id string, status scheduler.Status) (application.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// SessionHandler serves the booking endpoints.
type SessionHandler struct {
	service   sessionService
	responder responder
	logger    *slog.Logger
}

// NewSessionHandler constructs a session handler.
func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	base := defaultLogger(logger)
	return &SessionHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SessionHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SessionHandler", operation, attrs...)
}

// List serves GET /sessions with optional roomId, artistId, engineerId,
// status, dateFrom, and dateTo query parameters.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filter := sessionFilterFromQuery(r.URL.Query())
	logger := h.log(r.Context(), "List")

	sessions, err := h.service.ListSessions(r.Context(), filter)
	if err != nil {
		logger.ErrorContext(r.Context(), "session list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(sessions)).InfoContext(r.Context(), "sessions listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSessionsResponse{Sessions: toSessionDTOs(sessions)})
}

// Get serves GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	session, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "session_id", id).ErrorContext(r.Context(), "session fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{Session: toSessionDTO(session)})
}

// Create serves POST /sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req sessionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode session request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "room_id", req.RoomID, "date", req.Date)

	session, err := h.service.CreateSession(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "session creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("session_id", session.ID).InfoContext(r.Context(), "session created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, sessionResponse{Session: toSessionDTO(session)})
}

// Update serves PATCH /sessions/{id} with a partial body. Absent fields keep
// their stored values and explicit nulls clear optional references.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	var req sessionPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "session_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode session patch", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "session_id", id)

	session, err := h.service.UpdateSession(r.Context(), id, req.toPatch())
	if err != nil {
		logger.ErrorContext(r.Context(), "session update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "session updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{Session: toSessionDTO(session)})
}

// UpdateStatus serves PUT /sessions/{id}/status.
func (h *SessionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	var req sessionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateStatus", "session_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateStatus", "session_id", id, "status", req.Status)

	session, err := h.service.SetSessionStatus(r.Context(), id, scheduler.Status(req.Status))
	if err != nil {
		logger.ErrorContext(r.Context(), "status change failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "session status changed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{Session: toSessionDTO(session)})
}

// Delete serves DELETE /sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingResourceID)
		return
	}

	logger := h.log(r.Context(), "Delete", "session_id", id)
	if err := h.service.DeleteSession(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "session delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "session deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Availability serves GET /availability with roomId, date, startTime,
// endTime, and optional excludeId query parameters.
func (h *SessionHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	probe := application.AvailabilityQuery{
		RoomID:    query.Get("roomId"),
		Date:      query.Get("date"),
		StartTime: query.Get("startTime"),
		EndTime:   query.Get("endTime"),
		ExcludeID: query.Get("excludeId"),
	}

	logger := h.log(r.Context(), "Availability", "room_id", probe.RoomID, "date", probe.Date)

	available, conflicts, err := h.service.CheckAvailability(r.Context(), probe)
	if err != nil {
		logger.ErrorContext(r.Context(), "availability check failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("available", available).InfoContext(r.Context(), "availability checked")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{
		Available: available,
		Conflicts: toSessionDTOs(conflicts),
	})
}

func sessionFilterFromQuery(query url.Values) application.SessionFilter {
	return application.SessionFilter{
		RoomID:     query.Get("roomId"),
		ArtistID:   query.Get("artistId"),
		EngineerID: query.Get("engineerId"),
		Status:     scheduler.Status(query.Get("status")),
		DateFrom:   query.Get("dateFrom"),
		DateTo:     query.Get("dateTo"),
	}
}

type sessionCreateRequest struct {
	RoomID     string  `json:"roomId"`
	ArtistID   string  `json:"artistId"`
	AlbumID    *string `json:"albumId"`
	TrackID    *string `json:"trackId"`
	EngineerID string  `json:"engineerId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	Notes      string  `json:"notes"`
}

func (r sessionCreateRequest) toInput() application.SessionInput {
	return application.SessionInput{
		RoomID:     strings.TrimSpace(r.RoomID),
		ArtistID:   strings.TrimSpace(r.ArtistID),
		AlbumID:    r.AlbumID,
		TrackID:    r.TrackID,
		EngineerID: strings.TrimSpace(r.EngineerID),
		Date:       strings.TrimSpace(r.Date),
		StartTime:  strings.TrimSpace(r.StartTime),
		EndTime:    strings.TrimSpace(r.EndTime),
		Status:     scheduler.Status(r.Status),
		Notes:      r.Notes,
	}
}

type sessionPatchRequest struct {
	RoomID     application.Optional[string] `json:"roomId"`
	ArtistID   application.Optional[string] `json:"artistId"`
	AlbumID    application.Optional[string] `json:"albumId"`
	TrackID    application.Optional[string] `json:"trackId"`
	EngineerID application.Optional[string] `json:"engineerId"`
	Date       application.Optional[string] `json:"date"`
	StartTime  application.Optional[string] `json:"startTime"`
	EndTime    application.Optional[string] `json:"endTime"`
	Notes      application.Optional[string] `json:"notes"`
}

func (r sessionPatchRequest) toPatch() application.SessionPatch {
	return application.SessionPatch{
		RoomID:     r.RoomID,
		ArtistID:   r.ArtistID,
		AlbumID:    r.AlbumID,
		TrackID:    r.TrackID,
		EngineerID: r.EngineerID,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Notes:      r.Notes,
	}
}

type sessionStatusRequest struct {
	Status string `json:"status"`
}

type sessionResponse struct {
	Session sessionDTO `json:"session"`
}

type listSessionsResponse struct {
	Sessions []sessionDTO `json:"sessions"`
}

type availabilityResponse struct {
	Available bool         `json:"available"`
	Conflicts []sessionDTO `json:"conflicts"`
}

type sessionDTO struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"roomId"`
	ArtistID   string  `json:"artistId"`
	AlbumID    *string `json:"albumId,omitempty"`
	TrackID    *string `json:"trackId,omitempty"`
	EngineerID string  `json:"engineerId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	Notes      string  `json:"notes,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func toSessionDTO(session application.Session) sessionDTO {
	return sessionDTO{
		ID:         session.ID,
		RoomID:     session.RoomID,
		ArtistID:   session.ArtistID,
		AlbumID:    session.AlbumID,
		TrackID:    session.TrackID,
		EngineerID: session.EngineerID,
		Date:       session.Date,
		StartTime:  session.StartTime,
		EndTime:    session.EndTime,
		Status:     string(session.Status),
		Notes:      session.Notes,
		CreatedAt:  session.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  session.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toSessionDTOs(sessions []application.Session) []sessionDTO {
	out := make([]sessionDTO, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionDTO(session))
	}
	return out
}
