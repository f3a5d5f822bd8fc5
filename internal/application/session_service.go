package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/example/sounddesk/internal/persistence"
	"github.com/example/sounddesk/internal/scheduler"
)

// SessionRepository captures the persistence interactions needed by the service.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	UpdateSession(ctx context.Context, session Session) (Session, error)
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
}

// BookingRecorder receives booking outcomes for instrumentation.
type BookingRecorder interface {
	SessionBooked()
	BookingConflict()
}

type nopBookingRecorder struct{}

func (nopBookingRecorder) SessionBooked()   {}
func (nopBookingRecorder) BookingConflict() {}

// SessionService orchestrates validation, conflict detection, and persistence
// for recording sessions. The booking mutex serializes every write, including
// status changes and deletes, so a concurrent request cannot claim a slot
// while another is still deciding whether that slot is occupied.
type SessionService struct {
	sessions    SessionRepository
	recorder    BookingRecorder
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger

	bookingMu sync.Mutex
}

// NewSessionService wires dependencies for session operations.
func NewSessionService(sessions SessionRepository, idGenerator func() string, now func() time.Time) *SessionService {
	return NewSessionServiceWithLogger(sessions, idGenerator, now, nil)
}

// NewSessionServiceWithLogger constructs a session service with a specified logger.
func NewSessionServiceWithLogger(sessions SessionRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SessionService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		sessions:    sessions,
		recorder:    nopBookingRecorder{},
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// SetBookingRecorder installs an instrumentation sink. A nil recorder resets
// the service to the no-op default.
func (s *SessionService) SetBookingRecorder(recorder BookingRecorder) {
	if recorder == nil {
		recorder = nopBookingRecorder{}
	}
	s.recorder = recorder
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// ListSessions returns sessions matching the filter, in store order.
func (s *SessionService) ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error) {
	if s == nil {
		return nil, fmt.Errorf("SessionService is nil")
	}
	sessions, err := s.sessions.ListSessions(ctx, filter)
	if err != nil {
		return nil, mapSessionRepoError(err)
	}
	if sessions == nil {
		sessions = []Session{}
	}
	return sessions, nil
}

// GetSession returns a single session by ID.
func (s *SessionService) GetSession(ctx context.Context, id string) (Session, error) {
	if s == nil {
		return Session{}, fmt.Errorf("SessionService is nil")
	}
	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return Session{}, mapSessionRepoError(err)
	}
	return session, nil
}

// CheckAvailability reports whether the slot is free and which active
// sessions overlap it. The result is advisory: the authoritative check is
// re-run under the booking mutex when a write actually happens.
func (s *SessionService) CheckAvailability(ctx context.Context, query AvailabilityQuery) (bool, []Session, error) {
	if s == nil {
		return false, nil, fmt.Errorf("SessionService is nil")
	}
	vErr := &ValidationError{}
	validateSlot(query.RoomID, query.Date, query.StartTime, query.EndTime, vErr)
	if vErr.HasErrors() {
		return false, nil, vErr
	}
	conflicts, err := s.findConflicts(ctx, query)
	if err != nil {
		return false, nil, err
	}
	return len(conflicts) == 0, conflicts, nil
}

// CreateSession validates the request, checks the room slot, and persists a
// new session. A 409-style RoomUnavailableError carrying the overlapping
// sessions is returned when the slot is taken.
func (s *SessionService) CreateSession(ctx context.Context, input SessionInput) (session Session, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateSession",
		"room_id", input.RoomID,
		"date", input.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("session_id", session.ID).InfoContext(ctx, "session created")
	}()

	vErr := validateSessionInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	status := input.Status
	if status == "" {
		status = scheduler.StatusScheduled
	}

	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	var conflicts []Session
	conflicts, err = s.findConflicts(ctx, AvailabilityQuery{
		RoomID:    input.RoomID,
		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	})
	if err != nil {
		return
	}
	if len(conflicts) > 0 {
		s.recorder.BookingConflict()
		err = &RoomUnavailableError{Conflicts: conflicts}
		return
	}

	createdAt := s.now()
	session = Session{
		ID:         s.idGenerator(),
		RoomID:     input.RoomID,
		ArtistID:   input.ArtistID,
		AlbumID:    input.AlbumID,
		TrackID:    input.TrackID,
		EngineerID: input.EngineerID,
		Date:       input.Date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Status:     status,
		Notes:      strings.TrimSpace(input.Notes),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	var persisted Session
	persisted, err = s.sessions.CreateSession(ctx, session)
	if err != nil {
		err = mapSessionRepoError(err)
		return
	}

	s.recorder.SessionBooked()
	session = persisted
	return
}

// UpdateSession merges the patch onto the stored session and re-runs
// conflict detection against the merged slot, excluding the session itself.
func (s *SessionService) UpdateSession(ctx context.Context, id string, patch SessionPatch) (session Session, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateSession", "session_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session updated")
	}()

	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	var existing Session
	existing, err = s.sessions.GetSession(ctx, id)
	if err != nil {
		err = mapSessionRepoError(err)
		return
	}

	merged := mergeSessionPatch(existing, patch)

	vErr := &ValidationError{}
	validateSlot(merged.RoomID, merged.Date, merged.StartTime, merged.EndTime, vErr)
	if merged.ArtistID == "" {
		vErr.add("artistId", "artistId is required")
	}
	if merged.EngineerID == "" {
		vErr.add("engineerId", "engineerId is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var conflicts []Session
	conflicts, err = s.findConflicts(ctx, AvailabilityQuery{
		RoomID:    merged.RoomID,
		Date:      merged.Date,
		StartTime: merged.StartTime,
		EndTime:   merged.EndTime,
		ExcludeID: existing.ID,
	})
	if err != nil {
		return
	}
	if len(conflicts) > 0 {
		s.recorder.BookingConflict()
		err = &RoomUnavailableError{Conflicts: conflicts}
		return
	}

	merged.UpdatedAt = s.now()

	var persisted Session
	persisted, err = s.sessions.UpdateSession(ctx, merged)
	if err != nil {
		err = mapSessionRepoError(err)
		return
	}

	session = persisted
	return
}

// SetSessionStatus moves a session along its lifecycle. Only the edges
// allowed by the status machine are accepted; completed and cancelled
// sessions never leave their state.
func (s *SessionService) SetSessionStatus(ctx context.Context, id string, status scheduler.Status) (session Session, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "SetSessionStatus", "session_id", id, "status", string(status))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to change session status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session status changed")
	}()

	if !scheduler.ValidStatus(status) {
		vErr := &ValidationError{}
		vErr.add("status", "status must be one of scheduled, in-progress, completed, cancelled")
		err = vErr
		return
	}

	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	var existing Session
	existing, err = s.sessions.GetSession(ctx, id)
	if err != nil {
		err = mapSessionRepoError(err)
		return
	}

	if !scheduler.CanTransition(existing.Status, status) {
		err = &InvalidTransitionError{From: existing.Status, To: status}
		return
	}

	existing.Status = status
	existing.UpdatedAt = s.now()

	var persisted Session
	persisted, err = s.sessions.UpdateSession(ctx, existing)
	if err != nil {
		err = mapSessionRepoError(err)
		return
	}

	session = persisted
	return
}

// DeleteSession removes a session permanently.
func (s *SessionService) DeleteSession(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("SessionService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteSession", "session_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session deleted")
	}()

	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	if err = s.sessions.DeleteSession(ctx, id); err != nil {
		err = mapSessionRepoError(err)
	}
	return
}

// findConflicts loads the room's sessions for the day and runs them through
// the interval checker. Cancelled sessions never block a slot.
func (s *SessionService) findConflicts(ctx context.Context, query AvailabilityQuery) ([]Session, error) {
	sameDay, err := s.sessions.ListSessions(ctx, SessionFilter{
		RoomID:   query.RoomID,
		DateFrom: query.Date,
		DateTo:   query.Date,
	})
	if err != nil {
		return nil, mapSessionRepoError(err)
	}

	bookings := make([]scheduler.Booking, 0, len(sameDay))
	byID := make(map[string]Session, len(sameDay))
	for _, session := range sameDay {
		bookings = append(bookings, scheduler.Booking{
			ID:        session.ID,
			RoomID:    session.RoomID,
			Date:      session.Date,
			StartTime: session.StartTime,
			EndTime:   session.EndTime,
			Cancelled: session.Status == scheduler.StatusCancelled,
		})
		byID[session.ID] = session
	}

	overlapping := scheduler.DetectConflicts(bookings, scheduler.Slot{
		RoomID:    query.RoomID,
		Date:      query.Date,
		StartTime: query.StartTime,
		EndTime:   query.EndTime,
	}, query.ExcludeID)

	conflicts := make([]Session, 0, len(overlapping))
	for _, booking := range overlapping {
		conflicts = append(conflicts, byID[booking.ID])
	}
	return conflicts, nil
}

func validateSessionInput(input SessionInput) *ValidationError {
	vErr := &ValidationError{}
	validateSlot(input.RoomID, input.Date, input.StartTime, input.EndTime, vErr)
	if input.ArtistID == "" {
		vErr.add("artistId", "artistId is required")
	}
	if input.EngineerID == "" {
		vErr.add("engineerId", "engineerId is required")
	}
	if input.Status != "" && !scheduler.ValidStatus(input.Status) {
		vErr.add("status", "status must be one of scheduled, in-progress, completed, cancelled")
	}
	return vErr
}

func validateSlot(roomID, date, startTime, endTime string, vErr *ValidationError) {
	if roomID == "" {
		vErr.add("roomId", "roomId is required")
	}
	if !scheduler.ValidDate(date) {
		vErr.add("date", "date must be formatted as YYYY-MM-DD")
	}
	if !scheduler.ValidTimeOfDay(startTime) {
		vErr.add("startTime", "startTime must be formatted as HH:mm")
	}
	if !scheduler.ValidTimeOfDay(endTime) {
		vErr.add("endTime", "endTime must be formatted as HH:mm")
	}
	if scheduler.ValidTimeOfDay(startTime) && scheduler.ValidTimeOfDay(endTime) && startTime >= endTime {
		vErr.add("time", "startTime must be before endTime")
	}
}

func mergeSessionPatch(existing Session, patch SessionPatch) Session {
	merged := existing
	if patch.RoomID.Set && patch.RoomID.Value != nil {
		merged.RoomID = *patch.RoomID.Value
	}
	if patch.ArtistID.Set && patch.ArtistID.Value != nil {
		merged.ArtistID = *patch.ArtistID.Value
	}
	if patch.AlbumID.Set {
		merged.AlbumID = patch.AlbumID.Value
	}
	if patch.TrackID.Set {
		merged.TrackID = patch.TrackID.Value
	}
	if patch.EngineerID.Set && patch.EngineerID.Value != nil {
		merged.EngineerID = *patch.EngineerID.Value
	}
	if patch.Date.Set && patch.Date.Value != nil {
		merged.Date = *patch.Date.Value
	}
	if patch.StartTime.Set && patch.StartTime.Value != nil {
		merged.StartTime = *patch.StartTime.Value
	}
	if patch.EndTime.Set && patch.EndTime.Value != nil {
		merged.EndTime = *patch.EndTime.Value
	}
	if patch.Notes.Set {
		if patch.Notes.Value == nil {
			merged.Notes = ""
		} else {
			merged.Notes = strings.TrimSpace(*patch.Notes.Value)
		}
	}
	return merged
}

func mapSessionRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}
