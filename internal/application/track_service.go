package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// TrackRepository captures the persistence operations needed by the service.
type TrackRepository interface {
	CreateTrack(ctx context.Context, track Track) (Track, error)
	GetTrack(ctx context.Context, id string) (Track, error)
	UpdateTrack(ctx context.Context, track Track) (Track, error)
	DeleteTrack(ctx context.Context, id string) error
	ListTracks(ctx context.Context, albumID string) ([]Track, error)
}

// TrackService orchestrates validation and persistence for album tracks.
type TrackService struct {
	tracks      TrackRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewTrackService constructs a track service with the provided dependencies.
func NewTrackService(tracks TrackRepository, idGenerator func() string, now func() time.Time) *TrackService {
	return NewTrackServiceWithLogger(tracks, idGenerator, now, nil)
}

// NewTrackServiceWithLogger constructs a track service with a specified logger.
func NewTrackServiceWithLogger(tracks TrackRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *TrackService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &TrackService{tracks: tracks, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *TrackService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TrackService", operation, attrs...)
}

// CreateTrack validates input and persists a new track.
func (s *TrackService) CreateTrack(ctx context.Context, input TrackInput) (track Track, err error) {
	if s == nil {
		err = fmt.Errorf("TrackService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateTrack", "album_id", input.AlbumID, "title", input.Title)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create track", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("track_id", track.ID).InfoContext(ctx, "track created")
	}()

	vErr := validateTrackInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	status := input.Status
	if status == "" {
		status = TrackStatusPending
	}

	createdAt := s.now()
	track = Track{
		ID:              s.idGenerator(),
		AlbumID:         input.AlbumID,
		Title:           strings.TrimSpace(input.Title),
		DurationSeconds: input.DurationSeconds,
		TrackNumber:     input.TrackNumber,
		Status:          status,
		BPM:             input.BPM,
		Key:             input.Key,
		Notes:           input.Notes,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}

	var persisted Track
	persisted, err = s.tracks.CreateTrack(ctx, track)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	track = persisted
	return
}

// UpdateTrack validates input and replaces an existing track.
func (s *TrackService) UpdateTrack(ctx context.Context, id string, input TrackInput) (track Track, err error) {
	if s == nil {
		err = fmt.Errorf("TrackService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateTrack", "track_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update track", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "track updated")
	}()

	var existing Track
	existing, err = s.tracks.GetTrack(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateTrackInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.AlbumID = input.AlbumID
	updated.Title = strings.TrimSpace(input.Title)
	updated.DurationSeconds = input.DurationSeconds
	updated.TrackNumber = input.TrackNumber
	if input.Status != "" {
		updated.Status = input.Status
	}
	updated.BPM = input.BPM
	updated.Key = input.Key
	updated.Notes = input.Notes
	updated.UpdatedAt = s.now()

	var persisted Track
	persisted, err = s.tracks.UpdateTrack(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	track = persisted
	return
}

// GetTrack returns a single track by ID.
func (s *TrackService) GetTrack(ctx context.Context, id string) (Track, error) {
	if s == nil {
		return Track{}, fmt.Errorf("TrackService is nil")
	}
	track, err := s.tracks.GetTrack(ctx, id)
	if err != nil {
		return Track{}, mapRepoError(err)
	}
	return track, nil
}

// ListTracks returns tracks in store order, optionally scoped to an album.
func (s *TrackService) ListTracks(ctx context.Context, albumID string) ([]Track, error) {
	if s == nil {
		return nil, fmt.Errorf("TrackService is nil")
	}
	tracks, err := s.tracks.ListTracks(ctx, albumID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if tracks == nil {
		tracks = []Track{}
	}
	return tracks, nil
}

// DeleteTrack removes a track permanently.
func (s *TrackService) DeleteTrack(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("TrackService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteTrack", "track_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete track", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "track deleted")
	}()

	if err = s.tracks.DeleteTrack(ctx, id); err != nil {
		err = mapRepoError(err)
	}
	return
}

func validateTrackInput(input TrackInput) *ValidationError {
	vErr := &ValidationError{}
	if input.AlbumID == "" {
		vErr.add("albumId", "albumId is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.DurationSeconds < 0 {
		vErr.add("duration", "duration must not be negative")
	}
	if input.TrackNumber <= 0 {
		vErr.add("trackNumber", "trackNumber must be positive")
	}
	if input.Status != "" && !ValidTrackStatus(input.Status) {
		vErr.add("status", "status is not a known track status")
	}
	if input.BPM != nil && *input.BPM <= 0 {
		vErr.add("bpm", "bpm must be positive")
	}
	return vErr
}
