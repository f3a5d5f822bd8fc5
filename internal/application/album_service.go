package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/sounddesk/internal/scheduler"
)

// AlbumRepository captures the persistence operations needed by the service.
type AlbumRepository interface {
	CreateAlbum(ctx context.Context, album Album) (Album, error)
	GetAlbum(ctx context.Context, id string) (Album, error)
	UpdateAlbum(ctx context.Context, album Album) (Album, error)
	DeleteAlbum(ctx context.Context, id string) error
	ListAlbums(ctx context.Context, filter AlbumFilter) ([]Album, error)
}

// AlbumService orchestrates validation and persistence for album productions.
type AlbumService struct {
	albums      AlbumRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAlbumService constructs an album service with the provided dependencies.
func NewAlbumService(albums AlbumRepository, idGenerator func() string, now func() time.Time) *AlbumService {
	return NewAlbumServiceWithLogger(albums, idGenerator, now, nil)
}

// NewAlbumServiceWithLogger constructs an album service with a specified logger.
func NewAlbumServiceWithLogger(albums AlbumRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AlbumService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AlbumService{albums: albums, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *AlbumService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AlbumService", operation, attrs...)
}

// CreateAlbum validates input and persists a new album.
func (s *AlbumService) CreateAlbum(ctx context.Context, input AlbumInput) (album Album, err error) {
	if s == nil {
		err = fmt.Errorf("AlbumService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateAlbum", "title", input.Title)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create album", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("album_id", album.ID).InfoContext(ctx, "album created")
	}()

	vErr := validateAlbumInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	status := input.Status
	if status == "" {
		status = AlbumStatusPlanning
	}

	createdAt := s.now()
	album = Album{
		ID:          s.idGenerator(),
		ArtistID:    input.ArtistID,
		Title:       strings.TrimSpace(input.Title),
		Genre:       strings.TrimSpace(input.Genre),
		ReleaseDate: input.ReleaseDate,
		Status:      status,
		TotalTracks: input.TotalTracks,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	var persisted Album
	persisted, err = s.albums.CreateAlbum(ctx, album)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	album = persisted
	return
}

// UpdateAlbum validates input and replaces an existing album.
func (s *AlbumService) UpdateAlbum(ctx context.Context, id string, input AlbumInput) (album Album, err error) {
	if s == nil {
		err = fmt.Errorf("AlbumService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateAlbum", "album_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update album", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "album updated")
	}()

	var existing Album
	existing, err = s.albums.GetAlbum(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateAlbumInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.ArtistID = input.ArtistID
	updated.Title = strings.TrimSpace(input.Title)
	updated.Genre = strings.TrimSpace(input.Genre)
	updated.ReleaseDate = input.ReleaseDate
	if input.Status != "" {
		updated.Status = input.Status
	}
	updated.TotalTracks = input.TotalTracks
	updated.UpdatedAt = s.now()

	var persisted Album
	persisted, err = s.albums.UpdateAlbum(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	album = persisted
	return
}

// GetAlbum returns a single album by ID.
func (s *AlbumService) GetAlbum(ctx context.Context, id string) (Album, error) {
	if s == nil {
		return Album{}, fmt.Errorf("AlbumService is nil")
	}
	album, err := s.albums.GetAlbum(ctx, id)
	if err != nil {
		return Album{}, mapRepoError(err)
	}
	return album, nil
}

// ListAlbums returns albums matching the filter, in store order.
func (s *AlbumService) ListAlbums(ctx context.Context, filter AlbumFilter) ([]Album, error) {
	if s == nil {
		return nil, fmt.Errorf("AlbumService is nil")
	}
	if filter.Status != "" && !ValidAlbumStatus(filter.Status) {
		vErr := &ValidationError{}
		vErr.add("status", "status must be one of planning, recording, mixing, mastering, released")
		return nil, vErr
	}
	albums, err := s.albums.ListAlbums(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if albums == nil {
		albums = []Album{}
	}
	return albums, nil
}

// DeleteAlbum removes an album permanently.
func (s *AlbumService) DeleteAlbum(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("AlbumService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteAlbum", "album_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete album", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "album deleted")
	}()

	if err = s.albums.DeleteAlbum(ctx, id); err != nil {
		err = mapRepoError(err)
	}
	return
}

func validateAlbumInput(input AlbumInput) *ValidationError {
	vErr := &ValidationError{}
	if input.ArtistID == "" {
		vErr.add("artistId", "artistId is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.Status != "" && !ValidAlbumStatus(input.Status) {
		vErr.add("status", "status must be one of planning, recording, mixing, mastering, released")
	}
	if input.ReleaseDate != nil && !scheduler.ValidDate(*input.ReleaseDate) {
		vErr.add("releaseDate", "releaseDate must be formatted as YYYY-MM-DD")
	}
	if input.TotalTracks < 0 {
		vErr.add("totalTracks", "totalTracks must not be negative")
	}
	return vErr
}
