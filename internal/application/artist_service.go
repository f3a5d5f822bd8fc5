package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ArtistRepository captures the persistence operations needed by the service.
type ArtistRepository interface {
	CreateArtist(ctx context.Context, artist Artist) (Artist, error)
	GetArtist(ctx context.Context, id string) (Artist, error)
	UpdateArtist(ctx context.Context, artist Artist) (Artist, error)
	DeleteArtist(ctx context.Context, id string) error
	ListArtists(ctx context.Context) ([]Artist, error)
}

// ArtistService orchestrates validation and persistence for artists.
type ArtistService struct {
	artists     ArtistRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewArtistService constructs an artist service with the provided dependencies.
func NewArtistService(artists ArtistRepository, idGenerator func() string, now func() time.Time) *ArtistService {
	return NewArtistServiceWithLogger(artists, idGenerator, now, nil)
}

// NewArtistServiceWithLogger constructs an artist service with a specified logger.
func NewArtistServiceWithLogger(artists ArtistRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ArtistService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ArtistService{artists: artists, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *ArtistService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ArtistService", operation, attrs...)
}

// CreateArtist validates input and persists a new artist.
func (s *ArtistService) CreateArtist(ctx context.Context, input ArtistInput) (artist Artist, err error) {
	if s == nil {
		err = fmt.Errorf("ArtistService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateArtist", "name", input.Name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create artist", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("artist_id", artist.ID).InfoContext(ctx, "artist created")
	}()

	vErr := validateArtistInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	createdAt := s.now()
	artist = Artist{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Genre:     strings.TrimSpace(input.Genre),
		Label:     strings.TrimSpace(input.Label),
		Bio:       input.Bio,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	var persisted Artist
	persisted, err = s.artists.CreateArtist(ctx, artist)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	artist = persisted
	return
}

// UpdateArtist validates input and replaces an existing artist.
func (s *ArtistService) UpdateArtist(ctx context.Context, id string, input ArtistInput) (artist Artist, err error) {
	if s == nil {
		err = fmt.Errorf("ArtistService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateArtist", "artist_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update artist", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "artist updated")
	}()

	var existing Artist
	existing, err = s.artists.GetArtist(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateArtistInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Email = strings.TrimSpace(input.Email)
	updated.Phone = strings.TrimSpace(input.Phone)
	updated.Genre = strings.TrimSpace(input.Genre)
	updated.Label = strings.TrimSpace(input.Label)
	updated.Bio = input.Bio
	updated.UpdatedAt = s.now()

	var persisted Artist
	persisted, err = s.artists.UpdateArtist(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	artist = persisted
	return
}

// GetArtist returns a single artist by ID.
func (s *ArtistService) GetArtist(ctx context.Context, id string) (Artist, error) {
	if s == nil {
		return Artist{}, fmt.Errorf("ArtistService is nil")
	}
	artist, err := s.artists.GetArtist(ctx, id)
	if err != nil {
		return Artist{}, mapRepoError(err)
	}
	return artist, nil
}

// ListArtists returns every artist in store order.
func (s *ArtistService) ListArtists(ctx context.Context) ([]Artist, error) {
	if s == nil {
		return nil, fmt.Errorf("ArtistService is nil")
	}
	artists, err := s.artists.ListArtists(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if artists == nil {
		artists = []Artist{}
	}
	return artists, nil
}

// DeleteArtist removes an artist permanently.
func (s *ArtistService) DeleteArtist(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("ArtistService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteArtist", "artist_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete artist", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "artist deleted")
	}()

	if err = s.artists.DeleteArtist(ctx, id); err != nil {
		err = mapRepoError(err)
	}
	return
}

func validateArtistInput(input ArtistInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if email := strings.TrimSpace(input.Email); email != "" && !strings.Contains(email, "@") {
		vErr.add("email", "email must contain @")
	}
	return vErr
}
