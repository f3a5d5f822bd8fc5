package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/sounddesk/internal/persistence"
	"github.com/example/sounddesk/internal/scheduler"
)

// SingletonRepository stores the studio profile and billing settings, of
// which at most one of each exists.
type SingletonRepository interface {
	GetStudio(ctx context.Context) (Studio, error)
	PutStudio(ctx context.Context, studio Studio) error
	GetSettings(ctx context.Context) (Settings, error)
	PutSettings(ctx context.Context, settings Settings) error
}

// StudioService manages the studio profile and billing settings singletons.
// When no settings have been saved yet, GetSettings serves the configured
// defaults so billing always has a tax rate and currency to work with.
type StudioService struct {
	store           SingletonRepository
	defaultSettings Settings
	idGenerator     func() string
	now             func() time.Time
	logger          *slog.Logger
}

// NewStudioService wires dependencies for the studio and settings singletons.
func NewStudioService(store SingletonRepository, defaults Settings, idGenerator func() string, now func() time.Time) *StudioService {
	return NewStudioServiceWithLogger(store, defaults, idGenerator, now, nil)
}

// NewStudioServiceWithLogger constructs a studio service with a specified logger.
func NewStudioServiceWithLogger(store SingletonRepository, defaults Settings, idGenerator func() string, now func() time.Time, logger *slog.Logger) *StudioService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if defaults.DefaultCurrency == "" {
		defaults.DefaultCurrency = CurrencyKRW
	}
	return &StudioService{
		store:           store,
		defaultSettings: defaults,
		idGenerator:     idGenerator,
		now:             now,
		logger:          defaultLogger(logger),
	}
}

func (s *StudioService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "StudioService", operation, attrs...)
}

// GetStudio returns the studio profile, or ErrNotFound before one is saved.
func (s *StudioService) GetStudio(ctx context.Context) (Studio, error) {
	if s == nil {
		return Studio{}, fmt.Errorf("StudioService is nil")
	}
	studio, err := s.store.GetStudio(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Studio{}, ErrNotFound
		}
		return Studio{}, err
	}
	return studio, nil
}

// UpdateStudio validates and saves the studio profile, creating it on first
// write.
func (s *StudioService) UpdateStudio(ctx context.Context, input StudioInput) (studio Studio, err error) {
	if s == nil {
		err = fmt.Errorf("StudioService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateStudio")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update studio", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "studio updated")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if !scheduler.ValidTimeOfDay(input.OpenTime) {
		vErr.add("openTime", "openTime must be formatted as HH:mm")
	}
	if !scheduler.ValidTimeOfDay(input.CloseTime) {
		vErr.add("closeTime", "closeTime must be formatted as HH:mm")
	}
	if scheduler.ValidTimeOfDay(input.OpenTime) && scheduler.ValidTimeOfDay(input.CloseTime) && input.OpenTime >= input.CloseTime {
		vErr.add("hours", "openTime must be before closeTime")
	}
	if input.Email != "" && !strings.Contains(input.Email, "@") {
		vErr.add("email", "email must contain @")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	existing, getErr := s.store.GetStudio(ctx)
	switch {
	case getErr == nil:
		studio = existing
	case errors.Is(getErr, persistence.ErrNotFound):
		studio = Studio{ID: s.idGenerator(), CreatedAt: s.now()}
	default:
		err = getErr
		return
	}

	studio.Name = strings.TrimSpace(input.Name)
	studio.Description = input.Description
	studio.Address = strings.TrimSpace(input.Address)
	studio.Phone = strings.TrimSpace(input.Phone)
	studio.Email = strings.TrimSpace(input.Email)
	studio.OpenTime = input.OpenTime
	studio.CloseTime = input.CloseTime
	studio.UpdatedAt = s.now()

	if err = s.store.PutStudio(ctx, studio); err != nil {
		studio = Studio{}
	}
	return
}

// GetSettings returns the billing settings, falling back to the configured
// defaults before any have been saved.
func (s *StudioService) GetSettings(ctx context.Context) (Settings, error) {
	if s == nil {
		return Settings{}, fmt.Errorf("StudioService is nil")
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return s.defaultSettings, nil
		}
		return Settings{}, err
	}
	return settings, nil
}

// UpdateSettings validates and saves the billing settings.
func (s *StudioService) UpdateSettings(ctx context.Context, settings Settings) (saved Settings, err error) {
	if s == nil {
		err = fmt.Errorf("StudioService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateSettings")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update settings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "settings updated")
	}()

	vErr := &ValidationError{}
	if !ValidCurrency(settings.DefaultCurrency) {
		vErr.add("defaultCurrency", "defaultCurrency must be KRW or USD")
	}
	if settings.TaxRate < 0 || settings.TaxRate > 1 {
		vErr.add("taxRate", "taxRate must be between 0 and 1")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if err = s.store.PutSettings(ctx, settings); err != nil {
		return
	}
	saved = settings
	return
}
