package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/sounddesk/internal/persistence"
)

type singletonStoreStub struct {
	studio   *Studio
	settings *Settings
}

func (s *singletonStoreStub) GetStudio(ctx context.Context) (Studio, error) {
	if s.studio == nil {
		return Studio{}, persistence.ErrNotFound
	}
	return *s.studio, nil
}

func (s *singletonStoreStub) PutStudio(ctx context.Context, studio Studio) error {
	s.studio = &studio
	return nil
}

func (s *singletonStoreStub) GetSettings(ctx context.Context) (Settings, error) {
	if s.settings == nil {
		return Settings{}, persistence.ErrNotFound
	}
	return *s.settings, nil
}

func (s *singletonStoreStub) PutSettings(ctx context.Context, settings Settings) error {
	s.settings = &settings
	return nil
}

func TestStudioService(t *testing.T) {
	defaults := Settings{DefaultCurrency: CurrencyKRW, TaxRate: 0.1}

	t.Run("studio profile is created on first update", func(t *testing.T) {
		store := &singletonStoreStub{}
		service := NewStudioService(store, defaults, sequentialIDs("studio"), fixedNow)

		if _, err := service.GetStudio(context.Background()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound before first save, got %v", err)
		}

		saved, err := service.UpdateStudio(context.Background(), StudioInput{
			Name:      "SoundDesk",
			OpenTime:  "09:00",
			CloseTime: "22:00",
		})
		if err != nil {
			t.Fatalf("UpdateStudio returned error: %v", err)
		}
		if saved.ID != "studio-1" {
			t.Fatalf("expected generated id, got %q", saved.ID)
		}

		again, err := service.UpdateStudio(context.Background(), StudioInput{
			Name:      "SoundDesk Seoul",
			OpenTime:  "08:00",
			CloseTime: "23:00",
		})
		if err != nil {
			t.Fatalf("second UpdateStudio returned error: %v", err)
		}
		if again.ID != saved.ID {
			t.Fatalf("updates must keep the singleton id, got %q vs %q", again.ID, saved.ID)
		}
	})

	t.Run("studio hours are validated", func(t *testing.T) {
		service := NewStudioService(&singletonStoreStub{}, defaults, sequentialIDs("studio"), fixedNow)
		_, err := service.UpdateStudio(context.Background(), StudioInput{
			Name:      "SoundDesk",
			OpenTime:  "22:00",
			CloseTime: "09:00",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["hours"]; !ok {
			t.Fatalf("expected hours field error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("settings fall back to defaults before first save", func(t *testing.T) {
		service := NewStudioService(&singletonStoreStub{}, defaults, sequentialIDs("studio"), fixedNow)

		settings, err := service.GetSettings(context.Background())
		if err != nil {
			t.Fatalf("GetSettings returned error: %v", err)
		}
		if settings != defaults {
			t.Fatalf("expected defaults, got %+v", settings)
		}

		saved, err := service.UpdateSettings(context.Background(), Settings{DefaultCurrency: CurrencyUSD, TaxRate: 0.2})
		if err != nil {
			t.Fatalf("UpdateSettings returned error: %v", err)
		}
		loaded, err := service.GetSettings(context.Background())
		if err != nil {
			t.Fatalf("GetSettings returned error: %v", err)
		}
		if loaded != saved {
			t.Fatalf("expected persisted settings, got %+v", loaded)
		}
	})

	t.Run("settings are validated", func(t *testing.T) {
		service := NewStudioService(&singletonStoreStub{}, defaults, sequentialIDs("studio"), fixedNow)
		_, err := service.UpdateSettings(context.Background(), Settings{DefaultCurrency: Currency("EUR"), TaxRate: 2})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"defaultCurrency", "taxRate"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field %q in %v", field, vErr.FieldErrors)
			}
		}
	})
}
