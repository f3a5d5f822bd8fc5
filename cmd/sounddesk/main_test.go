package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/sounddesk/internal/application"
	"github.com/example/sounddesk/internal/config"
	"github.com/example/sounddesk/internal/persistence/sqlite"
	"github.com/example/sounddesk/internal/scheduler"
)

func openTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	storage, err := sqlite.Open(filepath.Join(t.TempDir(), "sounddesk.db"))
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() {
		if err := storage.Close(); err != nil {
			t.Errorf("failed to close storage: %v", err)
		}
	})
	return storage
}

func TestSessionRepositoryAdapter(t *testing.T) {
	storage := openTestStorage(t)
	adapter := newSessionRepositoryAdapter(storage)
	ctx := context.Background()

	albumID := "album-1"
	created := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	session := application.Session{
		ID:         "session-1",
		RoomID:     "room-1",
		ArtistID:   "artist-1",
		AlbumID:    &albumID,
		EngineerID: "member-1",
		Date:       "2025-03-15",
		StartTime:  "10:00",
		EndTime:    "12:00",
		Status:     scheduler.StatusScheduled,
		CreatedAt:  created,
		UpdatedAt:  created,
	}

	stored, err := adapter.CreateSession(ctx, session)
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if stored.Status != scheduler.StatusScheduled {
		t.Fatalf("expected status to survive the round trip, got %q", stored.Status)
	}
	if stored.AlbumID == nil || *stored.AlbumID != albumID {
		t.Fatalf("expected albumId %q, got %v", albumID, stored.AlbumID)
	}

	listed, err := adapter.ListSessions(ctx, application.SessionFilter{RoomID: "room-1", DateFrom: "2025-03-15", DateTo: "2025-03-15"})
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "session-1" {
		t.Fatalf("expected the stored session, got %v", listed)
	}

	stored.Status = scheduler.StatusCancelled
	if _, err := adapter.UpdateSession(ctx, stored); err != nil {
		t.Fatalf("UpdateSession returned error: %v", err)
	}
	fetched, err := adapter.GetSession(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if fetched.Status != scheduler.StatusCancelled {
		t.Fatalf("expected cancelled, got %q", fetched.Status)
	}

	if err := adapter.DeleteSession(ctx, "session-1"); err != nil {
		t.Fatalf("DeleteSession returned error: %v", err)
	}
	if _, err := adapter.GetSession(ctx, "session-1"); err == nil {
		t.Fatal("expected an error after delete")
	}
}

func TestSingletonStoreAdapter(t *testing.T) {
	storage := openTestStorage(t)
	adapter := newSingletonStoreAdapter(storage)
	ctx := context.Background()

	if err := adapter.PutSettings(ctx, application.Settings{DefaultCurrency: application.CurrencyUSD, TaxRate: 0.2}); err != nil {
		t.Fatalf("PutSettings returned error: %v", err)
	}
	settings, err := adapter.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if settings.DefaultCurrency != application.CurrencyUSD || settings.TaxRate != 0.2 {
		t.Fatalf("unexpected settings: %+v", settings)
	}

	studio := application.Studio{
		ID:        "studio-1",
		Name:      "SoundDesk",
		OpenTime:  "09:00",
		CloseTime: "22:00",
		CreatedAt: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
	if err := adapter.PutStudio(ctx, studio); err != nil {
		t.Fatalf("PutStudio returned error: %v", err)
	}
	fetched, err := adapter.GetStudio(ctx)
	if err != nil {
		t.Fatalf("GetStudio returned error: %v", err)
	}
	if fetched.Name != "SoundDesk" || fetched.OpenTime != "09:00" {
		t.Fatalf("unexpected studio: %+v", fetched)
	}
}

func TestSeedStudioProfile(t *testing.T) {
	storage := openTestStorage(t)
	store := newSingletonStoreAdapter(storage)
	clock := func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }
	ids := func() string { return "studio-1" }
	service := application.NewStudioService(store, application.Settings{DefaultCurrency: application.CurrencyKRW, TaxRate: 0.1}, ids, clock)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load configuration: %v", err)
	}
	logger := slog.New(slog.DiscardHandler)
	seedStudioProfile(context.Background(), logger, service, cfg)

	studio, err := service.GetStudio(context.Background())
	if err != nil {
		t.Fatalf("expected a seeded profile, got %v", err)
	}
	if studio.OpenTime != cfg.OpenTime || studio.CloseTime != cfg.CloseTime {
		t.Fatalf("expected configured hours, got %s-%s", studio.OpenTime, studio.CloseTime)
	}

	// A second run must not replace the stored profile.
	if _, err := service.UpdateStudio(context.Background(), application.StudioInput{Name: "Custom", OpenTime: "10:00", CloseTime: "20:00"}); err != nil {
		t.Fatalf("UpdateStudio returned error: %v", err)
	}
	seedStudioProfile(context.Background(), logger, service, cfg)
	studio, err = service.GetStudio(context.Background())
	if err != nil {
		t.Fatalf("GetStudio returned error: %v", err)
	}
	if studio.Name != "Custom" {
		t.Fatalf("expected the edited profile to survive reseeding, got %q", studio.Name)
	}
}
