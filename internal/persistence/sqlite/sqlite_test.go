package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/sounddesk/internal/persistence"
)

func openTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sounddesk.db")
	storage, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })
	return storage, path
}

func testSession(id, room, date, start, end string) persistence.Session {
	created := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	return persistence.Session{
		ID:         id,
		RoomID:     room,
		ArtistID:   "artist-1",
		EngineerID: "member-1",
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     "scheduled",
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage, path := openTestStorage(t)

	first := testSession("s1", "r1", "2024-06-01", "10:00", "11:00")
	second := testSession("s2", "r1", "2024-06-01", "12:00", "13:00")

	if err := storage.CreateSession(ctx, first); err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if err := storage.CreateSession(ctx, second); err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		if err := storage.CreateSession(ctx, first); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("get returns the stored record", func(t *testing.T) {
		got, err := storage.GetSession(ctx, "s1")
		if err != nil {
			t.Fatalf("GetSession returned error: %v", err)
		}
		if got.RoomID != "r1" || got.StartTime != "10:00" {
			t.Fatalf("unexpected session: %+v", got)
		}
	})

	t.Run("records survive a reopen", func(t *testing.T) {
		if err := storage.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}
		reopened, err := Open(path)
		if err != nil {
			t.Fatalf("reopen returned error: %v", err)
		}
		t.Cleanup(func() { _ = reopened.Close() })

		sessions, err := reopened.ListSessions(ctx, persistence.SessionFilter{})
		if err != nil {
			t.Fatalf("ListSessions returned error: %v", err)
		}
		if len(sessions) != 2 || sessions[0].ID != "s1" || sessions[1].ID != "s2" {
			t.Fatalf("expected s1, s2 in store order after reopen, got %+v", sessions)
		}
	})
}

func TestListSessionsFilter(t *testing.T) {
	ctx := context.Background()
	storage, _ := openTestStorage(t)

	a := testSession("a", "r1", "2024-06-01", "10:00", "11:00")
	b := testSession("b", "r2", "2024-06-02", "10:00", "11:00")
	b.ArtistID = "artist-2"
	c := testSession("c", "r1", "2024-06-03", "10:00", "11:00")
	c.Status = "cancelled"

	for _, session := range []persistence.Session{a, b, c} {
		if err := storage.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession returned error: %v", err)
		}
	}

	t.Run("filters by room", func(t *testing.T) {
		sessions, err := storage.ListSessions(ctx, persistence.SessionFilter{RoomID: "r1"})
		if err != nil {
			t.Fatalf("ListSessions returned error: %v", err)
		}
		if len(sessions) != 2 || sessions[0].ID != "a" || sessions[1].ID != "c" {
			t.Fatalf("unexpected result: %+v", sessions)
		}
	})

	t.Run("filters by inclusive date range", func(t *testing.T) {
		sessions, err := storage.ListSessions(ctx, persistence.SessionFilter{DateFrom: "2024-06-02", DateTo: "2024-06-03"})
		if err != nil {
			t.Fatalf("ListSessions returned error: %v", err)
		}
		if len(sessions) != 2 || sessions[0].ID != "b" || sessions[1].ID != "c" {
			t.Fatalf("unexpected result: %+v", sessions)
		}
	})

	t.Run("filters are independent of status", func(t *testing.T) {
		sessions, err := storage.ListSessions(ctx, persistence.SessionFilter{RoomID: "r1", DateFrom: "2024-06-01", DateTo: "2024-06-03"})
		if err != nil {
			t.Fatalf("ListSessions returned error: %v", err)
		}
		if len(sessions) != 2 {
			t.Fatalf("expected cancelled session to be listed, got %+v", sessions)
		}
	})

	t.Run("filters by status and engineer", func(t *testing.T) {
		sessions, err := storage.ListSessions(ctx, persistence.SessionFilter{Status: "cancelled", EngineerID: "member-1"})
		if err != nil {
			t.Fatalf("ListSessions returned error: %v", err)
		}
		if len(sessions) != 1 || sessions[0].ID != "c" {
			t.Fatalf("unexpected result: %+v", sessions)
		}
	})
}

func TestSessionUpdateDelete(t *testing.T) {
	ctx := context.Background()
	storage, _ := openTestStorage(t)

	session := testSession("s1", "r1", "2024-06-01", "10:00", "11:00")
	if err := storage.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	t.Run("update replaces the record", func(t *testing.T) {
		session.StartTime = "09:00"
		session.EndTime = "09:30"
		if err := storage.UpdateSession(ctx, session); err != nil {
			t.Fatalf("UpdateSession returned error: %v", err)
		}
		got, err := storage.GetSession(ctx, "s1")
		if err != nil {
			t.Fatalf("GetSession returned error: %v", err)
		}
		if got.StartTime != "09:00" || got.EndTime != "09:30" {
			t.Fatalf("unexpected session after update: %+v", got)
		}
	})

	t.Run("update of a missing record fails", func(t *testing.T) {
		missing := testSession("ghost", "r1", "2024-06-01", "10:00", "11:00")
		if err := storage.UpdateSession(ctx, missing); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete removes the record", func(t *testing.T) {
		if err := storage.DeleteSession(ctx, "s1"); err != nil {
			t.Fatalf("DeleteSession returned error: %v", err)
		}
		if _, err := storage.GetSession(ctx, "s1"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := storage.DeleteSession(ctx, "s1"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSingletons(t *testing.T) {
	ctx := context.Background()
	storage, path := openTestStorage(t)

	if _, err := storage.GetSettings(ctx); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first put, got %v", err)
	}

	settings := persistence.Settings{DefaultCurrency: "USD", TaxRate: 0.2}
	if err := storage.PutSettings(ctx, settings); err != nil {
		t.Fatalf("PutSettings returned error: %v", err)
	}

	studio := persistence.Studio{ID: "studio-1", Name: "SoundDesk", OpenTime: "09:00", CloseTime: "22:00"}
	if err := storage.PutStudio(ctx, studio); err != nil {
		t.Fatalf("PutStudio returned error: %v", err)
	}

	if err := storage.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	gotSettings, err := reopened.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if gotSettings != settings {
		t.Fatalf("unexpected settings after reopen: %+v", gotSettings)
	}

	gotStudio, err := reopened.GetStudio(ctx)
	if err != nil {
		t.Fatalf("GetStudio returned error: %v", err)
	}
	if gotStudio.Name != "SoundDesk" || gotStudio.CloseTime != "22:00" {
		t.Fatalf("unexpected studio after reopen: %+v", gotStudio)
	}
}

func TestRoomFilter(t *testing.T) {
	ctx := context.Background()
	storage, _ := openTestStorage(t)

	rooms := []persistence.Room{
		{ID: "r1", Name: "A", Type: "recording", HourlyRate: 100, Capacity: 8, IsAvailable: true},
		{ID: "r2", Name: "B", Type: "mixing", HourlyRate: 80, Capacity: 4, IsAvailable: false},
		{ID: "r3", Name: "C", Type: "recording", HourlyRate: 120, Capacity: 10, IsAvailable: false},
	}
	for _, room := range rooms {
		if err := storage.CreateRoom(ctx, room); err != nil {
			t.Fatalf("CreateRoom returned error: %v", err)
		}
	}

	available := true
	got, err := storage.ListRooms(ctx, persistence.RoomFilter{Type: "recording", IsAvailable: &available})
	if err != nil {
		t.Fatalf("ListRooms returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
