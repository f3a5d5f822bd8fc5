package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/example/sounddesk/internal/persistence"
	"github.com/example/sounddesk/internal/scheduler"
)

type sessionRepoStub struct {
	mu       sync.Mutex
	sessions []Session

	listDelay time.Duration
	createErr error
}

func (r *sessionRepoStub) CreateSession(ctx context.Context, session Session) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return Session{}, r.createErr
	}
	for _, existing := range r.sessions {
		if existing.ID == session.ID {
			return Session{}, persistence.ErrDuplicate
		}
	}
	r.sessions = append(r.sessions, session)
	return session, nil
}

func (r *sessionRepoStub) GetSession(ctx context.Context, id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sessions {
		if existing.ID == id {
			return existing, nil
		}
	}
	return Session{}, persistence.ErrNotFound
}

func (r *sessionRepoStub) UpdateSession(ctx context.Context, session Session) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.sessions {
		if existing.ID == session.ID {
			r.sessions[i] = session
			return session, nil
		}
	}
	return Session{}, persistence.ErrNotFound
}

func (r *sessionRepoStub) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.sessions {
		if existing.ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *sessionRepoStub) ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error) {
	if r.listDelay > 0 {
		time.Sleep(r.listDelay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []Session{}
	for _, session := range r.sessions {
		if filter.RoomID != "" && session.RoomID != filter.RoomID {
			continue
		}
		if filter.ArtistID != "" && session.ArtistID != filter.ArtistID {
			continue
		}
		if filter.EngineerID != "" && session.EngineerID != filter.EngineerID {
			continue
		}
		if filter.Status != "" && session.Status != filter.Status {
			continue
		}
		if filter.DateFrom != "" && session.Date < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && session.Date > filter.DateTo {
			continue
		}
		matched = append(matched, session)
	}
	return matched, nil
}

func sequentialIDs(prefix string) func() string {
	count := 0
	return func() string {
		count++
		return fmt.Sprintf("%s-%d", prefix, count)
	}
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func validInput() SessionInput {
	return SessionInput{
		RoomID:     "room-1",
		ArtistID:   "artist-1",
		EngineerID: "engineer-1",
		Date:       "2025-03-15",
		StartTime:  "10:00",
		EndTime:    "12:00",
	}
}

func TestCreateSession(t *testing.T) {
	t.Run("persists a session with generated id and timestamps", func(t *testing.T) {
		repo := &sessionRepoStub{}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)

		session, err := service.CreateSession(context.Background(), validInput())
		if err != nil {
			t.Fatalf("CreateSession returned error: %v", err)
		}
		if session.ID != "session-1" {
			t.Fatalf("expected generated id session-1, got %q", session.ID)
		}
		if session.Status != scheduler.StatusScheduled {
			t.Fatalf("expected default status scheduled, got %q", session.Status)
		}
		if !session.CreatedAt.Equal(fixedNow()) || !session.UpdatedAt.Equal(fixedNow()) {
			t.Fatalf("expected timestamps from injected clock, got %v / %v", session.CreatedAt, session.UpdatedAt)
		}
		if len(repo.sessions) != 1 {
			t.Fatalf("expected one persisted session, got %d", len(repo.sessions))
		}
	})

	t.Run("rejects an overlapping slot with the conflicting sessions", func(t *testing.T) {
		repo := &sessionRepoStub{}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)

		if _, err := service.CreateSession(context.Background(), validInput()); err != nil {
			t.Fatalf("seed CreateSession returned error: %v", err)
		}

		input := validInput()
		input.StartTime = "11:00"
		input.EndTime = "13:00"
		_, err := service.CreateSession(context.Background(), input)

		var unavailable *RoomUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("expected RoomUnavailableError, got %v", err)
		}
		if len(unavailable.Conflicts) != 1 || unavailable.Conflicts[0].ID != "session-1" {
			t.Fatalf("expected conflict with session-1, got %+v", unavailable.Conflicts)
		}
	})

	t.Run("allows back to back bookings in the same room", func(t *testing.T) {
		repo := &sessionRepoStub{}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)

		if _, err := service.CreateSession(context.Background(), validInput()); err != nil {
			t.Fatalf("seed CreateSession returned error: %v", err)
		}

		input := validInput()
		input.StartTime = "12:00"
		input.EndTime = "14:00"
		if _, err := service.CreateSession(context.Background(), input); err != nil {
			t.Fatalf("back to back booking should succeed, got %v", err)
		}
	})

	t.Run("allows the same slot in a different room", func(t *testing.T) {
		repo := &sessionRepoStub{}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)

		if _, err := service.CreateSession(context.Background(), validInput()); err != nil {
			t.Fatalf("seed CreateSession returned error: %v", err)
		}

		input := validInput()
		input.RoomID = "room-2"
		if _, err := service.CreateSession(context.Background(), input); err != nil {
			t.Fatalf("different room should not conflict, got %v", err)
		}
	})

	t.Run("ignores cancelled sessions when checking the slot", func(t *testing.T) {
		repo := &sessionRepoStub{}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)

		first, err := service.CreateSession(context.Background(), validInput())
		if err != nil {
			t.Fatalf("seed CreateSession returned error: %v", err)
		}
		if _, err := service.SetSessionStatus(context.Background(), first.ID, scheduler.StatusCancelled); err != nil {
			t.Fatalf("SetSessionStatus returned error: %v", err)
		}

		if _, err := service.CreateSession(context.Background(), validInput()); err != nil {
			t.Fatalf("cancelled session should not block the slot, got %v", err)
		}
	})

	t.Run("rejects malformed and inverted time ranges", func(t *testing.T) {
		repo := &sessionRepoStub{}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)

		cases := []struct {
			name  string
			edit  func(*SessionInput)
			field string
		}{
			{"missing room", func(in *SessionInput) { in.RoomID = "" }, "roomId"},
			{"missing artist", func(in *SessionInput) { in.ArtistID = "" }, "artistId"},
			{"missing engineer", func(in *SessionInput) { in.EngineerID = "" }, "engineerId"},
			{"bad date", func(in *SessionInput) { in.Date = "15-03-2025" }, "date"},
			{"bad start time", func(in *SessionInput) { in.StartTime = "9am" }, "startTime"},
			{"end before start", func(in *SessionInput) { in.StartTime = "14:00"; in.EndTime = "12:00" }, "time"},
			{"zero length slot", func(in *SessionInput) { in.StartTime = "12:00"; in.EndTime = "12:00" }, "time"},
			{"unknown status", func(in *SessionInput) { in.Status = scheduler.Status("done") }, "status"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := validInput()
				tc.edit(&input)
				_, err := service.CreateSession(context.Background(), input)
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if _, ok := vErr.FieldErrors[tc.field]; !ok {
					t.Fatalf("expected field %q in %v", tc.field, vErr.FieldErrors)
				}
			})
		}
	})

	t.Run("records booking outcomes", func(t *testing.T) {
		repo := &sessionRepoStub{}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)
		recorder := &countingRecorder{}
		service.SetBookingRecorder(recorder)

		if _, err := service.CreateSession(context.Background(), validInput()); err != nil {
			t.Fatalf("CreateSession returned error: %v", err)
		}
		if _, err := service.CreateSession(context.Background(), validInput()); err == nil {
			t.Fatalf("expected conflict error on second booking")
		}
		if recorder.booked != 1 || recorder.conflicts != 1 {
			t.Fatalf("expected 1 booked and 1 conflict, got %d / %d", recorder.booked, recorder.conflicts)
		}
	})

	t.Run("serializes concurrent bookings of the same slot", func(t *testing.T) {
		repo := &sessionRepoStub{listDelay: 5 * time.Millisecond}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)

		const attempts = 8
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = service.CreateSession(context.Background(), validInput())
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			var unavailable *RoomUnavailableError
			if !errors.As(err, &unavailable) {
				t.Fatalf("unexpected error kind: %v", err)
			}
		}
		if succeeded != 1 {
			t.Fatalf("expected exactly one booking to win, got %d", succeeded)
		}
	})
}

type countingRecorder struct {
	booked    int
	conflicts int
}

func (r *countingRecorder) SessionBooked()   { r.booked++ }
func (r *countingRecorder) BookingConflict() { r.conflicts++ }

func TestUpdateSession(t *testing.T) {
	seed := func(t *testing.T) (*SessionService, Session) {
		t.Helper()
		repo := &sessionRepoStub{}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)
		session, err := service.CreateSession(context.Background(), validInput())
		if err != nil {
			t.Fatalf("seed CreateSession returned error: %v", err)
		}
		return service, session
	}

	strPtr := func(s string) *string { return &s }

	t.Run("merges only the provided fields", func(t *testing.T) {
		service, session := seed(t)

		updated, err := service.UpdateSession(context.Background(), session.ID, SessionPatch{
			Notes: Optional[string]{Set: true, Value: strPtr("overdub pass")},
		})
		if err != nil {
			t.Fatalf("UpdateSession returned error: %v", err)
		}
		if updated.Notes != "overdub pass" {
			t.Fatalf("expected notes to change, got %q", updated.Notes)
		}
		if updated.RoomID != session.RoomID || updated.StartTime != session.StartTime {
			t.Fatalf("untouched fields must survive the patch: %+v", updated)
		}
	})

	t.Run("null clears an optional reference", func(t *testing.T) {
		service, _ := seed(t)
		input := validInput()
		input.StartTime = "14:00"
		input.EndTime = "15:00"
		input.AlbumID = strPtr("album-1")
		session, err := service.CreateSession(context.Background(), input)
		if err != nil {
			t.Fatalf("seed CreateSession returned error: %v", err)
		}

		updated, err := service.UpdateSession(context.Background(), session.ID, SessionPatch{
			AlbumID: Optional[string]{Set: true, Value: nil},
		})
		if err != nil {
			t.Fatalf("UpdateSession returned error: %v", err)
		}
		if updated.AlbumID != nil {
			t.Fatalf("expected albumId cleared, got %v", *updated.AlbumID)
		}
	})

	t.Run("does not conflict with itself when the slot is unchanged", func(t *testing.T) {
		service, session := seed(t)

		if _, err := service.UpdateSession(context.Background(), session.ID, SessionPatch{
			EndTime: Optional[string]{Set: true, Value: strPtr("12:30")},
		}); err != nil {
			t.Fatalf("shrinking or extending into free time must succeed, got %v", err)
		}
	})

	t.Run("rechecks conflicts when the slot moves", func(t *testing.T) {
		service, session := seed(t)
		input := validInput()
		input.StartTime = "14:00"
		input.EndTime = "16:00"
		if _, err := service.CreateSession(context.Background(), input); err != nil {
			t.Fatalf("seed CreateSession returned error: %v", err)
		}

		_, err := service.UpdateSession(context.Background(), session.ID, SessionPatch{
			StartTime: Optional[string]{Set: true, Value: strPtr("15:00")},
			EndTime:   Optional[string]{Set: true, Value: strPtr("17:00")},
		})
		var unavailable *RoomUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("expected RoomUnavailableError, got %v", err)
		}
	})

	t.Run("rejects inverted merged time ranges", func(t *testing.T) {
		service, session := seed(t)

		_, err := service.UpdateSession(context.Background(), session.ID, SessionPatch{
			EndTime: Optional[string]{Set: true, Value: strPtr("09:00")},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["time"]; !ok {
			t.Fatalf("expected time field error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("returns not found for unknown sessions", func(t *testing.T) {
		service, _ := seed(t)
		_, err := service.UpdateSession(context.Background(), "missing", SessionPatch{})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSetSessionStatus(t *testing.T) {
	seed := func(t *testing.T, status scheduler.Status) (*SessionService, Session) {
		t.Helper()
		repo := &sessionRepoStub{}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)
		input := validInput()
		input.Status = status
		session, err := service.CreateSession(context.Background(), input)
		if err != nil {
			t.Fatalf("seed CreateSession returned error: %v", err)
		}
		return service, session
	}

	t.Run("walks the full lifecycle", func(t *testing.T) {
		service, session := seed(t, scheduler.StatusScheduled)

		for _, next := range []scheduler.Status{scheduler.StatusInProgress, scheduler.StatusCompleted} {
			updated, err := service.SetSessionStatus(context.Background(), session.ID, next)
			if err != nil {
				t.Fatalf("transition to %q returned error: %v", next, err)
			}
			if updated.Status != next {
				t.Fatalf("expected status %q, got %q", next, updated.Status)
			}
		}
	})

	t.Run("rejects illegal transitions", func(t *testing.T) {
		cases := []struct {
			name string
			from scheduler.Status
			to   scheduler.Status
		}{
			{"completed is terminal", scheduler.StatusCompleted, scheduler.StatusInProgress},
			{"cancelled is terminal", scheduler.StatusCancelled, scheduler.StatusScheduled},
			{"no skipping to completed", scheduler.StatusScheduled, scheduler.StatusCompleted},
			{"no rewinding in-progress", scheduler.StatusInProgress, scheduler.StatusScheduled},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				service, session := seed(t, tc.from)
				_, err := service.SetSessionStatus(context.Background(), session.ID, tc.to)
				var invalid *InvalidTransitionError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidTransitionError, got %v", err)
				}
				if invalid.From != tc.from || invalid.To != tc.to {
					t.Fatalf("unexpected edge in error: %+v", invalid)
				}
			})
		}
	})

	t.Run("rejects unknown status values", func(t *testing.T) {
		service, session := seed(t, scheduler.StatusScheduled)
		_, err := service.SetSessionStatus(context.Background(), session.ID, scheduler.Status("archived"))
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("serializes with concurrent cancellation and rebooking", func(t *testing.T) {
		repo := &gatedSessionRepo{
			sessionRepoStub: &sessionRepoStub{},
			entered:         make(chan struct{}),
			release:         make(chan struct{}),
		}
		service := NewSessionService(repo, sequentialIDs("session"), fixedNow)

		seeded, err := service.CreateSession(context.Background(), validInput())
		if err != nil {
			t.Fatalf("seed CreateSession returned error: %v", err)
		}

		// The first status change parks inside its read while holding the
		// booking lock. A cancel for the same session and a booking for the
		// same slot then have to queue behind it instead of interleaving.
		startDone := make(chan error, 1)
		go func() {
			_, err := service.SetSessionStatus(context.Background(), seeded.ID, scheduler.StatusInProgress)
			startDone <- err
		}()
		<-repo.entered

		cancelDone := make(chan error, 1)
		go func() {
			_, err := service.SetSessionStatus(context.Background(), seeded.ID, scheduler.StatusCancelled)
			cancelDone <- err
		}()
		bookDone := make(chan error, 1)
		go func() {
			_, err := service.CreateSession(context.Background(), validInput())
			bookDone <- err
		}()

		close(repo.release)
		if err := <-startDone; err != nil {
			t.Fatalf("transition to in-progress returned error: %v", err)
		}
		if err := <-cancelDone; err != nil {
			t.Fatalf("cancellation returned error: %v", err)
		}
		if err := <-bookDone; err != nil {
			var unavailable *RoomUnavailableError
			if !errors.As(err, &unavailable) {
				t.Fatalf("unexpected error kind from rebooking: %v", err)
			}
		}

		final, err := service.GetSession(context.Background(), seeded.ID)
		if err != nil {
			t.Fatalf("GetSession returned error: %v", err)
		}
		if final.Status != scheduler.StatusCancelled {
			t.Fatalf("cancelled session was resurrected to %q", final.Status)
		}

		input := validInput()
		sessions, err := service.ListSessions(context.Background(), SessionFilter{
			RoomID:   input.RoomID,
			DateFrom: input.Date,
			DateTo:   input.Date,
		})
		if err != nil {
			t.Fatalf("ListSessions returned error: %v", err)
		}
		live := 0
		for _, session := range sessions {
			if session.Status != scheduler.StatusCancelled {
				live++
			}
		}
		if live > 1 {
			t.Fatalf("expected at most one live session in the slot, got %d", live)
		}
	})
}

// gatedSessionRepo blocks the first read by id until released, keeping the
// caller parked mid-operation.
type gatedSessionRepo struct {
	*sessionRepoStub
	gate    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (r *gatedSessionRepo) GetSession(ctx context.Context, id string) (Session, error) {
	r.gate.Do(func() {
		close(r.entered)
		<-r.release
	})
	return r.sessionRepoStub.GetSession(ctx, id)
}

func TestCheckAvailability(t *testing.T) {
	repo := &sessionRepoStub{}
	service := NewSessionService(repo, sequentialIDs("session"), fixedNow)
	booked, err := service.CreateSession(context.Background(), validInput())
	if err != nil {
		t.Fatalf("seed CreateSession returned error: %v", err)
	}

	t.Run("reports a free slot", func(t *testing.T) {
		available, conflicts, err := service.CheckAvailability(context.Background(), AvailabilityQuery{
			RoomID:    "room-1",
			Date:      "2025-03-15",
			StartTime: "13:00",
			EndTime:   "14:00",
		})
		if err != nil {
			t.Fatalf("CheckAvailability returned error: %v", err)
		}
		if !available || len(conflicts) != 0 {
			t.Fatalf("expected free slot, got available=%v conflicts=%v", available, conflicts)
		}
	})

	t.Run("reports the overlapping sessions", func(t *testing.T) {
		available, conflicts, err := service.CheckAvailability(context.Background(), AvailabilityQuery{
			RoomID:    "room-1",
			Date:      "2025-03-15",
			StartTime: "11:00",
			EndTime:   "13:00",
		})
		if err != nil {
			t.Fatalf("CheckAvailability returned error: %v", err)
		}
		if available || len(conflicts) != 1 || conflicts[0].ID != booked.ID {
			t.Fatalf("expected one conflict with %s, got available=%v conflicts=%v", booked.ID, available, conflicts)
		}
	})

	t.Run("excludes a session from its own probe", func(t *testing.T) {
		available, conflicts, err := service.CheckAvailability(context.Background(), AvailabilityQuery{
			RoomID:    "room-1",
			Date:      "2025-03-15",
			StartTime: "10:00",
			EndTime:   "12:00",
			ExcludeID: booked.ID,
		})
		if err != nil {
			t.Fatalf("CheckAvailability returned error: %v", err)
		}
		if !available || len(conflicts) != 0 {
			t.Fatalf("expected excluded session to free the slot, got available=%v conflicts=%v", available, conflicts)
		}
	})

	t.Run("validates the probe itself", func(t *testing.T) {
		_, _, err := service.CheckAvailability(context.Background(), AvailabilityQuery{
			RoomID:    "room-1",
			Date:      "bad",
			StartTime: "10:00",
			EndTime:   "12:00",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestDeleteSession(t *testing.T) {
	repo := &sessionRepoStub{}
	service := NewSessionService(repo, sequentialIDs("session"), fixedNow)
	session, err := service.CreateSession(context.Background(), validInput())
	if err != nil {
		t.Fatalf("seed CreateSession returned error: %v", err)
	}

	if err := service.DeleteSession(context.Background(), session.ID); err != nil {
		t.Fatalf("DeleteSession returned error: %v", err)
	}
	if err := service.DeleteSession(context.Background(), session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	t.Run("deleted sessions no longer block the slot", func(t *testing.T) {
		if _, err := service.CreateSession(context.Background(), validInput()); err != nil {
			t.Fatalf("slot should be free after delete, got %v", err)
		}
	})
}
