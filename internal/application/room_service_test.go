package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/sounddesk/internal/persistence"
)

type roomRepoStub struct {
	rooms []Room
}

func (r *roomRepoStub) CreateRoom(ctx context.Context, room Room) (Room, error) {
	for _, existing := range r.rooms {
		if existing.ID == room.ID {
			return Room{}, persistence.ErrDuplicate
		}
	}
	r.rooms = append(r.rooms, room)
	return room, nil
}

func (r *roomRepoStub) GetRoom(ctx context.Context, id string) (Room, error) {
	for _, existing := range r.rooms {
		if existing.ID == id {
			return existing, nil
		}
	}
	return Room{}, persistence.ErrNotFound
}

func (r *roomRepoStub) UpdateRoom(ctx context.Context, room Room) (Room, error) {
	for i, existing := range r.rooms {
		if existing.ID == room.ID {
			r.rooms[i] = room
			return room, nil
		}
	}
	return Room{}, persistence.ErrNotFound
}

func (r *roomRepoStub) DeleteRoom(ctx context.Context, id string) error {
	for i, existing := range r.rooms {
		if existing.ID == id {
			r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *roomRepoStub) ListRooms(ctx context.Context, filter RoomFilter) ([]Room, error) {
	matched := []Room{}
	for _, room := range r.rooms {
		if filter.Type != "" && room.Type != filter.Type {
			continue
		}
		if filter.IsAvailable != nil && room.IsAvailable != *filter.IsAvailable {
			continue
		}
		matched = append(matched, room)
	}
	return matched, nil
}

func TestRoomService(t *testing.T) {
	newService := func() (*RoomService, *roomRepoStub) {
		repo := &roomRepoStub{}
		return NewRoomService(repo, sequentialIDs("room"), fixedNow), repo
	}

	input := RoomInput{
		StudioID:    "studio-1",
		Name:        "  A  ",
		Type:        RoomTypeRecording,
		HourlyRate:  50000,
		Capacity:    8,
		IsAvailable: true,
	}

	t.Run("create trims the name and stamps timestamps", func(t *testing.T) {
		service, _ := newService()
		room, err := service.CreateRoom(context.Background(), input)
		if err != nil {
			t.Fatalf("CreateRoom returned error: %v", err)
		}
		if room.Name != "A" {
			t.Fatalf("expected trimmed name, got %q", room.Name)
		}
		if !room.CreatedAt.Equal(fixedNow()) {
			t.Fatalf("expected injected clock timestamp, got %v", room.CreatedAt)
		}
	})

	t.Run("create rejects bad input", func(t *testing.T) {
		service, _ := newService()
		bad := input
		bad.Name = " "
		bad.Type = RoomType("garage")
		bad.Capacity = 0
		bad.HourlyRate = -1

		_, err := service.CreateRoom(context.Background(), bad)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "type", "capacity", "hourlyRate"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field %q in %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("update replaces fields and bumps updatedAt", func(t *testing.T) {
		service, _ := newService()
		room, err := service.CreateRoom(context.Background(), input)
		if err != nil {
			t.Fatalf("CreateRoom returned error: %v", err)
		}

		changed := input
		changed.Name = "B"
		changed.Type = RoomTypeMixing
		updated, err := service.UpdateRoom(context.Background(), room.ID, changed)
		if err != nil {
			t.Fatalf("UpdateRoom returned error: %v", err)
		}
		if updated.Name != "B" || updated.Type != RoomTypeMixing {
			t.Fatalf("unexpected room after update: %+v", updated)
		}
	})

	t.Run("get and delete map missing rooms to not found", func(t *testing.T) {
		service, _ := newService()
		if _, err := service.GetRoom(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := service.DeleteRoom(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list rejects unknown type filters", func(t *testing.T) {
		service, _ := newService()
		_, err := service.ListRooms(context.Background(), RoomFilter{Type: RoomType("vault")})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}
