package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/sounddesk/internal/persistence"
)

// RoomRepository captures the persistence operations needed by the service.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	UpdateRoom(ctx context.Context, room Room) (Room, error)
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context, filter RoomFilter) ([]Room, error)
}

// RoomService orchestrates validation and persistence for studio rooms.
type RoomService struct {
	rooms       RoomRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(rooms RoomRepository, idGenerator func() string, now func() time.Time) *RoomService {
	return NewRoomServiceWithLogger(rooms, idGenerator, now, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(rooms RoomRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RoomService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{rooms: rooms, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom validates input and persists a new room.
func (s *RoomService) CreateRoom(ctx context.Context, input RoomInput) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom", "name", input.Name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	vErr := validateRoomInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	createdAt := s.now()
	room = Room{
		ID:           s.idGenerator(),
		StudioID:     input.StudioID,
		Name:         strings.TrimSpace(input.Name),
		Type:         input.Type,
		HourlyRate:   input.HourlyRate,
		Capacity:     input.Capacity,
		EquipmentIDs: append([]string(nil), input.EquipmentIDs...),
		IsAvailable:  input.IsAvailable,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}

	var persisted Room
	persisted, err = s.rooms.CreateRoom(ctx, room)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	room = persisted
	return
}

// UpdateRoom validates input and replaces an existing room.
func (s *RoomService) UpdateRoom(ctx context.Context, id string, input RoomInput) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateRoom", "room_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room updated")
	}()

	var existing Room
	existing, err = s.rooms.GetRoom(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateRoomInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.StudioID = input.StudioID
	updated.Name = strings.TrimSpace(input.Name)
	updated.Type = input.Type
	updated.HourlyRate = input.HourlyRate
	updated.Capacity = input.Capacity
	updated.EquipmentIDs = append([]string(nil), input.EquipmentIDs...)
	updated.IsAvailable = input.IsAvailable
	updated.UpdatedAt = s.now()

	var persisted Room
	persisted, err = s.rooms.UpdateRoom(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	room = persisted
	return
}

// GetRoom returns a single room by ID.
func (s *RoomService) GetRoom(ctx context.Context, id string) (Room, error) {
	if s == nil {
		return Room{}, fmt.Errorf("RoomService is nil")
	}
	room, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return Room{}, mapRepoError(err)
	}
	return room, nil
}

// ListRooms returns rooms matching the filter, in store order.
func (s *RoomService) ListRooms(ctx context.Context, filter RoomFilter) ([]Room, error) {
	if s == nil {
		return nil, fmt.Errorf("RoomService is nil")
	}
	if filter.Type != "" && !ValidRoomType(filter.Type) {
		vErr := &ValidationError{}
		vErr.add("type", "type must be one of recording, mixing, mastering, rehearsal")
		return nil, vErr
	}
	rooms, err := s.rooms.ListRooms(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if rooms == nil {
		rooms = []Room{}
	}
	return rooms, nil
}

// DeleteRoom removes a room permanently.
func (s *RoomService) DeleteRoom(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("RoomService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteRoom", "room_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room deleted")
	}()

	if err = s.rooms.DeleteRoom(ctx, id); err != nil {
		err = mapRepoError(err)
	}
	return
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if !ValidRoomType(input.Type) {
		vErr.add("type", "type must be one of recording, mixing, mastering, rehearsal")
	}
	if input.HourlyRate < 0 {
		vErr.add("hourlyRate", "hourlyRate must not be negative")
	}
	if input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}
	return vErr
}

// mapRepoError translates persistence sentinels into service errors. It is
// shared by the catalog services; the session service keeps its own variant.
func mapRepoError(err error) error {
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
