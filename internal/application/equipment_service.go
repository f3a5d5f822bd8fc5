package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/sounddesk/internal/scheduler"
)

// EquipmentRepository captures the persistence operations needed by the service.
type EquipmentRepository interface {
	CreateEquipment(ctx context.Context, equipment Equipment) (Equipment, error)
	GetEquipment(ctx context.Context, id string) (Equipment, error)
	UpdateEquipment(ctx context.Context, equipment Equipment) (Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
	ListEquipment(ctx context.Context, filter EquipmentFilter) ([]Equipment, error)
}

// EquipmentService orchestrates validation and persistence for studio gear.
type EquipmentService struct {
	equipment   EquipmentRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEquipmentService constructs an equipment service with the provided dependencies.
func NewEquipmentService(equipment EquipmentRepository, idGenerator func() string, now func() time.Time) *EquipmentService {
	return NewEquipmentServiceWithLogger(equipment, idGenerator, now, nil)
}

// NewEquipmentServiceWithLogger constructs an equipment service with a specified logger.
func NewEquipmentServiceWithLogger(equipment EquipmentRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EquipmentService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EquipmentService{equipment: equipment, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *EquipmentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EquipmentService", operation, attrs...)
}

// CreateEquipment validates input and persists a new piece of gear.
func (s *EquipmentService) CreateEquipment(ctx context.Context, input EquipmentInput) (equipment Equipment, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateEquipment", "name", input.Name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("equipment_id", equipment.ID).InfoContext(ctx, "equipment created")
	}()

	vErr := validateEquipmentInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	createdAt := s.now()
	equipment = Equipment{
		ID:            s.idGenerator(),
		Name:          strings.TrimSpace(input.Name),
		Category:      input.Category,
		Brand:         strings.TrimSpace(input.Brand),
		Model:         strings.TrimSpace(input.Model),
		SerialNumber:  strings.TrimSpace(input.SerialNumber),
		PurchaseDate:  input.PurchaseDate,
		PurchasePrice: input.PurchasePrice,
		Condition:     input.Condition,
		RoomID:        input.RoomID,
		IsAvailable:   input.IsAvailable,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	var persisted Equipment
	persisted, err = s.equipment.CreateEquipment(ctx, equipment)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	equipment = persisted
	return
}

// UpdateEquipment validates input and replaces an existing piece of gear.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, input EquipmentInput) (equipment Equipment, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateEquipment", "equipment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "equipment updated")
	}()

	var existing Equipment
	existing, err = s.equipment.GetEquipment(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateEquipmentInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Category = input.Category
	updated.Brand = strings.TrimSpace(input.Brand)
	updated.Model = strings.TrimSpace(input.Model)
	updated.SerialNumber = strings.TrimSpace(input.SerialNumber)
	updated.PurchaseDate = input.PurchaseDate
	updated.PurchasePrice = input.PurchasePrice
	updated.Condition = input.Condition
	updated.RoomID = input.RoomID
	updated.IsAvailable = input.IsAvailable
	updated.UpdatedAt = s.now()

	var persisted Equipment
	persisted, err = s.equipment.UpdateEquipment(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	equipment = persisted
	return
}

// GetEquipment returns a single piece of gear by ID.
func (s *EquipmentService) GetEquipment(ctx context.Context, id string) (Equipment, error) {
	if s == nil {
		return Equipment{}, fmt.Errorf("EquipmentService is nil")
	}
	equipment, err := s.equipment.GetEquipment(ctx, id)
	if err != nil {
		return Equipment{}, mapRepoError(err)
	}
	return equipment, nil
}

// ListEquipment returns gear matching the filter, in store order.
func (s *EquipmentService) ListEquipment(ctx context.Context, filter EquipmentFilter) ([]Equipment, error) {
	if s == nil {
		return nil, fmt.Errorf("EquipmentService is nil")
	}
	if filter.Category != "" && !ValidEquipmentCategory(filter.Category) {
		vErr := &ValidationError{}
		vErr.add("category", "category is not a known equipment category")
		return nil, vErr
	}
	equipment, err := s.equipment.ListEquipment(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if equipment == nil {
		equipment = []Equipment{}
	}
	return equipment, nil
}

// DeleteEquipment removes a piece of gear permanently.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("EquipmentService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteEquipment", "equipment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "equipment deleted")
	}()

	if err = s.equipment.DeleteEquipment(ctx, id); err != nil {
		err = mapRepoError(err)
	}
	return
}

func validateEquipmentInput(input EquipmentInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if !ValidEquipmentCategory(input.Category) {
		vErr.add("category", "category is not a known equipment category")
	}
	if input.Condition != "" && !ValidEquipmentCondition(input.Condition) {
		vErr.add("condition", "condition must be one of excellent, good, fair, poor")
	}
	if input.PurchaseDate != "" && !scheduler.ValidDate(input.PurchaseDate) {
		vErr.add("purchaseDate", "purchaseDate must be formatted as YYYY-MM-DD")
	}
	if input.PurchasePrice < 0 {
		vErr.add("purchasePrice", "purchasePrice must not be negative")
	}
	return vErr
}
