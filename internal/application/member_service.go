package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// MemberRepository captures the persistence operations needed by the service.
type MemberRepository interface {
	CreateMember(ctx context.Context, member Member) (Member, error)
	GetMember(ctx context.Context, id string) (Member, error)
	UpdateMember(ctx context.Context, member Member) (Member, error)
	DeleteMember(ctx context.Context, id string) error
	ListMembers(ctx context.Context, role string) ([]Member, error)
}

// MemberService orchestrates validation and persistence for staff members.
type MemberService struct {
	members     MemberRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewMemberService constructs a member service with the provided dependencies.
func NewMemberService(members MemberRepository, idGenerator func() string, now func() time.Time) *MemberService {
	return NewMemberServiceWithLogger(members, idGenerator, now, nil)
}

// NewMemberServiceWithLogger constructs a member service with a specified logger.
func NewMemberServiceWithLogger(members MemberRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *MemberService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MemberService{members: members, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *MemberService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MemberService", operation, attrs...)
}

// CreateMember validates input and persists a new staff member.
func (s *MemberService) CreateMember(ctx context.Context, input MemberInput) (member Member, err error) {
	if s == nil {
		err = fmt.Errorf("MemberService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateMember", "name", input.Name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create member", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("member_id", member.ID).InfoContext(ctx, "member created")
	}()

	vErr := validateMemberInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	speciality := input.Speciality
	if speciality == "" {
		speciality = SpecialityGeneral
	}

	createdAt := s.now()
	member = Member{
		ID:         s.idGenerator(),
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Role:       input.Role,
		Speciality: speciality,
		HourlyRate: input.HourlyRate,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	var persisted Member
	persisted, err = s.members.CreateMember(ctx, member)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	member = persisted
	return
}

// UpdateMember validates input and replaces an existing staff member.
func (s *MemberService) UpdateMember(ctx context.Context, id string, input MemberInput) (member Member, err error) {
	if s == nil {
		err = fmt.Errorf("MemberService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateMember", "member_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update member", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "member updated")
	}()

	var existing Member
	existing, err = s.members.GetMember(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateMemberInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Email = strings.TrimSpace(input.Email)
	updated.Phone = strings.TrimSpace(input.Phone)
	updated.Role = input.Role
	if input.Speciality != "" {
		updated.Speciality = input.Speciality
	}
	updated.HourlyRate = input.HourlyRate
	updated.UpdatedAt = s.now()

	var persisted Member
	persisted, err = s.members.UpdateMember(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	member = persisted
	return
}

// GetMember returns a single staff member by ID.
func (s *MemberService) GetMember(ctx context.Context, id string) (Member, error) {
	if s == nil {
		return Member{}, fmt.Errorf("MemberService is nil")
	}
	member, err := s.members.GetMember(ctx, id)
	if err != nil {
		return Member{}, mapRepoError(err)
	}
	return member, nil
}

// ListMembers returns staff in store order, optionally filtered by role.
func (s *MemberService) ListMembers(ctx context.Context, role string) ([]Member, error) {
	if s == nil {
		return nil, fmt.Errorf("MemberService is nil")
	}
	if role != "" && !ValidMemberRole(MemberRole(role)) {
		vErr := &ValidationError{}
		vErr.add("role", "role must be one of owner, engineer, assistant, intern")
		return nil, vErr
	}
	members, err := s.members.ListMembers(ctx, role)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if members == nil {
		members = []Member{}
	}
	return members, nil
}

// DeleteMember removes a staff member permanently.
func (s *MemberService) DeleteMember(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("MemberService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteMember", "member_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete member", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "member deleted")
	}()

	if err = s.members.DeleteMember(ctx, id); err != nil {
		err = mapRepoError(err)
	}
	return
}

func validateMemberInput(input MemberInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if !ValidMemberRole(input.Role) {
		vErr.add("role", "role must be one of owner, engineer, assistant, intern")
	}
	if input.Speciality != "" && !ValidMemberSpeciality(input.Speciality) {
		vErr.add("speciality", "speciality must be one of recording, mixing, mastering, general")
	}
	if input.HourlyRate < 0 {
		vErr.add("hourlyRate", "hourlyRate must not be negative")
	}
	return vErr
}
