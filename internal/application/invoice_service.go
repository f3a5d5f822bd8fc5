package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/sounddesk/internal/scheduler"
)

// InvoiceRepository captures the persistence operations needed by the service.
type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, invoice Invoice) (Invoice, error)
	GetInvoice(ctx context.Context, id string) (Invoice, error)
	UpdateInvoice(ctx context.Context, invoice Invoice) (Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
}

// SessionDirectory exposes session lookups for billing.
type SessionDirectory interface {
	GetSession(ctx context.Context, id string) (Session, error)
}

// RoomDirectory exposes room lookups for billing.
type RoomDirectory interface {
	GetRoom(ctx context.Context, id string) (Room, error)
}

// MemberDirectory exposes staff lookups for billing.
type MemberDirectory interface {
	GetMember(ctx context.Context, id string) (Member, error)
}

// SettingsProvider exposes the billing defaults.
type SettingsProvider interface {
	GetSettings(ctx context.Context) (Settings, error)
}

// InvoiceService orchestrates billing: invoice CRUD plus deriving line items
// from booked sessions.
type InvoiceService struct {
	invoices    InvoiceRepository
	sessions    SessionDirectory
	rooms       RoomDirectory
	members     MemberDirectory
	settings    SettingsProvider
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewInvoiceService wires dependencies for invoice operations.
func NewInvoiceService(invoices InvoiceRepository, sessions SessionDirectory, rooms RoomDirectory, members MemberDirectory, settings SettingsProvider, idGenerator func() string, now func() time.Time) *InvoiceService {
	return NewInvoiceServiceWithLogger(invoices, sessions, rooms, members, settings, idGenerator, now, nil)
}

// NewInvoiceServiceWithLogger constructs an invoice service with a specified logger.
func NewInvoiceServiceWithLogger(invoices InvoiceRepository, sessions SessionDirectory, rooms RoomDirectory, members MemberDirectory, settings SettingsProvider, idGenerator func() string, now func() time.Time, logger *slog.Logger) *InvoiceService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &InvoiceService{
		invoices:    invoices,
		sessions:    sessions,
		rooms:       rooms,
		members:     members,
		settings:    settings,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *InvoiceService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "InvoiceService", operation, attrs...)
}

// CalculateFromSessions derives billable line items from the given sessions.
// Each resolvable session contributes a room usage line, plus an engineer
// line when the assigned engineer is on file. Sessions or rooms that no
// longer exist are skipped rather than failing the whole calculation. Tax
// and currency come from the studio settings.
func (s *InvoiceService) CalculateFromSessions(ctx context.Context, sessionIDs []string) (calc InvoiceCalculation, err error) {
	if s == nil {
		err = fmt.Errorf("InvoiceService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CalculateFromSessions", "session_count", len(sessionIDs))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to calculate invoice", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "invoice calculated", "item_count", len(calc.Items), "total", calc.Total)
	}()

	items := []InvoiceItem{}
	for _, sessionID := range sessionIDs {
		var session Session
		session, err = s.sessions.GetSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				err = nil
				continue
			}
			return
		}

		var room Room
		room, err = s.rooms.GetRoom(ctx, session.RoomID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				err = nil
				continue
			}
			return
		}

		hours := float64(scheduler.DurationMinutes(session.StartTime, session.EndTime)) / 60
		items = append(items, InvoiceItem{
			Label:  fmt.Sprintf("%s 룸 사용 (%s %s-%s)", room.Name, session.Date, session.StartTime, session.EndTime),
			Amount: room.HourlyRate * hours,
		})

		if session.EngineerID == "" {
			continue
		}
		var engineer Member
		engineer, err = s.members.GetMember(ctx, session.EngineerID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				err = nil
				continue
			}
			return
		}
		items = append(items, InvoiceItem{
			Label:  fmt.Sprintf("%s 엔지니어 비용", engineer.Name),
			Amount: engineer.HourlyRate * hours,
		})
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Amount
	}

	var settings Settings
	settings, err = s.settings.GetSettings(ctx)
	if err != nil {
		return
	}

	tax := subtotal * settings.TaxRate
	calc = InvoiceCalculation{
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
		Currency: settings.DefaultCurrency,
	}
	return
}

// CreateInvoice validates input and persists a new invoice. Empty status and
// currency fall back to draft and the studio's default currency.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input InvoiceInput) (invoice Invoice, err error) {
	if s == nil {
		err = fmt.Errorf("InvoiceService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateInvoice", "artist_id", input.ArtistID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create invoice", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("invoice_id", invoice.ID).InfoContext(ctx, "invoice created")
	}()

	vErr := validateInvoiceInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	status := input.Status
	if status == "" {
		status = InvoiceStatusDraft
	}
	currency := input.Currency
	if currency == "" {
		var settings Settings
		settings, err = s.settings.GetSettings(ctx)
		if err != nil {
			return
		}
		currency = settings.DefaultCurrency
	}

	createdAt := s.now()
	invoice = Invoice{
		ID:         s.idGenerator(),
		ArtistID:   input.ArtistID,
		SessionIDs: append([]string(nil), input.SessionIDs...),
		Items:      append([]InvoiceItem(nil), input.Items...),
		Subtotal:   input.Subtotal,
		Tax:        input.Tax,
		Total:      input.Total,
		Currency:   currency,
		Status:     status,
		DueDate:    input.DueDate,
		PaidDate:   input.PaidDate,
		Notes:      strings.TrimSpace(input.Notes),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	var persisted Invoice
	persisted, err = s.invoices.CreateInvoice(ctx, invoice)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	invoice = persisted
	return
}

// UpdateInvoice validates input and replaces an existing invoice.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, input InvoiceInput) (invoice Invoice, err error) {
	if s == nil {
		err = fmt.Errorf("InvoiceService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateInvoice", "invoice_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update invoice", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "invoice updated")
	}()

	var existing Invoice
	existing, err = s.invoices.GetInvoice(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateInvoiceInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.ArtistID = input.ArtistID
	updated.SessionIDs = append([]string(nil), input.SessionIDs...)
	updated.Items = append([]InvoiceItem(nil), input.Items...)
	updated.Subtotal = input.Subtotal
	updated.Tax = input.Tax
	updated.Total = input.Total
	if input.Currency != "" {
		updated.Currency = input.Currency
	}
	if input.Status != "" {
		updated.Status = input.Status
	}
	updated.DueDate = input.DueDate
	updated.PaidDate = input.PaidDate
	updated.Notes = strings.TrimSpace(input.Notes)
	updated.UpdatedAt = s.now()

	var persisted Invoice
	persisted, err = s.invoices.UpdateInvoice(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	invoice = persisted
	return
}

// GetInvoice returns a single invoice by ID.
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	if s == nil {
		return Invoice{}, fmt.Errorf("InvoiceService is nil")
	}
	invoice, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return Invoice{}, mapRepoError(err)
	}
	return invoice, nil
}

// ListInvoices returns invoices matching the filter, in store order.
func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]Invoice, error) {
	if s == nil {
		return nil, fmt.Errorf("InvoiceService is nil")
	}
	if filter.Status != "" && !ValidInvoiceStatus(filter.Status) {
		vErr := &ValidationError{}
		vErr.add("status", "status must be one of draft, sent, paid, overdue, cancelled")
		return nil, vErr
	}
	invoices, err := s.invoices.ListInvoices(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if invoices == nil {
		invoices = []Invoice{}
	}
	return invoices, nil
}

// DeleteInvoice removes an invoice permanently.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("InvoiceService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteInvoice", "invoice_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete invoice", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "invoice deleted")
	}()

	if err = s.invoices.DeleteInvoice(ctx, id); err != nil {
		err = mapRepoError(err)
	}
	return
}

func validateInvoiceInput(input InvoiceInput) *ValidationError {
	vErr := &ValidationError{}
	if input.ArtistID == "" {
		vErr.add("artistId", "artistId is required")
	}
	if input.Status != "" && !ValidInvoiceStatus(input.Status) {
		vErr.add("status", "status must be one of draft, sent, paid, overdue, cancelled")
	}
	if input.Currency != "" && !ValidCurrency(input.Currency) {
		vErr.add("currency", "currency must be KRW or USD")
	}
	if input.DueDate != "" && !scheduler.ValidDate(input.DueDate) {
		vErr.add("dueDate", "dueDate must be formatted as YYYY-MM-DD")
	}
	if input.PaidDate != nil && !scheduler.ValidDate(*input.PaidDate) {
		vErr.add("paidDate", "paidDate must be formatted as YYYY-MM-DD")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Label) == "" {
			vErr.add("items", "every item needs a label")
			break
		}
	}
	return vErr
}
