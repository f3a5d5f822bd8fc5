package application

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

type sessionDirectoryStub map[string]Session

func (d sessionDirectoryStub) GetSession(ctx context.Context, id string) (Session, error) {
	if session, ok := d[id]; ok {
		return session, nil
	}
	return Session{}, ErrNotFound
}

type roomDirectoryStub map[string]Room

func (d roomDirectoryStub) GetRoom(ctx context.Context, id string) (Room, error) {
	if room, ok := d[id]; ok {
		return room, nil
	}
	return Room{}, ErrNotFound
}

type memberDirectoryStub map[string]Member

func (d memberDirectoryStub) GetMember(ctx context.Context, id string) (Member, error) {
	if member, ok := d[id]; ok {
		return member, nil
	}
	return Member{}, ErrNotFound
}

type settingsStub struct {
	settings Settings
}

func (s settingsStub) GetSettings(ctx context.Context) (Settings, error) {
	return s.settings, nil
}

type invoiceRepoStub struct {
	invoices []Invoice
}

func (r *invoiceRepoStub) CreateInvoice(ctx context.Context, invoice Invoice) (Invoice, error) {
	r.invoices = append(r.invoices, invoice)
	return invoice, nil
}

func (r *invoiceRepoStub) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	for _, invoice := range r.invoices {
		if invoice.ID == id {
			return invoice, nil
		}
	}
	return Invoice{}, ErrNotFound
}

func (r *invoiceRepoStub) UpdateInvoice(ctx context.Context, invoice Invoice) (Invoice, error) {
	for i, existing := range r.invoices {
		if existing.ID == invoice.ID {
			r.invoices[i] = invoice
			return invoice, nil
		}
	}
	return Invoice{}, ErrNotFound
}

func (r *invoiceRepoStub) DeleteInvoice(ctx context.Context, id string) error {
	for i, existing := range r.invoices {
		if existing.ID == id {
			r.invoices = append(r.invoices[:i], r.invoices[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *invoiceRepoStub) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]Invoice, error) {
	matched := []Invoice{}
	for _, invoice := range r.invoices {
		if filter.ArtistID != "" && invoice.ArtistID != filter.ArtistID {
			continue
		}
		if filter.Status != "" && invoice.Status != filter.Status {
			continue
		}
		matched = append(matched, invoice)
	}
	return matched, nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func newBillingFixture() (*InvoiceService, *invoiceRepoStub) {
	sessions := sessionDirectoryStub{
		"session-1": {
			ID:         "session-1",
			RoomID:     "room-1",
			ArtistID:   "artist-1",
			EngineerID: "engineer-1",
			Date:       "2025-03-15",
			StartTime:  "10:00",
			EndTime:    "12:00",
		},
		"session-2": {
			ID:        "session-2",
			RoomID:    "room-1",
			ArtistID:  "artist-1",
			Date:      "2025-03-16",
			StartTime: "13:00",
			EndTime:   "14:30",
		},
		"session-orphan-room": {
			ID:        "session-orphan-room",
			RoomID:    "room-gone",
			Date:      "2025-03-17",
			StartTime: "10:00",
			EndTime:   "11:00",
		},
	}
	rooms := roomDirectoryStub{
		"room-1": {ID: "room-1", Name: "A", HourlyRate: 50000},
	}
	members := memberDirectoryStub{
		"engineer-1": {ID: "engineer-1", Name: "김엔지니어", HourlyRate: 30000},
	}
	settings := settingsStub{settings: Settings{DefaultCurrency: CurrencyKRW, TaxRate: 0.1}}
	repo := &invoiceRepoStub{}
	service := NewInvoiceService(repo, sessions, rooms, members, settings, sequentialIDs("invoice"), fixedNow)
	return service, repo
}

func TestCalculateFromSessions(t *testing.T) {
	service, _ := newBillingFixture()

	t.Run("bills room and engineer time with tax from settings", func(t *testing.T) {
		calc, err := service.CalculateFromSessions(context.Background(), []string{"session-1"})
		if err != nil {
			t.Fatalf("CalculateFromSessions returned error: %v", err)
		}
		if len(calc.Items) != 2 {
			t.Fatalf("expected room and engineer lines, got %+v", calc.Items)
		}
		if !almostEqual(calc.Items[0].Amount, 100000) {
			t.Fatalf("expected 2h room usage at 50000/h, got %v", calc.Items[0].Amount)
		}
		if !strings.Contains(calc.Items[0].Label, "2025-03-15 10:00-12:00") {
			t.Fatalf("room line must name the slot, got %q", calc.Items[0].Label)
		}
		if !almostEqual(calc.Items[1].Amount, 60000) {
			t.Fatalf("expected 2h engineer time at 30000/h, got %v", calc.Items[1].Amount)
		}
		if !almostEqual(calc.Subtotal, 160000) || !almostEqual(calc.Tax, 16000) || !almostEqual(calc.Total, 176000) {
			t.Fatalf("unexpected totals: %+v", calc)
		}
		if calc.Currency != CurrencyKRW {
			t.Fatalf("expected currency from settings, got %q", calc.Currency)
		}
	})

	t.Run("prorates fractional hours", func(t *testing.T) {
		calc, err := service.CalculateFromSessions(context.Background(), []string{"session-2"})
		if err != nil {
			t.Fatalf("CalculateFromSessions returned error: %v", err)
		}
		if len(calc.Items) != 1 {
			t.Fatalf("expected only a room line without an engineer, got %+v", calc.Items)
		}
		if !almostEqual(calc.Items[0].Amount, 75000) {
			t.Fatalf("expected 1.5h at 50000/h, got %v", calc.Items[0].Amount)
		}
	})

	t.Run("skips sessions and rooms that no longer exist", func(t *testing.T) {
		calc, err := service.CalculateFromSessions(context.Background(), []string{"missing", "session-orphan-room", "session-1"})
		if err != nil {
			t.Fatalf("CalculateFromSessions returned error: %v", err)
		}
		if len(calc.Items) != 2 {
			t.Fatalf("only the resolvable session should be billed, got %+v", calc.Items)
		}
	})

	t.Run("empty input yields an empty calculation", func(t *testing.T) {
		calc, err := service.CalculateFromSessions(context.Background(), nil)
		if err != nil {
			t.Fatalf("CalculateFromSessions returned error: %v", err)
		}
		if len(calc.Items) != 0 || !almostEqual(calc.Total, 0) {
			t.Fatalf("expected empty calculation, got %+v", calc)
		}
	})
}

func TestInvoiceCRUD(t *testing.T) {
	service, repo := newBillingFixture()

	t.Run("create defaults status and currency", func(t *testing.T) {
		invoice, err := service.CreateInvoice(context.Background(), InvoiceInput{
			ArtistID: "artist-1",
			Items:    []InvoiceItem{{Label: "A 룸 사용", Amount: 100000}},
			Subtotal: 100000,
			Tax:      10000,
			Total:    110000,
		})
		if err != nil {
			t.Fatalf("CreateInvoice returned error: %v", err)
		}
		if invoice.Status != InvoiceStatusDraft {
			t.Fatalf("expected draft default, got %q", invoice.Status)
		}
		if invoice.Currency != CurrencyKRW {
			t.Fatalf("expected settings currency, got %q", invoice.Currency)
		}
	})

	t.Run("rejects missing artist and unknown status", func(t *testing.T) {
		_, err := service.CreateInvoice(context.Background(), InvoiceInput{Status: InvoiceStatus("void")})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"artistId", "status"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field %q in %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("list filters by status", func(t *testing.T) {
		paidDate := "2025-03-20"
		if _, err := service.CreateInvoice(context.Background(), InvoiceInput{
			ArtistID: "artist-1",
			Status:   InvoiceStatusPaid,
			PaidDate: &paidDate,
		}); err != nil {
			t.Fatalf("CreateInvoice returned error: %v", err)
		}

		paid, err := service.ListInvoices(context.Background(), InvoiceFilter{Status: InvoiceStatusPaid})
		if err != nil {
			t.Fatalf("ListInvoices returned error: %v", err)
		}
		if len(paid) != 1 {
			t.Fatalf("expected one paid invoice, got %d", len(paid))
		}
		if len(repo.invoices) != 2 {
			t.Fatalf("expected two persisted invoices, got %d", len(repo.invoices))
		}
	})
}
