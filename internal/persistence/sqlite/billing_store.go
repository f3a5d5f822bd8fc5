package sqlite

import (
	"context"

	"github.com/example/sounddesk/internal/persistence"
)

// --- InvoiceRepository ---

// CreateInvoice stores a new invoice.
func (s *Storage) CreateInvoice(ctx context.Context, invoice persistence.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.invoices {
		if existing.ID == invoice.ID {
			return persistence.ErrDuplicate
		}
	}
	s.invoices = append(s.invoices, cloneInvoice(invoice))
	if err := s.snapshotLocked(ctx, collectionInvoices, s.invoices); err != nil {
		s.invoices = s.invoices[:len(s.invoices)-1]
		return err
	}
	return nil
}

// UpdateInvoice replaces an existing invoice.
func (s *Storage) UpdateInvoice(ctx context.Context, invoice persistence.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.invoices {
		if existing.ID != invoice.ID {
			continue
		}
		s.invoices[i] = cloneInvoice(invoice)
		if err := s.snapshotLocked(ctx, collectionInvoices, s.invoices); err != nil {
			s.invoices[i] = existing
			return err
		}
		return nil
	}
	return persistence.ErrNotFound
}

// GetInvoice retrieves an invoice by ID.
func (s *Storage) GetInvoice(ctx context.Context, id string) (persistence.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, invoice := range s.invoices {
		if invoice.ID == id {
			return cloneInvoice(invoice), nil
		}
	}
	return persistence.Invoice{}, persistence.ErrNotFound
}

// ListInvoices returns invoices matching the filter in store order.
func (s *Storage) ListInvoices(ctx context.Context, filter persistence.InvoiceFilter) ([]persistence.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := make([]persistence.Invoice, 0, len(s.invoices))
	for _, invoice := range s.invoices {
		if filter.ArtistID != "" && invoice.ArtistID != filter.ArtistID {
			continue
		}
		if filter.Status != "" && invoice.Status != filter.Status {
			continue
		}
		invoices = append(invoices, cloneInvoice(invoice))
	}
	return invoices, nil
}

// DeleteInvoice removes an invoice by ID.
func (s *Storage) DeleteInvoice(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.invoices {
		if existing.ID != id {
			continue
		}
		remaining := removeAt(s.invoices, i)
		if err := s.snapshotLocked(ctx, collectionInvoices, remaining); err != nil {
			return err
		}
		s.invoices = remaining
		return nil
	}
	return persistence.ErrNotFound
}

// --- SingletonRepository ---

// GetStudio returns the studio profile singleton.
func (s *Storage) GetStudio(ctx context.Context) (persistence.Studio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.studio == nil {
		return persistence.Studio{}, persistence.ErrNotFound
	}
	return *s.studio, nil
}

// PutStudio stores the studio profile singleton.
func (s *Storage) PutStudio(ctx context.Context, studio persistence.Studio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.studio
	s.studio = &studio
	if err := s.snapshotLocked(ctx, collectionStudio, s.studio); err != nil {
		s.studio = previous
		return err
	}
	return nil
}

// GetSettings returns the billing settings singleton.
func (s *Storage) GetSettings(ctx context.Context) (persistence.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return persistence.Settings{}, persistence.ErrNotFound
	}
	return *s.settings, nil
}

// PutSettings stores the billing settings singleton.
func (s *Storage) PutSettings(ctx context.Context, settings persistence.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.settings
	s.settings = &settings
	if err := s.snapshotLocked(ctx, collectionSettings, s.settings); err != nil {
		s.settings = previous
		return err
	}
	return nil
}
