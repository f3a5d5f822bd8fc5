package sqlite

import (
	"context"

	"github.com/example/sounddesk/internal/persistence"
)

// CreateSession appends a new session to the collection.
func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sessions {
		if existing.ID == session.ID {
			return persistence.ErrDuplicate
		}
	}

	s.sessions = append(s.sessions, cloneSession(session))
	if err := s.snapshotLocked(ctx, collectionSessions, s.sessions); err != nil {
		s.sessions = s.sessions[:len(s.sessions)-1]
		return err
	}
	return nil
}

// UpdateSession replaces an existing session in place.
func (s *Storage) UpdateSession(ctx context.Context, session persistence.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.sessions {
		if existing.ID != session.ID {
			continue
		}
		s.sessions[i] = cloneSession(session)
		if err := s.snapshotLocked(ctx, collectionSessions, s.sessions); err != nil {
			s.sessions[i] = existing
			return err
		}
		return nil
	}
	return persistence.ErrNotFound
}

// GetSession retrieves a session by ID.
func (s *Storage) GetSession(ctx context.Context, id string) (persistence.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, session := range s.sessions {
		if session.ID == id {
			return cloneSession(session), nil
		}
	}
	return persistence.Session{}, persistence.ErrNotFound
}

// ListSessions returns sessions matching the filter in store order.
func (s *Storage) ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]persistence.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		if matchesSessionFilter(session, filter) {
			sessions = append(sessions, cloneSession(session))
		}
	}
	return sessions, nil
}

// DeleteSession removes a session by ID regardless of its status.
func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.sessions {
		if existing.ID != id {
			continue
		}
		remaining := make([]persistence.Session, 0, len(s.sessions)-1)
		remaining = append(remaining, s.sessions[:i]...)
		remaining = append(remaining, s.sessions[i+1:]...)
		if err := s.snapshotLocked(ctx, collectionSessions, remaining); err != nil {
			return err
		}
		s.sessions = remaining
		return nil
	}
	return persistence.ErrNotFound
}

func matchesSessionFilter(session persistence.Session, filter persistence.SessionFilter) bool {
	if filter.RoomID != "" && session.RoomID != filter.RoomID {
		return false
	}
	if filter.ArtistID != "" && session.ArtistID != filter.ArtistID {
		return false
	}
	if filter.EngineerID != "" && session.EngineerID != filter.EngineerID {
		return false
	}
	if filter.Status != "" && session.Status != filter.Status {
		return false
	}
	if filter.DateFrom != "" && session.Date < filter.DateFrom {
		return false
	}
	if filter.DateTo != "" && session.Date > filter.DateTo {
		return false
	}
	return true
}
