package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/example/sounddesk/internal/persistence"
)

// Collection names double as the snapshot keys on disk. They match the
// storage keys of earlier versions of the application, so existing data
// files load unchanged.
const (
	collectionSessions  = "sounddesk_sessions"
	collectionRooms     = "sounddesk_rooms"
	collectionArtists   = "sounddesk_artists"
	collectionAlbums    = "sounddesk_albums"
	collectionTracks    = "sounddesk_tracks"
	collectionMembers   = "sounddesk_members"
	collectionEquipment = "sounddesk_equipment"
	collectionInvoices  = "sounddesk_invoices"
	collectionStudio    = "sounddesk_studio"
	collectionSettings  = "sounddesk_settings"
)

// Storage keeps every collection in memory and snapshots a collection to
// SQLite as a single JSON blob after each successful mutation. Collections
// are slices, so records keep their insertion order; lookups are linear,
// which is fine at the data volume of a single studio.
type Storage struct {
	mu sync.RWMutex
	db *sql.DB

	sessions  []persistence.Session
	rooms     []persistence.Room
	artists   []persistence.Artist
	albums    []persistence.Album
	tracks    []persistence.Track
	members   []persistence.Member
	equipment []persistence.Equipment
	invoices  []persistence.Invoice
	studio    *persistence.Studio
	settings  *persistence.Settings
}

// Open opens (creating if necessary) the snapshot database at path and loads
// all collections into memory.
func Open(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create collections table: %w", err)
	}

	s := &Storage{db: db}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) load() error {
	rows, err := s.db.Query(`SELECT name, payload FROM collections`)
	if err != nil {
		return fmt.Errorf("select collections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var payload []byte
		if err := rows.Scan(&name, &payload); err != nil {
			return fmt.Errorf("scan collection: %w", err)
		}

		switch name {
		case collectionSessions:
			err = json.Unmarshal(payload, &s.sessions)
		case collectionRooms:
			err = json.Unmarshal(payload, &s.rooms)
		case collectionArtists:
			err = json.Unmarshal(payload, &s.artists)
		case collectionAlbums:
			err = json.Unmarshal(payload, &s.albums)
		case collectionTracks:
			err = json.Unmarshal(payload, &s.tracks)
		case collectionMembers:
			err = json.Unmarshal(payload, &s.members)
		case collectionEquipment:
			err = json.Unmarshal(payload, &s.equipment)
		case collectionInvoices:
			err = json.Unmarshal(payload, &s.invoices)
		case collectionStudio:
			err = json.Unmarshal(payload, &s.studio)
		case collectionSettings:
			err = json.Unmarshal(payload, &s.settings)
		default:
			// Unknown collections are preserved on disk and ignored here.
		}
		if err != nil {
			return fmt.Errorf("decode collection %s: %w", name, err)
		}
	}
	return rows.Err()
}

// snapshotLocked writes the current value of one collection back to disk.
// Callers must hold the write lock.
func (s *Storage) snapshotLocked(ctx context.Context, name string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (name, payload) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		name, payload,
	); err != nil {
		return fmt.Errorf("snapshot collection %s: %w", name, err)
	}
	return nil
}
