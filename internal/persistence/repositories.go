package persistence

import "context"

// SessionRepository stores room reservations.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	UpdateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// RoomRepository exposes CRUD operations for rooms.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context, filter RoomFilter) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// ArtistRepository exposes CRUD operations for artists.
type ArtistRepository interface {
	CreateArtist(ctx context.Context, artist Artist) error
	UpdateArtist(ctx context.Context, artist Artist) error
	GetArtist(ctx context.Context, id string) (Artist, error)
	ListArtists(ctx context.Context) ([]Artist, error)
	DeleteArtist(ctx context.Context, id string) error
}

// AlbumRepository exposes CRUD operations for albums.
type AlbumRepository interface {
	CreateAlbum(ctx context.Context, album Album) error
	UpdateAlbum(ctx context.Context, album Album) error
	GetAlbum(ctx context.Context, id string) (Album, error)
	ListAlbums(ctx context.Context, filter AlbumFilter) ([]Album, error)
	DeleteAlbum(ctx context.Context, id string) error
}

// TrackRepository exposes CRUD operations for tracks.
type TrackRepository interface {
	CreateTrack(ctx context.Context, track Track) error
	UpdateTrack(ctx context.Context, track Track) error
	GetTrack(ctx context.Context, id string) (Track, error)
	ListTracks(ctx context.Context, albumID string) ([]Track, error)
	DeleteTrack(ctx context.Context, id string) error
}

// MemberRepository exposes CRUD operations for staff members.
type MemberRepository interface {
	CreateMember(ctx context.Context, member Member) error
	UpdateMember(ctx context.Context, member Member) error
	GetMember(ctx context.Context, id string) (Member, error)
	ListMembers(ctx context.Context, role string) ([]Member, error)
	DeleteMember(ctx context.Context, id string) error
}

// EquipmentRepository exposes CRUD operations for studio gear.
type EquipmentRepository interface {
	CreateEquipment(ctx context.Context, equipment Equipment) error
	UpdateEquipment(ctx context.Context, equipment Equipment) error
	GetEquipment(ctx context.Context, id string) (Equipment, error)
	ListEquipment(ctx context.Context, filter EquipmentFilter) ([]Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

// InvoiceRepository exposes CRUD operations for invoices.
type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, invoice Invoice) error
	UpdateInvoice(ctx context.Context, invoice Invoice) error
	GetInvoice(ctx context.Context, id string) (Invoice, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
}

// SingletonRepository stores the studio profile and billing settings, each a
// single object rather than a collection.
type SingletonRepository interface {
	GetStudio(ctx context.Context) (Studio, error)
	PutStudio(ctx context.Context, studio Studio) error
	GetSettings(ctx context.Context) (Settings, error)
	PutSettings(ctx context.Context, settings Settings) error
}
