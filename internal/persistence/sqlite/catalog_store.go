package sqlite

import (
	"context"

	"github.com/example/sounddesk/internal/persistence"
)

func removeAt[T any](records []T, i int) []T {
	out := make([]T, 0, len(records)-1)
	out = append(out, records[:i]...)
	out = append(out, records[i+1:]...)
	return out
}

// --- RoomRepository ---

// CreateRoom stores a new room.
func (s *Storage) CreateRoom(ctx context.Context, room persistence.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rooms {
		if existing.ID == room.ID {
			return persistence.ErrDuplicate
		}
	}
	s.rooms = append(s.rooms, cloneRoom(room))
	if err := s.snapshotLocked(ctx, collectionRooms, s.rooms); err != nil {
		s.rooms = s.rooms[:len(s.rooms)-1]
		return err
	}
	return nil
}

// UpdateRoom replaces an existing room.
func (s *Storage) UpdateRoom(ctx context.Context, room persistence.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.rooms {
		if existing.ID != room.ID {
			continue
		}
		s.rooms[i] = cloneRoom(room)
		if err := s.snapshotLocked(ctx, collectionRooms, s.rooms); err != nil {
			s.rooms[i] = existing
			return err
		}
		return nil
	}
	return persistence.ErrNotFound
}

// GetRoom retrieves a room by ID.
func (s *Storage) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, room := range s.rooms {
		if room.ID == id {
			return cloneRoom(room), nil
		}
	}
	return persistence.Room{}, persistence.ErrNotFound
}

// ListRooms returns rooms matching the filter in store order.
func (s *Storage) ListRooms(ctx context.Context, filter persistence.RoomFilter) ([]persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]persistence.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		if filter.Type != "" && room.Type != filter.Type {
			continue
		}
		if filter.IsAvailable != nil && room.IsAvailable != *filter.IsAvailable {
			continue
		}
		rooms = append(rooms, cloneRoom(room))
	}
	return rooms, nil
}

// DeleteRoom removes a room by ID.
func (s *Storage) DeleteRoom(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.rooms {
		if existing.ID != id {
			continue
		}
		remaining := removeAt(s.rooms, i)
		if err := s.snapshotLocked(ctx, collectionRooms, remaining); err != nil {
			return err
		}
		s.rooms = remaining
		return nil
	}
	return persistence.ErrNotFound
}

// --- ArtistRepository ---

// CreateArtist stores a new artist.
func (s *Storage) CreateArtist(ctx context.Context, artist persistence.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.artists {
		if existing.ID == artist.ID {
			return persistence.ErrDuplicate
		}
	}
	s.artists = append(s.artists, artist)
	if err := s.snapshotLocked(ctx, collectionArtists, s.artists); err != nil {
		s.artists = s.artists[:len(s.artists)-1]
		return err
	}
	return nil
}

// UpdateArtist replaces an existing artist.
func (s *Storage) UpdateArtist(ctx context.Context, artist persistence.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.artists {
		if existing.ID != artist.ID {
			continue
		}
		s.artists[i] = artist
		if err := s.snapshotLocked(ctx, collectionArtists, s.artists); err != nil {
			s.artists[i] = existing
			return err
		}
		return nil
	}
	return persistence.ErrNotFound
}

// GetArtist retrieves an artist by ID.
func (s *Storage) GetArtist(ctx context.Context, id string) (persistence.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, artist := range s.artists {
		if artist.ID == id {
			return artist, nil
		}
	}
	return persistence.Artist{}, persistence.ErrNotFound
}

// ListArtists returns all artists in store order.
func (s *Storage) ListArtists(ctx context.Context) ([]persistence.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artists := make([]persistence.Artist, len(s.artists))
	copy(artists, s.artists)
	return artists, nil
}

// DeleteArtist removes an artist by ID.
func (s *Storage) DeleteArtist(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.artists {
		if existing.ID != id {
			continue
		}
		remaining := removeAt(s.artists, i)
		if err := s.snapshotLocked(ctx, collectionArtists, remaining); err != nil {
			return err
		}
		s.artists = remaining
		return nil
	}
	return persistence.ErrNotFound
}

// --- AlbumRepository ---

// CreateAlbum stores a new album.
func (s *Storage) CreateAlbum(ctx context.Context, album persistence.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.albums {
		if existing.ID == album.ID {
			return persistence.ErrDuplicate
		}
	}
	s.albums = append(s.albums, cloneAlbum(album))
	if err := s.snapshotLocked(ctx, collectionAlbums, s.albums); err != nil {
		s.albums = s.albums[:len(s.albums)-1]
		return err
	}
	return nil
}

// UpdateAlbum replaces an existing album.
func (s *Storage) UpdateAlbum(ctx context.Context, album persistence.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.albums {
		if existing.ID != album.ID {
			continue
		}
		s.albums[i] = cloneAlbum(album)
		if err := s.snapshotLocked(ctx, collectionAlbums, s.albums); err != nil {
			s.albums[i] = existing
			return err
		}
		return nil
	}
	return persistence.ErrNotFound
}

// GetAlbum retrieves an album by ID.
func (s *Storage) GetAlbum(ctx context.Context, id string) (persistence.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, album := range s.albums {
		if album.ID == id {
			return cloneAlbum(album), nil
		}
	}
	return persistence.Album{}, persistence.ErrNotFound
}

// ListAlbums returns albums matching the filter in store order.
func (s *Storage) ListAlbums(ctx context.Context, filter persistence.AlbumFilter) ([]persistence.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	albums := make([]persistence.Album, 0, len(s.albums))
	for _, album := range s.albums {
		if filter.ArtistID != "" && album.ArtistID != filter.ArtistID {
			continue
		}
		if filter.Status != "" && album.Status != filter.Status {
			continue
		}
		albums = append(albums, cloneAlbum(album))
	}
	return albums, nil
}

// DeleteAlbum removes an album by ID.
func (s *Storage) DeleteAlbum(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.albums {
		if existing.ID != id {
			continue
		}
		remaining := removeAt(s.albums, i)
		if err := s.snapshotLocked(ctx, collectionAlbums, remaining); err != nil {
			return err
		}
		s.albums = remaining
		return nil
	}
	return persistence.ErrNotFound
}

// --- TrackRepository ---

// CreateTrack stores a new track.
func (s *Storage) CreateTrack(ctx context.Context, track persistence.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tracks {
		if existing.ID == track.ID {
			return persistence.ErrDuplicate
		}
	}
	s.tracks = append(s.tracks, cloneTrack(track))
	if err := s.snapshotLocked(ctx, collectionTracks, s.tracks); err != nil {
		s.tracks = s.tracks[:len(s.tracks)-1]
		return err
	}
	return nil
}

// UpdateTrack replaces an existing track.
func (s *Storage) UpdateTrack(ctx context.Context, track persistence.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.tracks {
		if existing.ID != track.ID {
			continue
		}
		s.tracks[i] = cloneTrack(track)
		if err := s.snapshotLocked(ctx, collectionTracks, s.tracks); err != nil {
			s.tracks[i] = existing
			return err
		}
		return nil
	}
	return persistence.ErrNotFound
}

// GetTrack retrieves a track by ID.
func (s *Storage) GetTrack(ctx context.Context, id string) (persistence.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, track := range s.tracks {
		if track.ID == id {
			return cloneTrack(track), nil
		}
	}
	return persistence.Track{}, persistence.ErrNotFound
}

// ListTracks returns tracks in store order, optionally limited to one album.
func (s *Storage) ListTracks(ctx context.Context, albumID string) ([]persistence.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tracks := make([]persistence.Track, 0, len(s.tracks))
	for _, track := range s.tracks {
		if albumID != "" && track.AlbumID != albumID {
			continue
		}
		tracks = append(tracks, cloneTrack(track))
	}
	return tracks, nil
}

// DeleteTrack removes a track by ID.
func (s *Storage) DeleteTrack(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.tracks {
		if existing.ID != id {
			continue
		}
		remaining := removeAt(s.tracks, i)
		if err := s.snapshotLocked(ctx, collectionTracks, remaining); err != nil {
			return err
		}
		s.tracks = remaining
		return nil
	}
	return persistence.ErrNotFound
}

// --- MemberRepository ---

// CreateMember stores a new staff member.
func (s *Storage) CreateMember(ctx context.Context, member persistence.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.members {
		if existing.ID == member.ID {
			return persistence.ErrDuplicate
		}
	}
	s.members = append(s.members, member)
	if err := s.snapshotLocked(ctx, collectionMembers, s.members); err != nil {
		s.members = s.members[:len(s.members)-1]
		return err
	}
	return nil
}

// UpdateMember replaces an existing staff member.
func (s *Storage) UpdateMember(ctx context.Context, member persistence.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.members {
		if existing.ID != member.ID {
			continue
		}
		s.members[i] = member
		if err := s.snapshotLocked(ctx, collectionMembers, s.members); err != nil {
			s.members[i] = existing
			return err
		}
		return nil
	}
	return persistence.ErrNotFound
}

// GetMember retrieves a staff member by ID.
func (s *Storage) GetMember(ctx context.Context, id string) (persistence.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, member := range s.members {
		if member.ID == id {
			return member, nil
		}
	}
	return persistence.Member{}, persistence.ErrNotFound
}

// ListMembers returns members in store order, optionally limited to a role.
func (s *Storage) ListMembers(ctx context.Context, role string) ([]persistence.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]persistence.Member, 0, len(s.members))
	for _, member := range s.members {
		if role != "" && member.Role != role {
			continue
		}
		members = append(members, member)
	}
	return members, nil
}

// DeleteMember removes a staff member by ID.
func (s *Storage) DeleteMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.members {
		if existing.ID != id {
			continue
		}
		remaining := removeAt(s.members, i)
		if err := s.snapshotLocked(ctx, collectionMembers, remaining); err != nil {
			return err
		}
		s.members = remaining
		return nil
	}
	return persistence.ErrNotFound
}

// --- EquipmentRepository ---

// CreateEquipment stores a new piece of gear.
func (s *Storage) CreateEquipment(ctx context.Context, equipment persistence.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.equipment {
		if existing.ID == equipment.ID {
			return persistence.ErrDuplicate
		}
	}
	s.equipment = append(s.equipment, cloneEquipment(equipment))
	if err := s.snapshotLocked(ctx, collectionEquipment, s.equipment); err != nil {
		s.equipment = s.equipment[:len(s.equipment)-1]
		return err
	}
	return nil
}

// UpdateEquipment replaces an existing piece of gear.
func (s *Storage) UpdateEquipment(ctx context.Context, equipment persistence.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.equipment {
		if existing.ID != equipment.ID {
			continue
		}
		s.equipment[i] = cloneEquipment(equipment)
		if err := s.snapshotLocked(ctx, collectionEquipment, s.equipment); err != nil {
			s.equipment[i] = existing
			return err
		}
		return nil
	}
	return persistence.ErrNotFound
}

// GetEquipment retrieves a piece of gear by ID.
func (s *Storage) GetEquipment(ctx context.Context, id string) (persistence.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, equipment := range s.equipment {
		if equipment.ID == id {
			return cloneEquipment(equipment), nil
		}
	}
	return persistence.Equipment{}, persistence.ErrNotFound
}

// ListEquipment returns gear matching the filter in store order.
func (s *Storage) ListEquipment(ctx context.Context, filter persistence.EquipmentFilter) ([]persistence.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	equipment := make([]persistence.Equipment, 0, len(s.equipment))
	for _, item := range s.equipment {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.RoomID != "" && (item.RoomID == nil || *item.RoomID != filter.RoomID) {
			continue
		}
		equipment = append(equipment, cloneEquipment(item))
	}
	return equipment, nil
}

// DeleteEquipment removes a piece of gear by ID.
func (s *Storage) DeleteEquipment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.equipment {
		if existing.ID != id {
			continue
		}
		remaining := removeAt(s.equipment, i)
		if err := s.snapshotLocked(ctx, collectionEquipment, remaining); err != nil {
			return err
		}
		s.equipment = remaining
		return nil
	}
	return persistence.ErrNotFound
}
