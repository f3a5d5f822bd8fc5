package sqlite

import "github.com/example/sounddesk/internal/persistence"

// Clone helpers keep callers from aliasing pointer and slice fields of the
// in-memory records.

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneSession(session persistence.Session) persistence.Session {
	session.AlbumID = cloneString(session.AlbumID)
	session.TrackID = cloneString(session.TrackID)
	return session
}

func cloneRoom(room persistence.Room) persistence.Room {
	room.EquipmentIDs = cloneStrings(room.EquipmentIDs)
	return room
}

func cloneAlbum(album persistence.Album) persistence.Album {
	album.ReleaseDate = cloneString(album.ReleaseDate)
	return album
}

func cloneTrack(track persistence.Track) persistence.Track {
	track.BPM = cloneInt(track.BPM)
	track.Key = cloneString(track.Key)
	return track
}

func cloneEquipment(equipment persistence.Equipment) persistence.Equipment {
	equipment.RoomID = cloneString(equipment.RoomID)
	return equipment
}

func cloneInvoice(invoice persistence.Invoice) persistence.Invoice {
	invoice.SessionIDs = cloneStrings(invoice.SessionIDs)
	if invoice.Items != nil {
		items := make([]persistence.InvoiceItem, len(invoice.Items))
		copy(items, invoice.Items)
		invoice.Items = items
	}
	invoice.PaidDate = cloneString(invoice.PaidDate)
	return invoice
}
