package scheduler

// Booking is the slice of a studio session relevant to room availability:
// which room, which calendar day, and which time-of-day window it occupies.
type Booking struct {
	ID        string
	RoomID    string
	Date      string // YYYY-MM-DD
	StartTime string // HH:mm
	EndTime   string // HH:mm
	Cancelled bool
}

// Slot describes a candidate reservation window to test against existing
// bookings.
type Slot struct {
	RoomID    string
	Date      string
	StartTime string
	EndTime   string
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Inputs are zero-padded HH:mm strings, which order
// lexicographically the same way they order chronologically, so no parsing
// happens on this path.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// DetectConflicts returns the bookings that block the candidate slot.
//
// Only bookings in the same room on the same date are considered. Cancelled
// bookings never block, and the booking identified by excludeID is skipped so
// an update is not compared against its own prior version. Bookings that abut
// the slot boundary do not conflict. The result is always non-nil.
func DetectConflicts(existing []Booking, slot Slot, excludeID string) []Booking {
	conflicts := make([]Booking, 0)
	for _, booking := range existing {
		if booking.RoomID != slot.RoomID || booking.Date != slot.Date {
			continue
		}
		if booking.Cancelled {
			continue
		}
		if excludeID != "" && booking.ID == excludeID {
			continue
		}
		if Overlaps(booking.StartTime, booking.EndTime, slot.StartTime, slot.EndTime) {
			conflicts = append(conflicts, booking)
		}
	}
	return conflicts
}
