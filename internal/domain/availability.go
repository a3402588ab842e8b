package domain

import (
	"time"

	"github.com/google/uuid"
)

// IsAvailable reports whether [from, to] can be booked in the given room.
//
// The check is pure: it reads the supplied bookings and nothing else.
// Soft-deleted rows never conflict. A reversed interval (to before from) is
// never available. A degenerate probe (from and to on the same day) is
// available by definition; it backs the "is this day clickable as a
// check-in" case. Two intervals may abut on a single shared day: a new
// booking may start on another's check-out day and end on another's check-in
// day. Any interior overlap beyond that makes the interval unavailable.
func IsAvailable(roomID uuid.UUID, from, to time.Time, bookings []Booking) bool {
	if roomID == uuid.Nil {
		return false
	}
	if Midnight(to).Before(Midnight(from)) {
		return false
	}
	if SameDay(from, to) {
		return true
	}

	from = Midnight(from)
	to = Midnight(to)

	for i := range bookings {
		b := &bookings[i]
		if b.RoomID != roomID || b.Deleted() {
			continue
		}
		if !from.Before(Midnight(b.CheckOut)) || !to.After(Midnight(b.CheckIn)) {
			continue
		}
		// Interiors overlap; tolerate only the shared-boundary cases.
		if SameDay(to, b.CheckIn) || SameDay(from, b.CheckOut) {
			continue
		}
		return false
	}
	return true
}
