package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingOnDay returns the non-deleted booking of the room whose inclusive
// [check-in, check-out] range contains the cell's day, or nil. By the
// no-interior-overlap invariant there is at most one, except on a shared
// boundary day where the earlier booking (first in input order) wins.
func BookingOnDay(day DayCell, roomID uuid.UUID, bookings []Booking) *Booking {
	for i := range bookings {
		b := &bookings[i]
		if b.RoomID != roomID || b.Deleted() {
			continue
		}
		in := Midnight(b.CheckIn)
		out := Midnight(b.CheckOut)
		if !day.Date.Before(in) && !day.Date.After(out) {
			return b
		}
	}
	return nil
}

// DayPredicate decides whether a booking counts toward a day-level aggregate.
type DayPredicate func(b *Booking, date time.Time) bool

// ArrivalOn matches stays checking in on the date. Blackout rows are capacity
// blocks, not stays, and never count.
func ArrivalOn(b *Booking, date time.Time) bool {
	return b.Status != StatusBlackout && SameDay(b.CheckIn, date)
}

func DepartureOn(b *Booking, date time.Time) bool {
	return b.Status != StatusBlackout && SameDay(b.CheckOut, date)
}

// InHouseOn matches stays where the date lies strictly between check-in and
// check-out: guests who slept in the house and are not leaving that morning.
func InHouseOn(b *Booking, date time.Time) bool {
	if b.Status == StatusBlackout {
		return false
	}
	d := Midnight(date)
	return d.After(Midnight(b.CheckIn)) && d.Before(Midnight(b.CheckOut))
}

// BreakfastOn matches stays that take breakfast on the date; half-board
// includes breakfast.
func BreakfastOn(b *Booking, date time.Time) bool {
	if b.MealPlan != MealBreakfast && b.MealPlan != MealHalfBoard {
		return false
	}
	return withinStay(b, date)
}

func HalfBoardOn(b *Booking, date time.Time) bool {
	return b.MealPlan == MealHalfBoard && withinStay(b, date)
}

// withinStay bounds the meal predicates to the stay's inclusive day range.
// Blackout rows are not stays and never eat.
func withinStay(b *Booking, date time.Time) bool {
	if b.Status == StatusBlackout {
		return false
	}
	d := Midnight(date)
	return !d.Before(Midnight(b.CheckIn)) && !d.After(Midnight(b.CheckOut))
}

// DayEntry is one matched booking with its display references resolved.
type DayEntry struct {
	Booking    Booking
	GuestName  string
	RoomNumber string
}

type DayAggregate struct {
	Persons int
	Entries []DayEntry
}

// AggregateForDate filters non-deleted bookings by the predicate, sums their
// person counts and resolves guest and room labels for display. Entries keep
// the input bookings' relative order. A dangling guest or room id resolves to
// "unknown" rather than failing.
func AggregateForDate(date time.Time, bookings []Booking, guests []Guest, rooms []Room, match DayPredicate) DayAggregate {
	guestByID := make(map[uuid.UUID]*Guest, len(guests))
	for i := range guests {
		guestByID[guests[i].ID] = &guests[i]
	}
	roomByID := make(map[uuid.UUID]*Room, len(rooms))
	for i := range rooms {
		roomByID[rooms[i].ID] = &rooms[i]
	}

	var agg DayAggregate
	for i := range bookings {
		b := &bookings[i]
		if b.Deleted() || !match(b, date) {
			continue
		}

		entry := DayEntry{Booking: *b, GuestName: "unknown", RoomNumber: "unknown"}
		if b.GuestID != nil {
			if g, ok := guestByID[*b.GuestID]; ok {
				entry.GuestName = g.FullName()
			}
		}
		if r, ok := roomByID[b.RoomID]; ok {
			entry.RoomNumber = r.Number
		}

		agg.Persons += b.PersonCount
		agg.Entries = append(agg.Entries, entry)
	}
	return agg
}
