package domain

import "github.com/google/uuid"

type SelectionState int

const (
	SelectionEmpty SelectionState = iota
	SelectionCheckInOnly
	SelectionRangeSelected
)

// Selection is the transient two-click room+interval choice. The zero value
// is the empty selection. Selections are immutable; every transition returns
// a new value.
type Selection struct {
	RoomID   uuid.UUID
	CheckIn  DayCell
	CheckOut DayCell
}

func (s Selection) State() SelectionState {
	if s.RoomID == uuid.Nil {
		return SelectionEmpty
	}
	if SameDay(s.CheckIn.Date, s.CheckOut.Date) {
		return SelectionCheckInOnly
	}
	return SelectionRangeSelected
}

type TapOutcome int

const (
	// TapIgnored: the tap was a no-op; the selection is unchanged (or stays
	// empty when starting on an ineligible day).
	TapIgnored TapOutcome = iota
	// TapStarted: a fresh check-in day was selected, discarding any prior
	// selection.
	TapStarted
	// TapCheckOutSet: the tapped day became the check-out day.
	TapCheckOutSet
	// TapUnavailable: the requested interval conflicts with an existing
	// booking; the prior selection is kept.
	TapUnavailable
)

func (o TapOutcome) String() string {
	switch o {
	case TapStarted:
		return "started"
	case TapCheckOutSet:
		return "checkout_set"
	case TapUnavailable:
		return "unavailable"
	default:
		return "ignored"
	}
}

// OnDayTap advances the selection for a tap on the given day cell and room.
//
// A tap in a different room, or on a day before the current check-in,
// silently restarts the selection there. Tapping the current check-in day
// re-anchors the check-out to it. A later day becomes the check-out when the
// interval up to it is free, or when the day is exactly another booking's
// arrival day (a legal shared boundary); otherwise the tap is rejected and
// the prior selection stands.
func OnDayTap(cur Selection, day DayCell, roomID uuid.UUID, bookings []Booking) (Selection, TapOutcome) {
	if cur.State() == SelectionEmpty || roomID != cur.RoomID || day.Date.Before(cur.CheckIn.Date) {
		return startSelection(day, roomID, bookings)
	}

	if SameDay(day.Date, cur.CheckIn.Date) {
		cur.CheckOut = day
		return cur, TapCheckOutSet
	}

	if IsAvailable(roomID, cur.CheckIn.Date, day.Date, bookings) || isArrivalDay(day, roomID, bookings) {
		cur.CheckOut = day
		return cur, TapCheckOutSet
	}
	return cur, TapUnavailable
}

func startSelection(day DayCell, roomID uuid.UUID, bookings []Booking) (Selection, TapOutcome) {
	if !IsAvailable(roomID, day.Date, day.Date, bookings) {
		return Selection{}, TapIgnored
	}
	return Selection{RoomID: roomID, CheckIn: day, CheckOut: day}, TapStarted
}

func isArrivalDay(day DayCell, roomID uuid.UUID, bookings []Booking) bool {
	b := BookingOnDay(day, roomID, bookings)
	return b != nil && SameDay(b.CheckIn, day.Date)
}

// TapEligible pre-filters taps before they reach OnDayTap. With nothing
// selected, occupied cells are not tappable at all. Once a check-in exists,
// an occupied cell stays tappable when the occupying booking arrives on that
// day, so its arrival day can serve as the new booking's departure day.
func TapEligible(cur Selection, day DayCell, roomID uuid.UUID, bookings []Booking) bool {
	occ := BookingOnDay(day, roomID, bookings)
	if occ == nil {
		return true
	}
	if cur.State() == SelectionEmpty {
		return false
	}
	return SameDay(occ.CheckIn, day.Date)
}
