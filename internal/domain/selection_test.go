package domain

import (
	"testing"
	"time"
)

func cell(y int, m time.Month, d int) DayCell {
	return NewDayCell(date(y, m, d))
}

func TestOnDayTap_DoubleTapStaysCheckInOnly(t *testing.T) {
	day := cell(2024, time.June, 10)

	sel, outcome := OnDayTap(Selection{}, day, roomA, nil)
	if outcome != TapStarted {
		t.Fatalf("first tap outcome = %v, want started", outcome)
	}
	if sel.State() != SelectionCheckInOnly {
		t.Fatalf("state = %v, want check-in only", sel.State())
	}
	if !SameDay(sel.CheckIn.Date, day.Date) || !SameDay(sel.CheckOut.Date, day.Date) {
		t.Fatalf("check-in/check-out not anchored to tapped day")
	}

	sel, outcome = OnDayTap(sel, day, roomA, nil)
	if outcome != TapCheckOutSet {
		t.Fatalf("second tap outcome = %v, want checkout_set", outcome)
	}
	if sel.State() != SelectionCheckInOnly {
		t.Fatalf("second tap left state %v, want check-in only", sel.State())
	}

	// A third tap on the same day must not drift into a range.
	sel, _ = OnDayTap(sel, day, roomA, nil)
	if sel.State() != SelectionCheckInOnly {
		t.Fatalf("third tap left state %v, want check-in only", sel.State())
	}
}

func TestOnDayTap_LaterDayBecomesCheckOut(t *testing.T) {
	sel, _ := OnDayTap(Selection{}, cell(2024, time.June, 10), roomA, nil)
	sel, outcome := OnDayTap(sel, cell(2024, time.June, 14), roomA, nil)

	if outcome != TapCheckOutSet {
		t.Fatalf("outcome = %v, want checkout_set", outcome)
	}
	if sel.State() != SelectionRangeSelected {
		t.Fatalf("state = %v, want range selected", sel.State())
	}
	if !SameDay(sel.CheckOut.Date, date(2024, time.June, 14)) {
		t.Fatalf("check-out = %v, want 2024-06-14", sel.CheckOut.Date)
	}
}

func TestOnDayTap_UnavailableIntervalKeepsPriorState(t *testing.T) {
	existing := []Booking{booking(roomA, date(2024, time.June, 12), date(2024, time.June, 15))}

	sel, _ := OnDayTap(Selection{}, cell(2024, time.June, 10), roomA, existing)
	next, outcome := OnDayTap(sel, cell(2024, time.June, 14), roomA, existing)

	if outcome != TapUnavailable {
		t.Fatalf("outcome = %v, want unavailable", outcome)
	}
	if next != sel {
		t.Fatalf("rejected tap mutated the selection: %+v vs %+v", next, sel)
	}
}

func TestOnDayTap_ArrivalDayOfOtherBookingAcceptedAsCheckOut(t *testing.T) {
	existing := []Booking{booking(roomA, date(2024, time.June, 14), date(2024, time.June, 18))}

	sel, _ := OnDayTap(Selection{}, cell(2024, time.June, 10), roomA, existing)
	sel, outcome := OnDayTap(sel, cell(2024, time.June, 14), roomA, existing)

	if outcome != TapCheckOutSet {
		t.Fatalf("outcome = %v, want checkout_set", outcome)
	}
	if sel.State() != SelectionRangeSelected {
		t.Fatalf("state = %v, want range selected", sel.State())
	}
}

func TestOnDayTap_RoomSwitchRestartsSelection(t *testing.T) {
	sel, _ := OnDayTap(Selection{}, cell(2024, time.June, 10), roomA, nil)
	sel, outcome := OnDayTap(sel, cell(2024, time.June, 20), roomB, nil)

	if outcome != TapStarted {
		t.Fatalf("outcome = %v, want started", outcome)
	}
	if sel.RoomID != roomB {
		t.Fatalf("room = %v, want room B", sel.RoomID)
	}
	if sel.State() != SelectionCheckInOnly {
		t.Fatalf("state = %v, want check-in only", sel.State())
	}
	if !SameDay(sel.CheckIn.Date, date(2024, time.June, 20)) {
		t.Fatalf("check-in = %v, want 2024-06-20", sel.CheckIn.Date)
	}
}

func TestOnDayTap_EarlierDayRestartsSelection(t *testing.T) {
	sel, _ := OnDayTap(Selection{}, cell(2024, time.June, 10), roomA, nil)
	sel, outcome := OnDayTap(sel, cell(2024, time.June, 5), roomA, nil)

	if outcome != TapStarted {
		t.Fatalf("outcome = %v, want started", outcome)
	}
	if !SameDay(sel.CheckIn.Date, date(2024, time.June, 5)) {
		t.Fatalf("check-in = %v, want 2024-06-05", sel.CheckIn.Date)
	}
	if sel.State() != SelectionCheckInOnly {
		t.Fatalf("state = %v, want check-in only", sel.State())
	}
}

func TestTapEligible_OccupiedCellBlockedWithoutSelection(t *testing.T) {
	existing := []Booking{booking(roomA, date(2024, time.June, 10), date(2024, time.June, 15))}

	if TapEligible(Selection{}, cell(2024, time.June, 12), roomA, existing) {
		t.Fatalf("occupied cell tappable with empty selection")
	}
	if !TapEligible(Selection{}, cell(2024, time.June, 16), roomA, existing) {
		t.Fatalf("free cell not tappable")
	}
}

func TestTapEligible_ArrivalDayTappableOnceCheckInExists(t *testing.T) {
	existing := []Booking{booking(roomA, date(2024, time.June, 14), date(2024, time.June, 18))}
	sel, _ := OnDayTap(Selection{}, cell(2024, time.June, 10), roomA, existing)

	if !TapEligible(sel, cell(2024, time.June, 14), roomA, existing) {
		t.Fatalf("arrival day not tappable with a check-in selected")
	}
	if TapEligible(sel, cell(2024, time.June, 16), roomA, existing) {
		t.Fatalf("mid-stay day tappable")
	}
}

func TestSelectionState_ZeroValueIsEmpty(t *testing.T) {
	var sel Selection
	if sel.State() != SelectionEmpty {
		t.Fatalf("zero selection state = %v, want empty", sel.State())
	}
}
