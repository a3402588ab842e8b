package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"zimmerplan/internal/domain"
	"zimmerplan/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func storedBooking() domain.Booking {
	return domain.Booking{
		ID:          uuid.New(),
		RoomID:      uuid.New(),
		CheckIn:     date(2024, time.June, 10),
		CheckOut:    date(2024, time.June, 15),
		PersonCount: 2,
		Status:      domain.StatusOccupied,
	}
}

func TestApplyUpdate_CheckInMovedPastCheckOutRejected(t *testing.T) {
	b := storedBooking()
	newIn := date(2024, time.June, 20)

	err := applyUpdate(&b, store.BookingUpdate{CheckIn: &newIn})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("error = %v, want %v", err, store.ErrConflict)
	}
}

func TestApplyUpdate_CheckOutMovedBeforeCheckInRejected(t *testing.T) {
	b := storedBooking()
	newOut := date(2024, time.June, 5)

	err := applyUpdate(&b, store.BookingUpdate{CheckOut: &newOut})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("error = %v, want %v", err, store.ErrConflict)
	}
}

func TestApplyUpdate_SingleBoundWithinIntervalAccepted(t *testing.T) {
	b := storedBooking()
	newIn := date(2024, time.June, 12)

	if err := applyUpdate(&b, store.BookingUpdate{CheckIn: &newIn}); err != nil {
		t.Fatalf("applyUpdate error: %v", err)
	}
	if !b.CheckIn.Equal(newIn) {
		t.Fatalf("check_in = %v, want %v", b.CheckIn, newIn)
	}
	if !b.CheckOut.Equal(date(2024, time.June, 15)) {
		t.Fatalf("check_out changed to %v", b.CheckOut)
	}
}

func TestApplyUpdate_BothBoundsReplaceInterval(t *testing.T) {
	b := storedBooking()
	newIn := date(2024, time.July, 1)
	newOut := date(2024, time.July, 4)

	if err := applyUpdate(&b, store.BookingUpdate{CheckIn: &newIn, CheckOut: &newOut}); err != nil {
		t.Fatalf("applyUpdate error: %v", err)
	}
	if !b.CheckIn.Equal(newIn) || !b.CheckOut.Equal(newOut) {
		t.Fatalf("interval = %v..%v", b.CheckIn, b.CheckOut)
	}
}

func TestApplyUpdate_NilFieldsLeaveRowUntouched(t *testing.T) {
	b := storedBooking()
	want := b

	if err := applyUpdate(&b, store.BookingUpdate{}); err != nil {
		t.Fatalf("applyUpdate error: %v", err)
	}
	if b != want {
		t.Fatalf("empty update changed the row: %+v", b)
	}
}

func TestApplyUpdate_ClearGuestWinsOverGuestID(t *testing.T) {
	guestID := uuid.New()
	b := storedBooking()
	b.GuestID = &guestID

	other := uuid.New()
	if err := applyUpdate(&b, store.BookingUpdate{GuestID: &other, ClearGuest: true}); err != nil {
		t.Fatalf("applyUpdate error: %v", err)
	}
	if b.GuestID != nil {
		t.Fatalf("guest reference not cleared: %v", b.GuestID)
	}
}
