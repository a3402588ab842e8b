package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuildBlocks_MultiDayGeometry(t *testing.T) {
	cells := GenerateDayCells(date(2024, time.June, 1), 0, 1)
	rooms := []Room{{ID: roomA, Number: "1"}}
	b := booking(roomA, date(2024, time.June, 3), date(2024, time.June, 6))
	b.PersonCount = 2

	blocks := BuildBlocks(rooms, []Booking{b}, nil, cells, 20)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}

	// Check-in column index 2, check-out column index 5, cell width 20:
	// the block runs from the check-in column center across three cells.
	if blocks[0].X != 2*20+10 {
		t.Fatalf("x = %v, want 50", blocks[0].X)
	}
	if blocks[0].Width != 3*20 {
		t.Fatalf("width = %v, want 60", blocks[0].Width)
	}
}

func TestBuildBlocks_SingleDayHalfWidthCentered(t *testing.T) {
	cells := GenerateDayCells(date(2024, time.June, 1), 0, 1)
	rooms := []Room{{ID: roomA, Number: "1"}}
	b := booking(roomA, date(2024, time.June, 3), date(2024, time.June, 3))

	blocks := BuildBlocks(rooms, []Booking{b}, nil, cells, 20)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	if blocks[0].X != 2*20+5 {
		t.Fatalf("x = %v, want 45", blocks[0].X)
	}
	if blocks[0].Width != 10 {
		t.Fatalf("width = %v, want 10", blocks[0].Width)
	}
}

func TestBuildBlocks_ClampsToWindowEdges(t *testing.T) {
	today := date(2024, time.June, 10)
	cells := GenerateDayCells(today, 2, 0) // 2024-06-08 .. 2024-06-10
	rooms := []Room{{ID: roomA, Number: "1"}}
	b := booking(roomA, date(2024, time.June, 5), date(2024, time.June, 20))

	blocks := BuildBlocks(rooms, []Booking{b}, nil, cells, 20)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	if blocks[0].X != 10 {
		t.Fatalf("x = %v, want 10 (clamped to first column center)", blocks[0].X)
	}
	if blocks[0].Width != 2*20 {
		t.Fatalf("width = %v, want 40", blocks[0].Width)
	}
}

func TestBuildBlocks_SkipsOutOfWindowDeletedAndUnknownRooms(t *testing.T) {
	cells := GenerateDayCells(date(2024, time.June, 1), 0, 1)
	rooms := []Room{{ID: roomA, Number: "1"}}

	past := booking(roomA, date(2023, time.January, 1), date(2023, time.January, 5))
	deleted := booking(roomA, date(2024, time.June, 3), date(2024, time.June, 6))
	deleted.DeletedAt = time.Now()
	foreign := booking(uuid.New(), date(2024, time.June, 3), date(2024, time.June, 6))

	blocks := BuildBlocks(rooms, []Booking{past, deleted, foreign}, nil, cells, 20)
	if len(blocks) != 0 {
		t.Fatalf("blocks = %d, want 0", len(blocks))
	}
}

func TestStatusColor_KnownAndFallback(t *testing.T) {
	seen := map[string]BookingStatus{}
	for _, status := range []BookingStatus{StatusOccupied, StatusDepositPending, StatusDepositPaid, StatusBlackout, StatusBooked} {
		color := StatusColor(status)
		if color == defaultBlockColor {
			t.Fatalf("status %q fell back to default color", status)
		}
		if prev, dup := seen[color]; dup {
			t.Fatalf("statuses %q and %q share color %q", prev, status, color)
		}
		seen[color] = status
	}
	if StatusColor("nonsense") != defaultBlockColor {
		t.Fatalf("unknown status did not fall back to default color")
	}
}

func TestBlockLabel(t *testing.T) {
	g := guest("Anna", "Meier")
	b := guestBooking(roomA, &g, date(2024, time.June, 3), date(2024, time.June, 6), 2)
	b.MealPlan = MealHalfBoard

	if got := BlockLabel(&b, []Guest{g}); got != "Meier 2 HP" {
		t.Fatalf("label = %q, want %q", got, "Meier 2 HP")
	}

	b.MealPlan = MealBreakfast
	if got := BlockLabel(&b, []Guest{g}); got != "Meier 2 B&B" {
		t.Fatalf("label = %q, want %q", got, "Meier 2 B&B")
	}

	b.MealPlan = MealNone
	if got := BlockLabel(&b, []Guest{g}); got != "Meier 2" {
		t.Fatalf("label = %q, want %q", got, "Meier 2")
	}

	b.GuestID = nil
	if got := BlockLabel(&b, []Guest{g}); got != "unknown 2" {
		t.Fatalf("label = %q, want %q", got, "unknown 2")
	}
}

func TestMealAbbrev_PassesUnknownThrough(t *testing.T) {
	if got := MealAbbrev(MealPlan("vollpension")); got != "vollpension" {
		t.Fatalf("abbrev = %q, want verbatim pass-through", got)
	}
}
