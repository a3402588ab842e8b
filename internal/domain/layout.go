package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Block is the renderable overlay for one booking in one room row: a
// horizontal span in grid-pixel coordinates plus color and label. The client
// draws blocks above the day cells; cells covered by a block stay transparent
// in their own layer.
type Block struct {
	BookingID uuid.UUID
	RoomID    uuid.UUID
	X         float64
	Width     float64
	Color     string
	Label     string
}

const defaultBlockColor = "#9e9e9e"

var statusColors = map[BookingStatus]string{
	StatusOccupied:       "#e57373",
	StatusDepositPending: "#ffb74d",
	StatusDepositPaid:    "#81c784",
	StatusBlackout:       "#90a4ae",
	StatusBooked:         "#64b5f6",
}

// StatusColor maps a booking status to its block color; unrecognized values
// fall back to a neutral default.
func StatusColor(s BookingStatus) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return defaultBlockColor
}

// MealAbbrev renders the meal plan for block labels: B&B for breakfast, HP
// for half-board, empty when absent, anything else verbatim.
func MealAbbrev(m MealPlan) string {
	switch m {
	case MealBreakfast:
		return "B&B"
	case MealHalfBoard:
		return "HP"
	case MealNone:
		return ""
	}
	return string(m)
}

// BlockLabel is the guest's last name (or "unknown"), the person count and
// the meal-plan abbreviation.
func BlockLabel(b *Booking, guests []Guest) string {
	name := "unknown"
	if b.GuestID != nil {
		for i := range guests {
			if guests[i].ID == *b.GuestID {
				name = guests[i].LastName
				break
			}
		}
	}
	label := name + " " + strconv.Itoa(b.PersonCount)
	if abbrev := MealAbbrev(b.MealPlan); abbrev != "" {
		label += " " + abbrev
	}
	return strings.TrimSpace(label)
}

// BuildBlocks computes the overlay geometry for every non-deleted booking
// whose day range intersects the visible grid. A multi-day block runs from
// the center of its check-in column to the center of its check-out column;
// the half cells at either end visualize the mid-day handover. A single-day
// booking becomes a half-width block centered in its column. Blocks reaching
// past the grid edge are clamped to the first or last column.
func BuildBlocks(rooms []Room, bookings []Booking, guests []Guest, cells []DayCell, cellWidth float64) []Block {
	if len(cells) == 0 || cellWidth <= 0 {
		return nil
	}
	first := cells[0].Date
	last := cells[len(cells)-1].Date

	roomIDs := make(map[uuid.UUID]struct{}, len(rooms))
	for i := range rooms {
		roomIDs[rooms[i].ID] = struct{}{}
	}

	var blocks []Block
	for i := range bookings {
		b := &bookings[i]
		if b.Deleted() {
			continue
		}
		if _, ok := roomIDs[b.RoomID]; !ok {
			continue
		}

		in := Midnight(b.CheckIn)
		out := Midnight(b.CheckOut)
		if out.Before(first) || in.After(last) {
			continue
		}

		start := DayCellIndex(in, cells)
		if start < 0 {
			start = 0
		}
		end := DayCellIndex(out, cells)
		if end < 0 {
			end = len(cells) - 1
		}

		var x, width float64
		if start == end {
			x = float64(start)*cellWidth + cellWidth/4
			width = cellWidth / 2
		} else {
			x = float64(start)*cellWidth + cellWidth/2
			width = float64(end-start) * cellWidth
		}

		blocks = append(blocks, Block{
			BookingID: b.ID,
			RoomID:    b.RoomID,
			X:         x,
			Width:     width,
			Color:     StatusColor(b.Status),
			Label:     BlockLabel(b, guests),
		})
	}
	return blocks
}
