package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BookingStatus is the closed set of states a booking row can be in. A
// blackout row marks a room unavailable without representing a guest stay.
type BookingStatus string

const (
	StatusOccupied       BookingStatus = "occupied"
	StatusDepositPending BookingStatus = "deposit_pending"
	StatusDepositPaid    BookingStatus = "deposit_paid"
	StatusBlackout       BookingStatus = "blackout"
	StatusBooked         BookingStatus = "booked"
)

// ParseBookingStatus normalizes raw status input at the store boundary.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusOccupied, StatusDepositPending, StatusDepositPaid, StatusBlackout, StatusBooked:
		return BookingStatus(s), true
	}
	return "", false
}

type MealPlan string

const (
	MealNone      MealPlan = ""
	MealBreakfast MealPlan = "breakfast"
	MealHalfBoard MealPlan = "half_board"
)

func ParseMealPlan(s string) (MealPlan, bool) {
	switch MealPlan(s) {
	case MealNone, MealBreakfast, MealHalfBoard:
		return MealPlan(s), true
	}
	return "", false
}

type Room struct {
	bun.BaseModel `bun:"table:rooms"`

	ID     uuid.UUID `bun:"id,pk,type:uuid"`
	Number string    `bun:"number,notnull"`
}

type Guest struct {
	bun.BaseModel `bun:"table:guests"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	FirstName string    `bun:"first_name,notnull"`
	LastName  string    `bun:"last_name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

func (g *Guest) FullName() string {
	if g.FirstName == "" {
		return g.LastName
	}
	return g.FirstName + " " + g.LastName
}

// Booking reserves one room for an inclusive day range. CheckIn and CheckOut
// are normalized to midnight; a single-day booking has CheckIn == CheckOut.
// Two bookings of the same room may share a boundary day (one's check-out is
// the other's check-in) but must not overlap in their interiors.
//
// Monetary fields are opaque text; the application only carries them through.
type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID             uuid.UUID     `bun:"id,pk,type:uuid"`
	RoomID         uuid.UUID     `bun:"room_id,notnull,type:uuid"`
	GuestID        *uuid.UUID    `bun:"guest_id,type:uuid"`
	CheckIn        time.Time     `bun:"check_in,notnull"`
	CheckOut       time.Time     `bun:"check_out,notnull"`
	PersonCount    int           `bun:"person_count,notnull"`
	Status         BookingStatus `bun:"status,notnull"`
	MealPlan       MealPlan      `bun:"meal_plan"`
	Deposit        string        `bun:"deposit"`
	PricePerPerson string        `bun:"price_per_person"`
	ExtraCharge    string        `bun:"extra_charge"`
	Contact        string        `bun:"contact"`
	Notes          string        `bun:"notes"`
	CreatedAt      time.Time     `bun:"created_at,notnull"`
	UpdatedAt      time.Time     `bun:"updated_at,notnull"`
	DeletedAt      time.Time     `bun:"deleted_at,soft_delete,nullzero"`
}

// Deleted reports whether the row is soft-deleted. Soft-deleted bookings are
// excluded from every availability and display computation.
func (b *Booking) Deleted() bool {
	return !b.DeletedAt.IsZero()
}

func (b *Booking) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if b.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			b.ID = id
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		if b.UpdatedAt.IsZero() {
			b.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		b.UpdatedAt = now
	}
	return nil
}

func (g *Guest) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if g.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			g.ID = id
		}
		if g.CreatedAt.IsZero() {
			g.CreatedAt = time.Now().UTC()
		}
	}
	return nil
}
