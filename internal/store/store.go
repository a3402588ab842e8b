package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"zimmerplan/internal/domain"
)

// BookingFilter narrows ListBookings. Zero fields mean "no constraint".
// Date bounds compare whole days, inclusive.
type BookingFilter struct {
	RoomID         uuid.UUID
	Statuses       []domain.BookingStatus
	CheckInFrom    *time.Time
	CheckInTo      *time.Time
	CheckOutFrom   *time.Time
	CheckOutTo     *time.Time
	IncludeDeleted bool
}

// BookingUpdate carries the fields an update may change; nil leaves a field
// untouched. ClearGuest removes the guest reference regardless of GuestID.
type BookingUpdate struct {
	RoomID         *uuid.UUID
	GuestID        *uuid.UUID
	ClearGuest     bool
	CheckIn        *time.Time
	CheckOut       *time.Time
	PersonCount    *int
	Status         *domain.BookingStatus
	MealPlan       *domain.MealPlan
	Deposit        *string
	PricePerPerson *string
	ExtraCharge    *string
	Contact        *string
	Notes          *string
}

// BookingStore is the remote persistence boundary. Create and Update must
// recheck interval availability against the freshest state and return
// ErrConflict when the interval is no longer free; the in-memory snapshot a
// caller consulted may be stale relative to other sessions.
type BookingStore interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	ListGuests(ctx context.Context) ([]domain.Guest, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)

	// FindOrCreateGuest looks a guest up by exact first+last name and creates
	// one if absent.
	FindOrCreateGuest(ctx context.Context, firstName, lastName string) (domain.Guest, error)

	CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, upd BookingUpdate) (domain.Booking, error)
	SoftDeleteBooking(ctx context.Context, id uuid.UUID) error

	// PurgeSoftDeleted physically removes bookings soft-deleted longer than
	// olderThan ago and reports how many rows went away. Housekeeping only.
	PurgeSoftDeleted(ctx context.Context, olderThan time.Duration) (int64, error)
}
