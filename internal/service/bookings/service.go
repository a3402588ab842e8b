package bookings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"zimmerplan/internal/domain"
	"zimmerplan/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// NewValidationError lets callers outside the package (the session
// controller) signal malformed submissions in the same error class.
func NewValidationError(msg string) error {
	return validationError(msg)
}

type Service struct {
	store store.BookingStore
}

func NewService(st store.BookingStore) *Service {
	return &Service{store: st}
}

type CreateInput struct {
	RoomID         uuid.UUID
	GuestName      string // free text, first name(s) then last name
	CheckIn        time.Time
	CheckOut       time.Time
	PersonCount    int
	Status         domain.BookingStatus
	MealPlan       domain.MealPlan
	Deposit        string
	PricePerPerson string
	ExtraCharge    string
	Contact        string
	Notes          string
}

// Create validates the submission, resolves the guest by natural key and
// writes the booking. The store rechecks availability inside its transaction
// and returns store.ErrConflict when another session took the interval first.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Booking, error) {
	if in.RoomID == uuid.Nil {
		return domain.Booking{}, validationError("room is required")
	}

	checkIn := domain.Midnight(in.CheckIn)
	checkOut := domain.Midnight(in.CheckOut)
	if checkOut.Before(checkIn) {
		return domain.Booking{}, validationError("check_out must not be before check_in")
	}

	status := in.Status
	if status == "" {
		status = domain.StatusBooked
	}
	if _, ok := domain.ParseBookingStatus(string(status)); !ok {
		return domain.Booking{}, validationError("unknown booking status")
	}
	if _, ok := domain.ParseMealPlan(string(in.MealPlan)); !ok {
		return domain.Booking{}, validationError("unknown meal plan")
	}

	if status == domain.StatusBlackout {
		if in.PersonCount != 0 {
			return domain.Booking{}, validationError("blackout periods carry no guests")
		}
	} else if in.PersonCount < 1 {
		return domain.Booking{}, validationError("person_count must be positive")
	}

	var guestID *uuid.UUID
	if status != domain.StatusBlackout {
		first, last, err := splitGuestName(in.GuestName)
		if err != nil {
			return domain.Booking{}, err
		}
		guest, err := s.store.FindOrCreateGuest(ctx, first, last)
		if err != nil {
			return domain.Booking{}, err
		}
		guestID = &guest.ID
	}

	return s.store.CreateBooking(ctx, domain.Booking{
		RoomID:         in.RoomID,
		GuestID:        guestID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		PersonCount:    in.PersonCount,
		Status:         status,
		MealPlan:       in.MealPlan,
		Deposit:        in.Deposit,
		PricePerPerson: in.PricePerPerson,
		ExtraCharge:    in.ExtraCharge,
		Contact:        in.Contact,
		Notes:          in.Notes,
	})
}

type UpdateInput struct {
	RoomID         *uuid.UUID
	GuestName      *string
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

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (domain.Booking, error) {
	if id == uuid.Nil {
		return domain.Booking{}, validationError("booking id is required")
	}

	upd := store.BookingUpdate{
		RoomID:         in.RoomID,
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		PersonCount:    in.PersonCount,
		Deposit:        in.Deposit,
		PricePerPerson: in.PricePerPerson,
		ExtraCharge:    in.ExtraCharge,
		Contact:        in.Contact,
		Notes:          in.Notes,
	}

	if in.CheckIn != nil && in.CheckOut != nil {
		if domain.Midnight(*in.CheckOut).Before(domain.Midnight(*in.CheckIn)) {
			return domain.Booking{}, validationError("check_out must not be before check_in")
		}
	}
	if in.Status != nil {
		if _, ok := domain.ParseBookingStatus(string(*in.Status)); !ok {
			return domain.Booking{}, validationError("unknown booking status")
		}
		upd.Status = in.Status
	}
	if in.MealPlan != nil {
		if _, ok := domain.ParseMealPlan(string(*in.MealPlan)); !ok {
			return domain.Booking{}, validationError("unknown meal plan")
		}
		upd.MealPlan = in.MealPlan
	}
	if in.PersonCount != nil && *in.PersonCount < 0 {
		return domain.Booking{}, validationError("person_count must not be negative")
	}
	if in.GuestName != nil {
		first, last, err := splitGuestName(*in.GuestName)
		if err != nil {
			return domain.Booking{}, err
		}
		guest, err := s.store.FindOrCreateGuest(ctx, first, last)
		if err != nil {
			return domain.Booking{}, err
		}
		upd.GuestID = &guest.ID
	}

	return s.store.UpdateBooking(ctx, id, upd)
}

// Cancel soft-deletes a booking; the row stays behind for the retention
// window and is purged by housekeeping.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return validationError("booking id is required")
	}
	return s.store.SoftDeleteBooking(ctx, id)
}

// CreateBlackout marks the rooms unavailable over [from, to] with
// booking-shaped rows: blackout status, no guest, zero persons.
func (s *Service) CreateBlackout(ctx context.Context, roomIDs []uuid.UUID, from, to time.Time, note string) ([]domain.Booking, error) {
	if len(roomIDs) == 0 {
		return nil, validationError("at least one room is required")
	}

	out := make([]domain.Booking, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		b, err := s.Create(ctx, CreateInput{
			RoomID:   roomID,
			CheckIn:  from,
			CheckOut: to,
			Status:   domain.StatusBlackout,
			Notes:    note,
		})
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ListDeposits returns deposit-pending bookings checking in within the given
// bounds, for the Anzahlungen overview. Nil bounds are open.
func (s *Service) ListDeposits(ctx context.Context, from, to *time.Time) ([]domain.Booking, error) {
	return s.store.ListBookings(ctx, store.BookingFilter{
		Statuses:    []domain.BookingStatus{domain.StatusDepositPending},
		CheckInFrom: from,
		CheckInTo:   to,
	})
}

func (s *Service) MarkDepositPaid(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	if id == uuid.Nil {
		return domain.Booking{}, validationError("booking id is required")
	}
	status := domain.StatusDepositPaid
	return s.store.UpdateBooking(ctx, id, store.BookingUpdate{Status: &status})
}

// DayStats are the catering and occupancy headcounts for one date.
type DayStats struct {
	Date       time.Time
	Arrivals   domain.DayAggregate
	Departures domain.DayAggregate
	InHouse    domain.DayAggregate
	Breakfast  domain.DayAggregate
	HalfBoard  domain.DayAggregate
}

func (s *Service) StatsForDate(ctx context.Context, date time.Time) (DayStats, error) {
	bookings, err := s.store.ListBookings(ctx, store.BookingFilter{})
	if err != nil {
		return DayStats{}, err
	}
	guests, err := s.store.ListGuests(ctx)
	if err != nil {
		return DayStats{}, err
	}
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return DayStats{}, err
	}

	d := domain.Midnight(date)
	return DayStats{
		Date:       d,
		Arrivals:   domain.AggregateForDate(d, bookings, guests, rooms, domain.ArrivalOn),
		Departures: domain.AggregateForDate(d, bookings, guests, rooms, domain.DepartureOn),
		InHouse:    domain.AggregateForDate(d, bookings, guests, rooms, domain.InHouseOn),
		Breakfast:  domain.AggregateForDate(d, bookings, guests, rooms, domain.BreakfastOn),
		HalfBoard:  domain.AggregateForDate(d, bookings, guests, rooms, domain.HalfBoardOn),
	}, nil
}

// CheckAvailability probes whether a room interval is free against the
// store's current state.
func (s *Service) CheckAvailability(ctx context.Context, roomID uuid.UUID, from, to time.Time) (bool, error) {
	if roomID == uuid.Nil {
		return false, validationError("room is required")
	}
	bookings, err := s.store.ListBookings(ctx, store.BookingFilter{RoomID: roomID})
	if err != nil {
		return false, err
	}
	return domain.IsAvailable(roomID, from, to, bookings), nil
}

// splitGuestName splits free-text input into first and last name. The last
// token is the last name; everything before it is the first name.
func splitGuestName(name string) (first, last string, err error) {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) < 2 {
		return "", "", validationError("guest name needs a first and a last name")
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1], nil
}
