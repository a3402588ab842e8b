package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"zimmerplan/internal/domain"
	"zimmerplan/internal/service/bookings"
	"zimmerplan/internal/store"
)

// Snapshot is one immutable view of the remote data. Readers get the whole
// value; refreshes swap the pointer and never patch a snapshot in place.
type Snapshot struct {
	Rooms     []domain.Room
	Guests    []domain.Guest
	Bookings  []domain.Booking
	FetchedAt time.Time
}

type Config struct {
	PastDays        int
	FutureMonths    int
	RefreshInterval time.Duration
	CellWidth       float64
}

// Controller owns the calendar session: the day grid anchored to a "today"
// captured once at construction, the current snapshot, and the two-click
// selection. Core computations read the snapshot as an immutable value; all
// writes go through the service to the store.
type Controller struct {
	svc     *bookings.Service
	store   store.BookingStore
	log     *slog.Logger
	refresh time.Duration

	today     time.Time
	cells     []domain.DayCell
	cellWidth float64

	mu   sync.RWMutex
	snap *Snapshot
	sel  domain.Selection
}

func NewController(svc *bookings.Service, st store.BookingStore, log *slog.Logger, cfg Config) *Controller {
	if log == nil {
		log = slog.Default()
	}
	today := domain.Midnight(time.Now())
	return &Controller{
		svc:       svc,
		store:     st,
		log:       log.With(slog.String("component", "session")),
		refresh:   cfg.RefreshInterval,
		today:     today,
		cells:     domain.GenerateDayCells(today, cfg.PastDays, cfg.FutureMonths),
		cellWidth: cfg.CellWidth,
		snap:      &Snapshot{},
	}
}

// Refresh fetches rooms, guests and bookings and replaces the snapshot
// atomically. On any fetch error the prior snapshot is kept untouched. The
// selection is local state and survives every refresh.
func (c *Controller) Refresh(ctx context.Context) error {
	rooms, err := c.store.ListRooms(ctx)
	if err != nil {
		return err
	}
	guests, err := c.store.ListGuests(ctx)
	if err != nil {
		return err
	}
	books, err := c.store.ListBookings(ctx, store.BookingFilter{})
	if err != nil {
		return err
	}

	next := &Snapshot{
		Rooms:     rooms,
		Guests:    guests,
		Bookings:  books,
		FetchedAt: time.Now(),
	}

	c.mu.Lock()
	c.snap = next
	c.mu.Unlock()
	return nil
}

// Run refreshes once immediately and then on the configured interval until
// the context is canceled. Failed ticks are logged and retried next tick.
func (c *Controller) Run(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("initial snapshot refresh failed", slog.Any("err", err))
	}

	ticker := time.NewTicker(c.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				c.log.Warn("snapshot refresh failed", slog.Any("err", err))
			}
		}
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return *c.snap
}

func (c *Controller) Cells() []domain.DayCell {
	return c.cells
}

func (c *Controller) Selection() domain.Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sel
}

func (c *Controller) ResetSelection() {
	c.mu.Lock()
	c.sel = domain.Selection{}
	c.mu.Unlock()
}

// TapDay runs one tap of the selection flow against the current snapshot.
// Taps outside the grid or on ineligible cells are ignored.
func (c *Controller) TapDay(date time.Time, roomID uuid.UUID) domain.TapOutcome {
	idx := domain.DayCellIndex(date, c.cells)
	if idx < 0 {
		return domain.TapIgnored
	}
	day := c.cells[idx]

	c.mu.Lock()
	defer c.mu.Unlock()

	if !domain.TapEligible(c.sel, day, roomID, c.snap.Bookings) {
		return domain.TapIgnored
	}
	next, outcome := domain.OnDayTap(c.sel, day, roomID, c.snap.Bookings)
	c.sel = next
	return outcome
}

// SubmitInput carries the booking details entered alongside the selected
// interval.
type SubmitInput struct {
	GuestName      string
	PersonCount    int
	Status         domain.BookingStatus
	MealPlan       domain.MealPlan
	Deposit        string
	PricePerPerson string
	ExtraCharge    string
	Contact        string
	Notes          string
}

// Submit turns the current selection into a booking. It requires a full
// range (check-in before check-out); the store rechecks availability so a
// stale snapshot surfaces as store.ErrConflict, not a silent overwrite. The
// selection is cleared and the snapshot refreshed on success.
func (c *Controller) Submit(ctx context.Context, in SubmitInput) (domain.Booking, error) {
	sel := c.Selection()
	if sel.State() != domain.SelectionRangeSelected {
		return domain.Booking{}, bookings.NewValidationError("select a check-in and a later check-out first")
	}

	b, err := c.svc.Create(ctx, bookings.CreateInput{
		RoomID:         sel.RoomID,
		GuestName:      in.GuestName,
		CheckIn:        sel.CheckIn.Date,
		CheckOut:       sel.CheckOut.Date,
		PersonCount:    in.PersonCount,
		Status:         in.Status,
		MealPlan:       in.MealPlan,
		Deposit:        in.Deposit,
		PricePerPerson: in.PricePerPerson,
		ExtraCharge:    in.ExtraCharge,
		Contact:        in.Contact,
		Notes:          in.Notes,
	})
	if err != nil {
		return domain.Booking{}, err
	}

	c.ResetSelection()
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("post-submit refresh failed", slog.Any("err", err))
	}
	return b, nil
}

// Layout computes the overlay blocks for the visible grid from the current
// snapshot.
func (c *Controller) Layout() []domain.Block {
	snap := c.Snapshot()
	return domain.BuildBlocks(snap.Rooms, snap.Bookings, snap.Guests, c.cells, c.cellWidth)
}

// StatsForDate computes the day aggregates locally from the snapshot, with
// no store round trip.
func (c *Controller) StatsForDate(date time.Time) bookings.DayStats {
	snap := c.Snapshot()
	d := domain.Midnight(date)
	return bookings.DayStats{
		Date:       d,
		Arrivals:   domain.AggregateForDate(d, snap.Bookings, snap.Guests, snap.Rooms, domain.ArrivalOn),
		Departures: domain.AggregateForDate(d, snap.Bookings, snap.Guests, snap.Rooms, domain.DepartureOn),
		InHouse:    domain.AggregateForDate(d, snap.Bookings, snap.Guests, snap.Rooms, domain.InHouseOn),
		Breakfast:  domain.AggregateForDate(d, snap.Bookings, snap.Guests, snap.Rooms, domain.BreakfastOn),
		HalfBoard:  domain.AggregateForDate(d, snap.Bookings, snap.Guests, snap.Rooms, domain.HalfBoardOn),
	}
}
