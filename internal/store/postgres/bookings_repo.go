package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"zimmerplan/internal/domain"
	"zimmerplan/internal/store"
)

type BookingRepo struct {
	db *bun.DB
}

func NewBookingRepo(db *bun.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	var rows []domain.Room
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("number ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) ListGuests(ctx context.Context) ([]domain.Guest, error) {
	var rows []domain.Guest
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("last_name ASC, first_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) ListBookings(ctx context.Context, filter store.BookingFilter) ([]domain.Booking, error) {
	var rows []domain.Booking
	q := r.db.NewSelect().Model(&rows)

	if filter.IncludeDeleted {
		q = q.WhereAllWithDeleted()
	}
	if filter.RoomID != uuid.Nil {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN (?)", bun.In(filter.Statuses))
	}
	if filter.CheckInFrom != nil {
		q = q.Where("check_in >= ?", domain.Midnight(*filter.CheckInFrom))
	}
	if filter.CheckInTo != nil {
		q = q.Where("check_in < ?", domain.Midnight(*filter.CheckInTo).AddDate(0, 0, 1))
	}
	if filter.CheckOutFrom != nil {
		q = q.Where("check_out >= ?", domain.Midnight(*filter.CheckOutFrom))
	}
	if filter.CheckOutTo != nil {
		q = q.Where("check_out < ?", domain.Midnight(*filter.CheckOutTo).AddDate(0, 0, 1))
	}

	if err := q.OrderExpr("check_in ASC, id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) FindOrCreateGuest(ctx context.Context, firstName, lastName string) (domain.Guest, error) {
	var out domain.Guest
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&out).
			Where("first_name = ?", firstName).
			Where("last_name = ?", lastName).
			Limit(1).
			Scan(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		out = domain.Guest{FirstName: firstName, LastName: lastName}
		_, err = tx.NewInsert().Model(&out).Exec(ctx)
		return err
	})
	if err != nil {
		return domain.Guest{}, err
	}
	return out, nil
}

func (r *BookingRepo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	var out domain.Booking
	err := r.inRoomTransaction(ctx, b.RoomID, func(ctx context.Context, tx bun.Tx) error {
		if err := ensureIntervalFree(ctx, tx, &b, uuid.Nil); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(&b).Exec(ctx); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (r *BookingRepo) UpdateBooking(ctx context.Context, id uuid.UUID, upd store.BookingUpdate) (domain.Booking, error) {
	var out domain.Booking
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var current domain.Booking
		err := tx.NewSelect().
			Model(&current).
			Where("id = ?", id).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := applyUpdate(&current, upd); err != nil {
			return err
		}
		if err := lockRoomCalendar(ctx, tx, current.RoomID); err != nil {
			return err
		}
		if err := ensureIntervalFree(ctx, tx, &current, current.ID); err != nil {
			return err
		}

		_, err = tx.NewUpdate().
			Model(&current).
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}
		out = current
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (r *BookingRepo) SoftDeleteBooking(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Booking)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *BookingRepo) PurgeSoftDeleted(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := r.db.NewDelete().
		Model((*domain.Booking)(nil)).
		WhereAllWithDeleted().
		Where("deleted_at IS NOT NULL").
		Where("deleted_at < ?", cutoff).
		ForceDelete().
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// inRoomTransaction serializes writers per room with a transaction-scoped
// advisory lock, so the availability recheck and the insert are atomic with
// respect to concurrent sessions.
func (r *BookingRepo) inRoomTransaction(ctx context.Context, roomID uuid.UUID, fn func(ctx context.Context, tx bun.Tx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockRoomCalendar(ctx, tx, roomID); err != nil {
			return err
		}
		return fn(ctx, tx)
	})
}

func lockRoomCalendar(ctx context.Context, tx bun.Tx, roomID uuid.UUID) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", roomID.String()).Exec(ctx)
	return err
}

// ensureIntervalFree rechecks the candidate against the room's current
// bookings inside the transaction. excludeID skips the booking being updated.
func ensureIntervalFree(ctx context.Context, tx bun.Tx, b *domain.Booking, excludeID uuid.UUID) error {
	var existing []domain.Booking
	q := tx.NewSelect().
		Model(&existing).
		Where("room_id = ?", b.RoomID)
	if excludeID != uuid.Nil {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Scan(ctx); err != nil {
		return err
	}

	if domain.SameDay(b.CheckIn, b.CheckOut) {
		// A single-day row may sit on another stay's boundary day but not
		// strictly inside it.
		d := domain.Midnight(b.CheckIn)
		for i := range existing {
			e := &existing[i]
			if e.Deleted() {
				continue
			}
			if d.After(domain.Midnight(e.CheckIn)) && d.Before(domain.Midnight(e.CheckOut)) {
				return store.ErrConflict
			}
		}
		return nil
	}
	if !domain.IsAvailable(b.RoomID, b.CheckIn, b.CheckOut, existing) {
		return store.ErrConflict
	}
	return nil
}

// applyUpdate folds the partial update into the row. A single new date bound
// must still leave check_in on or before check_out against the bound that
// stays, so the fold rejects a resulting reversed interval.
func applyUpdate(b *domain.Booking, upd store.BookingUpdate) error {
	if upd.RoomID != nil {
		b.RoomID = *upd.RoomID
	}
	switch {
	case upd.ClearGuest:
		b.GuestID = nil
	case upd.GuestID != nil:
		b.GuestID = upd.GuestID
	}
	if upd.CheckIn != nil {
		b.CheckIn = domain.Midnight(*upd.CheckIn)
	}
	if upd.CheckOut != nil {
		b.CheckOut = domain.Midnight(*upd.CheckOut)
	}
	if upd.PersonCount != nil {
		b.PersonCount = *upd.PersonCount
	}
	if upd.Status != nil {
		b.Status = *upd.Status
	}
	if upd.MealPlan != nil {
		b.MealPlan = *upd.MealPlan
	}
	if upd.Deposit != nil {
		b.Deposit = *upd.Deposit
	}
	if upd.PricePerPerson != nil {
		b.PricePerPerson = *upd.PricePerPerson
	}
	if upd.ExtraCharge != nil {
		b.ExtraCharge = *upd.ExtraCharge
	}
	if upd.Contact != nil {
		b.Contact = *upd.Contact
	}
	if upd.Notes != nil {
		b.Notes = *upd.Notes
	}

	if domain.Midnight(b.CheckOut).Before(domain.Midnight(b.CheckIn)) {
		return store.ErrConflict
	}
	return nil
}

var _ store.BookingStore = (*BookingRepo)(nil)
