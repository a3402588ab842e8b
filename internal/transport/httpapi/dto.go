package httpapi

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"zimmerplan/internal/domain"
	"zimmerplan/internal/service/bookings"
)

type roomResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

func newRoomResponse(r *domain.Room) roomResponse {
	return roomResponse{ID: r.ID.String(), Number: r.Number}
}

type guestResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newGuestResponse(g *domain.Guest) guestResponse {
	return guestResponse{ID: g.ID.String(), FirstName: g.FirstName, LastName: g.LastName}
}

type bookingResponse struct {
	ID             string `json:"id"`
	RoomID         string `json:"room_id"`
	GuestID        string `json:"guest_id,omitempty"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	PersonCount    int    `json:"person_count"`
	Status         string `json:"status"`
	MealPlan       string `json:"meal_plan,omitempty"`
	Deposit        string `json:"deposit,omitempty"`
	PricePerPerson string `json:"price_per_person,omitempty"`
	ExtraCharge    string `json:"extra_charge,omitempty"`
	Contact        string `json:"contact,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func newBookingResponse(b *domain.Booking) bookingResponse {
	out := bookingResponse{
		ID:             b.ID.String(),
		RoomID:         b.RoomID.String(),
		CheckIn:        b.CheckIn.Format(dateLayout),
		CheckOut:       b.CheckOut.Format(dateLayout),
		PersonCount:    b.PersonCount,
		Status:         string(b.Status),
		MealPlan:       string(b.MealPlan),
		Deposit:        b.Deposit,
		PricePerPerson: b.PricePerPerson,
		ExtraCharge:    b.ExtraCharge,
		Contact:        b.Contact,
		Notes:          b.Notes,
	}
	if b.GuestID != nil {
		out.GuestID = b.GuestID.String()
	}
	return out
}

type createBookingRequest struct {
	RoomID         string `json:"room_id"`
	GuestName      string `json:"guest_name"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	PersonCount    int    `json:"person_count"`
	Status         string `json:"status"`
	MealPlan       string `json:"meal_plan"`
	Deposit        string `json:"deposit"`
	PricePerPerson string `json:"price_per_person"`
	ExtraCharge    string `json:"extra_charge"`
	Contact        string `json:"contact"`
	Notes          string `json:"notes"`
}

func (r createBookingRequest) toInput() (bookings.CreateInput, error) {
	roomID, err := uuid.Parse(r.RoomID)
	if err != nil {
		return bookings.CreateInput{}, errors.New("invalid room id")
	}
	checkIn, err := time.Parse(dateLayout, r.CheckIn)
	if err != nil {
		return bookings.CreateInput{}, errors.New("invalid check_in date")
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOut)
	if err != nil {
		return bookings.CreateInput{}, errors.New("invalid check_out date")
	}

	return bookings.CreateInput{
		RoomID:         roomID,
		GuestName:      r.GuestName,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		PersonCount:    r.PersonCount,
		Status:         domain.BookingStatus(r.Status),
		MealPlan:       domain.MealPlan(r.MealPlan),
		Deposit:        r.Deposit,
		PricePerPerson: r.PricePerPerson,
		ExtraCharge:    r.ExtraCharge,
		Contact:        r.Contact,
		Notes:          r.Notes,
	}, nil
}

type updateBookingRequest struct {
	RoomID         *string `json:"room_id"`
	GuestName      *string `json:"guest_name"`
	CheckIn        *string `json:"check_in"`
	CheckOut       *string `json:"check_out"`
	PersonCount    *int    `json:"person_count"`
	Status         *string `json:"status"`
	MealPlan       *string `json:"meal_plan"`
	Deposit        *string `json:"deposit"`
	PricePerPerson *string `json:"price_per_person"`
	ExtraCharge    *string `json:"extra_charge"`
	Contact        *string `json:"contact"`
	Notes          *string `json:"notes"`
}

func (r updateBookingRequest) toInput() (bookings.UpdateInput, error) {
	in := bookings.UpdateInput{
		GuestName:      r.GuestName,
		PersonCount:    r.PersonCount,
		Deposit:        r.Deposit,
		PricePerPerson: r.PricePerPerson,
		ExtraCharge:    r.ExtraCharge,
		Contact:        r.Contact,
		Notes:          r.Notes,
	}

	if r.RoomID != nil {
		roomID, err := uuid.Parse(*r.RoomID)
		if err != nil {
			return bookings.UpdateInput{}, errors.New("invalid room id")
		}
		in.RoomID = &roomID
	}
	if r.CheckIn != nil {
		t, err := time.Parse(dateLayout, *r.CheckIn)
		if err != nil {
			return bookings.UpdateInput{}, errors.New("invalid check_in date")
		}
		in.CheckIn = &t
	}
	if r.CheckOut != nil {
		t, err := time.Parse(dateLayout, *r.CheckOut)
		if err != nil {
			return bookings.UpdateInput{}, errors.New("invalid check_out date")
		}
		in.CheckOut = &t
	}
	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		in.Status = &status
	}
	if r.MealPlan != nil {
		meal := domain.MealPlan(*r.MealPlan)
		in.MealPlan = &meal
	}
	return in, nil
}

type createBlackoutRequest struct {
	RoomIDs []string `json:"room_ids"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Note    string   `json:"note"`
}

func (r createBlackoutRequest) parse() ([]uuid.UUID, time.Time, time.Time, error) {
	roomIDs := make([]uuid.UUID, 0, len(r.RoomIDs))
	for _, raw := range r.RoomIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, time.Time{}, time.Time{}, errors.New("invalid room id")
		}
		roomIDs = append(roomIDs, id)
	}
	from, err := time.Parse(dateLayout, r.From)
	if err != nil {
		return nil, time.Time{}, time.Time{}, errors.New("invalid from date")
	}
	to, err := time.Parse(dateLayout, r.To)
	if err != nil {
		return nil, time.Time{}, time.Time{}, errors.New("invalid to date")
	}
	return roomIDs, from, to, nil
}

type tapRequest struct {
	RoomID string `json:"room_id"`
	Date   string `json:"date"`
}

type submitRequest struct {
	GuestName      string `json:"guest_name"`
	PersonCount    int    `json:"person_count"`
	Status         string `json:"status"`
	MealPlan       string `json:"meal_plan"`
	Deposit        string `json:"deposit"`
	PricePerPerson string `json:"price_per_person"`
	ExtraCharge    string `json:"extra_charge"`
	Contact        string `json:"contact"`
	Notes          string `json:"notes"`
}

type cellResponse struct {
	Date       string `json:"date"`
	DayLabel   string `json:"day_label"`
	MonthLabel string `json:"month_label"`
}

func newCellResponses(cells []domain.DayCell) []cellResponse {
	out := make([]cellResponse, 0, len(cells))
	for _, cell := range cells {
		out = append(out, cellResponse{
			Date:       cell.Date.Format(dateLayout),
			DayLabel:   cell.DayLabel,
			MonthLabel: cell.MonthLabel,
		})
	}
	return out
}

type blockResponse struct {
	BookingID string  `json:"booking_id"`
	RoomID    string  `json:"room_id"`
	X         float64 `json:"x"`
	Width     float64 `json:"width"`
	Color     string  `json:"color"`
	Label     string  `json:"label"`
}

func newBlockResponses(blocks []domain.Block) []blockResponse {
	out := make([]blockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockResponse{
			BookingID: b.BookingID.String(),
			RoomID:    b.RoomID.String(),
			X:         b.X,
			Width:     b.Width,
			Color:     b.Color,
			Label:     b.Label,
		})
	}
	return out
}

type selectionResponse struct {
	State    string `json:"state"`
	RoomID   string `json:"room_id,omitempty"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
}

func newSelectionResponse(sel domain.Selection) selectionResponse {
	switch sel.State() {
	case domain.SelectionEmpty:
		return selectionResponse{State: "empty"}
	case domain.SelectionCheckInOnly:
		return selectionResponse{
			State:   "check_in_only",
			RoomID:  sel.RoomID.String(),
			CheckIn: sel.CheckIn.Date.Format(dateLayout),
		}
	default:
		return selectionResponse{
			State:    "range_selected",
			RoomID:   sel.RoomID.String(),
			CheckIn:  sel.CheckIn.Date.Format(dateLayout),
			CheckOut: sel.CheckOut.Date.Format(dateLayout),
		}
	}
}

type calendarResponse struct {
	Cells     []cellResponse    `json:"cells"`
	Blocks    []blockResponse   `json:"blocks"`
	Selection selectionResponse `json:"selection"`
}

type aggregateResponse struct {
	Persons int                `json:"persons"`
	Entries []dayEntryResponse `json:"entries"`
}

type dayEntryResponse struct {
	BookingID  string `json:"booking_id"`
	GuestName  string `json:"guest_name"`
	RoomNumber string `json:"room_number"`
	Persons    int    `json:"persons"`
}

func newAggregateResponse(agg domain.DayAggregate) aggregateResponse {
	out := aggregateResponse{Persons: agg.Persons, Entries: make([]dayEntryResponse, 0, len(agg.Entries))}
	for _, e := range agg.Entries {
		out.Entries = append(out.Entries, dayEntryResponse{
			BookingID:  e.Booking.ID.String(),
			GuestName:  e.GuestName,
			RoomNumber: e.RoomNumber,
			Persons:    e.Booking.PersonCount,
		})
	}
	return out
}

type dayStatsResponse struct {
	Date       string            `json:"date"`
	Arrivals   aggregateResponse `json:"arrivals"`
	Departures aggregateResponse `json:"departures"`
	InHouse    aggregateResponse `json:"in_house"`
	Breakfast  aggregateResponse `json:"breakfast"`
	HalfBoard  aggregateResponse `json:"half_board"`
}

func newDayStatsResponse(stats bookings.DayStats) dayStatsResponse {
	return dayStatsResponse{
		Date:       stats.Date.Format(dateLayout),
		Arrivals:   newAggregateResponse(stats.Arrivals),
		Departures: newAggregateResponse(stats.Departures),
		InHouse:    newAggregateResponse(stats.InHouse),
		Breakfast:  newAggregateResponse(stats.Breakfast),
		HalfBoard:  newAggregateResponse(stats.HalfBoard),
	}
}
