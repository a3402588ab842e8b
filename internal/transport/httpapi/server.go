package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zimmerplan/internal/domain"
	"zimmerplan/internal/service/bookings"
	"zimmerplan/internal/session"
	"zimmerplan/internal/store"
)

const dateLayout = "2006-01-02"

type bookingService interface {
	Create(ctx context.Context, in bookings.CreateInput) (domain.Booking, error)
	Update(ctx context.Context, id uuid.UUID, in bookings.UpdateInput) (domain.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	CreateBlackout(ctx context.Context, roomIDs []uuid.UUID, from, to time.Time, note string) ([]domain.Booking, error)
	ListDeposits(ctx context.Context, from, to *time.Time) ([]domain.Booking, error)
	MarkDepositPaid(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	StatsForDate(ctx context.Context, date time.Time) (bookings.DayStats, error)
	CheckAvailability(ctx context.Context, roomID uuid.UUID, from, to time.Time) (bool, error)
}

type sessionController interface {
	Cells() []domain.DayCell
	Layout() []domain.Block
	Selection() domain.Selection
	ResetSelection()
	TapDay(date time.Time, roomID uuid.UUID) domain.TapOutcome
	Submit(ctx context.Context, in session.SubmitInput) (domain.Booking, error)
	Snapshot() session.Snapshot
}

type Server struct {
	svc  bookingService
	ctrl sessionController
	log  *slog.Logger
}

func NewServer(svc bookingService, ctrl sessionController, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, ctrl: ctrl, log: log.With(slog.String("component", "httpapi"))}
}

func (s *Server) Register(r *gin.Engine) {
	r.GET("/rooms", s.listRooms)
	r.GET("/guests", s.listGuests)
	r.GET("/bookings", s.listBookings)
	r.POST("/bookings", s.createBooking)
	r.PATCH("/bookings/:id", s.updateBooking)
	r.DELETE("/bookings/:id", s.cancelBooking)
	r.POST("/bookings/:id/deposit-paid", s.markDepositPaid)
	r.GET("/deposits", s.listDeposits)
	r.POST("/blackouts", s.createBlackout)
	r.GET("/availability", s.checkAvailability)
	r.GET("/days/:date/stats", s.dayStats)
	r.GET("/calendar", s.calendar)
	r.POST("/calendar/tap", s.tapDay)
	r.POST("/calendar/submit", s.submitSelection)
	r.DELETE("/calendar/selection", s.resetSelection)
}

func (s *Server) writeError(c *gin.Context, err error) {
	var vErr *bookings.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "the interval is no longer available"})
	default:
		s.log.Error("request failed", slog.String("path", c.FullPath()), slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) listRooms(c *gin.Context) {
	snap := s.ctrl.Snapshot()
	out := make([]roomResponse, 0, len(snap.Rooms))
	for i := range snap.Rooms {
		out = append(out, newRoomResponse(&snap.Rooms[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listGuests(c *gin.Context) {
	snap := s.ctrl.Snapshot()
	out := make([]guestResponse, 0, len(snap.Guests))
	for i := range snap.Guests {
		out = append(out, newGuestResponse(&snap.Guests[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listBookings(c *gin.Context) {
	snap := s.ctrl.Snapshot()
	out := make([]bookingResponse, 0, len(snap.Bookings))
	for i := range snap.Bookings {
		out = append(out, newBookingResponse(&snap.Bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := s.svc.Create(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBookingResponse(&b))
}

func (s *Server) updateBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := s.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(&b))
}

func (s *Server) cancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	if err := s.svc.Cancel(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) markDepositPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	b, err := s.svc.MarkDepositPaid(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(&b))
}

func (s *Server) listDeposits(c *gin.Context) {
	from, err := optionalDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := optionalDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	rows, err := s.svc.ListDeposits(c.Request.Context(), from, to)
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, newBookingResponse(&rows[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createBlackout(c *gin.Context) {
	var req createBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roomIDs, from, to, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := s.svc.CreateBlackout(c.Request.Context(), roomIDs, from, to, req.Note)
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, newBookingResponse(&rows[i]))
	}
	c.JSON(http.StatusCreated, out)
}

func (s *Server) checkAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Query("room"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	free, err := s.svc.CheckAvailability(c.Request.Context(), roomID, from, to)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": free})
}

func (s *Server) dayStats(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	stats, err := s.svc.StatsForDate(c.Request.Context(), date)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDayStatsResponse(stats))
}

func (s *Server) calendar(c *gin.Context) {
	c.JSON(http.StatusOK, calendarResponse{
		Cells:     newCellResponses(s.ctrl.Cells()),
		Blocks:    newBlockResponses(s.ctrl.Layout()),
		Selection: newSelectionResponse(s.ctrl.Selection()),
	})
}

func (s *Server) tapDay(c *gin.Context) {
	var req tapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	outcome := s.ctrl.TapDay(date, roomID)
	c.JSON(http.StatusOK, gin.H{
		"outcome":   outcome.String(),
		"selection": newSelectionResponse(s.ctrl.Selection()),
	})
}

func (s *Server) submitSelection(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := s.ctrl.Submit(c.Request.Context(), session.SubmitInput{
		GuestName:      req.GuestName,
		PersonCount:    req.PersonCount,
		Status:         domain.BookingStatus(req.Status),
		MealPlan:       domain.MealPlan(req.MealPlan),
		Deposit:        req.Deposit,
		PricePerPerson: req.PricePerPerson,
		ExtraCharge:    req.ExtraCharge,
		Contact:        req.Contact,
		Notes:          req.Notes,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBookingResponse(&b))
}

func (s *Server) resetSelection(c *gin.Context) {
	s.ctrl.ResetSelection()
	c.Status(http.StatusNoContent)
}

func optionalDate(q string) (*time.Time, error) {
	if q == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, q)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
