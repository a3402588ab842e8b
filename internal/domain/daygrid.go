package domain

import "time"

// DayCell is one column of the calendar grid: a midnight-normalized date plus
// its display labels. Cells are values; the grid is regenerated, never patched.
type DayCell struct {
	Date       time.Time
	DayLabel   string // two-digit day of month, e.g. "07"
	MonthLabel string // "MM.YYYY", e.g. "06.2024"
}

func NewDayCell(date time.Time) DayCell {
	d := Midnight(date)
	return DayCell{
		Date:       d,
		DayLabel:   d.Format("02"),
		MonthLabel: d.Format("01.2006"),
	}
}

// Midnight truncates t to the start of its calendar day, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day. Time of day
// never participates in grid comparisons.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// GenerateDayCells produces the contiguous day sequence from today-pastDays
// through today+futureMonths, one cell per calendar day. futureMonths uses
// calendar month arithmetic, not fixed 30-day blocks. Callers capture "today"
// once per session so a regeneration on the same day is index-for-index
// identical.
func GenerateDayCells(today time.Time, pastDays, futureMonths int) []DayCell {
	if pastDays < 0 {
		pastDays = 0
	}
	if futureMonths < 0 {
		futureMonths = 0
	}

	start := Midnight(today).AddDate(0, 0, -pastDays)
	end := Midnight(today).AddDate(0, futureMonths, 0)

	cells := make([]DayCell, 0, int(end.Sub(start)/(24*time.Hour))+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		cells = append(cells, NewDayCell(d))
	}
	return cells
}

// DayCellIndex returns the position of the first cell on the same calendar
// day as date, or -1 if the date lies outside the grid.
func DayCellIndex(date time.Time, cells []DayCell) int {
	for i := range cells {
		if SameDay(cells[i].Date, date) {
			return i
		}
	}
	return -1
}
