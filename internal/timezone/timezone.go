package timezone

import (
	"time"

	"github.com/BruksfildServices01/med-directory/internal/httperr"
)

const DefaultTimezone = "Asia/Tashkent"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// DayRange returns [start, end) of the YYYY-MM-DD day in tz.
func DayRange(date string, tz string) (time.Time, time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", date, Location(tz))
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBadRequest("invalid_date", "Date must be YYYY-MM-DD")
	}
	return d, d.AddDate(0, 0, 1), nil
}

// MonthRange returns [start, end) of the calendar month in tz.
func MonthRange(year, month int, tz string) (time.Time, time.Time, error) {
	if year < 2000 || year > 2100 {
		return time.Time{}, time.Time{}, httperr.ErrBadRequest("invalid_year", "Invalid year")
	}
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, httperr.ErrBadRequest("invalid_month", "Invalid month")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, Location(tz))
	return start, start.AddDate(0, 1, 0), nil
}
