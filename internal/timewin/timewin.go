package timewin

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidWindow = errors.New("invalid window")

// Month is one (year, month) pair touched by an ISO week.
type Month struct {
	Year  int
	Month int
}

// Window is a resolved ISO week: the input pair plus every distinct
// calendar month its seven days fall into.
type Window struct {
	Year   int
	Week   int
	Months []Month
}

// Resolve maps an ISO (year, week) pair to the calendar months the week
// covers. Weeks run Monday-Sunday, so the result is one or two months,
// possibly across a year boundary (week 53 of 2024 reaches into January
// 2025; week 1 can start in late December of the prior year).
func Resolve(year, week int) (Window, error) {
	if week < 1 || week > 53 {
		return Window{}, fmt.Errorf("%w: week %d out of range", ErrInvalidWindow, week)
	}
	// Week 53 is accepted even for 52-week ISO years: the Monday
	// arithmetic still lands on a well-defined week and callers rely on
	// it resolving across the year boundary.
	monday := isoWeekMonday(year, week)

	var months []Month
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		m := Month{Year: d.Year(), Month: int(d.Month())}
		if len(months) == 0 || months[len(months)-1] != m {
			months = append(months, m)
		}
	}
	return Window{Year: year, Week: week, Months: months}, nil
}

// isoWeekMonday returns the Monday of the given ISO week. January 4 is
// always inside week 1, which anchors the calculation.
func isoWeekMonday(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, 1-wd)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}
