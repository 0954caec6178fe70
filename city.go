package bikeshare

import (
	"fmt"
	"strings"
	"time"
)

// City identifies one of the supported bikeshare systems.
type City string

const (
	Chicago    City = "chicago"
	NewYork    City = "new york"
	Washington City = "washington"
)

// Cities returns the supported cities in prompt order.
func Cities() []City {
	return []City{Chicago, NewYork, Washington}
}

// ParseCity parses a city name case-insensitively.
func ParseCity(s string) (City, error) {
	c := City(normalize(s))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate reports whether c is a supported city.
func (c City) Validate() error {
	switch c {
	case Chicago, NewYork, Washington:
		return nil
	}
	return fmt.Errorf("unknown city %q: %w", string(c), ErrValidation)
}

// Month is a month filter. The zero value selects every month.
type Month int

// MonthAll disables month filtering. The source data only covers January
// through June, so those are the only named months.
const (
	MonthAll Month = iota
	January
	February
	March
	April
	May
	June
)

var monthNames = []string{"all", "january", "february", "march", "april", "may", "june"}

// Months returns every month filter value, MonthAll first.
func Months() []Month {
	return []Month{MonthAll, January, February, March, April, May, June}
}

// ParseMonth parses a month filter case-insensitively.
func ParseMonth(s string) (Month, error) {
	n := normalize(s)
	for i, name := range monthNames {
		if n == name {
			return Month(i), nil
		}
	}
	return MonthAll, fmt.Errorf("unknown month %q: %w", s, ErrValidation)
}

// String returns the lowercase filter name, e.g. "march" or "all".
func (m Month) String() string {
	if m < MonthAll || int(m) >= len(monthNames) {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m]
}

// Validate reports whether m is a supported month filter.
func (m Month) Validate() error {
	if m < MonthAll || m > June {
		return fmt.Errorf("month %d out of range: %w", int(m), ErrValidation)
	}
	return nil
}

// Matches reports whether a trip started in month t passes the filter.
func (m Month) Matches(t time.Month) bool {
	return m == MonthAll || time.Month(m) == t
}

// Day is a day-of-week filter. The zero value selects every day.
type Day int

const (
	DayAll Day = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = []string{"all", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Days returns every day filter value, DayAll first.
func Days() []Day {
	return []Day{DayAll, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// ParseDay parses a day filter case-insensitively.
func ParseDay(s string) (Day, error) {
	n := normalize(s)
	for i, name := range dayNames {
		if n == name {
			return Day(i), nil
		}
	}
	return DayAll, fmt.Errorf("unknown day %q: %w", s, ErrValidation)
}

// String returns the lowercase filter name, e.g. "monday" or "all".
func (d Day) String() string {
	if d < DayAll || int(d) >= len(dayNames) {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Validate reports whether d is a supported day filter.
func (d Day) Validate() error {
	if d < DayAll || d > Saturday {
		return fmt.Errorf("day %d out of range: %w", int(d), ErrValidation)
	}
	return nil
}

// Weekday returns the time.Weekday for a named day. It panics for DayAll.
func (d Day) Weekday() time.Weekday {
	if d == DayAll {
		panic("bikeshare: DayAll has no weekday")
	}
	return time.Weekday(d - 1)
}

// Matches reports whether a trip started on weekday w passes the filter.
func (d Day) Matches(w time.Weekday) bool {
	return d == DayAll || d.Weekday() == w
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
