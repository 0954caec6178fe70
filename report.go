package bikeshare

import (
	"fmt"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WashingtonWarning is shown before Washington's data is loaded.
const WashingtonWarning = "Warning: Washington dataset lacks 'Gender' and 'Birth Year' information."

// Report holds every statistic computed for one FilterSpec.
//
// A nil section pointer means the statistic's column is absent from the
// city's schema and the line is skipped. A present statistic computed over
// zero values has a zero Count and is rendered as having no data.
type Report struct {
	Spec     FilterSpec
	Warning  string // non-empty when the city's schema is known to be partial
	Loaded   int    // trips in the dataset before filtering
	Selected int    // trips remaining after filtering

	Time     TimeReport
	Station  StationReport
	Duration DurationReport
	User     UserReport
}

// TimeReport holds the most frequent times of travel.
type TimeReport struct {
	Month   Mode[time.Month]
	Weekday Mode[time.Weekday]
	Hour    Mode[int]
	Elapsed time.Duration
}

// StationReport holds the most popular stations and route.
type StationReport struct {
	Start   *Mode[string]
	End     *Mode[string]
	Route   *Mode[string] // set only when both station columns are present
	Elapsed time.Duration
}

// DurationReport holds trip duration statistics. Stats is nil when the
// Trip Duration column is absent; Err is set when the values present could
// not be summarized.
type DurationReport struct {
	Stats   *DurationStats
	Err     error
	Elapsed time.Duration
}

// DurationStats summarizes trip durations in seconds. Missing cells are
// skipped.
type DurationStats struct {
	Count int
	Max   float64
	Min   float64
	Mean  float64
	Total float64
}

// UserReport holds rider demographics.
type UserReport struct {
	UserTypes *Breakdown
	Genders   *Breakdown
	BirthYear *BirthYearStats
	Elapsed   time.Duration
}

// Breakdown is a frequency table for one categorical column.
type Breakdown struct {
	Counts []Count
}

// BirthYearStats summarizes rider birth years.
type BirthYearStats struct {
	Count      int
	Earliest   int
	MostRecent int
	MostCommon Mode[int]
}

// TimeStats computes the most common month, weekday and start hour.
func TimeStats(trips []Trip) TimeReport {
	months := make([]time.Month, len(trips))
	days := make([]time.Weekday, len(trips))
	hours := make([]int, len(trips))
	for i, t := range trips {
		months[i] = t.Month
		days[i] = t.Weekday
		hours[i] = t.Start.Hour()
	}
	return TimeReport{
		Month:   ModeOf(months),
		Weekday: ModeOf(days),
		Hour:    ModeOf(hours),
	}
}

// StationStats computes the most common start station, end station and
// route for the columns d's schema carries.
func StationStats(d *Dataset) StationReport {
	var r StationReport
	hasStart := d.Schema.Has(ColumnStartStation)
	hasEnd := d.Schema.Has(ColumnEndStation)
	if hasStart {
		m := ModeOf(collect(d.Trips, func(t Trip) (string, bool) { return deref(t.StartStation) }))
		r.Start = &m
	}
	if hasEnd {
		m := ModeOf(collect(d.Trips, func(t Trip) (string, bool) { return deref(t.EndStation) }))
		r.End = &m
	}
	if hasStart && hasEnd {
		m := ModeOf(collect(d.Trips, Trip.Route))
		r.Route = &m
	}
	return r
}

// DurationSummary computes max, min, mean and total trip duration. It
// returns nil stats when the Trip Duration column is absent, and an error
// wrapping ErrComputation when a value is not a finite non-negative number.
func DurationSummary(d *Dataset) (*DurationStats, error) {
	if !d.Schema.Has(ColumnTripDuration) {
		return nil, nil
	}
	values := make([]float64, 0, len(d.Trips))
	for _, t := range d.Trips {
		if t.Duration == nil {
			continue
		}
		v := *t.Duration
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("row %d: invalid trip duration %v: %w", t.Index, v, ErrComputation)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return &DurationStats{}, nil
	}
	return &DurationStats{
		Count: len(values),
		Max:   floats.Max(values),
		Min:   floats.Min(values),
		Mean:  stat.Mean(values, nil),
		Total: floats.Sum(values),
	}, nil
}

// UserStats computes user type and gender breakdowns and birth year
// statistics for the columns d's schema carries.
func UserStats(d *Dataset) UserReport {
	var r UserReport
	if d.Schema.Has(ColumnUserType) {
		types := collect(d.Trips, func(t Trip) (string, bool) { return deref(t.UserType) })
		r.UserTypes = &Breakdown{Counts: ValueCounts(types)}
	}
	if d.Schema.Has(ColumnGender) {
		r.Genders = &Breakdown{Counts: ValueCounts(GenderLabels(d.Trips))}
	}
	if d.Schema.Has(ColumnBirthYear) {
		r.BirthYear = birthYearStats(collect(d.Trips, func(t Trip) (int, bool) { return deref(t.BirthYear) }))
	}
	return r
}

func birthYearStats(years []int) *BirthYearStats {
	if len(years) == 0 {
		return &BirthYearStats{}
	}
	return &BirthYearStats{
		Count:      len(years),
		Earliest:   slices.Min(years),
		MostRecent: slices.Max(years),
		MostCommon: ModeOf(years),
	}
}
