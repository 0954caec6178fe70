package bikeshare

import "time"

// Column is a source file column name.
type Column string

const (
	ColumnStartTime    Column = "Start Time"
	ColumnEndTime      Column = "End Time"
	ColumnStartStation Column = "Start Station"
	ColumnEndStation   Column = "End Station"
	ColumnTripDuration Column = "Trip Duration"
	ColumnUserType     Column = "User Type"
	ColumnGender       Column = "Gender"
	ColumnBirthYear    Column = "Birth Year"
)

// Columns returns every known column in source file order.
func Columns() []Column {
	return []Column{
		ColumnStartTime,
		ColumnEndTime,
		ColumnTripDuration,
		ColumnStartStation,
		ColumnEndStation,
		ColumnUserType,
		ColumnGender,
		ColumnBirthYear,
	}
}

// Schema records which known columns a city's data file carries. Presence
// is a property of the file, not of individual rows.
type Schema struct {
	columns map[Column]bool
}

// NewSchema returns a Schema containing the given columns. Unknown names
// are kept so Has answers for them too, but only known columns are loaded.
func NewSchema(columns ...Column) Schema {
	s := Schema{columns: make(map[Column]bool, len(columns))}
	for _, c := range columns {
		s.columns[c] = true
	}
	return s
}

// Has reports whether the schema contains column c.
func (s Schema) Has(c Column) bool {
	return s.columns[c]
}

// Known returns the known columns present in the schema, in Columns() order.
func (s Schema) Known() []Column {
	var out []Column
	for _, c := range Columns() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Trip is a single trip record. Optional fields are nil when the source cell
// was empty or the column is absent from the schema.
type Trip struct {
	Index int // 0-based row position in the source file

	Start        time.Time
	End          *time.Time
	StartStation *string
	EndStation   *string
	Duration     *float64 // seconds
	UserType     *string
	Gender       *string
	BirthYear    *int

	// Month and Weekday are derived from Start at load time.
	Month   time.Month
	Weekday time.Weekday
}

// NewTrip returns a Trip starting at start with calendar fields derived.
func NewTrip(index int, start time.Time) Trip {
	return Trip{
		Index:   index,
		Start:   start,
		Month:   start.Month(),
		Weekday: start.Weekday(),
	}
}

// Route returns "start -> end" when both stations are set.
func (t Trip) Route() (string, bool) {
	if t.StartStation == nil || t.EndStation == nil {
		return "", false
	}
	return *t.StartStation + " -> " + *t.EndStation, true
}

// Dataset is the set of trips loaded for one city.
type Dataset struct {
	City   City
	Schema Schema
	Trips  []Trip
}

// Len returns the number of trips.
func (d *Dataset) Len() int { return len(d.Trips) }

// Filter returns the trips matching both the month and the day filter, in
// source order. The receiver is not modified; MonthAll with DayAll returns a
// dataset holding every trip.
func (d *Dataset) Filter(month Month, day Day) *Dataset {
	out := &Dataset{City: d.City, Schema: d.Schema}
	if month == MonthAll && day == DayAll {
		out.Trips = make([]Trip, len(d.Trips))
		copy(out.Trips, d.Trips)
		return out
	}
	for _, t := range d.Trips {
		if month.Matches(t.Month) && day.Matches(t.Weekday) {
			out.Trips = append(out.Trips, t)
		}
	}
	return out
}

// Page returns up to n trips starting at offset. It returns an empty slice
// once offset reaches the end.
func (d *Dataset) Page(offset, n int) []Trip {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(d.Trips) || n <= 0 {
		return nil
	}
	end := min(offset+n, len(d.Trips))
	return d.Trips[offset:end]
}
