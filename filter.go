package bikeshare

import "fmt"

// FilterSpec is the user's choice of city, month and day.
type FilterSpec struct {
	City  City
	Month Month
	Day   Day
}

// Validate checks every field against its enumeration.
func (f FilterSpec) Validate() error {
	if err := f.City.Validate(); err != nil {
		return err
	}
	if err := f.Month.Validate(); err != nil {
		return err
	}
	if err := f.Day.Validate(); err != nil {
		return err
	}
	return nil
}

// String returns the filters joined the way the shells echo them back,
// e.g. "chicago, march, all".
func (f FilterSpec) String() string {
	return fmt.Sprintf("%s, %s, %s", f.City, f.Month, f.Day)
}

// Affirmative reports whether a yes/no answer means yes. Only "yes", in
// any case, counts.
func Affirmative(answer string) bool {
	return normalize(answer) == "yes"
}
