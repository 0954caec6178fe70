package bikeshare_test

import (
	"testing"
	"time"

	"github.com/fwojciec/bikeshare"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.DateTime, s)
	require.NoError(t, err)
	return ts
}

// trip builds a trip with both stations, a duration and a user type.
func trip(t *testing.T, index int, start, from, to string, seconds float64, userType string) bikeshare.Trip {
	t.Helper()
	tr := bikeshare.NewTrip(index, mustTime(t, start))
	tr.StartStation = ptr(from)
	tr.EndStation = ptr(to)
	tr.Duration = ptr(seconds)
	tr.UserType = ptr(userType)
	return tr
}

func fullSchema() bikeshare.Schema {
	return bikeshare.NewSchema(bikeshare.Columns()...)
}

func washingtonSchema() bikeshare.Schema {
	return bikeshare.NewSchema(
		bikeshare.ColumnStartTime,
		bikeshare.ColumnEndTime,
		bikeshare.ColumnTripDuration,
		bikeshare.ColumnStartStation,
		bikeshare.ColumnEndStation,
		bikeshare.ColumnUserType,
	)
}

// sampleDataset spans January through March. Rows 0 and 4 fall on a
// Sunday, rows 1, 2 and 5 on a Monday, row 3 on a Tuesday.
func sampleDataset(t *testing.T) *bikeshare.Dataset {
	t.Helper()
	trips := []bikeshare.Trip{
		trip(t, 0, "2017-01-01 09:07:57", "Canal St", "Clark St", 776, "Subscriber"),
		trip(t, 1, "2017-01-02 09:30:00", "Canal St", "State St", 300, "Customer"),
		trip(t, 2, "2017-02-06 17:15:00", "Clark St", "Canal St", 1200, "Subscriber"),
		trip(t, 3, "2017-02-07 17:45:00", "Canal St", "Clark St", 450, "Subscriber"),
		trip(t, 4, "2017-03-05 08:00:00", "State St", "Clark St", 90, "Customer"),
		trip(t, 5, "2017-03-06 17:05:00", "Canal St", "Clark St", 640, "Subscriber"),
	}
	return &bikeshare.Dataset{City: bikeshare.Chicago, Schema: fullSchema(), Trips: trips}
}
