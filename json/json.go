// Package json renders trips as JSON objects keyed by source row index.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/fwojciec/bikeshare"
)

// TimeLayout is the layout used for Start Time and End Time values.
const TimeLayout = time.DateTime

// Derived field names appended after the source columns of every row.
const (
	FieldMonth     = "month"
	FieldDayOfWeek = "day_of_week"
)

// field is one key/value pair of a row object. Rows are encoded from a
// slice so keys keep column order.
type field struct {
	key   string
	value any
}

// MarshalTrips encodes trips as an indented object mapping each trip's
// source row index to its fields. Only the columns in schema are included,
// followed by the derived month and day of week. Missing values encode as
// null. Keys appear in the order of trips.
func MarshalTrips(schema bikeshare.Schema, trips []bikeshare.Trip) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range trips {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, strconv.Itoa(t.Index)); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeRow(&buf, row(schema, t)); err != nil {
			return nil, fmt.Errorf("row %d: %w", t.Index, err)
		}
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent: %w", err)
	}
	return out.Bytes(), nil
}

func row(schema bikeshare.Schema, t bikeshare.Trip) []field {
	known := schema.Known()
	fields := make([]field, 0, len(known)+2)
	for _, c := range known {
		fields = append(fields, field{key: string(c), value: value(t, c)})
	}
	return append(fields,
		field{key: FieldMonth, value: int(t.Month)},
		field{key: FieldDayOfWeek, value: t.Weekday.String()},
	)
}

func value(t bikeshare.Trip, c bikeshare.Column) any {
	switch c {
	case bikeshare.ColumnStartTime:
		return t.Start.Format(TimeLayout)
	case bikeshare.ColumnEndTime:
		if t.End == nil {
			return nil
		}
		return t.End.Format(TimeLayout)
	case bikeshare.ColumnTripDuration:
		if t.Duration == nil || math.IsNaN(*t.Duration) || math.IsInf(*t.Duration, 0) {
			return nil
		}
		return *t.Duration
	case bikeshare.ColumnStartStation:
		return optional(t.StartStation)
	case bikeshare.ColumnEndStation:
		return optional(t.EndStation)
	case bikeshare.ColumnUserType:
		return optional(t.UserType)
	case bikeshare.ColumnGender:
		return optional(t.Gender)
	case bikeshare.ColumnBirthYear:
		return optional(t.BirthYear)
	default:
		return nil
	}
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func writeRow(buf *bytes.Buffer, fields []field) error {
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, f.key); err != nil {
			return err
		}
		buf.WriteByte(':')
		data, err := marshal(f.value)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.key, err)
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	data, err := marshal(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// marshal encodes v without escaping HTML characters; station names
// contain '&'.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
