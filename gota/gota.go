// Package gota loads city trip files into bikeshare datasets using the gota
// dataframe CSV reader.
package gota

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/bikeshare"
	"github.com/fwojciec/bikeshare/text"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Interface compliance check.
var _ bikeshare.Loader = (*Loader)(nil)

// Opener opens a data file by name.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// Loader reads a city's CSV file into a Dataset.
type Loader struct {
	config bikeshare.Config
	files  Opener
	logger *slog.Logger
}

// NewLoader returns a Loader resolving city files through config and
// opening them with files. A nil logger discards log output.
func NewLoader(config bikeshare.Config, files Opener, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{config: config, files: files, logger: logger}
}

// nanValues are the cell contents treated as missing.
var nanValues = []string{"", "NA", "NaN", "nan", "<nil>"}

// timeLayouts are tried in order when parsing timestamps.
var timeLayouts = []string{
	time.DateTime,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Load reads every row of city's data file. A missing or unreadable file
// yields an error wrapping bikeshare.ErrNotFound; a file without a
// parseable Start Time column yields one wrapping bikeshare.ErrParse.
func (l *Loader) Load(ctx context.Context, city bikeshare.City) (*bikeshare.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := l.config.File(city)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	l.logger.Info("loading dataset", slog.String("city", string(city)), slog.String("file", name))

	rc, err := l.files.Open(name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", city, err)
	}
	defer rc.Close()

	df := dataframe.ReadCSV(rc,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load %s: read %s: %w: %w", city, name, bikeshare.ErrParse, df.Err)
	}

	ds, err := l.dataset(city, df)
	if err != nil {
		return nil, fmt.Errorf("load %s: %s: %w", city, name, err)
	}

	l.logger.Info("dataset loaded",
		slog.String("city", string(city)),
		slog.Int("rows", ds.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return ds, nil
}

func (l *Loader) dataset(city bikeshare.City, df dataframe.DataFrame) (*bikeshare.Dataset, error) {
	cols := make(map[bikeshare.Column]series.Series)
	var present []bikeshare.Column
	for _, name := range df.Names() {
		c := bikeshare.Column(strings.TrimSpace(name))
		for _, known := range bikeshare.Columns() {
			if c == known {
				cols[c] = df.Col(name)
				present = append(present, c)
			}
		}
	}
	if _, ok := cols[bikeshare.ColumnStartTime]; !ok {
		return nil, fmt.Errorf("missing %q column: %w", bikeshare.ColumnStartTime, bikeshare.ErrParse)
	}

	ds := &bikeshare.Dataset{
		City:   city,
		Schema: bikeshare.NewSchema(present...),
		Trips:  make([]bikeshare.Trip, 0, df.Nrow()),
	}

	for i := range df.Nrow() {
		raw, ok := cell(cols, bikeshare.ColumnStartTime, i)
		if !ok {
			return nil, fmt.Errorf("row %d: empty %q: %w", i, bikeshare.ColumnStartTime, bikeshare.ErrParse)
		}
		startTime, err := parseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %q: %w: %w", i, bikeshare.ColumnStartTime, bikeshare.ErrParse, err)
		}

		t := bikeshare.NewTrip(i, startTime)
		if s, ok := cell(cols, bikeshare.ColumnEndTime, i); ok {
			if end, err := parseTime(s); err == nil {
				t.End = &end
			} else {
				l.logger.Debug("unparseable end time", slog.Int("row", i), slog.String("value", s))
			}
		}
		t.StartStation = label(cols, bikeshare.ColumnStartStation, i)
		t.EndStation = label(cols, bikeshare.ColumnEndStation, i)
		t.UserType = label(cols, bikeshare.ColumnUserType, i)
		t.Gender = label(cols, bikeshare.ColumnGender, i)
		if s, ok := cell(cols, bikeshare.ColumnTripDuration, i); ok {
			t.Duration = duration(s)
		}
		if s, ok := cell(cols, bikeshare.ColumnBirthYear, i); ok {
			if year, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(year) && !math.IsInf(year, 0) {
				y := int(year)
				t.BirthYear = &y
			} else {
				l.logger.Debug("unparseable birth year", slog.Int("row", i), slog.String("value", s))
			}
		}
		ds.Trips = append(ds.Trips, t)
	}
	return ds, nil
}

// cell returns the trimmed text of column c at row i. It reports false when
// the column is absent or the cell is missing.
func cell(cols map[bikeshare.Column]series.Series, c bikeshare.Column, i int) (string, bool) {
	s, ok := cols[c]
	if !ok {
		return "", false
	}
	e := s.Elem(i)
	if e.IsNA() {
		return "", false
	}
	v := strings.TrimSpace(e.String())
	return v, v != ""
}

// label returns the sanitized text of a categorical cell, or nil when it
// is missing.
func label(cols map[bikeshare.Column]series.Series, c bikeshare.Column, i int) *string {
	s, ok := cell(cols, c, i)
	if !ok {
		return nil
	}
	s = text.Sanitize(s)
	return &s
}

// duration parses seconds. Text that is not a number is kept as NaN so the
// duration reporter reports it instead of the value silently vanishing.
func duration(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v = math.NaN()
	}
	return &v
}

func parseTime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
