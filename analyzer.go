package bikeshare

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

// Loader reads the full dataset for a city.
type Loader interface {
	Load(ctx context.Context, city City) (*Dataset, error)
}

// AnalyzeFunc runs one analysis. Shells depend on this rather than on
// Analyzer so they can be driven by fakes.
type AnalyzeFunc func(ctx context.Context, spec FilterSpec, onEvent func(Event)) (*Result, error)

// Result is the outcome of one analysis: the report and the filtered trips
// it was computed from.
type Result struct {
	Report  Report
	Dataset *Dataset
}

// Analyzer runs the load, filter and report pipeline.
type Analyzer struct {
	loader Loader
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer reading datasets from loader. A nil logger
// discards log output.
func NewAnalyzer(loader Loader, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{loader: loader, logger: logger}
}

// RunOption configures a single Analyze invocation.
type RunOption func(*runConfig)

type runConfig struct {
	onEvent func(Event)
	now     func() time.Time
}

// WithEventHandler sets a callback that receives progress events. If nil or
// not set, events are discarded.
func WithEventHandler(h func(Event)) RunOption {
	return func(c *runConfig) {
		c.onEvent = h
	}
}

// WithClock replaces time.Now for measuring reporter elapsed times.
func WithClock(now func() time.Time) RunOption {
	return func(c *runConfig) {
		c.now = now
	}
}

// Func adapts a to an AnalyzeFunc.
func (a *Analyzer) Func(opts ...RunOption) AnalyzeFunc {
	return func(ctx context.Context, spec FilterSpec, onEvent func(Event)) (*Result, error) {
		return a.Analyze(ctx, spec, append(slices.Clip(opts), WithEventHandler(onEvent))...)
	}
}

// Analyze loads spec's city, applies its month and day filters and runs the
// time, station, duration and user reporters in that order. Load failures
// are returned; a duration computation failure is recorded on the report
// and the remaining reporters still run.
func (a *Analyzer) Analyze(ctx context.Context, spec FilterSpec, opts ...RunOption) (*Result, error) {
	cfg := runConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	emit := func(e Event) {
		if cfg.onEvent != nil {
			cfg.onEvent(e)
		}
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	emit(EventFilters{Spec: spec})

	report := Report{Spec: spec}
	if spec.City == Washington {
		report.Warning = WashingtonWarning
		a.logger.Warn("partial schema", slog.String("city", string(spec.City)))
		emit(EventWarning{Message: WashingtonWarning})
	}

	ds, err := a.loader.Load(ctx, spec.City)
	if err != nil {
		return nil, err
	}
	filtered := ds.Filter(spec.Month, spec.Day)
	report.Loaded = ds.Len()
	report.Selected = filtered.Len()
	a.logger.Info("dataset filtered",
		slog.String("filters", spec.String()),
		slog.Int("loaded", report.Loaded),
		slog.Int("selected", report.Selected))
	emit(EventLoaded{City: spec.City, Loaded: report.Loaded, Selected: report.Selected})

	emit(EventStage{Stage: StageTime})
	start := cfg.now()
	report.Time = TimeStats(filtered.Trips)
	report.Time.Elapsed = cfg.now().Sub(start)

	emit(EventStage{Stage: StageStation})
	start = cfg.now()
	report.Station = StationStats(filtered)
	report.Station.Elapsed = cfg.now().Sub(start)

	emit(EventStage{Stage: StageDuration})
	start = cfg.now()
	stats, err := DurationSummary(filtered)
	if err != nil {
		a.logger.Error("trip duration", slog.String("error", err.Error()))
	}
	report.Duration = DurationReport{Stats: stats, Err: err, Elapsed: cfg.now().Sub(start)}

	emit(EventStage{Stage: StageUser})
	start = cfg.now()
	report.User = UserStats(filtered)
	report.User.Elapsed = cfg.now().Sub(start)

	return &Result{Report: report, Dataset: filtered}, nil
}
