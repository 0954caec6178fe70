package shell_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/bikeshare"
	"github.com/fwojciec/bikeshare/mock"
	"github.com/fwojciec/bikeshare/shell"
	"github.com/fwojciec/bikeshare/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(rows int) *bikeshare.Result {
	start := time.Date(2017, 1, 2, 8, 0, 0, 0, time.UTC)
	trips := make([]bikeshare.Trip, rows)
	for i := range trips {
		trips[i] = bikeshare.NewTrip(i, start.Add(time.Duration(i)*time.Hour))
	}
	ds := &bikeshare.Dataset{
		City:   bikeshare.Chicago,
		Schema: bikeshare.NewSchema(bikeshare.ColumnStartTime),
		Trips:  trips,
	}
	return &bikeshare.Result{Report: bikeshare.Report{Time: bikeshare.TimeStats(trips)}, Dataset: ds}
}

func renderer() *text.Renderer {
	return text.NewRenderer(text.NewStyles(bikeshare.PlainTheme()))
}

// recorder is an AnalyzeFunc that remembers every spec it was asked for.
type recorder struct {
	specs  []bikeshare.FilterSpec
	result *bikeshare.Result
	err    error
}

func (r *recorder) analyze(_ context.Context, spec bikeshare.FilterSpec, onEvent func(bikeshare.Event)) (*bikeshare.Result, error) {
	r.specs = append(r.specs, spec)
	onEvent(bikeshare.EventFilters{Spec: spec})
	if spec.City == bikeshare.Washington {
		onEvent(bikeshare.EventWarning{Message: bikeshare.WashingtonWarning})
	}
	return r.result, r.err
}

func run(t *testing.T, input string, analyze bikeshare.AnalyzeFunc) (string, error) {
	t.Helper()
	var out bytes.Buffer
	sh := shell.New(strings.NewReader(input), &out, analyze, renderer())
	err := sh.Run(context.Background())
	return out.String(), err
}

func TestShell_Run(t *testing.T) {
	t.Parallel()

	t.Run("runs one analysis and says goodbye", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{result: sampleResult(3)}
		out, err := run(t, "chicago\nmarch\nmonday\nno\nno\n", rec.analyze)
		require.NoError(t, err)

		require.Len(t, rec.specs, 1)
		assert.Equal(t, bikeshare.FilterSpec{City: bikeshare.Chicago, Month: bikeshare.March, Day: bikeshare.Monday}, rec.specs[0])
		assert.Contains(t, out, text.Greeting)
		assert.Contains(t, out, "Filters applied: [")
		assert.Contains(t, out, text.TitleTime)
		assert.Contains(t, out, text.TitleUser)
		assert.Contains(t, out, text.RawPrompt.Line())
		assert.Contains(t, out, text.RestartPrompt.Line())
		assert.True(t, strings.HasSuffix(out, text.Center(text.Terminated, text.Width, '*')+"\n"))
	})

	t.Run("re-prompts until an answer is valid", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{result: sampleResult(0)}
		out, err := run(t, "boston\n  New York \nsummer\nall\nfunday\nSUNDAY\nno\nno\n", rec.analyze)
		require.NoError(t, err)

		require.Len(t, rec.specs, 1)
		assert.Equal(t, bikeshare.FilterSpec{City: bikeshare.NewYork, Day: bikeshare.Sunday}, rec.specs[0])
		assert.Equal(t, 2, strings.Count(out, text.CityPrompt.Question))
		assert.Equal(t, 2, strings.Count(out, text.MonthPrompt.Question))
		assert.Equal(t, 2, strings.Count(out, text.DayPrompt.Question))
		assert.Contains(t, out, `"boston" is not a valid choice`)
		assert.Contains(t, out, `"summer" is not a valid choice`)
		assert.Contains(t, out, `"funday" is not a valid choice`)
	})

	t.Run("shows the washington warning", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{result: sampleResult(0)}
		out, err := run(t, "washington\nall\nall\nno\nno\n", rec.analyze)
		require.NoError(t, err)
		assert.Contains(t, out, bikeshare.WashingtonWarning)
	})

	t.Run("pages raw rows until they run out", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{result: sampleResult(7)}
		out, err := run(t, "chicago\nall\nall\nyes\nyes\nyes\nno\nno\n", rec.analyze)
		require.NoError(t, err)

		first := strings.Index(out, `"4": {`)
		second := strings.Index(out, `"5": {`)
		last := strings.Index(out, text.NoMoreRows)
		require.GreaterOrEqual(t, first, 0)
		require.GreaterOrEqual(t, second, 0)
		require.GreaterOrEqual(t, last, 0)
		assert.Less(t, first, second)
		assert.Less(t, second, last)
		assert.Equal(t, 1, strings.Count(out, `"0": {`))
	})

	t.Run("restarts with fresh filters", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{result: sampleResult(1)}
		_, err := run(t, "chicago\nall\nall\nno\nyes\nwashington\njune\nfriday\nno\nno\n", rec.analyze)
		require.NoError(t, err)

		assert.Equal(t, []bikeshare.FilterSpec{
			{City: bikeshare.Chicago},
			{City: bikeshare.Washington, Month: bikeshare.June, Day: bikeshare.Friday},
		}, rec.specs)
	})

	t.Run("honors a custom page size", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		sh := shell.New(strings.NewReader("chicago\nall\nall\nyes\nno\nno\n"), &out,
			mock.Analyze(sampleResult(5), nil), renderer(), shell.WithPageSize(2))
		require.NoError(t, sh.Run(context.Background()))
		assert.Contains(t, out.String(), `"1": {`)
		assert.NotContains(t, out.String(), `"2": {`)
	})

	t.Run("returns load failures", func(t *testing.T) {
		t.Parallel()
		loadErr := fmt.Errorf("load chicago: %w", bikeshare.ErrNotFound)
		out, err := run(t, "chicago\nall\nall\n", mock.Analyze(nil, loadErr))
		require.ErrorIs(t, err, bikeshare.ErrNotFound)
		assert.NotContains(t, out, text.TitleTime)
	})

	t.Run("finishes quietly when input ends", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{result: sampleResult(1)}
		_, err := run(t, "chicago\nall\n", rec.analyze)
		require.NoError(t, err)
		assert.Empty(t, rec.specs)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()
		pr, pw := io.Pipe()
		defer pw.Close()
		ctx, cancel := context.WithCancel(context.Background())
		sh := shell.New(pr, io.Discard, mock.Analyze(sampleResult(0), nil), renderer())

		errc := make(chan error, 1)
		go func() { errc <- sh.Run(ctx) }()
		cancel()

		select {
		case err := <-errc:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})
}
