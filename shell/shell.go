// Package shell provides the line-oriented prompt loop used when input is
// not a terminal.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/bikeshare"
	bikejson "github.com/fwojciec/bikeshare/json"
	"github.com/fwojciec/bikeshare/text"
)

// DefaultPageSize is the number of raw rows shown per request.
const DefaultPageSize = 5

// Shell reads answers line by line and writes prompts and reports as text.
type Shell struct {
	in       io.Reader
	out      io.Writer
	analyze  bikeshare.AnalyzeFunc
	render   *text.Renderer
	logger   *slog.Logger
	pageSize int

	lines <-chan string
	errc  <-chan error
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger. The default discards log output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPageSize sets how many raw rows each "yes" reveals.
func WithPageSize(n int) Option {
	return func(s *Shell) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// New creates a Shell reading from in and writing to out.
func New(in io.Reader, out io.Writer, analyze bikeshare.AnalyzeFunc, render *text.Renderer, opts ...Option) *Shell {
	s := &Shell{
		in:       in,
		out:      out,
		analyze:  analyze,
		render:   render,
		logger:   slog.New(slog.DiscardHandler),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run prompts for filters, prints the report, offers raw rows and repeats
// until the user declines to restart. It returns nil when the user finishes
// or input ends, the context's error when it is cancelled, and the analysis
// error when a dataset cannot be loaded.
func (s *Shell) Run(ctx context.Context) error {
	s.startReader()
	for {
		fmt.Fprint(s.out, "\n", s.render.Banner())

		spec, err := s.filters(ctx)
		if err != nil {
			return endOfInput(err)
		}
		fmt.Fprintln(s.out, text.Separator())

		result, err := s.analyze(ctx, spec, s.onEvent)
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, s.render.Report(&result.Report))

		if err := s.rawRows(ctx, result.Dataset); err != nil {
			return endOfInput(err)
		}

		again, err := s.yesNo(ctx, text.RestartPrompt)
		if err != nil {
			return endOfInput(err)
		}
		if !again {
			fmt.Fprint(s.out, s.render.Goodbye())
			return nil
		}
	}
}

func (s *Shell) filters(ctx context.Context) (bikeshare.FilterSpec, error) {
	var spec bikeshare.FilterSpec
	var err error
	if spec.City, err = ask(ctx, s, text.CityPrompt, bikeshare.ParseCity); err != nil {
		return spec, err
	}
	if spec.Month, err = ask(ctx, s, text.MonthPrompt, bikeshare.ParseMonth); err != nil {
		return spec, err
	}
	if spec.Day, err = ask(ctx, s, text.DayPrompt, bikeshare.ParseDay); err != nil {
		return spec, err
	}
	return spec, nil
}

// ask repeats p until parse accepts the answer.
func ask[T any](ctx context.Context, s *Shell, p text.Prompt, parse func(string) (T, error)) (T, error) {
	for {
		fmt.Fprint(s.out, s.render.Question(p))
		line, err := s.readLine(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		s.logger.Debug("answer rejected", slog.String("question", p.Question), slog.String("answer", line))
		fmt.Fprintln(s.out, s.render.Invalid(strings.TrimSpace(line), p))
	}
}

func (s *Shell) rawRows(ctx context.Context, ds *bikeshare.Dataset) error {
	for offset := 0; ; {
		more, err := s.yesNo(ctx, text.RawPrompt)
		if err != nil || !more {
			return err
		}
		page := ds.Page(offset, s.pageSize)
		if len(page) == 0 {
			fmt.Fprint(s.out, s.render.Rows(nil))
			continue
		}
		data, err := bikejson.MarshalTrips(ds.Schema, page)
		if err != nil {
			return err
		}
		offset += len(page)
		fmt.Fprint(s.out, s.render.Rows(data))
	}
}

func (s *Shell) yesNo(ctx context.Context, p text.Prompt) (bool, error) {
	fmt.Fprint(s.out, "\n", p.Line())
	line, err := s.readLine(ctx)
	if err != nil {
		return false, err
	}
	return bikeshare.Affirmative(line), nil
}

func (s *Shell) onEvent(e bikeshare.Event) {
	switch e := e.(type) {
	case bikeshare.EventFilters:
		fmt.Fprint(s.out, s.render.Filters(e.Spec))
	case bikeshare.EventWarning:
		fmt.Fprint(s.out, s.render.Warning(e.Message))
	case bikeshare.EventLoaded:
		s.logger.Debug("trips selected", slog.Int("loaded", e.Loaded), slog.Int("selected", e.Selected))
	}
}

// startReader scans input in the background so reads can be abandoned when
// the context is cancelled.
func (s *Shell) startReader() {
	if s.lines != nil {
		return
	}
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			lines <- sc.Text()
		}
		errc <- sc.Err()
		close(errc)
	}()
	s.lines = lines
	s.errc = errc
}

func (s *Shell) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if ok {
			return line, nil
		}
		if err := <-s.errc; err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
}

// endOfInput treats exhausted input as a normal finish.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
