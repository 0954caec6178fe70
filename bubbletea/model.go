package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/bikeshare"
	bikejson "github.com/fwojciec/bikeshare/json"
	"github.com/fwojciec/bikeshare/text"
)

var _ tea.Model = Model{}

// DefaultPageSize is the number of raw rows shown per request.
const DefaultPageSize = 5

// phase is the question the model is waiting on.
type phase int

const (
	phaseCity phase = iota
	phaseMonth
	phaseDay
	phaseRunning
	phaseRaw
	phaseRestart
	phaseDone
)

var phaseNames = [...]string{"city", "month", "day", "running", "raw", "restart", "done"}

func (p phase) String() string { return phaseNames[p] }

// Model is the Bubble Tea model for the bikeshare TUI.
type Model struct {
	// Input is the answer field. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript. Exported for test access.
	Viewport viewport.Model
	// Spinner animates while an analysis runs.
	Spinner spinner.Model

	analyze  bikeshare.AnalyzeFunc
	render   *text.Renderer
	styles   text.Styles
	pageSize int

	phase  phase
	spec   bikeshare.FilterSpec
	result *bikeshare.Result
	offset int // raw rows already shown

	transcript string
	status     string // rejection or cancellation notice, cleared on the next answer
	stage      string // analysis progress

	cancel  context.CancelFunc
	eventCh chan bikeshare.Event
	doneCh  chan AnalysisDoneMsg
	err     error
	ready   bool
}

// Option configures a Model.
type Option func(*Model)

// WithPageSize sets how many raw rows each "yes" reveals.
func WithPageSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.pageSize = n
		}
	}
}

// New creates a TUI Model running analyses with analyze.
func New(analyze bikeshare.AnalyzeFunc, theme bikeshare.Theme, opts ...Option) Model {
	styles := text.NewStyles(theme)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Focus()

	m := Model{
		Input:    ti,
		Spinner:  spinner.New(spinner.WithSpinner(spinner.Line), spinner.WithStyle(styles.Accent)),
		analyze:  analyze,
		render:   text.NewRenderer(styles),
		styles:   styles,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.transcript = m.render.Banner()
	return m.enterPhase(phaseCity)
}

// Running returns whether an analysis is in progress.
func (m Model) Running() bool { return m.phase == phaseRunning }

// Done returns whether the user has finished the session.
func (m Model) Done() bool { return m.phase == phaseDone }

// Err returns the error that ended the session, if any.
func (m Model) Err() error { return m.err }

// Spec returns the filters chosen so far.
func (m Model) Spec() bikeshare.FilterSpec { return m.spec }

// Transcript returns everything shown in the output area.
func (m Model) Transcript() string { return m.transcript }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.Spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m = m.processEvent(msg.Event).refresh()
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case AnalysisDoneMsg:
		return m.finishAnalysis(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.Running() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.questionLine())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	const reserved = 3 // question, status and input lines
	vpHeight := max(msg.Height-reserved, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = msg.Width
	return m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.Running() {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.Running() || m.Done() {
			return m, nil
		}
		return m.submit(m.Input.Value())
	}

	if m.Running() {
		return m, nil
	}

	// Runes go to the input only; 'j' and 'k' would scroll the viewport.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit(answer string) (tea.Model, tea.Cmd) {
	answer = strings.TrimSpace(answer)
	p := m.prompt()
	m.status = ""

	switch m.phase {
	case phaseCity:
		city, err := bikeshare.ParseCity(answer)
		if err != nil {
			return m.reject(answer, p), nil
		}
		m.spec.City = city
		m = m.record(p, answer).enterPhase(phaseMonth)

	case phaseMonth:
		month, err := bikeshare.ParseMonth(answer)
		if err != nil {
			return m.reject(answer, p), nil
		}
		m.spec.Month = month
		m = m.record(p, answer).enterPhase(phaseDay)

	case phaseDay:
		day, err := bikeshare.ParseDay(answer)
		if err != nil {
			return m.reject(answer, p), nil
		}
		m.spec.Day = day
		m = m.record(p, answer)
		m.transcript += text.Separator() + "\n"
		return m.beginAnalysis()

	case phaseRaw:
		m = m.recordYesNo(p, answer)
		if bikeshare.Affirmative(answer) {
			m = m.showRows()
		} else {
			m = m.enterPhase(phaseRestart)
		}

	case phaseRestart:
		m = m.recordYesNo(p, answer)
		if !bikeshare.Affirmative(answer) {
			m.transcript += "\n" + m.render.Goodbye()
			return m.enterPhase(phaseDone).refresh(), tea.Quit
		}
		m.spec = bikeshare.FilterSpec{}
		m.result = nil
		m.offset = 0
		m.transcript += "\n" + m.render.Banner()
		m = m.enterPhase(phaseCity)
	}
	return m.refresh(), nil
}

func (m Model) reject(answer string, p text.Prompt) Model {
	m.status = m.render.Invalid(answer, p)
	m.Input.SetValue("")
	return m
}

func (m Model) record(p text.Prompt, answer string) Model {
	m.transcript += m.render.Question(p) + answer + "\n"
	return m
}

func (m Model) recordYesNo(p text.Prompt, answer string) Model {
	m.transcript += "\n" + m.styles.Accent.Render(p.Line()) + answer + "\n"
	return m
}

func (m Model) enterPhase(p phase) Model {
	m.phase = p
	m.Input.SetValue("")
	switch p {
	case phaseCity:
		m.Input.Placeholder = "chicago"
	case phaseMonth, phaseDay:
		m.Input.Placeholder = "all"
	case phaseRaw, phaseRestart:
		m.Input.Placeholder = "yes or no"
	default:
		m.Input.Placeholder = ""
	}
	return m
}

func (m Model) prompt() text.Prompt {
	switch m.phase {
	case phaseCity:
		return text.CityPrompt
	case phaseMonth:
		return text.MonthPrompt
	case phaseDay:
		return text.DayPrompt
	case phaseRaw:
		return text.RawPrompt
	case phaseRestart:
		return text.RestartPrompt
	default:
		return text.Prompt{}
	}
}

// showRows appends the next page of raw rows to the transcript.
func (m Model) showRows() Model {
	ds := m.result.Dataset
	page := ds.Page(m.offset, m.pageSize)
	if len(page) == 0 {
		m.transcript += m.render.Rows(nil)
		return m
	}
	data, err := bikejson.MarshalTrips(ds.Schema, page)
	if err != nil {
		m.status = m.styles.Error.Render(err.Error())
		return m
	}
	m.offset += len(page)
	m.transcript += m.render.Rows(data)
	return m
}

func (m Model) beginAnalysis() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.eventCh = make(chan bikeshare.Event, 16)
	m.doneCh = make(chan AnalysisDoneMsg, 1)
	m.stage = fmt.Sprintf("Loading %s data...", text.CityName(m.spec.City))
	m = m.enterPhase(phaseRunning)
	m.Input.Blur()

	return m.refresh(), tea.Batch(
		startAnalysis(ctx, m.analyze, m.spec, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
	)
}

func (m Model) processEvent(evt bikeshare.Event) Model {
	switch e := evt.(type) {
	case bikeshare.EventFilters:
		m.transcript += m.render.Filters(e.Spec)
	case bikeshare.EventWarning:
		m.transcript += m.render.Warning(e.Message)
	case bikeshare.EventLoaded:
		m.stage = fmt.Sprintf("%d of %d %s trips selected", e.Selected, e.Loaded, text.CityName(e.City))
	case bikeshare.EventStage:
		m.stage = fmt.Sprintf("Calculating %s stats...", e.Stage)
	}
	return m
}

func (m Model) finishAnalysis(msg AnalysisDoneMsg) (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.eventCh = nil
	m.doneCh = nil
	m.stage = ""
	focus := m.Input.Focus()

	switch {
	case errors.Is(msg.Err, context.Canceled):
		m.status = m.styles.Muted.Render("Analysis cancelled.")
		m.spec = bikeshare.FilterSpec{}
		return m.enterPhase(phaseCity).refresh(), focus
	case msg.Err != nil:
		m.err = msg.Err
		m.transcript += m.render.Fatal(msg.Err)
		return m.enterPhase(phaseDone).refresh(), tea.Quit
	}

	m.result = msg.Result
	m.transcript += m.render.Report(&msg.Result.Report)
	return m.enterPhase(phaseRaw).refresh(), focus
}

// refresh copies the transcript into the viewport and scrolls to the end.
func (m Model) refresh() Model {
	if m.ready {
		m.Viewport.SetContent(m.transcript)
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) questionLine() string {
	p := m.prompt()
	if p.Question == "" {
		return ""
	}
	return m.styles.Accent.Render(p.Question) + " " + m.styles.Muted.Render("["+p.Hint+"]")
}

func (m Model) statusLine() string {
	switch {
	case m.err != nil:
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		return m.status
	case m.Running():
		return m.Spinner.View() + " " + m.styles.Muted.Render(m.stage)
	case m.Done():
		return ""
	case m.phase == phaseCity && m.result == nil:
		return m.Spinner.View() + " " + m.styles.Accent.Render("Bikeshare") + " " + m.styles.Muted.Render("Enter to answer, Ctrl+C to quit")
	default:
		return m.styles.Muted.Render("Enter to answer, Ctrl+C to quit")
	}
}

// startAnalysis runs the analysis in a goroutine and signals completion.
func startAnalysis(ctx context.Context, run bikeshare.AnalyzeFunc, spec bikeshare.FilterSpec, eventCh chan<- bikeshare.Event, doneCh chan<- AnalysisDoneMsg) tea.Cmd {
	return func() tea.Msg {
		result, err := run(ctx, spec, func(e bikeshare.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		})
		close(eventCh)
		doneCh <- AnalysisDoneMsg{Result: result, Err: err}
		return nil
	}
}

// listenForEvent waits for the next event from the channel. When the
// channel closes, it reads the outcome from doneCh.
func listenForEvent(ch <-chan bikeshare.Event, doneCh <-chan AnalysisDoneMsg) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return <-doneCh
		}
		return EventMsg{Event: evt}
	}
}
