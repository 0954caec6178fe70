package text

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/bikeshare"
)

// Section titles, in reporting order.
const (
	TitleTime     = "Calculating The Most Frequent Times of Travel"
	TitleStation  = "Calculating The Most Popular Stations and Trip"
	TitleDuration = "Calculating Trip Duration"
	TitleUser     = "Calculating User Stats"
)

// Fixed messages.
const (
	Greeting          = "Hello! Let's explore some US bikeshare data!"
	Logo              = "_(/)_Bikeshare_(/)"
	NoData            = "no data"
	NoMoreRows        = "No more raw data."
	Terminated        = "Bikeshare Session Terminated"
	DurationMissing   = "Error: 'Trip Duration' column is missing from the dataset."
	durationException = "Exception occurred while calculating trip duration: "
)

// Prompt is a question asked of the user with a hint of the valid answers.
type Prompt struct {
	Question string
	Hint     string
}

// Prompts asked by the shells.
var (
	CityPrompt    = Prompt{Question: "Filter data by city", Hint: "Chicago, New York or Washington"}
	MonthPrompt   = Prompt{Question: "Filter data by month", Hint: "all, january, february, march, etc."}
	DayPrompt     = Prompt{Question: "Filter data by day of the week", Hint: "all, sunday, monday, etc."}
	RawPrompt     = Prompt{Question: "Would you like to see raw data?", Hint: "yes/no"}
	RestartPrompt = Prompt{Question: "Would you like to restart?", Hint: "yes/no"}
)

// Line returns the prompt as a single line, e.g.
// "Would you like to restart? (yes/no): ".
func (p Prompt) Line() string {
	return fmt.Sprintf("%s (%s): ", p.Question, p.Hint)
}

// Renderer formats reports and messages as styled text.
type Renderer struct {
	styles Styles
}

// NewRenderer returns a Renderer using styles.
func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Banner returns the greeting shown before the first prompt.
func (r *Renderer) Banner() string {
	return r.styles.Accent.Render(Center(Logo, Width, '_')) + "\n" +
		r.styles.Heading.Render(Center(Greeting, Width, '=')) + "\n"
}

// Question returns a filter prompt with its hint line.
func (r *Renderer) Question(p Prompt) string {
	return "\n" + r.styles.Accent.Render(p.Question) + "\n" +
		r.styles.Muted.Render("["+p.Hint+"]") + " : "
}

// Invalid returns the message shown when an answer to p is rejected.
func (r *Renderer) Invalid(answer string, p Prompt) string {
	return r.styles.Error.Render(fmt.Sprintf("%q is not a valid choice [%s]", answer, p.Hint))
}

// Filters returns the line announcing the filters in effect.
func (r *Renderer) Filters(spec bikeshare.FilterSpec) string {
	return "\nFilters applied: [" + r.styles.Value.Render(Center(spec.String(), Width, '*')) + "]\n"
}

// Warning returns a schema warning line.
func (r *Renderer) Warning(msg string) string {
	return r.styles.Warning.Render(msg) + "\n"
}

// Fatal returns the line shown when the analysis cannot continue.
func (r *Renderer) Fatal(err error) string {
	return r.styles.Error.Render("Error: "+err.Error()) + "\n"
}

// Goodbye returns the line shown when the user declines to restart.
func (r *Renderer) Goodbye() string {
	return r.styles.Muted.Render(Center(Terminated, Width, '*')) + "\n"
}

// Rows returns a page of raw rows, or the last-page message when page is
// empty.
func (r *Renderer) Rows(page []byte) string {
	if len(page) == 0 {
		return r.styles.Muted.Render(NoMoreRows) + "\n"
	}
	return string(page) + "\n"
}

// Report returns the four statistics sections of rep.
func (r *Renderer) Report(rep *bikeshare.Report) string {
	var b strings.Builder
	r.timeSection(&b, rep.Time)
	r.stationSection(&b, rep.Station)
	r.durationSection(&b, rep.Duration)
	r.userSection(&b, rep.User)
	return b.String()
}

func (r *Renderer) timeSection(b *strings.Builder, t bikeshare.TimeReport) {
	r.heading(b, TitleTime)
	r.stat(b, "Most common Month", modeValue(t.Month, func(m time.Month) string { return strconv.Itoa(int(m)) }))
	r.stat(b, "Most common Day", modeValue(t.Weekday, time.Weekday.String))
	r.stat(b, "Most common Start Hour", modeValue(t.Hour, strconv.Itoa))
	r.footer(b, t.Elapsed)
}

func (r *Renderer) stationSection(b *strings.Builder, s bikeshare.StationReport) {
	r.heading(b, TitleStation)
	ident := func(v string) string { return v }
	if s.Start != nil {
		r.stat(b, "Most common Start Station", modeValue(*s.Start, ident))
	}
	if s.End != nil {
		r.stat(b, "Most common End Station", modeValue(*s.End, ident))
	}
	if s.Route != nil {
		r.stat(b, "Most common route", modeValue(*s.Route, ident))
	}
	r.footer(b, s.Elapsed)
}

func (r *Renderer) durationSection(b *strings.Builder, d bikeshare.DurationReport) {
	r.heading(b, TitleDuration)
	switch {
	case d.Err != nil:
		b.WriteString(r.styles.Error.Render(durationException+d.Err.Error()) + "\n")
	case d.Stats == nil:
		b.WriteString(r.styles.Warning.Render(DurationMissing) + "\n")
	case d.Stats.Count == 0:
		r.stat(b, "Max Travel Time", NoData)
		r.stat(b, "Min Travel Time", NoData)
		r.stat(b, "Avg Travel Time", NoData)
		r.stat(b, "Total Travel Time", NoData)
	default:
		r.stat(b, "Max Travel Time", formatFloat(d.Stats.Max))
		r.stat(b, "Min Travel Time", formatFloat(d.Stats.Min))
		r.stat(b, "Avg Travel Time", formatFloat(d.Stats.Mean))
		r.stat(b, "Total Travel Time", formatFloat(d.Stats.Total))
	}
	r.footer(b, d.Elapsed)
}

func (r *Renderer) userSection(b *strings.Builder, u bikeshare.UserReport) {
	r.heading(b, TitleUser)
	if u.UserTypes != nil {
		r.breakdown(b, "User Types:", u.UserTypes)
	}
	if u.Genders != nil {
		r.breakdown(b, "Gender Stats:", u.Genders)
	}
	if y := u.BirthYear; y != nil {
		b.WriteString(r.styles.Heading.Render(Center("Birth Year Stats:", Width, '-')) + "\n")
		if y.Count == 0 {
			r.stat(b, "Earliest Birth Year", NoData)
			r.stat(b, "Most Recent Birth Year", NoData)
			r.stat(b, "Most Common Birth Year", NoData)
		} else {
			r.stat(b, "Earliest Birth Year", strconv.Itoa(y.Earliest))
			r.stat(b, "Most Recent Birth Year", strconv.Itoa(y.MostRecent))
			r.stat(b, "Most Common Birth Year", modeValue(y.MostCommon, strconv.Itoa))
		}
	}
	r.footer(b, u.Elapsed)
}

func (r *Renderer) breakdown(b *strings.Builder, title string, bd *bikeshare.Breakdown) {
	b.WriteString(r.styles.Heading.Render(Center(title, Width, '-')) + "\n")
	if len(bd.Counts) == 0 {
		b.WriteString(r.styles.Muted.Render(NoData) + "\n")
		return
	}
	for _, c := range bd.Counts {
		r.stat(b, c.Value, strconv.Itoa(c.Count))
	}
}

func (r *Renderer) heading(b *strings.Builder, title string) {
	b.WriteString("\n" + r.styles.Heading.Render(Center(title, Width, '=')) + "\n")
}

func (r *Renderer) stat(b *strings.Builder, label, value string) {
	b.WriteString(r.styles.Label.Render(PadRight(label, LabelWidth, '.')) + " " + r.styles.Value.Render(value) + "\n")
}

func (r *Renderer) footer(b *strings.Builder, elapsed time.Duration) {
	b.WriteString("\n" + r.styles.Muted.Render(fmt.Sprintf("This took %.4f seconds.", elapsed.Seconds())) + "\n")
	b.WriteString(Separator() + "\n")
}

func modeValue[T comparable](m bikeshare.Mode[T], format func(T) string) string {
	if !m.Valid() {
		return NoData
	}
	return format(m.Value)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
