package text_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/bikeshare"
	"github.com/fwojciec/bikeshare/text"
	"github.com/stretchr/testify/assert"
)

func TestCenter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{"puts the odd column left for an odd width", "ab", 5, "**ab*"},
		{"puts the odd column right for an even width", "abc", 6, "*abc**"},
		{"pads evenly when it can", "ab", 6, "**ab**"},
		{"leaves wide strings alone", "abcdef", 4, "abcdef"},
		{"counts display columns", "日本", 6, "*日本*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, text.Center(tt.s, tt.width, '*'))
		})
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Most common Day.....", text.PadRight("Most common Day", 20, '.'))
	assert.Equal(t, "toolong", text.PadRight("toolong", 3, '.'))
}

func TestCityName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "New York", text.CityName(bikeshare.NewYork))
	assert.Equal(t, "Chicago", text.CityName(bikeshare.Chicago))
}

func TestNewStyles(t *testing.T) {
	t.Parallel()

	styles := text.NewStyles(bikeshare.DefaultTheme())
	assert.Equal(t, lipgloss.Color("5"), styles.Heading.GetForeground())
	assert.True(t, styles.Heading.GetBold())
	assert.Equal(t, lipgloss.Color("6"), styles.Value.GetForeground())
	assert.Equal(t, lipgloss.Color("3"), styles.Warning.GetForeground())
	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())
	assert.True(t, styles.Muted.GetFaint())
	assert.Equal(t, lipgloss.Color("4"), styles.Accent.GetForeground())
}

func TestNewStylesPlainThemeYieldsNoColor(t *testing.T) {
	t.Parallel()

	styles := text.NewStyles(bikeshare.PlainTheme())
	assert.Equal(t, lipgloss.NoColor{}, styles.Heading.GetForeground())
	assert.False(t, styles.Heading.GetBold())
	assert.False(t, styles.Muted.GetFaint())
}

func plain() *text.Renderer {
	return text.NewRenderer(text.NewStyles(bikeshare.PlainTheme()))
}

func TestRenderer_Report(t *testing.T) {
	t.Parallel()

	t.Run("renders every section in order", func(t *testing.T) {
		t.Parallel()
		rep := &bikeshare.Report{
			Time: bikeshare.TimeReport{
				Month:   bikeshare.Mode[time.Month]{Value: time.June, Count: 3},
				Weekday: bikeshare.Mode[time.Weekday]{Value: time.Friday, Count: 2},
				Hour:    bikeshare.Mode[int]{Value: 17, Count: 2},
				Elapsed: 1500 * time.Microsecond,
			},
			Station: bikeshare.StationReport{
				Start: &bikeshare.Mode[string]{Value: "Canal St", Count: 2},
				End:   &bikeshare.Mode[string]{Value: "Clark St", Count: 2},
				Route: &bikeshare.Mode[string]{Value: "Canal St -> Clark St", Count: 1},
			},
			Duration: bikeshare.DurationReport{
				Stats: &bikeshare.DurationStats{Count: 4, Max: 1610, Min: 321, Mean: 674.25, Total: 2697},
			},
			User: bikeshare.UserReport{
				UserTypes: &bikeshare.Breakdown{Counts: []bikeshare.Count{{Value: "Subscriber", Count: 3}, {Value: "Customer", Count: 1}}},
				Genders:   &bikeshare.Breakdown{Counts: []bikeshare.Count{{Value: bikeshare.NotDisclosed, Count: 4}}},
				BirthYear: &bikeshare.BirthYearStats{Count: 3, Earliest: 1981, MostRecent: 1992, MostCommon: bikeshare.Mode[int]{Value: 1992, Count: 2}},
			},
		}

		got := plain().Report(rep)

		lines := []string{
			text.Center(text.TitleTime, text.Width, '='),
			stat("Most common Month", "6"),
			stat("Most common Day", "Friday"),
			stat("Most common Start Hour", "17"),
			"This took 0.0015 seconds.",
			text.Center(text.TitleStation, text.Width, '='),
			stat("Most common Start Station", "Canal St"),
			stat("Most common End Station", "Clark St"),
			stat("Most common route", "Canal St -> Clark St"),
			text.Center(text.TitleDuration, text.Width, '='),
			stat("Max Travel Time", "1610"),
			stat("Min Travel Time", "321"),
			stat("Avg Travel Time", "674.25"),
			stat("Total Travel Time", "2697"),
			text.Center(text.TitleUser, text.Width, '='),
			text.Center("User Types:", text.Width, '-'),
			stat("Subscriber", "3"),
			stat("Customer", "1"),
			text.Center("Gender Stats:", text.Width, '-'),
			stat("Not disclosed", "4"),
			text.Center("Birth Year Stats:", text.Width, '-'),
			stat("Earliest Birth Year", "1981"),
			stat("Most Recent Birth Year", "1992"),
			stat("Most Common Birth Year", "1992"),
		}
		assertInOrder(t, got, lines)
		assert.Equal(t, 4, strings.Count(got, text.Separator()+"\n"))
	})

	t.Run("prints no data for an empty selection", func(t *testing.T) {
		t.Parallel()
		rep := &bikeshare.Report{
			Station:  bikeshare.StationReport{Start: &bikeshare.Mode[string]{}},
			Duration: bikeshare.DurationReport{Stats: &bikeshare.DurationStats{}},
			User: bikeshare.UserReport{
				UserTypes: &bikeshare.Breakdown{},
				BirthYear: &bikeshare.BirthYearStats{},
			},
		}

		got := plain().Report(rep)

		assertInOrder(t, got, []string{
			stat("Most common Month", text.NoData),
			stat("Most common Start Station", text.NoData),
			stat("Max Travel Time", text.NoData),
			text.Center("User Types:", text.Width, '-'),
			text.NoData,
			stat("Earliest Birth Year", text.NoData),
		})
		assert.NotContains(t, got, "Most common End Station")
		assert.NotContains(t, got, "Gender Stats:")
	})

	t.Run("describes a missing duration column", func(t *testing.T) {
		t.Parallel()
		got := plain().Report(&bikeshare.Report{})
		assert.Contains(t, got, text.DurationMissing+"\n")
		assert.NotContains(t, got, "Max Travel Time")
		assert.Contains(t, got, text.TitleUser)
	})

	t.Run("prints a duration computation failure and carries on", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("row 3: invalid trip duration NaN: %w", bikeshare.ErrComputation)
		got := plain().Report(&bikeshare.Report{Duration: bikeshare.DurationReport{Err: err}})
		assertInOrder(t, got, []string{
			"Exception occurred while calculating trip duration: row 3: invalid trip duration NaN: computation error",
			text.TitleUser,
		})
	})
}

func TestRenderer_Messages(t *testing.T) {
	t.Parallel()

	r := plain()

	t.Run("announces the filters", func(t *testing.T) {
		t.Parallel()
		spec := bikeshare.FilterSpec{City: bikeshare.Chicago, Month: bikeshare.March}
		assert.Equal(t,
			"\nFilters applied: ["+text.Center("chicago, march, all", text.Width, '*')+"]\n",
			r.Filters(spec))
	})

	t.Run("shows the greeting", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, r.Banner(), text.Center(text.Greeting, text.Width, '='))
	})

	t.Run("asks a question with its hint", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "\nFilter data by city\n[Chicago, New York or Washington] : ", r.Question(text.CityPrompt))
	})

	t.Run("rejects an answer with the valid choices", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, `"boston" is not a valid choice [Chicago, New York or Washington]`, r.Invalid("boston", text.CityPrompt))
	})

	t.Run("formats yes/no prompts on one line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Would you like to restart? (yes/no): ", text.RestartPrompt.Line())
	})

	t.Run("reports the end of the raw rows", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, text.NoMoreRows+"\n", r.Rows(nil))
		assert.Equal(t, "{}\n", r.Rows([]byte("{}")))
	})

	t.Run("renders fatal errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Error: boom\n", r.Fatal(errors.New("boom")))
	})

	t.Run("says goodbye", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, text.Center(text.Terminated, text.Width, '*')+"\n", r.Goodbye())
	})
}

func stat(label, value string) string {
	return text.PadRight(label, text.LabelWidth, '.') + " " + value
}

func assertInOrder(t *testing.T, s string, parts []string) {
	t.Helper()
	rest := s
	for _, p := range parts {
		i := strings.Index(rest, p)
		if !assert.GreaterOrEqual(t, i, 0, "missing or out of order: %q", p) {
			return
		}
		rest = rest[i+len(p):]
	}
}
