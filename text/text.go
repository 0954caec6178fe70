// Package text renders bikeshare reports and prompts as terminal text.
package text

import (
	"strings"

	"github.com/fwojciec/bikeshare"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Width is the column count banners and separators are padded to.
	Width = 78

	// LabelWidth is the column count statistic labels are padded to.
	LabelWidth = 40
)

// Center pads s on both sides with fill to width display columns. When the
// padding is odd the extra column goes on the left if width is also odd and
// on the right otherwise. Strings already at least width wide are returned
// unchanged.
func Center(s string, width int, fill rune) string {
	marg := width - runewidth.StringWidth(s)
	if marg <= 0 {
		return s
	}
	left := marg/2 + (marg & width & 1)
	f := string(fill)
	return strings.Repeat(f, left) + s + strings.Repeat(f, marg-left)
}

// PadRight pads s on the right with fill to width display columns.
func PadRight(s string, width int, fill rune) string {
	marg := width - runewidth.StringWidth(s)
	if marg <= 0 {
		return s
	}
	return s + strings.Repeat(string(fill), marg)
}

// Separator returns a full-width rule.
func Separator() string {
	return strings.Repeat("-", Width)
}

var title = cases.Title(language.English)

// CityName returns city capitalized for display, e.g. "New York".
func CityName(city bikeshare.City) string {
	return title.String(string(city))
}
