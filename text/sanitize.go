package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes a data cell safe to print on one terminal line. It strips
// ANSI escape sequences, turns tabs and line breaks into spaces and drops
// every other control character.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
