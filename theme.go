package bikeshare

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	Heading int // Section banners
	Label   int // Statistic names and their dot leaders
	Value   int // Statistic values
	Warning int // Schema warnings
	Error   int // Computation failures and fatal errors
	Muted   int // Timings, status line, hints
	Accent  int // Prompts and the spinner
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Heading: 5,
		Label:   8,
		Value:   6,
		Warning: 3,
		Error:   1,
		Muted:   8,
		Accent:  4,
	}
}

// PlainTheme returns a Theme with every color disabled.
func PlainTheme() Theme {
	return Theme{-1, -1, -1, -1, -1, -1, -1}
}
