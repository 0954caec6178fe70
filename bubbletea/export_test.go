package bubbletea

// Phase exports the current question for testing.
func Phase(m Model) string {
	return m.phase.String()
}

// Status exports the status notice for testing.
func Status(m Model) string {
	return m.status
}
