package tui

type (
	// pollMsg asks the browser to re-read the result sets.
	pollMsg struct{}

	reloadedMsg struct{ err error }

	copiedMsg struct{ err error }

	clearStatusMsg struct{}
)
