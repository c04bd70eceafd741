package shell

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Dismiss   key.Binding
	Back      key.Binding
	Start     key.Binding

	// Login screens
	Submit         key.Binding
	NextField      key.Binding
	PrevField      key.Binding
	ToggleRegister key.Binding
	Forgot         key.Binding

	// Tabs. Form tabs own the keyboard, so only the ctrl variants work there.
	NextTab     key.Binding
	PrevTab     key.Binding
	FormNextTab key.Binding
	FormPrevTab key.Binding
	JumpTab     key.Binding

	Logout          key.Binding
	Refresh         key.Binding
	Filter          key.Binding
	ClearFilter     key.Binding
	ApplyFilter     key.Binding
	HostTournament  key.Binding
	ViewTournaments key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Dismiss:   key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Start:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "get started")),

		Submit:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		NextField:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		ToggleRegister: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/register")),
		Forgot:         key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "forgot password")),

		NextTab:     key.NewBinding(key.WithKeys("tab", "right", "l", "ctrl+n"), key.WithHelp("tab", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab", "left", "h", "ctrl+p"), key.WithHelp("shift+tab", "prev tab")),
		FormNextTab: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next tab")),
		FormPrevTab: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev tab")),
		JumpTab:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump")),

		Logout:          key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		Refresh:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Filter:          key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		ClearFilter:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		ApplyFilter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		HostTournament:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create tournament")),
		ViewTournaments: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "my tournaments")),
	}
}
