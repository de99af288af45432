package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global bindings shown in the status bar and help screen
type keyMap struct {
	Home       key.Binding
	Parameters key.Binding
	Allocation key.Binding
	Results    key.Binding
	Compare    key.Binding
	Help       key.Binding
	Back       key.Binding
	Reset      key.Binding
	Save       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Home:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Parameters: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "parameters")),
		Allocation: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "allocation")),
		Results:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "results")),
		Compare:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Reset:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Parameters, k.Allocation, k.Results, k.Compare, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Parameters, k.Allocation, k.Results, k.Compare},
		{k.Help, k.Back, k.Reset, k.Save, k.Quit},
	}
}
