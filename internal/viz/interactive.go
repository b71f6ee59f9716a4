package viz

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Opener builds the live model for a named choice.
type Opener func(name string) (Model, error)

// App is a menu of named setups that opens a live Model for the selection.
// Pressing esc in the simulation returns to the menu.
type App struct {
	choices []string
	notes   map[string]string
	cursor  int
	open    Opener
	live    *Model
	err     error
	width   int
	height  int
}

func NewApp(choices []string, notes map[string]string, open Opener) App {
	return App{choices: choices, notes: notes, open: open}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = size.Width, size.Height
	}

	if a.live != nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			a.live = nil
			return a, nil
		}
		next, cmd := a.live.Update(msg)
		live := next.(Model)
		a.live = &live
		return a, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.choices)-1 {
			a.cursor++
		}
	case "enter", " ":
		if len(a.choices) == 0 {
			return a, nil
		}
		live, err := a.open(a.choices[a.cursor])
		if err != nil {
			a.err = err
			return a, nil
		}
		a.err = nil
		if a.width > 0 {
			live.resize(a.width, a.height)
			live.draw()
		}
		a.live = &live
		return a, live.Init()
	}
	return a, nil
}

func (a App) View() string {
	if a.live != nil {
		return a.live.View()
	}

	st := stylesFor(Themes[0])
	selected := lipgloss.NewStyle().Foreground(Themes[0].Accent).Bold(true)

	var s strings.Builder
	s.WriteString(st.header.Render("GRAVSIM") + "\n")
	for i, name := range a.choices {
		line := "  " + name
		if i == a.cursor {
			line = selected.Render("> " + name)
		}
		if note := a.notes[name]; note != "" {
			line += "  " + st.label.UnsetWidth().Render(note)
		}
		s.WriteString(line + "\n")
	}
	if a.err != nil {
		s.WriteString("\n" + st.warn.Render(a.err.Error()) + "\n")
	}
	s.WriteString(st.help.Render("↑↓:Select Enter:Open Esc:Back Q:Quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}
