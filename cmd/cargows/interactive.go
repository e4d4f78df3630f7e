package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// maxHints caps the candidate list shown under the input.
const maxHints = 8

// pickModel is a bubbletea model for choosing one package by name, showing
// the matching candidates below the input as the user types.
type pickModel struct {
	textInput textinput.Model
	names     []string
	errMsg    string
	done      bool
	aborted   bool
}

func (m pickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "tab":
			if matches := m.matches(); len(matches) > 0 {
				m.textInput.SetValue(matches[0])
				m.textInput.CursorEnd()
			}
			return m, nil
		case "enter":
			val := m.textInput.Value()
			for _, n := range m.names {
				if n == val {
					m.done = true
					return m, tea.Quit
				}
			}
			m.errMsg = fmt.Sprintf("unknown package %q", val)
			return m, nil
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Package to build") + "\n")
	b.WriteString(m.textInput.View() + "\n")
	if matches := m.matches(); len(matches) > 0 {
		hints := matches
		if len(hints) > maxHints {
			hints = hints[:maxHints]
		}
		b.WriteString(hintStyle.Render(strings.Join(hints, "  ")) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m pickModel) matches() []string {
	q := m.textInput.Value()
	var out []string
	for _, n := range m.names {
		if strings.HasPrefix(n, q) {
			out = append(out, n)
		}
	}
	return out
}

// promptPackage asks the user to choose one of names, with tab completion.
func promptPackage(names []string) (string, error) {
	names = append([]string{}, names...)
	sort.Strings(names)

	ti := textinput.New()
	ti.Placeholder = names[0]
	ti.Focus()

	m := pickModel{textInput: ti, names: names}
	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}
	rm := result.(pickModel)
	if rm.aborted {
		return "", fmt.Errorf("user aborted")
	}
	return rm.textInput.Value(), nil
}
