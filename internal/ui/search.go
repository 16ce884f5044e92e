package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// searchState holds the catalog search input.
type searchState struct {
	active bool
	busy   bool
	input  textinput.Model
}

func newSearchState() searchState {
	input := textinput.New()
	input.Placeholder = "search products"
	input.Prompt = "/"
	input.CharLimit = 64
	return searchState{input: input}
}

func (s *searchState) open() {
	s.active = true
	s.input.SetValue("")
	s.input.Focus()
}

func (s *searchState) close() {
	s.active = false
	s.input.Blur()
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.close()
		return m, nil

	case "enter":
		query := strings.TrimSpace(m.search.input.Value())
		m.search.close()
		if query == "" {
			return m, nil
		}
		m.search.busy = true
		return m, searchCmd(m.ctx, m.client, query)
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return m, cmd
}
