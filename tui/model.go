// Package tui is the interactive character browser. It renders controller
// state snapshots and turns key presses into controller operations.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/s0up4200/citadel/controller"
	"github.com/s0up4200/citadel/rickmorty"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// rows taken by the header, search box, banner and help line
	chromeHeight = 7
)

// Lister is the part of the list controller the browser drives
type Lister interface {
	LoadInitial(ctx context.Context)
	LoadMore(ctx context.Context)
	Search(ctx context.Context, query string)
	ClearSearch(ctx context.Context)
	Retry(ctx context.Context)
	Select(id int)
}

// CharacterGetter loads the character behind a detail view
type CharacterGetter interface {
	GetCharacter(ctx context.Context, id int) (*rickmorty.Character, error)
}

type view int

const (
	viewList view = iota
	viewDetail
)

type stateMsg struct {
	state controller.State
}

type openDetailMsg struct {
	id int
}

type detailMsg struct {
	id        int
	character *rickmorty.Character
	err       error
}

// Navigator forwards controller selections to a running program
type Navigator struct {
	mu      sync.Mutex
	program *tea.Program
}

// Open asks the attached program to show the detail view for id
func (n *Navigator) Open(id int) {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()

	if p != nil {
		p.Send(openDetailMsg{id: id})
	}
}

func (n *Navigator) attach(p *tea.Program) {
	n.mu.Lock()
	n.program = p
	n.mu.Unlock()
}

// Model is the bubbletea model of the browser
type Model struct {
	ctx        context.Context
	list       Lister
	characters CharacterGetter
	formatter  *rickmorty.ConsoleFormatter
	logger     zerolog.Logger

	state   controller.State
	cursor  int
	offset  int
	view    view
	detail  int
	loading bool

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
}

// New creates the browser model
func New(ctx context.Context, list Lister, characters CharacterGetter, logger zerolog.Logger) Model {
	input := textinput.New()
	input.Placeholder = "Search by name"
	input.Prompt = "/ "
	input.CharLimit = 64

	s := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx:        ctx,
		list:       list,
		characters: characters,
		formatter:  rickmorty.NewConsoleFormatter(),
		logger:     logger,
		input:      input,
		spinner:    s,
		viewport:   viewport.New(defaultWidth, defaultHeight-chromeHeight),
		width:      defaultWidth,
		height:     defaultHeight,
	}
}

// Run starts the browser and blocks until the user quits
func Run(ctx context.Context, ctrl *controller.Controller, characters CharacterGetter, nav *Navigator, logger zerolog.Logger) error {
	m := New(ctx, ctrl, characters, logger)
	m.state = ctrl.State()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	nav.attach(p)
	defer nav.attach(nil)

	unsubscribe := ctrl.Subscribe(func(s controller.State) {
		p.Send(stateMsg{state: s})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.do(m.list.LoadInitial))
}

// do runs a controller operation off the event loop. Its effect arrives
// later as a stateMsg.
func (m Model) do(op func(context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		op(ctx)
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.clampCursor()
		return m, nil

	case stateMsg:
		m.state = msg.state
		m.clampCursor()
		return m, nil

	case openDetailMsg:
		m.view = viewDetail
		m.detail = msg.id
		m.loading = true
		m.viewport.SetContent("")
		return m, m.fetchDetail(msg.id)

	case detailMsg:
		if msg.id != m.detail {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Int("character_id", msg.id).Msg("Failed to load character")
			m.viewport.SetContent(bannerStyle.Render(fmt.Sprintf("Could not load character #%d: %v", msg.id, msg.err)))
		} else {
			m.viewport.SetContent(m.formatter.FormatCharacterDetail(*msg.character))
		}
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.view == viewDetail:
			return m.updateDetail(msg)
		case m.input.Focused():
			return m.updateSearch(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()

	case "down", "j":
		if m.cursor < len(m.state.Items)-1 {
			m.cursor++
		}
		m.clampCursor()
		if m.atLastRow() && m.state.HasMore() && !m.state.Status.IsLoading() {
			return m, m.do(m.list.LoadMore)
		}

	case "/":
		return m, m.input.Focus()

	case "esc":
		if m.state.Mode == controller.ModeSearch || m.state.Query != "" {
			m.input.SetValue("")
			m.cursor, m.offset = 0, 0
			return m, m.do(m.list.ClearSearch)
		}

	case "enter":
		if m.cursor < len(m.state.Items) {
			id := m.state.Items[m.cursor].ID
			list := m.list
			return m, func() tea.Msg {
				list.Select(id)
				return nil
			}
		}

	case "r":
		if m.state.Status == controller.StatusError {
			return m, m.do(m.list.Retry)
		}
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.input.SetValue("")
		m.cursor, m.offset = 0, 0
		return m, m.do(m.list.ClearSearch)
	case "enter", "down", "tab":
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	value := m.input.Value()
	if value == before {
		return m, cmd
	}
	m.cursor, m.offset = 0, 0

	// Search only restarts the debounce timer, so it runs inline to keep
	// keystrokes in order. A blank query reloads the first page and blocks.
	if strings.TrimSpace(value) == "" {
		return m, tea.Batch(cmd, m.do(m.list.ClearSearch))
	}
	m.list.Search(m.ctx, value)

	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "h", "left":
		m.view = viewList
		m.detail = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) fetchDetail(id int) tea.Cmd {
	ctx, characters := m.ctx, m.characters
	return func() tea.Msg {
		c, err := characters.GetCharacter(ctx, id)
		return detailMsg{id: id, character: c, err: err}
	}
}

func (m Model) listHeight() int {
	return max(m.height-chromeHeight, 3)
}

func (m Model) atLastRow() bool {
	return len(m.state.Items) > 0 && m.cursor == len(m.state.Items)-1
}

// clampCursor keeps the cursor on an item and scrolls the window to it
func (m *Model) clampCursor() {
	if n := len(m.state.Items); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}

	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Citadel of Characters"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d loaded · %s", len(m.state.Items), m.state.Mode)))
	b.WriteString("\n")

	if m.view == viewDetail {
		if m.loading {
			fmt.Fprintf(&b, "\n%s Loading character #%d...\n", m.spinner.View(), m.detail)
		} else {
			b.WriteString(detailStyle.Render(m.viewport.View()))
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render("esc back · ↑/↓ scroll · q quit"))
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.body())

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help()))

	return b.String()
}

func (m Model) body() string {
	s := m.state

	if s.Status == controller.StatusError && s.Blocking {
		hint := "press r to retry"
		if s.ErrorKind == controller.ErrorEmptyResult {
			hint = "press r to retry · esc to clear search"
		}
		return errorBoxStyle.Render(s.ErrorMessage+"\n\n"+mutedStyle.Render(hint)) + "\n"
	}

	if len(s.Items) == 0 {
		if s.Status.IsLoading() || s.Status == controller.StatusIdle {
			return fmt.Sprintf("%s Loading characters...\n", m.spinner.View())
		}
		return mutedStyle.Render("No characters") + "\n"
	}

	var b strings.Builder
	end := min(m.offset+m.listHeight(), len(s.Items))
	for i := m.offset; i < end; i++ {
		c := s.Items[i]
		row := fmt.Sprintf("#%-4d %s", c.ID, c.Name)
		meta := mutedStyle.Render(fmt.Sprintf("  %s - %s", c.Status, c.Species))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸ " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString(" " + statusDot(string(c.Status)) + meta + "\n")
	}

	switch {
	case s.Status == controller.StatusError:
		b.WriteString(bannerStyle.Render(s.ErrorMessage + " (r to retry)"))
		b.WriteString("\n")
	case s.Status.IsLoading():
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), loadingLabel(s.Status))
	case s.HasMore() && m.atLastRow():
		b.WriteString(mutedStyle.Render("↓ for more") + "\n")
	}

	return b.String()
}

func loadingLabel(s controller.Status) string {
	switch s {
	case controller.StatusLoadingMore:
		return "Loading more..."
	case controller.StatusSearching:
		return "Searching..."
	default:
		return "Loading..."
	}
}

func (m Model) help() string {
	if m.input.Focused() {
		return "type to search · enter done · esc clear"
	}
	return "↑/↓ move · / search · enter details · r retry · esc clear · q quit"
}
