package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"blotter/internal/grid"
	"blotter/internal/incr"
	"blotter/internal/row"
	"blotter/internal/sim"
	"blotter/internal/vdom"
	"blotter/internal/view"
)

// KickMsg carries a simulated action from the driver into the UI loop.
type KickMsg sim.Kick

// wakeMsg re-samples the clock when some highlight is due to change.
type wakeMsg time.Time

const helpText = "↑/↓ focus · enter edit · tab next field · esc done · / filter · 1-0 sort · q quit"

// Model is the bubbletea model for the blotter. Every grid mutation happens
// in Update, so the grid only ever sees one goroutine.
type Model struct {
	grid   *grid.Grid
	clock  *incr.Clock
	styles Styles

	filter    textinput.Model
	filtering bool

	edit       textinput.Model
	editColumn string // Column whose input holds the cursor while editing

	wakeAt time.Time // Pending re-sample, zero if none
	width  int
	height int
}

func New(g *grid.Grid, clock *incr.Clock) *Model {
	m := &Model{
		grid:   g,
		clock:  clock,
		styles: NewStyles(),
		filter: textinput.New(),
		edit:   textinput.New(),
	}
	m.filter.Prompt = "/"
	m.filter.Placeholder = "symbol or trader"
	m.filter.CharLimit = 32
	m.filter.SetValue(g.Filter())
	m.edit.Prompt = ""
	m.edit.CharLimit = 24
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.schedule()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case KickMsg:
		m.clock.Sample()
		if _, ok := m.grid.ApplyRandom(msg.Action); !ok {
			return m, nil
		}
		return m, m.schedule()

	case wakeMsg:
		m.wakeAt = time.Time{}
		m.clock.Sample()
		return m, m.schedule()

	case tea.MouseMsg:
		m.clock.Sample()
		m.click(msg)
		return m, nil

	case tea.KeyMsg:
		m.clock.Sample()
		switch {
		case m.filtering:
			return m, m.updateFilter(msg)
		case m.editing():
			return m, m.updateEdit(msg)
		default:
			return m, m.updateBrowse(msg)
		}
	}
	return m, nil
}

// schedule arranges a single wake-up at the next highlight change, unless an
// earlier one is already pending.
func (m *Model) schedule() tea.Cmd {
	next, ok := m.grid.NextChange()
	if !ok {
		return nil
	}
	if !m.wakeAt.IsZero() && !next.Before(m.wakeAt) {
		return nil
	}
	m.wakeAt = next
	d := max(next.Sub(m.clock.Now()), time.Millisecond)
	return tea.Tick(d, func(t time.Time) tea.Msg { return wakeMsg(t) })
}

func (m *Model) editing() bool {
	e, ok := m.grid.Focused()
	return ok && e.Mode == row.Editing
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return tea.Quit
	case "up", "k":
		m.grid.MoveFocus(-1)
	case "down", "j":
		m.grid.MoveFocus(1)
	case "esc":
		m.grid.Blur()
	case "enter", "e":
		if err := m.grid.StartEdit(); err != nil {
			return nil
		}
		if col, ok := row.Columns().FocusColumn(); ok {
			m.beginField(col.Name)
		}
		return textinput.Blink
	case "/":
		m.filtering = true
		m.filter.Focus()
		return textinput.Blink
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		i := int(key[0]-'0'+9) % 10
		if i < len(cols) {
			if err := m.grid.SortBy(cols[i]); err != nil {
				log.Error().Err(err).Msg("sort failed")
			}
		}
	}
	return nil
}

// click forwards a left click to the node under the pointer: header names
// sort, rows focus themselves.
func (m *Model) click(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	header, rows := m.grid.View()

	var target *vdom.Node
	switch {
	case msg.Y == 1:
		if i, ok := columnAt(msg.X); ok {
			target = header[1].Children[i]
		}
	case msg.Y >= 2 && msg.Y-2 < len(rows):
		target = rows[msg.Y-2]
	}
	if target != nil && target.OnClick != nil {
		target.OnClick()
	}
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.grid.SetFilter(m.filter.Value())
	return cmd
}

func (m *Model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		m.grid.StopEdit()
		m.edit.Blur()
		m.editColumn = ""
		return nil
	case "tab":
		m.beginField(m.nextEditable(1))
		return nil
	case "shift+tab":
		m.beginField(m.nextEditable(-1))
		return nil
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)

	// Hand the keystroke's result to the row's own input handler, exactly
	// as a browser input event would.
	if input, ok := m.focusedInput(); ok && input.OnInput != nil {
		input.OnInput(m.edit.Value())
	}
	return cmd
}

// beginField moves the cursor to a column's input, seeded with its value.
func (m *Model) beginField(name string) {
	m.editColumn = name
	if input, ok := m.focusedInput(); ok {
		m.edit.SetValue(input.Value)
	}
	m.edit.CursorEnd()
	m.edit.Focus()
}

func (m *Model) nextEditable(step int) string {
	var editable []string
	for _, col := range row.Columns().Columns() {
		if col.CanEdit() {
			editable = append(editable, col.Name)
		}
	}
	cur := 0
	for i, name := range editable {
		if name == m.editColumn {
			cur = i
		}
	}
	n := len(editable)
	return editable[((cur+step)%n+n)%n]
}

// focusedInput finds the active column's input node in the focused row.
func (m *Model) focusedInput() (*vdom.Node, bool) {
	focused, ok := m.grid.Focused()
	if !ok {
		return nil, false
	}
	_, rows := m.grid.View()
	for _, tr := range rows {
		if tr.HasClass(view.ClassEditing) {
			return tr.ByID(view.InputID(m.editColumn))
		}
	}
	log.Debug().Str("id", focused.ID).Msg("focused row not visible")
	return nil, false
}

func (m *Model) View() string {
	header, rows := m.grid.View()
	r := renderer{styles: m.styles}
	if m.editing() {
		r.active = view.InputID(m.editColumn)
		r.input = m.edit.View
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Group.Render(r.row(header[0])))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Header.Render(r.row(header[1])))
	sb.WriteString("\n")

	limit := len(rows)
	if m.height > 4 {
		limit = min(limit, m.height-4)
	}
	for _, tr := range rows[:limit] {
		sb.WriteString(r.row(tr))
		sb.WriteString("\n")
	}

	edits, kicks := m.grid.Stats()
	status := fmt.Sprintf("%d/%d rows · %d edits · %d kicks", len(rows), m.grid.Len(), edits, kicks)
	if m.filtering || m.filter.Value() != "" {
		status = m.filter.View() + "  " + status
	}
	sb.WriteString(m.styles.Status.Render(status))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(helpText))
	return sb.String()
}
