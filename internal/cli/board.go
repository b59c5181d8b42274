package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/columnview/pkg/dag"
	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/render/columns"
	"github.com/matzehuels/columnview/pkg/reorder"
	"github.com/matzehuels/columnview/pkg/session"
)

type focus int

const (
	focusSelector focus = iota
	focusBoard
)

type graphsLoadedMsg struct {
	ids []int
	err error
}

type selectedMsg struct {
	id  int
	err error
}

// boardModel is the bubbletea model of the view command: a graph selector on
// the left and the selected graph's columns on the right.
type boardModel struct {
	ctx  context.Context
	sess *session.Session

	ids     []int
	pick    int // selector cursor; 0 is "(none)", i+1 is ids[i]
	focus   focus
	loading bool

	col, row int
	status   string
	err      string
	help     help.Model
}

func newBoardModel(ctx context.Context, sess *session.Session) boardModel {
	h := help.New()
	h.Styles.ShortKey = styleCommand
	h.Styles.ShortDesc = StyleDim
	h.Styles.ShortSeparator = StyleDim
	return boardModel{ctx: ctx, sess: sess, loading: true, status: "loading graphs", help: h}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadGraphs
}

func (m boardModel) loadGraphs() tea.Msg {
	ids, err := m.sess.Graphs(m.ctx)
	return graphsLoadedMsg{ids: ids, err: err}
}

func (m boardModel) selectGraph(id int) tea.Cmd {
	return func() tea.Msg {
		return selectedMsg{id: id, err: m.sess.Select(m.ctx, id)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case graphsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = cverr.UserMessage(msg.err)
			m.status = ""
			return m, nil
		}
		m.ids = msg.ids
		m.status = fmt.Sprintf("%d graphs", len(m.ids))
	case selectedMsg:
		if errors.Is(msg.err, session.ErrSuperseded) {
			return m, nil
		}
		m.loading = false
		m.col, m.row = 0, 0
		if msg.err != nil {
			m.err = cverr.UserMessage(msg.err)
			m.status = ""
			return m, nil
		}
		m.err = ""
		m.focus = focusBoard
		m.settle()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Focus):
		if _, ok := m.sess.Selected(); ok && m.focus == focusSelector {
			m.focus = focusBoard
		} else {
			m.focus = focusSelector
		}
		return m, nil
	}
	if m.focus == focusSelector {
		return m.handleSelectorKey(msg)
	}
	return m.handleBoardKey(msg)
}

func (m boardModel) handleSelectorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.pick = max(m.pick-1, 0)
	case key.Matches(msg, keys.Down):
		m.pick = min(m.pick+1, len(m.ids))
	case key.Matches(msg, keys.Select):
		if m.loading {
			return m, nil
		}
		if m.pick == 0 {
			m.sess.Clear()
			m.err = ""
			m.status = "no graph selected"
			return m, nil
		}
		id := m.ids[m.pick-1]
		m.loading = true
		m.status = fmt.Sprintf("loading graph %d", id)
		return m, m.selectGraph(id)
	}
	return m, nil
}

func (m boardModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.sess.Layering()
	if l.Len() == 0 {
		return m, nil
	}

	moved := false
	switch {
	case key.Matches(msg, keys.Left):
		m.col, moved = max(m.col-1, 0), true
	case key.Matches(msg, keys.Right):
		m.col, moved = min(m.col+1, l.Len()-1), true
	case key.Matches(msg, keys.Up):
		m.row, moved = m.row-1, true
	case key.Matches(msg, keys.Down):
		m.row, moved = m.row+1, true
	case key.Matches(msg, keys.PickUp):
		if id, ok := m.cursorNode(l); ok && m.sess.Begin(id) {
			m.status = "moving " + m.name(id)
		}
	case key.Matches(msg, keys.Drop):
		drag := m.sess.DragState()
		if !drag.Active() {
			return m, nil
		}
		if m.sess.Drop(m.ctx) {
			m.settle()
			m.status = fmt.Sprintf("swapped %s and %s · %s", m.name(drag.Dragged), m.name(drag.Target), m.status)
		} else {
			m.status = "nothing to swap"
		}
	case key.Matches(msg, keys.Cancel):
		if drag := m.sess.DragState(); drag.Active() {
			m.sess.Abort()
			if row := l.IndexIn(drag.Column, drag.Dragged); row >= 0 {
				m.col, m.row = drag.Column, row
			}
			m.status = "move cancelled"
		}
	}

	if moved {
		m.row = max(0, min(m.row, len(l[m.col])-1))
		if drag := m.sess.DragState(); drag.Active() {
			if id, ok := m.cursorNode(l); ok && id != drag.Dragged {
				m.sess.Hover(id)
			} else {
				m.sess.Leave()
			}
		}
	}
	return m, nil
}

// settle re-measures the board and re-projects the connector lines.
func (m *boardModel) settle() {
	l := m.sess.Layering()
	grid := columns.Measure(l, m.name, columns.Options{})
	segs := m.sess.Settle(m.ctx, grid.Rects)
	m.status = fmt.Sprintf("%d columns · %d lines · %d crossings",
		l.Len(), len(segs), dag.CountCrossings(m.sess.Index(), l))
}

func (m boardModel) cursorNode(l dag.Layering) (int, bool) {
	if m.col < 0 || m.col >= l.Len() || m.row < 0 || m.row >= len(l[m.col]) {
		return 0, false
	}
	return l[m.col][m.row], true
}

func (m boardModel) name(id int) string {
	if idx := m.sess.Index(); idx != nil {
		if n, ok := idx.Node(id); ok && n.Name != "" {
			return n.Name
		}
	}
	return strconv.Itoa(id)
}

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("columnview"))
	b.WriteString("  ")
	b.WriteString(m.help.View(m.keyHelp()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.viewSelector(), "   ", m.viewBoard()))
	b.WriteString("\n\n")

	if m.err != "" {
		b.WriteString(StyleError.Render(m.err))
	} else {
		b.WriteString(StyleDim.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

func (m boardModel) keyHelp() keyHelp {
	if m.focus == focusSelector {
		return selectorHelp()
	}
	return boardHelp(m.sess.DragState().Active())
}

func (m boardModel) viewSelector() string {
	selected, hasSelection := m.sess.Selected()
	lines := []string{styleColumnHead.Render("graphs")}
	for i := 0; i <= len(m.ids); i++ {
		label := "(none)"
		active := !hasSelection
		if i > 0 {
			label = "graph " + strconv.Itoa(m.ids[i-1])
			active = hasSelection && selected == m.ids[i-1]
		}
		cursor := "  "
		style := styleSelectorItem
		if active {
			style = styleSelectorActive
		}
		if i == m.pick && m.focus == focusSelector {
			cursor = "▸ "
			style = styleSelectorCursor
		}
		lines = append(lines, cursor+style.Render(label))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) viewBoard() string {
	v, ok := m.sess.View()
	if !ok {
		return StyleDim.Render("no graph selected")
	}
	if len(v.Columns) == 0 {
		return StyleDim.Render("empty graph")
	}

	drag := m.sess.DragState()
	cols := make([]string, len(v.Columns))
	for c, col := range v.Columns {
		boxes := []string{styleColumnHead.Render("col " + strconv.Itoa(c))}
		for r, id := range col {
			boxes = append(boxes, m.boxStyle(drag, id, c, r).Render(v.Name(id)))
		}
		cols[c] = styleColumn.Render(lipgloss.JoinVertical(lipgloss.Left, boxes...))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return board + "\n" + m.viewEdges(v)
}

func (m boardModel) boxStyle(drag reorder.DragState, id, c, r int) lipgloss.Style {
	switch {
	case drag.Active() && id == drag.Dragged:
		return styleBoxDrag
	case drag.HasTarget() && id == drag.Target:
		return styleBoxDrop
	case m.focus == focusBoard && c == m.col && r == m.row:
		return styleBoxFocus
	default:
		return styleBox
	}
}

// viewEdges lists the children of the node under the cursor.
func (m boardModel) viewEdges(v graph.View) string {
	id, ok := m.cursorNode(v.Layering())
	idx := m.sess.Index()
	if !ok || idx == nil || m.focus != focusBoard {
		return ""
	}
	children := idx.Children(id)
	if len(children) == 0 {
		return StyleDim.Render(v.Name(id) + " has no children")
	}
	names := make([]string, len(children))
	for i, ch := range children {
		names[i] = v.Name(ch)
	}
	return StyleDim.Render(v.Name(id)+" "+iconArrow+" ") + StyleValue.Render(strings.Join(names, ", "))
}
