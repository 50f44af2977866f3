package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/hayeah/fileaddr"
	"github.com/hayeah/fileaddr/internal/store"
)

var (
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// row is one visible line of the tree.
type row struct {
	node  *fileaddr.Node
	depth int
}

// browseModel is our Bubble Tea model for browsing an address book.
type browseModel struct {
	ctx   context.Context
	store store.Store
	base  string
	style fileaddr.PathStyle
	open  func(path string) error

	// Tree
	tree     *fileaddr.Tree // everything loaded from the store
	view     *fileaddr.Tree // tree after filtering
	rows     []row
	expanded map[string]bool // keyed by node path so it survives reloads

	// Filter input
	filter     textinput.Model
	filterTerm string

	// Navigation
	cursor  int
	confirm *fileaddr.Node // node waiting for delete confirmation
	status  string

	// Viewport for scrolling
	viewport viewport.Model
	ready    bool
	quitting bool
}

func newBrowseModel(ctx context.Context, st store.Store, base string, style fileaddr.PathStyle, open func(string) error) (browseModel, error) {
	ti := textinput.New()
	ti.Placeholder = "Type to fuzzy-filter..."
	ti.Prompt = "/ "
	ti.CharLimit = 0

	m := browseModel{
		ctx:      ctx,
		store:    st,
		base:     base,
		style:    style,
		open:     open,
		expanded: make(map[string]bool),
		filter:   ti,
		viewport: viewport.New(0, 0), // sized on tea.WindowSizeMsg
	}
	if err := m.reload(); err != nil {
		return m, err
	}
	m.status = "Address book loaded."
	return m, nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2 // title or filter input + blank line
		footerHeight := 4 // blank line + status + message + usage
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.viewport.YPosition = headerHeight
		m.ready = true
		m.updateViewportContent()
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		if m.filter.Focused() {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.moveCursor(-1)
			return m, nil

		case "down", "j":
			m.moveCursor(1)
			return m, nil

		case "home":
			m.cursor = 0
			m.viewport.GotoTop()
			m.updateViewportContent()
			return m, nil

		case "end":
			m.cursor = max(len(m.rows)-1, 0)
			m.viewport.GotoBottom()
			m.updateViewportContent()
			return m, nil

		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil

		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil

		case "right", "l":
			if n := m.current(); n != nil && len(n.Children) > 0 {
				m.setExpanded(n, true)
			}
			return m, nil

		case "left", "h":
			m.collapseOrParent()
			return m, nil

		case " ":
			if n := m.current(); n != nil && len(n.Children) > 0 {
				m.setExpanded(n, !m.expanded[n.Path()])
			}
			return m, nil

		case "enter":
			m.activate()
			return m, nil

		case "d", "delete":
			if n := m.current(); n != nil {
				m.confirm = n
				m.status = fmt.Sprintf("Are you sure you want to remove the address '%s'? (y/n)", n.SourcePath())
				m.updateViewportContent()
			}
			return m, nil

		case "r":
			if err := m.reload(); err != nil {
				m.status = fmt.Sprintf("Error: %v", err)
			} else {
				m.status = "Address book reloaded."
			}
			return m, nil

		case "/":
			cmd = m.filter.Focus()
			return m, cmd
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// updateConfirm handles keys while a delete waits for confirmation.
func (m browseModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		n := m.confirm
		m.confirm = nil
		m.deleteNode(n)
	case "n", "N", "esc":
		m.confirm = nil
		m.status = "Delete cancelled."
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	m.updateViewportContent()
	return m, nil
}

// updateFilter handles keys while the filter input has focus.
func (m browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc", "enter":
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if term := m.filter.Value(); term != m.filterTerm {
		m.filterTerm = term
		m.refilter()
	}
	return m, cmd
}

// current returns the node under the cursor.
func (m *browseModel) current() *fileaddr.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

func (m *browseModel) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.rows) {
		return
	}
	m.cursor = next
	m.updateViewportContent()
	m.ensureCursorVisible()
}

func (m *browseModel) setExpanded(n *fileaddr.Node, expanded bool) {
	m.expanded[n.Path()] = expanded
	m.rebuildRows()
}

// collapseOrParent collapses the current directory, or moves to its parent.
func (m *browseModel) collapseOrParent() {
	n := m.current()
	if n == nil {
		return
	}
	if len(n.Children) > 0 && m.expanded[n.Path()] {
		m.setExpanded(n, false)
		return
	}
	parent := n.Parent()
	for i, r := range m.rows {
		if r.node == parent {
			m.cursor = i
			break
		}
	}
	m.updateViewportContent()
	m.ensureCursorVisible()
}

// activate opens files and toggles directories.
func (m *browseModel) activate() {
	n := m.current()
	if n == nil {
		return
	}
	if !n.IsFile {
		m.setExpanded(n, !m.expanded[n.Path()])
		return
	}
	path := m.resolve(n.SourcePath())
	if err := m.open(path); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
	} else {
		m.status = fmt.Sprintf("Opened '%s'.", path)
	}
	m.updateViewportContent()
}

// resolve makes relative address book paths relative to the book's directory.
func (m *browseModel) resolve(path string) string {
	if m.base == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.base, path)
}

// deleteNode removes the node's rows from the store, then from the tree.
// On failure the node stays so the tree keeps matching the store.
func (m *browseModel) deleteNode(n *fileaddr.Node) {
	pattern, err := fileaddr.CompilePattern(n.Pattern(), fileaddr.PatternOptions{Style: m.style})
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}
	removed, err := m.store.Remove(m.ctx, pattern)
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}
	if removed == 0 {
		m.status = fmt.Sprintf("Error: no rows match '%s', press r to reload.", pattern)
		return
	}

	if full, ok := m.tree.Lookup(n.Path()); ok {
		m.tree.Remove(full)
	}
	if m.view != m.tree {
		m.view.Remove(n)
	}
	m.rebuildRows()
	m.status = fmt.Sprintf("Address '%s' removed (%d row(s)).", n.SourcePath(), removed)
}

// reload reads the store again and rebuilds the tree.
func (m *browseModel) reload() error {
	tree, err := loadTree(m.ctx, m.store, m.base)
	if err != nil {
		return err
	}
	m.tree = tree
	m.refilter()
	return nil
}

// refilter applies the filter term to the tree.
func (m *browseModel) refilter() {
	m.view = m.tree.Filter(m.filterTerm)
	m.rebuildRows()
}

// rebuildRows flattens the visible part of the tree. While filtering every
// directory is shown expanded.
func (m *browseModel) rebuildRows() {
	filtering := strings.TrimSpace(m.filterTerm) != ""
	m.rows = nil
	var walk func(n *fileaddr.Node, depth int)
	walk = func(n *fileaddr.Node, depth int) {
		for _, c := range n.Children {
			m.rows = append(m.rows, row{node: c, depth: depth})
			if filtering || m.expanded[c.Path()] {
				walk(c, depth+1)
			}
		}
	}
	walk(m.view.Root, 0)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.updateViewportContent()
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	header := dimStyle.Render("Address book: "+m.base) + "\n"
	if m.filter.Focused() || m.filterTerm != "" {
		header = m.filter.View() + "\n"
	}

	statusLine := fmt.Sprintf(
		"%d/%d items, %s total",
		len(m.rows),
		m.tree.Len(),
		humanize.IBytes(uint64(m.view.TotalMB()*1024*1024)),
	)
	message := m.status
	if m.confirm != nil {
		message = confirmStyle.Render(message)
	}
	usageHint := "(↑/↓ navigate, ←/→ collapse/expand, Enter open, d delete, r reload, / filter, q quit)"
	footer := fmt.Sprintf("\n%s\n%s\n%s", statusLine, message, dimStyle.Render(usageHint))

	return fmt.Sprintf("%s\n%s%s", header, m.viewport.View(), footer)
}

// updateViewportContent updates the content of the viewport based on the current state
func (m *browseModel) updateViewportContent() {
	var sb strings.Builder
	for i, r := range m.rows {
		marker := " "
		if len(r.node.Children) > 0 {
			marker = "▸"
			if m.expanded[r.node.Path()] || m.filterTerm != "" {
				marker = "▾"
			}
		}
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", r.depth), marker, fileaddr.DisplayName(r.node))

		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	m.viewport.SetContent(sb.String())
}

// ensureCursorVisible makes sure the cursor is visible in the viewport
func (m *browseModel) ensureCursorVisible() {
	top := m.viewport.YOffset
	bottom := m.viewport.YOffset + m.viewport.Height - 1

	if m.cursor < top {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor > bottom {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
