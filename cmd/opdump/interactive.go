package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veilstone/objectprop/op"
	"github.com/veilstone/objectprop/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	classStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	leafStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// treeNode is one row of the browsable object tree. Branch nodes own
// their children and an expansion bit; leaves render a formatted value.
type treeNode struct {
	label    string
	children []*treeNode
	expanded bool
}

type browserModel struct {
	err      error
	root     *treeNode
	loadFn   func() tea.Msg
	view     viewport.Model
	filename string
	format   string
	visible  []*treeNode
	depths   []int
	selected int
	ready    bool
}

type blobLoadedMsg struct {
	err  error
	root *treeNode
	hdr  op.Header
}

func newBrowserModel(filename string, reg *schema.Registry, cfg op.WireConfig) *browserModel {
	m := &browserModel{filename: filename}
	m.loadFn = func() tea.Msg {
		data, err := readBlob(filename)
		if err != nil {
			return blobLoadedMsg{err: err}
		}
		v, hdr, err := op.DecodeWithHeader(data, reg, cfg)
		if err != nil {
			return blobLoadedMsg{err: err}
		}
		return blobLoadedMsg{root: buildTree("root", v, reg), hdr: hdr}
	}
	return m
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadFn
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter", " ":
			if m.selected < len(m.visible) {
				n := m.visible[m.selected]
				if len(n.children) > 0 {
					n.expanded = !n.expanded
					m.flatten()
				}
			}

		case "e":
			setExpanded(m.root, true)
			m.flatten()

		case "c":
			setExpanded(m.root, false)
			m.flatten()
			m.selected = 0
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - 4
		}

	case blobLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.root = msg.root
		m.root.expanded = true
		m.format = describeHeader(msg.hdr)
		m.flatten()
	}

	m.scrollToSelection()
	return m, nil
}

func (m *browserModel) scrollToSelection() {
	if !m.ready {
		return
	}
	if m.selected < m.view.YOffset {
		m.view.SetYOffset(m.selected)
	}
	if m.selected >= m.view.YOffset+m.view.Height {
		m.view.SetYOffset(m.selected - m.view.Height + 1)
	}
}

// flatten rebuilds the visible row list from the expansion state and
// clamps the cursor to it.
func (m *browserModel) flatten() {
	m.visible = m.visible[:0]
	m.depths = m.depths[:0]
	var walk func(n *treeNode, depth int)
	walk = func(n *treeNode, depth int) {
		m.visible = append(m.visible, n)
		m.depths = append(m.depths, depth)
		if n.expanded {
			for _, c := range n.children {
				walk(c, depth+1)
			}
		}
	}
	if m.root != nil {
		walk(m.root, 0)
	}
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
}

func setExpanded(n *treeNode, expanded bool) {
	if n == nil {
		return
	}
	n.expanded = expanded
	for _, c := range n.children {
		setExpanded(c, expanded)
	}
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.root == nil || !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	for i, n := range m.visible {
		marker := "  "
		if len(n.children) > 0 {
			if n.expanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		line := strings.Repeat("  ", m.depths[i]) + marker + n.render()
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	m.view.SetContent(b.String())

	return titleStyle.Render("Object Browser") + " " + m.filename +
		hintStyle.Render(" ("+m.format+")") + "\n\n" +
		m.view.View() + "\n" +
		hintStyle.Render("↑/↓ move • enter expand/collapse • e/c all • q quit")
}

func (n *treeNode) render() string {
	if len(n.children) > 0 {
		return classStyle.Render(n.label)
	}
	return leafStyle.Render(n.label)
}

// buildTree converts a decoded value into browsable rows. Branch labels
// carry the resolved class name; leaf labels carry the formatted value.
func buildTree(name string, v op.Value, reg *schema.Registry) *treeNode {
	switch v.Kind() {
	case op.KindObject:
		obj := v.AsObject()
		className := fmt.Sprintf("0x%08X", obj.TypeID)
		if class, ok := reg.LookupClass(obj.TypeID); ok {
			className = class.Name
		}
		node := &treeNode{label: name + ": " + className}
		for _, f := range obj.Fields {
			node.children = append(node.children, buildTree(f.Name, f.Value, reg))
		}
		return node

	case op.KindList:
		elems := v.AsList()
		node := &treeNode{label: fmt.Sprintf("%s: [%d]", name, len(elems))}
		for i, e := range elems {
			node.children = append(node.children, buildTree(fmt.Sprintf("[%d]", i), e, reg))
		}
		return node

	case op.KindEnum:
		raw, symbol := v.AsEnum()
		if symbol != "" {
			return &treeNode{label: fmt.Sprintf("%s: %s (%d)", name, symbol, raw)}
		}
		return &treeNode{label: fmt.Sprintf("%s: %d", name, raw)}

	case op.KindString:
		return &treeNode{label: fmt.Sprintf("%s: %q", name, v.AsString())}

	case op.KindBytes:
		return &treeNode{label: fmt.Sprintf("%s: blob[%d]", name, len(v.AsBytes()))}

	case op.KindNull:
		return &treeNode{label: name + ": null"}

	default:
		return &treeNode{label: name + ": " + formatScalar(v)}
	}
}

func runInteractive(filename string, reg *schema.Registry, cfg op.WireConfig) error {
	p := tea.NewProgram(newBrowserModel(filename, reg, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
