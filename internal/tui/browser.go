package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/avolle/treenav/internal/arena"
	"github.com/avolle/treenav/internal/fstree"
	"github.com/avolle/treenav/internal/logging"
	"github.com/avolle/treenav/internal/view"
)

// Input modes. Normal handles navigation; FilterKey consumes exactly
// one key after 'f'; Jump routes keys to the fuzzy-jump input.
const (
	modeNormal = iota
	modeFilterKey
	modeJump
)

// Options configures the browser at startup.
type Options struct {
	Filter       view.Filter
	Sort         view.SortMode
	Preview      bool
	PreviewBytes int
}

type BrowserModel struct {
	tree     *fstree.Tree
	filter   view.Filter
	sortMode view.SortMode

	// Rebuilt after every tree/filter/sort mutation, never cached
	// across them.
	items  []view.ViewItem
	cursor int

	mode      int
	jumpInput textinput.Model

	showPreview  bool
	previewBytes int

	showHelp bool
	helpView viewport.Model

	width  int
	height int
	ready  bool

	quitting bool
}

func NewBrowserModel(rootPath string, lister fstree.Lister, opts Options) BrowserModel {
	tree := fstree.New(rootPath, lister)
	tree.SetOpen(tree.Root(), true)

	ji := textinput.New()
	ji.Placeholder = "jump to..."
	ji.CharLimit = 128
	ji.Width = 40
	ji.Prompt = "/ "
	ji.PromptStyle = jumpPromptStyle

	hv := viewport.New(80, 20)
	hv.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPurple).
		Padding(1, 2)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	helpText := BrowserHelp
	if err == nil {
		if out, rerr := renderer.Render(BrowserHelp); rerr == nil {
			helpText = out
		}
	}
	hv.SetContent(helpText)

	m := BrowserModel{
		tree:         tree,
		filter:       opts.Filter,
		sortMode:     opts.Sort,
		jumpInput:    ji,
		showPreview:  opts.Preview,
		previewBytes: opts.PreviewBytes,
		helpView:     hv,
	}
	m.items = view.Project(m.tree, m.filter, m.sortMode)
	return m
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Selected returns the item under the cursor.
func (m BrowserModel) Selected() (view.ViewItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return view.ViewItem{}, false
	}
	return m.items[m.cursor], true
}

// Items exposes the current projection (read-only frame contract).
func (m BrowserModel) Items() []view.ViewItem { return m.items }

// Cursor exposes the current selection index.
func (m BrowserModel) Cursor() int { return m.cursor }

// rebuild re-projects the tree and remaps the selection onto the new
// list. prev is the handle selected before the mutation.
func (m *BrowserModel) rebuild(prev arena.Handle) {
	m.items = view.Project(m.tree, m.filter, m.sortMode)
	m.cursor = view.Remap(m.items, prev, m.tree)
}

func (m *BrowserModel) selectedHandle() arena.Handle {
	if item, ok := m.Selected(); ok {
		return item.Handle
	}
	return m.tree.Root()
}

// toggleSelected opens or closes the selected directory, loading its
// children on first open. Selecting a file does nothing here.
func (m *BrowserModel) toggleSelected() {
	item, ok := m.Selected()
	if !ok || item.Kind != fstree.KindDirectory {
		return
	}
	m.tree.ToggleOpen(item.Handle)
	m.rebuild(item.Handle)
}

// closeNearest closes the selected directory in place when it is open;
// otherwise it closes the parent and the remap moves the selection up
// to it.
func (m *BrowserModel) closeNearest() {
	item, ok := m.Selected()
	if !ok {
		return
	}
	if item.Kind == fstree.KindDirectory && item.Open {
		m.tree.SetOpen(item.Handle, false)
		m.rebuild(item.Handle)
		return
	}
	parent, ok := m.tree.Parent(item.Handle)
	if !ok {
		return
	}
	m.tree.SetOpen(parent, false)
	m.rebuild(item.Handle)
}

func (m *BrowserModel) setFilter(apply func(*view.Filter)) {
	prev := m.selectedHandle()
	apply(&m.filter)
	m.rebuild(prev)
}

func (m *BrowserModel) cycleSort() {
	prev := m.selectedHandle()
	m.sortMode = m.sortMode.Next()
	m.rebuild(prev)
}

func (m *BrowserModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// jumpToMatch moves the cursor to the best fuzzy match among visible
// entries.
func (m *BrowserModel) jumpToMatch(query string) {
	if query == "" {
		return
	}
	source := make([]string, len(m.items))
	for i, it := range m.items {
		source[i] = it.Name
	}
	matches := fuzzy.Find(query, source)
	if len(matches) == 0 {
		return
	}
	m.cursor = matches[0].Index
	logging.Debug("fuzzy jump",
		zap.String("query", query),
		zap.String("target", m.items[m.cursor].Path))
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.helpView.Width = msg.Width - 6
		m.helpView.Height = msg.Height - 6
		return m, nil

	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			m.moveCursor(-3)
		case tea.MouseWheelDown:
			m.moveCursor(3)
		}
		return m, nil

	case tea.KeyMsg:
		// Help Screen Handler
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.showHelp = false
				return m, nil
			default:
				m.helpView, cmd = m.helpView.Update(msg)
				return m, cmd
			}
		}

		switch m.mode {
		case modeJump:
			switch msg.Type {
			case tea.KeyEnter:
				m.jumpToMatch(m.jumpInput.Value())
				m.mode = modeNormal
				m.jumpInput.Blur()
				m.jumpInput.Reset()
				return m, nil
			case tea.KeyEsc:
				m.mode = modeNormal
				m.jumpInput.Blur()
				m.jumpInput.Reset()
				return m, nil
			}
			m.jumpInput, cmd = m.jumpInput.Update(msg)
			return m, cmd

		case modeFilterKey:
			m.mode = modeNormal
			switch msg.String() {
			case "d":
				m.setFilter(func(f *view.Filter) { f.HideClosedDirs = !f.HideClosedDirs })
			case "f":
				m.setFilter(func(f *view.Filter) { f.HideFiles = !f.HideFiles })
			case ".":
				m.setFilter(func(f *view.Filter) { f.HideDotfiles = !f.HideDotfiles })
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "?":
			m.showHelp = true
			m.helpView.GotoTop()
			return m, nil

		case "up", "k":
			m.moveCursor(-1)
			return m, nil
		case "down", "j":
			m.moveCursor(1)
			return m, nil
		case "g":
			m.cursor = 0
			return m, nil
		case "G":
			if len(m.items) > 0 {
				m.cursor = len(m.items) - 1
			}
			return m, nil

		case "l", "right", "enter":
			m.toggleSelected()
			return m, nil

		case "h", "left":
			m.closeNearest()
			return m, nil

		case "s":
			m.cycleSort()
			return m, nil

		case "f":
			m.mode = modeFilterKey
			return m, nil

		case "/":
			m.mode = modeJump
			m.jumpInput.Focus()
			return m, textinput.Blink

		case "p":
			m.showPreview = !m.showPreview
			return m, nil
		}
	}

	return m, nil
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.helpView.View()
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	listHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if listHeight < 1 {
		listHeight = 1
	}

	list := m.renderList(listHeight)

	if m.showPreview && m.width >= 80 {
		if preview := m.renderPreview(listHeight); preview != "" {
			list = lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, list, footer)
}

func (m BrowserModel) renderHeader() string {
	rootNode, _ := m.tree.Node(m.tree.Root())
	title := titleStyle.Render("treenav")
	path := statusStyle.Render(rootNode.Path)
	sortInfo := statusStyle.Render(fmt.Sprintf("sort: %s", m.sortMode))

	var filters []string
	if m.filter.HideClosedDirs {
		filters = append(filters, "dirs")
	}
	if m.filter.HideFiles {
		filters = append(filters, "files")
	}
	if m.filter.HideDotfiles {
		filters = append(filters, "dotfiles")
	}
	filterInfo := ""
	if len(filters) > 0 {
		filterInfo = activeFilterStyle.Render("  hide: " + strings.Join(filters, ","))
	}

	return title + " " + path + "  " + sortInfo + filterInfo + "\n"
}

func (m BrowserModel) renderFooter() string {
	if m.mode == modeJump {
		return "\n" + m.jumpInput.View()
	}
	hint := "j/k move  l open  h close  s sort  f filter  / jump  p preview  ? help  q quit"
	if m.mode == modeFilterKey {
		hint = "filter: d closed dirs  f files  . dotfiles"
	}
	pos := ""
	if len(m.items) > 0 {
		pos = fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))
	}
	return "\n" + footerStyle.Render(hint+pos)
}

func (m BrowserModel) renderList(listHeight int) string {
	var list strings.Builder

	start := 0
	end := len(m.items)
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	if end > start+listHeight {
		end = start + listHeight
	}

	width := m.width
	if m.showPreview && m.width >= 80 {
		width = m.width / 2
	}

	if len(m.items) == 0 {
		list.WriteString("  (empty)")
	}

	for i := start; i < end; i++ {
		it := m.items[i]
		indent := strings.Repeat("  ", it.Depth)

		marker := "  "
		if it.Kind == fstree.KindDirectory {
			if it.Open {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		row := indent + marker + it.Name
		if len(row) > width-2 && width > 5 {
			row = row[:width-3] + "…"
		}

		switch {
		case i == m.cursor:
			row = cursorStyle.Width(width).Render(row)
		case strings.HasPrefix(it.Name, "."):
			row = dotfileStyle.Render(row)
		case it.Kind == fstree.KindDirectory:
			row = dirStyle.Render(row)
		default:
			row = fileStyle.Render(row)
		}

		list.WriteString(row)
		if i < end-1 {
			list.WriteString("\n")
		}
	}

	content := list.String()
	if gap := listHeight - (end - start); gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content
}

func (m BrowserModel) renderPreview(listHeight int) string {
	item, ok := m.Selected()
	if !ok || item.Kind != fstree.KindFile {
		return ""
	}
	content := previewFile(item.Path, m.previewBytes)
	if content == "" {
		return ""
	}

	w := m.width/2 - 4
	lines := strings.Split(content, "\n")
	if len(lines) > listHeight-2 {
		lines = lines[:listHeight-2]
	}
	return previewBorderStyle.Width(w).Render(strings.Join(lines, "\n"))
}

// RunBrowser starts the interactive browser on the real filesystem.
func RunBrowser(rootPath string, opts Options) error {
	m := NewBrowserModel(rootPath, fstree.OSLister{}, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
