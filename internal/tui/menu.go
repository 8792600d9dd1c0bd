// Package tui implements the interactive menu: a groups browser with
// create/delete, an entry viewer, and clipboard copy. It consumes the group
// store and capture journal through the same contracts as the CLI.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/i7mada249/tnm/internal/groups"
	"github.com/i7mada249/tnm/internal/journal"
)

const banner = `░░░████████╗███╗░░██╗███╗░░░███╗░░░░
░░░╚══██╔══╝████╗░██║████╗░████║░░░░
░░░░░░██║░░░██╔██╗██║██╔████╔██║░░░░
░░░░░░██║░░░██║╚████║██║╚██╔╝██║░░░░
░░░░░░██║░░░██║░╚███║██║░╚═╝░██║░░░░
░░░░░░╚═╝░░░╚═╝░░╚══╝╚═╝░░░░░╚═╝░░░░
░░░░░  Terminal Notes Manager  ░░░░░`

type state int

const (
	stateGroups state = iota
	stateNewName
	stateNewPath
	stateConfirmDelete
	stateEntries
)

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	cmdStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	selectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

type groupItem struct {
	group groups.Group
}

func (i groupItem) Title() string       { return i.group.Name }
func (i groupItem) Description() string { return i.group.Path }
func (i groupItem) FilterValue() string { return i.group.Name }

// Model is the bubbletea model for the interactive menu.
type Model struct {
	store   *groups.Store
	journal *journal.Journal

	state    state
	list     list.Model
	input    textinput.Model
	pending  string
	entries  []groups.Entry
	entryIdx int
	activity string
	status   string
	width    int
	height   int
}

// New builds the menu model. The journal may be nil when the capture
// journal could not be opened.
func New(store *groups.Store, j *journal.Journal) Model {
	delegate := list.NewDefaultDelegate()
	groupList := list.New(nil, delegate, 0, 0)
	groupList.Title = "Groups"
	groupList.SetShowStatusBar(false)
	groupList.SetShowHelp(false)

	input := textinput.New()
	input.CharLimit = 128

	m := Model{
		store:   store,
		journal: j,
		list:    groupList,
		input:   input,
	}
	m.reloadGroups()
	m.reloadActivity()
	return m
}

// reloadActivity refreshes the footer line describing the latest capture.
// The journal is advisory, so failures just clear the line.
func (m *Model) reloadActivity() {
	m.activity = ""
	if m.journal == nil {
		return
	}
	records, err := m.journal.Recent("", 1)
	if err != nil || len(records) == 0 {
		return
	}
	last := records[len(records)-1]
	m.activity = fmt.Sprintf(
		"last capture: %q into %s, %s",
		last.Title, last.GroupName, humanize.Time(last.CreatedAt),
	)
}

func (m *Model) reloadGroups() {
	all, err := m.store.List()
	if err != nil {
		m.status = errStyle.Render(err.Error())
		return
	}
	items := make([]list.Item, len(all))
	for i, g := range all {
		items[i] = groupItem{group: g}
	}
	m.list.SetItems(items)
}

func (m Model) selectedGroup() (groups.Group, bool) {
	item, ok := m.list.SelectedItem().(groupItem)
	if !ok {
		return groups.Group{}, false
	}
	return item.group, true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-10)
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case stateGroups:
			return m.updateGroups(msg)
		case stateNewName, stateNewPath:
			return m.updateNewGroup(msg)
		case stateConfirmDelete:
			return m.updateConfirmDelete(msg)
		case stateEntries:
			return m.updateEntries(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateGroups(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a":
		m.state = stateNewName
		m.input.Placeholder = "group name"
		m.input.SetValue("")
		m.input.Focus()
		m.status = ""
		return m, textinput.Blink
	case "d":
		if group, ok := m.selectedGroup(); ok {
			m.pending = group.Name
			m.state = stateConfirmDelete
		}
		return m, nil
	case "enter":
		group, ok := m.selectedGroup()
		if !ok {
			return m, nil
		}
		entries, err := m.store.ReadRecent(group.Name, 10)
		if err != nil {
			m.status = errStyle.Render(err.Error())
			return m, nil
		}
		m.pending = group.Name
		m.entries = entries
		m.entryIdx = len(entries) - 1
		m.state = stateEntries
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateNewGroup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.state = stateGroups
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if m.state == stateNewName {
			if value == "" {
				m.status = errStyle.Render("group name must not be empty")
				return m, nil
			}
			m.pending = value
			m.state = stateNewPath
			m.input.Placeholder = "path (empty for default)"
			m.input.SetValue("")
			return m, nil
		}

		group, err := m.store.CreateOrUpdate(m.pending, value)
		if err != nil {
			m.status = errStyle.Render(err.Error())
		} else {
			m.status = okStyle.Render(fmt.Sprintf("group %q -> %s", group.Name, group.Path))
		}
		m.state = stateGroups
		m.input.Blur()
		m.reloadGroups()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.store.Delete(m.pending); err != nil {
			m.status = errStyle.Render(err.Error())
		} else {
			m.status = okStyle.Render(fmt.Sprintf("group %q removed (file kept)", m.pending))
		}
		m.state = stateGroups
		m.reloadGroups()
	default:
		m.state = stateGroups
		m.status = dimStyle.Render("delete cancelled")
	}
	return m, nil
}

func (m Model) updateEntries(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.state = stateGroups
		return m, nil
	case "up", "k":
		if m.entryIdx > 0 {
			m.entryIdx--
		}
	case "down", "j":
		if m.entryIdx < len(m.entries)-1 {
			m.entryIdx++
		}
	case "c":
		if m.entryIdx >= 0 && m.entryIdx < len(m.entries) {
			command := strings.Join(m.entries[m.entryIdx].Commands, "\n")
			if err := clipboard.WriteAll(command); err != nil {
				m.status = errStyle.Render("clipboard: " + err.Error())
			} else {
				m.status = okStyle.Render("command copied to clipboard")
			}
		}
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render(banner))
	b.WriteString("\n\n")

	switch m.state {
	case stateNewName:
		b.WriteString(titleStyle.Render("New group"))
		b.WriteString("\nName: " + m.input.View() + "\n")
		b.WriteString(dimStyle.Render("enter to continue, esc to cancel"))
	case stateNewPath:
		b.WriteString(titleStyle.Render("New group: " + m.pending))
		b.WriteString("\nPath: " + m.input.View() + "\n")
		b.WriteString(dimStyle.Render("empty path uses the default notes directory"))
	case stateConfirmDelete:
		b.WriteString(fmt.Sprintf("Delete group %q? The note file is kept. [y/N]", m.pending))
	case stateEntries:
		b.WriteString(m.viewEntries())
	default:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		if m.activity != "" {
			b.WriteString(dimStyle.Render(m.activity))
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("enter: view entries • a: add • d: delete • /: filter • q: quit"))
	}

	if m.status != "" {
		b.WriteString("\n\n" + m.status)
	}
	return b.String()
}

func (m Model) viewEntries() string {
	if len(m.entries) == 0 {
		return dimStyle.Render(fmt.Sprintf("no entries in %q yet", m.pending))
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — %d recent entries", m.pending, len(m.entries))))
	b.WriteString("\n\n")

	for i, entry := range m.entries {
		marker := "  "
		if i == m.entryIdx {
			marker = selectStyle.Render("> ")
		}
		b.WriteString(marker + entry.Title + "\n")
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf(
			"saved %s in %s", humanize.Time(entry.Timestamp), entry.Cwd,
		)) + "\n")
		for _, command := range entry.Commands {
			b.WriteString("  " + cmdStyle.Render("$ "+command) + "\n")
		}
		if i == m.entryIdx && entry.Description != "" {
			b.WriteString(indent(wordwrap.String(entry.Description, width-4), "  ") + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("up/down: select • c: copy command • esc: back"))
	return b.String()
}

func indent(s string, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Run starts the interactive menu and blocks until the user quits.
func Run(store *groups.Store, j *journal.Journal) error {
	_, err := tea.NewProgram(New(store, j), tea.WithAltScreen()).Run()
	return err
}
