package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/libris/internal/domain"
)

type screen int

const (
	screenHome screen = iota
	screenForm
	screenResults
)

type action int

const (
	actionAdd action = iota
	actionRemove
	actionSearch
	actionList
	actionStatus
	actionQuit
)

type menuItem struct {
	title string
	desc  string
	act   action
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

// menuItems returns the actions that make sense for a catalog of n books.
// An empty catalog only offers Add and Quit.
func menuItems(n int) []list.Item {
	if n == 0 {
		return []list.Item{
			menuItem{"Add book", "Record a new book", actionAdd},
			menuItem{"Quit", "Exit Libris", actionQuit},
		}
	}
	return []list.Item{
		menuItem{"Add book", "Record a new book", actionAdd},
		menuItem{"Remove book", "Delete a book by id", actionRemove},
		menuItem{"Search", "Find by title, author or year", actionSearch},
		menuItem{"List", "Show every book", actionList},
		menuItem{"Change status", "Mark a book available or checked out", actionStatus},
		menuItem{"Quit", "Exit Libris", actionQuit},
	}
}

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger

	scr   screen
	menu  list.Model
	width int

	act    action
	labels []string
	inputs []textinput.Model
	focus  int
	hint   string

	results      []domain.Book
	resultsTitle string

	toast    string
	toastErr bool
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, m.log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	l := list.New(menuItems(deps.Catalog.Len()), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Libris"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return model{
		theme: t,
		deps:  deps,
		log:   log,
		scr:   screenHome,
		menu:  l,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.menu.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.scr {
		case screenHome:
			return m.updateHome(msg)
		case screenForm:
			return m.updateForm(msg)
		case screenResults:
			switch msg.String() {
			case "esc", "b", "q", "enter":
				m.scr = screenHome
				m.results = nil
				return m, nil
			}
			return m, nil
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.toast = ""
		switch it.act {
		case actionQuit:
			return m, tea.Quit
		case actionList:
			return m.finish(doList(m.deps.Catalog))
		default:
			return m.openForm(it.act)
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	return ti
}

func (m model) openForm(act action) (tea.Model, tea.Cmd) {
	m.act = act
	m.focus = 0
	m.hint = ""

	switch act {
	case actionAdd:
		m.labels = []string{"Title", "Author", "Year"}
		m.inputs = []textinput.Model{
			newInput("The Name of the Rose", 200),
			newInput("Umberto Eco", 200),
			newInput("1980", 6),
		}
	case actionRemove:
		m.labels = []string{"Book id"}
		m.inputs = []textinput.Model{newInput("1", 10)}
	case actionSearch:
		m.labels = []string{"Query"}
		m.inputs = []textinput.Model{newInput("title, author or year", 200)}
	case actionStatus:
		m.labels = []string{"Book id", "New status"}
		m.inputs = []textinput.Model{
			newInput("1", 10),
			newInput(string(domain.StatusAvailable)+" | "+string(domain.StatusCheckedOut), 20),
		}
	}

	m.scr = screenForm
	return m, m.inputs[0].Focus()
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.scr = screenHome
		m.inputs = nil
		return m, nil
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m.moveFocus(1)
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	next := (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = next
	return m, m.inputs[m.focus].Focus()
}

func (m model) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, errBadNumber)
	}
	return n, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	c := m.deps.Catalog

	switch m.act {
	case actionAdd:
		year, err := parseNumber(m.value(2))
		if err != nil {
			m.hint = userMessage(err)
			return m, nil
		}
		return m.finish(doAdd(c, m.log, m.value(0), m.value(1), year))

	case actionRemove:
		id, err := parseNumber(m.value(0))
		if err != nil {
			m.hint = userMessage(err)
			return m, nil
		}
		return m.finish(doRemove(c, m.log, id))

	case actionSearch:
		return m.finish(doSearch(c, m.value(0)))

	case actionStatus:
		id, err := parseNumber(m.value(0))
		if err != nil {
			m.hint = userMessage(err)
			return m, nil
		}
		return m.finish(doChangeStatus(c, m.log, id, m.value(1)))
	}
	return m, nil
}

func (m model) finish(msg opResult) (tea.Model, tea.Cmd) {
	m.inputs = nil
	m.hint = ""

	if msg.err != nil {
		m.scr = screenHome
		m.toast = userMessage(msg.err)
		m.toastErr = true
		return m, nil
	}

	switch msg.act {
	case actionSearch, actionList:
		m.scr = screenResults
		m.results = msg.books
		m.resultsTitle = fmt.Sprintf("%d book(s)", len(msg.books))
		if msg.act == actionSearch {
			m.resultsTitle = "Search results: " + m.resultsTitle
		}
		return m, nil
	}

	m.scr = screenHome
	m.toast = msg.toast
	m.toastErr = false
	return m, m.menu.SetItems(menuItems(m.deps.Catalog.Len()))
}

func (m model) formTitle() string {
	switch m.act {
	case actionAdd:
		return "Add book"
	case actionRemove:
		return "Remove book"
	case actionSearch:
		return "Search"
	case actionStatus:
		return "Change status"
	}
	return ""
}

// currentStatus shows the status of the book the id field points at, when
// it resolves.
func (m model) currentStatus() string {
	if m.act != actionStatus || len(m.inputs) == 0 {
		return ""
	}
	id, err := parseNumber(m.value(0))
	if err != nil {
		return ""
	}
	b, err := m.deps.Catalog.Get(id)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s is currently %s", clampString(b.Title, 40), statusBadge(m.theme, b.Status))
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("Libris") + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("%s • %d book(s)", m.deps.CatalogPath, m.deps.Catalog.Len())) + "\n"

	switch m.scr {
	case screenHome:
		var toast string
		if m.toast != "" {
			if m.toastErr {
				toast = m.theme.Problem.Render("✗ "+m.toast) + "\n"
			} else {
				toast = m.theme.Notice.Render("✓ "+m.toast) + "\n"
			}
		}
		help := m.theme.Help.Render("↑/↓ navigate • enter open • q quit")
		return wrap.Render(header + "\n" + m.theme.Shelf.Render(m.menu.View()) + "\n" + toast + help)

	case screenForm:
		var b strings.Builder
		b.WriteString(m.theme.Title.Render(m.formTitle()))
		b.WriteString("\n\n")
		for i, in := range m.inputs {
			b.WriteString(m.theme.Label.Render(m.labels[i]))
			b.WriteString("\n")
			b.WriteString(in.View())
			b.WriteString("\n\n")
		}
		if s := m.currentStatus(); s != "" {
			b.WriteString(m.theme.Help.Render(s))
			b.WriteString("\n")
		}
		if m.hint != "" {
			b.WriteString(m.theme.Problem.Render(m.hint))
			b.WriteString("\n")
		}
		b.WriteString(m.theme.Help.Render("tab next field • enter submit • esc back"))
		return wrap.Render(header + "\n" + m.theme.Shelf.Render(b.String()))

	case screenResults:
		card := m.theme.Shelf.Render(
			m.theme.Title.Render(m.resultsTitle) + "\n\n" +
				renderBooks(m.theme, m.results, m.width) + "\n\n" +
				m.theme.Help.Render("esc/enter back"),
		)
		return wrap.Render(header + "\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
