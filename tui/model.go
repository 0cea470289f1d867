package tui

import (
	"context"
	"fmt"
	"strings"

	"notes-todo/app"
	"notes-todo/panel"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
	modeConfirm
)

// messages collects what the panels report during one key press.
type messages struct {
	err  string
	info string
}

func (m *messages) Error(msg string) { m.err = msg }
func (m *messages) Info(msg string)  { m.info = msg }

func (m *messages) take() (errMsg, info string) {
	errMsg, info = m.err, m.info
	m.err, m.info = "", ""
	return errMsg, info
}

type Model struct {
	ctx    context.Context
	tabs   []*tab
	active int
	mode   mode

	search textinput.Model
	msgs   *messages
	status string
	modal  string
	prompt string
	width  int
}

// New builds the notes and tasks tabs on top of application and loads
// both lists.
func New(ctx context.Context, application *app.App) (*Model, error) {
	msgs := &messages{}

	title := newLineInput("Title")
	content := newAreaInput("Content")
	notes := panel.NewNotePanel(
		application.Notes,
		panel.NewNoteForm(title, content, application.Validator),
		msgs,
		application.Middleware,
	)

	description := newLineInput("Description")
	endDate := newLineInput("YYYY-MM-DD")
	tasks := panel.NewTaskPanel(
		application.Tasks,
		panel.NewTaskForm(description, endDate, application.Validator),
		msgs,
		application.Middleware,
	)

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"

	m := &Model{
		ctx: ctx,
		tabs: []*tab{
			{
				title:  "Notes",
				panel:  notes,
				inputs: []input{lineInput{"Title", title}, areaInput{"Content", content}},
				sorts:  []sortOption{{"newest", ""}, {"title", "title"}},
				detail: func() string {
					if note, ok := notes.Selected(); ok {
						return note.Content
					}
					return ""
				},
			},
			{
				title:    "Tasks",
				panel:    tasks,
				inputs:   []input{lineInput{"Description", description}, lineInput{"End date", endDate}},
				sorts:    []sortOption{{"newest", ""}, {"description", "description"}, {"date", "date"}},
				complete: tasks.Complete,
			},
		},
		search: search,
		msgs:   msgs,
		status: "Ready.",
	}

	for _, t := range m.tabs {
		if err := t.panel.Load(ctx); err != nil {
			return nil, fmt.Errorf("load %ss: %w", t.panel.TypeName(), err)
		}
		t.panel.Select(0)
	}
	m.msgs.take()

	return m, nil
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, application *app.App) error {
	m, err := New(ctx, application)
	if err != nil {
		return err
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != "" {
			m.modal = ""
			return m, nil
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirm:
			return m.updateConfirm(msg.String())
		default:
			return m.updateList(msg.String())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.search.Width = msg.Width - 10
	}
	return m, nil
}

func (m *Model) current() *tab {
	return m.tabs[m.active]
}

// collect moves what the panels reported into the status line or the modal.
func (m *Model) collect() {
	errMsg, info := m.msgs.take()
	if errMsg != "" {
		m.modal = errMsg
		return
	}
	if info != "" {
		m.status = info
	}
}

func (m *Model) updateList(key string) (tea.Model, tea.Cmd) {
	t := m.current()

	switch key {
	case "q":
		return m, tea.Quit
	case "tab", "right":
		m.active = (m.active + 1) % len(m.tabs)
		m.status = ""
	case "shift+tab", "left":
		m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
		m.status = ""
	case "up", "k":
		t.moveSelection(-1)
	case "down", "j":
		t.moveSelection(1)
	case "a":
		t.panel.CancelEdit()
		m.mode = modeForm
		m.status = fmt.Sprintf("New %s", t.panel.TypeName())
		return m, t.focusInput(0)
	case "e", "enter":
		if err := t.panel.Edit(m.ctx); err != nil {
			m.collect()
			return m, nil
		}
		m.mode = modeForm
		m.status = fmt.Sprintf("Editing %s", t.panel.TypeName())
		return m, t.focusInput(0)
	case "d":
		_ = t.panel.Delete(m.ctx)
		m.collect()
	case "s":
		opt := t.nextSort()
		if err := t.panel.Sort(m.ctx, opt.criterion); err == nil {
			m.status = "Sorted by " + opt.label
		}
		m.collect()
	case "c":
		if t.complete == nil {
			return m, nil
		}
		_ = t.complete(m.ctx)
		m.collect()
	case "r":
		if err := t.panel.Load(m.ctx); err == nil {
			m.status = "Reloaded."
		}
		m.collect()
	case "/":
		m.mode = modeSearch
		m.search.SetValue(t.panel.Filter())
		return m, m.search.Focus()
	case "X":
		m.prompt = t.panel.BeginClear()
		m.mode = modeConfirm
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.current()

	switch msg.String() {
	case "esc":
		t.panel.CancelEdit()
		t.blurInputs()
		m.mode = modeList
		m.status = "Cancelled."
		return m, nil
	case "ctrl+s":
		return m.save()
	case "tab":
		return m, t.focusInput(t.focus + 1)
	case "shift+tab":
		return m, t.focusInput(t.focus - 1)
	case "enter":
		if !t.inputs[t.focus].multiline() {
			if t.focus == len(t.inputs)-1 {
				return m.save()
			}
			return m, t.focusInput(t.focus + 1)
		}
	}

	return m, t.inputs[t.focus].update(msg)
}

func (m *Model) save() (tea.Model, tea.Cmd) {
	t := m.current()
	err := t.panel.Save(m.ctx)
	m.collect()
	if err != nil {
		return m, nil
	}
	t.blurInputs()
	m.mode = modeList
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.current()

	switch msg.String() {
	case "enter":
		needle := strings.TrimSpace(m.search.Value())
		if err := t.panel.Search(m.ctx, needle); err == nil && needle != "" {
			m.status = fmt.Sprintf("%d match(es) for %q", len(t.panel.Lines()), needle)
		}
		m.collect()
	case "esc":
		_ = t.panel.Search(m.ctx, "")
		m.collect()
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	m.search.Blur()
	m.mode = modeList
	return m, nil
}

func (m *Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	var confirmed bool
	switch key {
	case "y", "Y":
		confirmed = true
	case "n", "N", "esc":
	default:
		return m, nil
	}

	_ = m.current().panel.ConfirmClear(m.ctx, confirmed)
	m.collect()
	m.prompt = ""
	m.mode = modeList
	return m, nil
}

// ==================== VIEW ====================

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.modal != "" {
		b.WriteString(modalStyle.Render(m.modal + "\n\n" + helpStyle.Render("press any key")))
		return b.String()
	}

	t := m.current()
	right := ""
	switch {
	case m.mode == modeForm:
		right = m.renderForm(t)
	case t.detail != nil:
		if body := t.detail(); body != "" {
			right = boxStyle.Width(52).Render(body)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(t), "  ", right))
	b.WriteString("\n\n")

	switch m.mode {
	case modeConfirm:
		b.WriteString(promptStyle.Render(m.prompt + " (y/n)"))
	case modeSearch:
		b.WriteString(m.search.View())
	default:
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help(t)))

	return b.String()
}

func (m *Model) renderTabs() string {
	rendered := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			rendered = append(rendered, activeTabStyle.Render(t.title))
			continue
		}
		rendered = append(rendered, tabStyle.Render(t.title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderList(t *tab) string {
	var b strings.Builder

	heading := fmt.Sprintf("%s (sorted by %s)", t.title, t.sorts[t.sort].label)
	if filter := t.panel.Filter(); filter != "" {
		heading = fmt.Sprintf("%s (matching %q)", t.title, filter)
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")

	lines := t.panel.Lines()
	if len(lines) == 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("No %ss.", t.panel.TypeName())))
		return b.String()
	}

	for i, line := range lines {
		if i == t.panel.SelectedIndex() {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderForm(t *tab) string {
	var b strings.Builder

	heading := "New " + t.panel.TypeName()
	if t.panel.Editing() {
		heading = "Edit " + t.panel.TypeName()
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")

	for i, in := range t.inputs {
		label := in.label()
		if i == t.focus {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label + "\n" + in.view() + "\n")
	}
	return boxStyle.Render(b.String())
}

func (m *Model) help(t *tab) string {
	switch m.mode {
	case modeForm:
		return "tab: next field • ctrl+s: save • esc: cancel"
	case modeSearch:
		return "enter: search • esc: show all"
	case modeConfirm:
		return "y: confirm • n: cancel"
	}

	keys := "↑/↓: select • a: add • e: edit • d: delete • s: sort • /: search • X: clear all"
	if t.complete != nil {
		keys += " • c: complete"
	}
	return keys + " • tab: switch • q: quit"
}
