package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// controller is the part of a panel the UI drives. Both *panel.NotePanel
// and *panel.TaskPanel satisfy it.
type controller interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Edit(ctx context.Context) error
	CancelEdit()
	Delete(ctx context.Context) error
	Sort(ctx context.Context, criterion string) error
	Search(ctx context.Context, needle string) error
	BeginClear() string
	ConfirmClear(ctx context.Context, confirmed bool) error
	Select(i int)
	SelectedIndex() int
	Lines() []string
	Editing() bool
	Filter() string
	TypeName() string
}

// input is one focusable form widget.
type input interface {
	label() string
	multiline() bool
	focus() tea.Cmd
	blur()
	update(msg tea.Msg) tea.Cmd
	view() string
}

type lineInput struct {
	name  string
	model *textinput.Model
}

func (in lineInput) label() string   { return in.name }
func (in lineInput) multiline() bool { return false }
func (in lineInput) focus() tea.Cmd  { return in.model.Focus() }
func (in lineInput) blur()           { in.model.Blur() }
func (in lineInput) view() string    { return in.model.View() }

func (in lineInput) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*in.model, cmd = in.model.Update(msg)
	return cmd
}

type areaInput struct {
	name  string
	model *textarea.Model
}

func (in areaInput) label() string   { return in.name }
func (in areaInput) multiline() bool { return true }
func (in areaInput) focus() tea.Cmd  { return in.model.Focus() }
func (in areaInput) blur()           { in.model.Blur() }
func (in areaInput) view() string    { return in.model.View() }

func (in areaInput) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*in.model, cmd = in.model.Update(msg)
	return cmd
}

// sortOption pairs a criterion with its label. The empty criterion is the
// default order.
type sortOption struct {
	label     string
	criterion string
}

// tab is one record type: its list, its form and its extra actions.
type tab struct {
	title  string
	panel  controller
	inputs []input
	focus  int

	sorts []sortOption
	sort  int

	// complete is nil when the record type has no completion.
	complete func(ctx context.Context) error
	// detail returns the body of the selected record, or "" if none.
	detail func() string
}

func newLineInput(placeholder string) *textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.Width = 50
	return &in
}

func newAreaInput(placeholder string) *textarea.Model {
	in := textarea.New()
	in.Placeholder = placeholder
	in.ShowLineNumbers = false
	in.SetWidth(52)
	in.SetHeight(6)
	return &in
}

func (t *tab) focusInput(i int) tea.Cmd {
	if len(t.inputs) == 0 {
		return nil
	}
	for _, in := range t.inputs {
		in.blur()
	}
	t.focus = (i + len(t.inputs)) % len(t.inputs)
	return t.inputs[t.focus].focus()
}

func (t *tab) blurInputs() {
	for _, in := range t.inputs {
		in.blur()
	}
}

func (t *tab) moveSelection(delta int) {
	lines := len(t.panel.Lines())
	if lines == 0 {
		return
	}
	i := t.panel.SelectedIndex() + delta
	if t.panel.SelectedIndex() < 0 {
		i = 0
	}
	if i < 0 {
		i = 0
	}
	if i >= lines {
		i = lines - 1
	}
	t.panel.Select(i)
}

func (t *tab) nextSort() sortOption {
	t.sort = (t.sort + 1) % len(t.sorts)
	return t.sorts[t.sort]
}
