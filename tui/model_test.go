package tui

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"notes-todo/config"
	"notes-todo/config/setup"
	"notes-todo/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupModel(t *testing.T) *Model {
	t.Helper()

	ctx := context.Background()
	cfg := &config.Config{
		Env:       "test",
		DBDriver:  config.DriverSQLite,
		DBPath:    filepath.Join(t.TempDir(), "tui.db"),
		DBTimeout: time.Second,
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	db, err := setup.InitDatabase(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { setup.Shutdown(db, logger) })

	application, err := setup.InitApp(ctx, cfg, db, logger)
	require.NoError(t, err)

	m, err := New(ctx, application)
	require.NoError(t, err)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 1, 0).Format(models.DateLayout)
}

func TestModel_AddNote(t *testing.T) {
	m := setupModel(t)

	press(m, "a", "Groceries", "tab", "milk and eggs", "ctrl+s")

	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, m.modal)
	assert.Equal(t, []string{"Groceries"}, m.tabs[0].panel.Lines())
	assert.Equal(t, "Note saved.", m.status)
	assert.Contains(t, m.View(), "milk and eggs", "selected note content is shown")
}

func TestModel_InvalidNoteShowsModal(t *testing.T) {
	m := setupModel(t)

	press(m, "a", "ctrl+s")

	assert.Equal(t, modeForm, m.mode, "form stays open for correction")
	assert.Contains(t, m.modal, "title is required")
	assert.Contains(t, m.View(), "press any key")

	press(m, "x")
	assert.Empty(t, m.modal)
	assert.Equal(t, modeForm, m.mode)
}

func TestModel_EditNote(t *testing.T) {
	m := setupModel(t)
	press(m, "a", "Draft", "tab", "body", "ctrl+s")

	press(m, "e")
	require.Equal(t, modeForm, m.mode)
	assert.True(t, m.tabs[0].panel.Editing())

	press(m, " v2", "ctrl+s")
	lines := m.tabs[0].panel.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "v2")
	assert.False(t, m.tabs[0].panel.Editing())
}

func TestModel_EditWithoutSelection(t *testing.T) {
	m := setupModel(t)

	press(m, "e")

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Please select a note to edit.", m.modal)
}

func TestModel_TaskLifecycle(t *testing.T) {
	m := setupModel(t)
	press(m, "tab")
	require.Equal(t, 1, m.active)

	press(m, "a", "Pay rent", "enter", futureDate(), "enter")
	require.Empty(t, m.modal)
	lines := m.tabs[1].panel.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "(Not yet completed)")

	press(m, "c")
	assert.Contains(t, m.tabs[1].panel.Lines()[0], "(Completed)")

	press(m, "c")
	assert.Equal(t, "This task is already completed.", m.modal)
	press(m, "esc")

	press(m, "d")
	assert.Empty(t, m.tabs[1].panel.Lines())
}

func TestModel_ClearAll(t *testing.T) {
	m := setupModel(t)
	press(m, "a", "One", "tab", "body", "ctrl+s")
	press(m, "a", "Two", "tab", "body", "ctrl+s")

	press(m, "X")
	assert.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.View(), "(y/n)")

	press(m, "n")
	assert.Len(t, m.tabs[0].panel.Lines(), 2)

	press(m, "X", "y")
	assert.Empty(t, m.tabs[0].panel.Lines())
	assert.Equal(t, "All notes deleted.", m.status)
}

func TestModel_SortAndSearch(t *testing.T) {
	m := setupModel(t)
	press(m, "a", "Banana", "tab", "b", "ctrl+s")
	press(m, "a", "Apple", "tab", "a", "ctrl+s")
	press(m, "a", "Cherry", "tab", "c", "ctrl+s")

	press(m, "s")
	assert.Equal(t, []string{"Apple", "Banana", "Cherry"}, m.tabs[0].panel.Lines())
	assert.Equal(t, "Sorted by title", m.status)

	press(m, "/", "err", "enter")
	assert.Equal(t, []string{"Cherry"}, m.tabs[0].panel.Lines())
	assert.Contains(t, m.View(), `matching "err"`)

	press(m, "/", "esc")
	assert.Len(t, m.tabs[0].panel.Lines(), 3)
}

func TestModel_SelectionMoves(t *testing.T) {
	m := setupModel(t)
	press(m, "a", "One", "tab", "body", "ctrl+s")
	press(m, "a", "Two", "tab", "body", "ctrl+s")
	require.Equal(t, 0, m.tabs[0].panel.SelectedIndex())

	press(m, "j", "j")
	assert.Equal(t, 1, m.tabs[0].panel.SelectedIndex())

	press(m, "k", "k")
	assert.Equal(t, 0, m.tabs[0].panel.SelectedIndex())
}

func TestModel_Quit(t *testing.T) {
	m := setupModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
