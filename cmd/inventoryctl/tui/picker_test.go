package tui

import (
	"testing"

	"inventory-system/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rooms = []types.DropdownItem{
	{ID: 1, DisplayText: "101"},
	{ID: 2, DisplayText: "102"},
	{ID: 7, DisplayText: "Актовый зал"},
}

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) PickerModel {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	picker, ok := m.(PickerModel)
	require.True(t, ok)
	return picker
}

func TestPicker_EnterChoosesHighlighted(t *testing.T) {
	m := send(t, NewPickerModel("Аудитории", rooms),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	choice := m.Choice()
	require.NotNil(t, choice)
	assert.Equal(t, uint64(2), choice.ID)
	assert.Equal(t, "102", choice.DisplayText)
}

func TestPicker_EscCancels(t *testing.T) {
	m := send(t, NewPickerModel("Аудитории", rooms),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		tea.KeyMsg{Type: tea.KeyEsc},
	)

	assert.Nil(t, m.Choice())
}

func TestPicker_EmptyList(t *testing.T) {
	m := send(t, NewPickerModel("Пусто", nil),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	assert.Nil(t, m.Choice())
}

func TestPicker_ViewShowsTitleAndHelp(t *testing.T) {
	m := send(t, NewPickerModel("Аудитории", rooms), tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	assert.Contains(t, view, "Аудитории")
	assert.Contains(t, view, "Актовый зал")
	assert.Contains(t, view, "enter")
}
