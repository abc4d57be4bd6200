package tui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"inventory-system/pkg/types"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// DropdownItem - элемент выпадающего списка в TUI.
type DropdownItem struct {
	types.DropdownItem
}

func (i DropdownItem) FilterValue() string { return i.DisplayText }
func (i DropdownItem) Title() string       { return i.DisplayText }
func (i DropdownItem) Description() string { return "ID " + strconv.FormatUint(i.ID, 10) }

type dropdownDelegate struct{}

func (d dropdownDelegate) Height() int                             { return 1 }
func (d dropdownDelegate) Spacing() int                            { return 0 }
func (d dropdownDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d dropdownDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(DropdownItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "  " + mutedStyle.Render(i.Description()))
	} else {
		s = unselectedItemStyle.Render(i.Title())
	}
	_, _ = fmt.Fprint(w, s)
}

// PickerModel - выбор одного значения из выпадающего списка.
// enter фиксирует выбор, esc/q/ctrl+c выходят без выбора.
type PickerModel struct {
	list      list.Model
	choice    *types.DropdownItem
	cancelled bool
}

func NewPickerModel(title string, items []types.DropdownItem) PickerModel {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = DropdownItem{DropdownItem: item}
	}

	l := list.New(listItems, dropdownDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return PickerModel{list: l}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Пока вводится фильтр, клавиши принадлежат ему.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(DropdownItem); ok {
				chosen := item.DropdownItem
				m.choice = &chosen
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	return m.list.View() + "\n" +
		FormatKey("↑/↓", "выбор") + " • " + FormatKey("/", "поиск") + " • " +
		FormatKey("enter", "подтвердить") + " • " + FormatKey("esc", "отмена")
}

// Choice - выбранный элемент или nil.
func (m PickerModel) Choice() *types.DropdownItem {
	if m.cancelled {
		return nil
	}
	return m.choice
}

// Pick запускает выбор в полноэкранном режиме на stderr, чтобы stdout оставался для результата.
// nil без ошибки - пользователь отменил выбор.
func Pick(title string, items []types.DropdownItem) (*types.DropdownItem, error) {
	p := tea.NewProgram(NewPickerModel(title, items), tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(PickerModel).Choice(), nil
}
