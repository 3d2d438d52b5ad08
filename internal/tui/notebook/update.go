package notebook

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/cells/internal/tui/cell"
	"github.com/grovetools/cells/internal/tui/components/confirm"
	"github.com/grovetools/cells/pkg/document"
	"github.com/grovetools/cells/pkg/menu"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case confirm.ConfirmedMsg:
		m.runToolbarItem("delete")
		m.clampCursor()
		return m, nil

	case confirm.CancelledMsg:
		m.statusMessage = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.editor != nil {
			m.editor.SetWidth(m.cellWidth())
		}
		return m, nil

	case cell.MountedMsg:
		if m.editor == nil {
			// Editor torn down while the resolution was in flight.
			if msg.Model != nil {
				msg.Model.Release()
			}
			return m, nil
		}
		cmd := m.editor.Update(msg)
		if err := m.editor.Err(); err != nil {
			m.log.Warnf("cell editor mount failed: %v", err)
			m.statusMessage = fmt.Sprintf("Error opening cell: %v", err)
		}
		return m, cmd

	case tea.KeyMsg:
		if m.confirm.Active {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if m.mode == editMode {
			return m.updateEditMode(msg)
		}
		return m.updateNavMode(msg)
	}

	return m, nil
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ExitEdit) {
		if m.editor != nil {
			m.editor.Unmount()
			m.editor = nil
		}
		m.mode = navMode
		return m, nil
	}

	if m.editor == nil {
		m.mode = navMode
		return m, nil
	}
	return m, m.editor.Update(msg)
}

func (m Model) updateNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key other than a digit closes an open submenu.
	openSubmenu := m.submenu
	m.submenu = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.statusMessage = ""

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.notebook.Cells())-1 {
			m.cursor++
		}
		m.statusMessage = ""

	case key.Matches(msg, m.keys.Edit):
		return m.enterEditMode()

	case key.Matches(msg, m.keys.AddBelow):
		c := m.notebook.InsertCell(m.cursor+1, document.KindMarkup, "markdown", "")
		m.notebook.SetDirty(true)
		m.cursor = m.notebook.CellIndex(c)

	case key.Matches(msg, m.keys.Delete):
		if m.focusedCell() != nil {
			m.confirm.Activate("Delete cell?")
		}

	case key.Matches(msg, m.keys.MoveUp):
		m.runToolbarItem("move-up")
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.MoveDown):
		m.runToolbarItem("move-down")
		if m.cursor < len(m.notebook.Cells())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Save):
		m.saveNotebook()

	default:
		// Digits run the Nth visible toolbar item, or the Nth entry of an
		// open submenu.
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			i := int(s[0] - '1')
			if openSubmenu != nil {
				if i < len(openSubmenu) {
					m.runItem(openSubmenu[i])
				}
			} else {
				m.runToolbarIndex(i)
			}
			m.clampCursor()
		}
	}

	return m, nil
}

func (m *Model) enterEditMode() (tea.Model, tea.Cmd) {
	c := m.focusedCell()
	if c == nil {
		return *m, nil
	}
	m.editor = cell.New(m.textmodels, m.notebook, c, m.cellWidth())
	m.mode = editMode
	m.statusMessage = ""
	return *m, m.editor.Mount()
}

// toolbarItems assembles the visible toolbar for the focused cell.
func (m *Model) toolbarItems() []menu.ResolvedItem {
	c := m.focusedCell()
	if c == nil {
		return nil
	}
	return m.menus.Assemble(menu.LocationCellToolbar, m.notebook, c)
}

// runToolbarItem executes the visible toolbar item with the given ID.
func (m *Model) runToolbarItem(id string) {
	for _, item := range m.toolbarItems() {
		if item.ID != id {
			continue
		}
		m.runItem(item)
		return
	}
}

// runToolbarIndex executes the i-th visible toolbar item.
func (m *Model) runToolbarIndex(i int) {
	items := m.toolbarItems()
	if i < 0 || i >= len(items) {
		return
	}
	m.runItem(items[i])
}

func (m *Model) runItem(item menu.ResolvedItem) {
	if item.IsSubmenu() {
		m.submenu = item.OpenSubmenu()
		labels := make([]string, len(m.submenu))
		for i, s := range m.submenu {
			labels[i] = fmt.Sprintf("%d:%s", i+1, s.Label)
		}
		m.statusMessage = fmt.Sprintf("%s %s", item.Label, strings.Join(labels, "  "))
		return
	}
	if err := item.Run(); err != nil {
		m.log.Warnf("menu command %s failed: %v", item.Command, err)
		m.statusMessage = fmt.Sprintf("Error: %v", err)
		return
	}
	m.statusMessage = ""
}

func (m *Model) saveNotebook() {
	if m.save == nil {
		m.statusMessage = "Saving not available"
		return
	}
	if err := m.save(m.notebook); err != nil {
		m.log.Errorf("save notebook: %v", err)
		m.statusMessage = fmt.Sprintf("Error saving: %v", err)
		return
	}
	if m.editor != nil {
		m.editor.MarkSaved()
	} else {
		m.notebook.SetDirty(false)
	}
	m.statusMessage = "Saved"
}

func (m *Model) cellWidth() int {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	return w
}
