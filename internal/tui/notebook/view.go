package notebook

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/cells/internal/tui/theme"
	"github.com/grovetools/cells/pkg/menu"
)

const previewLines = 4

func (m Model) View() string {
	t := theme.DefaultTheme

	header := m.renderHeader()

	var sections []string
	cells := m.notebook.Cells()
	if len(cells) == 0 {
		sections = append(sections, t.Muted.Render("Empty notebook. Press 'a' to add a cell."))
	}
	for i, c := range cells {
		focused := i == m.cursor
		sidebar := m.renderSidebar(i)

		var body string
		if focused && m.mode == editMode && m.editor != nil {
			body = m.editor.View()
		} else {
			body = m.renderPreview(c.Source)
		}

		style := t.CellBlurred
		if focused {
			style = t.CellFocused
		}
		block := style.Width(m.cellWidth()).Render(body)
		row := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, block)
		sections = append(sections, row)

		if focused && m.mode == navMode {
			if toolbar := m.renderToolbar(); toolbar != "" {
				sections = append(sections, toolbar)
			}
		}
	}

	footer := m.renderFooter()

	parts := []string{header, "", strings.Join(sections, "\n")}
	if m.confirm.Active {
		parts = append(parts, "", m.confirm.View())
	}
	parts = append(parts, "", footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	t := theme.DefaultTheme

	title := m.notebook.Title
	if title == "" {
		title = m.notebook.URI()
	}

	dirty := theme.IconClean
	if m.notebook.Dirty() {
		dirty = theme.IconDirty
	}

	parts := []string{
		t.Header.Render(title),
		t.Info.Render(fmt.Sprintf("[%s]", m.options.NotebookType)),
		dirty,
	}
	if m.options.ReadOnly {
		parts = append(parts, t.Muted.Render("(read-only)"))
	}
	return strings.Join(parts, " ")
}

// renderSidebar shows the cell's kind marker from the sidebar menu items.
func (m Model) renderSidebar(i int) string {
	t := theme.DefaultTheme
	cells := m.notebook.Cells()
	items := m.menus.Assemble(menu.LocationCellSidebar, m.notebook, cells[i])

	icon := " "
	if len(items) > 0 {
		icon = items[0].Icon
	}
	return t.CellGutter.Render(icon)
}

// renderToolbar lists the focused cell's visible toolbar items, numbered by
// their position so digit keys can trigger them.
func (m Model) renderToolbar() string {
	t := theme.DefaultTheme

	items := m.toolbarItems()
	if len(items) == 0 {
		return ""
	}

	var parts []string
	for i, item := range items {
		label := item.Label
		if label == "" {
			label = item.ID
		}
		icon := item.Icon
		if item.IsSubmenu() {
			icon += theme.IconSubmenu
		}
		parts = append(parts, t.ToolbarItem.Render(fmt.Sprintf("%d:%s %s", i+1, icon, label)))
	}
	return "   " + t.Toolbar.Render(strings.Join(parts, " "))
}

func (m Model) renderPreview(source string) string {
	lines := strings.Split(source, "\n")
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], theme.DefaultTheme.Muted.Render("..."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	t := theme.DefaultTheme

	if m.statusMessage != "" {
		return t.Info.Render(m.statusMessage)
	}

	if m.mode == editMode {
		return t.StatusBar.Render("esc: leave editor • editing " + m.editorTarget())
	}

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return t.StatusBar.Render(strings.Join(parts, " • "))
}

func (m Model) editorTarget() string {
	if m.editor == nil {
		return ""
	}
	return m.editor.URI()
}
