package notebook

import (
	"fmt"

	"github.com/grovetools/cells/internal/tui/theme"
	"github.com/grovetools/cells/pkg/document"
	"github.com/grovetools/cells/pkg/menu"
)

// DefaultMenus builds the menu registry with the built-in cell commands
// and toolbar layout.
func DefaultMenus() *menu.Registry {
	r := menu.NewRegistry()

	r.RegisterCommand("cell.moveUp", func(nb *document.Notebook, c *document.Cell) error {
		i := nb.CellIndex(c)
		if i <= 0 {
			return fmt.Errorf("cell already first")
		}
		nb.MoveCell(i, i-1)
		return nil
	})
	r.RegisterCommand("cell.moveDown", func(nb *document.Notebook, c *document.Cell) error {
		i := nb.CellIndex(c)
		if i < 0 || i >= len(nb.Cells())-1 {
			return fmt.Errorf("cell already last")
		}
		nb.MoveCell(i, i+1)
		return nil
	})
	r.RegisterCommand("cell.delete", func(nb *document.Notebook, c *document.Cell) error {
		nb.RemoveCell(nb.CellIndex(c))
		return nil
	})
	r.RegisterCommand("cell.duplicate", func(nb *document.Notebook, c *document.Cell) error {
		i := nb.CellIndex(c)
		nb.InsertCell(i+1, c.Kind, c.Language, c.Source)
		nb.SetDirty(true)
		return nil
	})
	r.RegisterCommand("cell.clear", func(nb *document.Notebook, c *document.Cell) error {
		nb.SetCellSource(c, "")
		return nil
	})
	r.RegisterCommand("cell.toggleKind", func(nb *document.Notebook, c *document.Cell) error {
		if c.Kind == document.KindCode {
			c.Kind = document.KindMarkup
		} else {
			c.Kind = document.KindCode
		}
		nb.SetDirty(true)
		return nil
	})

	r.Append(menu.LocationCellToolbar, menu.Item{
		ID: "move-up", Icon: "↑", Label: "up",
		When:    "!firstCell",
		Command: "cell.moveUp",
	})
	r.Append(menu.LocationCellToolbar, menu.Item{
		ID: "move-down", Icon: "↓", Label: "down",
		When:    "!lastCell",
		Command: "cell.moveDown",
	})
	r.Append(menu.LocationCellToolbar, menu.Item{
		ID: "clear", Icon: "⌫", Label: "clear",
		When:    "cellKind == code",
		Command: "cell.clear",
	})
	r.Append(menu.LocationCellToolbar, menu.Item{
		ID: "delete", Icon: theme.IconDelete, Label: "delete",
		Command: "cell.delete",
	})
	r.Append(menu.LocationCellToolbar, menu.Item{
		ID: "more", Icon: theme.IconMore, Label: "more",
		Submenu: menu.LocationCellExtras,
	})

	r.Append(menu.LocationCellExtras, menu.Item{
		ID: "duplicate", Label: "duplicate cell",
		Command: "cell.duplicate",
	})
	r.Append(menu.LocationCellExtras, menu.Item{
		ID: "to-markup", Label: "convert to markup",
		When:    "cellKind == code",
		Command: "cell.toggleKind",
	})
	r.Append(menu.LocationCellExtras, menu.Item{
		ID: "to-code", Label: "convert to code",
		When:    "cellKind == markup",
		Command: "cell.toggleKind",
	})

	r.Append(menu.LocationCellSidebar, menu.Item{
		ID: "kind-code", Icon: theme.IconCode,
		When:    "cellKind == code",
		Command: "cell.toggleKind",
	})
	r.Append(menu.LocationCellSidebar, menu.Item{
		ID: "kind-markup", Icon: theme.IconMarkup,
		When:    "cellKind == markup",
		Command: "cell.toggleKind",
	})

	return r
}
