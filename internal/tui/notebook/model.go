// Package notebook is the bubbletea widget that renders a notebook's cells
// and hosts the per-cell editor.
package notebook

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/cells/internal/tui/cell"
	"github.com/grovetools/cells/internal/tui/components/confirm"
	"github.com/grovetools/cells/pkg/document"
	"github.com/grovetools/cells/pkg/menu"
	"github.com/grovetools/cells/pkg/opener"
	"github.com/grovetools/cells/pkg/textmodel"
)

type mode int

const (
	navMode mode = iota
	editMode
)

// Model is the notebook widget.
type Model struct {
	options    *opener.WidgetOptions
	notebook   *document.Notebook
	textmodels *textmodel.Service
	menus      *menu.Registry
	log        *logrus.Logger

	keys   KeyMap
	mode   mode
	cursor int
	editor *cell.Editor

	width  int
	height int

	statusMessage string
	confirm       confirm.Model
	submenu       []menu.ResolvedItem

	// Save is injected so the widget stays ignorant of storage.
	save func(*document.Notebook) error
}

// New creates the notebook widget for an already-resolved resource.
func New(opts *opener.WidgetOptions, nb *document.Notebook, svc *textmodel.Service, menus *menu.Registry, log *logrus.Logger, save func(*document.Notebook) error) Model {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	if menus == nil {
		menus = DefaultMenus()
	}
	return Model{
		options:    opts,
		notebook:   nb,
		textmodels: svc,
		menus:      menus,
		log:        log,
		keys:       keys,
		confirm:    confirm.New(),
		save:       save,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// focusedCell returns the cell under the cursor, or nil for an empty
// notebook.
func (m *Model) focusedCell() *document.Cell {
	cells := m.notebook.Cells()
	if m.cursor < 0 || m.cursor >= len(cells) {
		return nil
	}
	return cells[m.cursor]
}

// clampCursor keeps the cursor inside the cell list after mutations.
func (m *Model) clampCursor() {
	if n := len(m.notebook.Cells()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
