// Package document holds the in-memory notebook model: an ordered list of
// markup and code cells parsed from a notebook file.
package document

import (
	"fmt"

	"github.com/grovetools/cells/pkg/events"
)

// CellKind distinguishes prose cells from executable code cells.
type CellKind string

const (
	KindMarkup CellKind = "markup"
	KindCode   CellKind = "code"
)

// Cell is a single notebook cell. Source holds the cell text without fence
// markers.
type Cell struct {
	uri      string
	Kind     CellKind
	Language string
	Source   string
}

// URI returns the cell's resource identity: the notebook URI plus a
// per-cell fragment assigned when the cell was attached.
func (c *Cell) URI() string {
	return c.uri
}

// Notebook is the editable model for one notebook file.
type Notebook struct {
	uri   string
	Type  string
	Title string

	cells   []*Cell
	nextID  int
	dirty   bool
	onDirty events.Emitter[bool]
}

// NewNotebook creates an empty notebook model for the given resource.
func NewNotebook(uri, notebookType string) *Notebook {
	return &Notebook{uri: uri, Type: notebookType}
}

// URI returns the notebook's resource identity.
func (n *Notebook) URI() string {
	return n.uri
}

// Cells returns the notebook's cells in document order.
func (n *Notebook) Cells() []*Cell {
	return n.cells
}

// AppendCell attaches a new cell to the end of the notebook and returns it.
func (n *Notebook) AppendCell(kind CellKind, language, source string) *Cell {
	c := &Cell{
		uri:      fmt.Sprintf("%s#cell%d", n.uri, n.nextID),
		Kind:     kind,
		Language: language,
		Source:   source,
	}
	n.nextID++
	n.cells = append(n.cells, c)
	return c
}

// InsertCell attaches a new cell at index i, shifting later cells down.
func (n *Notebook) InsertCell(i int, kind CellKind, language, source string) *Cell {
	if i < 0 {
		i = 0
	}
	if i >= len(n.cells) {
		return n.AppendCell(kind, language, source)
	}
	c := &Cell{
		uri:      fmt.Sprintf("%s#cell%d", n.uri, n.nextID),
		Kind:     kind,
		Language: language,
		Source:   source,
	}
	n.nextID++
	n.cells = append(n.cells[:i], append([]*Cell{c}, n.cells[i:]...)...)
	return c
}

// RemoveCell detaches the cell at index i.
func (n *Notebook) RemoveCell(i int) {
	if i < 0 || i >= len(n.cells) {
		return
	}
	n.cells = append(n.cells[:i], n.cells[i+1:]...)
	n.SetDirty(true)
}

// MoveCell moves the cell at index from to index to, shifting the cells in
// between.
func (n *Notebook) MoveCell(from, to int) {
	if from < 0 || from >= len(n.cells) || to < 0 || to >= len(n.cells) || from == to {
		return
	}
	c := n.cells[from]
	n.cells = append(n.cells[:from], n.cells[from+1:]...)
	n.cells = append(n.cells[:to], append([]*Cell{c}, n.cells[to:]...)...)
	n.SetDirty(true)
}

// SetCellSource writes edited text back into the cell and marks the
// notebook dirty.
func (n *Notebook) SetCellSource(c *Cell, source string) {
	if c.Source == source {
		return
	}
	c.Source = source
	n.SetDirty(true)
}

// Dirty reports whether the notebook has unsaved changes.
func (n *Notebook) Dirty() bool {
	return n.dirty
}

// SetDirty updates the dirty flag and notifies listeners on change.
func (n *Notebook) SetDirty(dirty bool) {
	if n.dirty == dirty {
		return
	}
	n.dirty = dirty
	n.onDirty.Emit(dirty)
}

// OnDirtyChanged registers a listener for dirty state transitions.
func (n *Notebook) OnDirtyChanged(fn func(bool)) events.Disposable {
	return n.onDirty.Listen(fn)
}

// CellIndex returns the position of the cell, or -1 if it is not attached.
func (n *Notebook) CellIndex(c *Cell) int {
	for i, cell := range n.cells {
		if cell == c {
			return i
		}
	}
	return -1
}
