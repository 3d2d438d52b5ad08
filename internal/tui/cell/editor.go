// Package cell binds a textarea editing surface to a single notebook
// cell's text model and keeps size, dirty state and content in sync.
package cell

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/cells/internal/tui/theme"
	"github.com/grovetools/cells/pkg/document"
	"github.com/grovetools/cells/pkg/events"
	"github.com/grovetools/cells/pkg/textmodel"
)

// Editor heights are clamped so a single cell cannot swallow the screen.
const (
	minEditorHeight = 3
	maxEditorHeight = 14
)

// MountedMsg reports the outcome of an asynchronous text model resolution.
// The host must route it back to the editor it belongs to.
type MountedMsg struct {
	URI   string
	Gen   int
	Model *textmodel.Model
	Err   error
}

// Editor is the per-cell editing component. Its lifecycle is Mount →
// interactive updates → Unmount; re-mounting first disposes the previous
// surface.
type Editor struct {
	svc      *textmodel.Service
	notebook *document.Notebook
	cell     *document.Cell

	ta      textarea.Model
	model   *textmodel.Model
	subs    events.Bag
	gen     int
	mounted bool
	saved   string
	err     error

	width  int
	height int
}

// New creates an unmounted editor for the given cell.
func New(svc *textmodel.Service, nb *document.Notebook, c *document.Cell, width int) *Editor {
	return &Editor{
		svc:      svc,
		notebook: nb,
		cell:     c,
		width:    width,
		height:   minEditorHeight,
	}
}

// URI returns the identity of the cell being edited.
func (e *Editor) URI() string {
	return e.cell.URI()
}

// Mounted reports whether the editing surface is constructed.
func (e *Editor) Mounted() bool {
	return e.mounted
}

// Err returns the mount failure, if any.
func (e *Editor) Err() error {
	return e.err
}

// Mount begins the asynchronous text model resolution. Any previous surface
// is disposed first, so Mount is safe to call repeatedly.
func (e *Editor) Mount() tea.Cmd {
	e.Unmount()
	e.err = nil

	gen := e.gen
	uri := e.cell.URI()
	source := e.cell.Source
	svc := e.svc

	return func() tea.Msg {
		m, err := svc.Resolve(context.Background(), uri, func() (string, error) {
			return source, nil
		})
		return MountedMsg{URI: uri, Gen: gen, Model: m, Err: err}
	}
}

// Unmount releases the subscriptions, the text model and the surface. It
// also invalidates any in-flight resolution so a late MountedMsg cannot
// construct a surface on a torn-down editor.
func (e *Editor) Unmount() {
	e.gen++
	e.subs.DisposeAll()
	e.subs.Reset()
	if e.model != nil {
		e.model.Release()
		e.model = nil
	}
	if e.mounted {
		e.ta.Blur()
	}
	e.mounted = false
}

// Update handles the editor's messages. Key input is forwarded to the
// surface and synced into the text model.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case MountedMsg:
		return e.finishMount(msg)

	case tea.KeyMsg:
		if !e.mounted {
			return nil
		}
		var cmd tea.Cmd
		e.ta, cmd = e.ta.Update(msg)
		// Push surface edits into the model; its listeners handle
		// write-back, dirty state and resizing.
		e.model.SetContent(e.ta.Value())
		return cmd
	}
	return nil
}

// finishMount constructs the surface for a resolved model, or records the
// failure. Resolutions from a superseded generation are released untouched.
func (e *Editor) finishMount(msg MountedMsg) tea.Cmd {
	if msg.Gen != e.gen {
		if msg.Model != nil {
			msg.Model.Release()
		}
		return nil
	}

	if msg.Err != nil {
		e.err = msg.Err
		return nil
	}

	e.model = msg.Model
	e.saved = msg.Model.Content()

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetWidth(e.innerWidth())
	ta.SetValue(msg.Model.Content())
	e.ta = ta
	e.mounted = true

	// Subscription order matters: write-back first, then dirty
	// reconciliation, then resize.
	e.subs.Add(e.model.OnDidChangeContent(func(ev textmodel.ChangeEvent) {
		e.notebook.SetCellSource(e.cell, ev.Content)
	}))
	e.subs.Add(e.model.OnDidChangeContent(func(ev textmodel.ChangeEvent) {
		e.notebook.SetDirty(ev.Content != e.saved)
	}))
	e.subs.Add(e.model.OnDidChangeContent(func(textmodel.ChangeEvent) {
		e.syncHeight()
	}))

	e.syncHeight()
	return e.ta.Focus()
}

// MarkSaved records the current content as the saved baseline and clears
// the notebook's dirty flag.
func (e *Editor) MarkSaved() {
	if e.model != nil {
		e.saved = e.model.Content()
	}
	e.notebook.SetDirty(false)
}

// SetWidth resizes the editor's container.
func (e *Editor) SetWidth(w int) {
	e.width = w
	if e.mounted {
		e.ta.SetWidth(e.innerWidth())
	}
}

// ContentHeight returns the container height the editor currently needs.
func (e *Editor) ContentHeight() int {
	return e.height
}

func (e *Editor) innerWidth() int {
	w := e.width - 4 // border + padding
	if w < 10 {
		w = 10
	}
	return w
}

// syncHeight resizes surface and container to the content, clamped to the
// editor's bounds.
func (e *Editor) syncHeight() {
	lines := 1
	if e.model != nil {
		lines = strings.Count(e.model.Content(), "\n") + 1
	}
	h := lines
	if h < minEditorHeight {
		h = minEditorHeight
	}
	if h > maxEditorHeight {
		h = maxEditorHeight
	}
	if h != e.height {
		e.height = h
	}
	if e.mounted {
		e.ta.SetHeight(h)
	}
}

// View renders the editing surface, a resolving placeholder, or the mount
// failure.
func (e *Editor) View() string {
	if e.err != nil {
		return theme.DefaultTheme.Error.Render("editor mount failed: " + e.err.Error())
	}
	if !e.mounted {
		return theme.DefaultTheme.Muted.Render("resolving text model...")
	}
	return e.ta.View()
}
