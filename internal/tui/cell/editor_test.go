package cell

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/cells/pkg/document"
	"github.com/grovetools/cells/pkg/textmodel"
)

func newTestEditor(t *testing.T) (*Editor, *document.Notebook, *document.Cell, *textmodel.Service) {
	t.Helper()
	svc := textmodel.NewService(nil)
	nb := document.NewNotebook("test.nb.md", "markdown-notebook")
	c := nb.AppendCell(document.KindCode, "python", "print(1)\nprint(2)")
	return New(svc, nb, c, 80), nb, c, svc
}

// mount drives the async mount to completion synchronously.
func mount(t *testing.T, e *Editor) {
	t.Helper()
	cmd := e.Mount()
	require.NotNil(t, cmd)
	msg := cmd()
	mounted, ok := msg.(MountedMsg)
	require.True(t, ok, "expected MountedMsg, got %T", msg)
	e.Update(mounted)
}

func TestMountConstructsSurface(t *testing.T) {
	e, _, c, svc := newTestEditor(t)

	mount(t, e)

	assert.True(t, e.Mounted())
	assert.NoError(t, e.Err())
	assert.True(t, svc.Open(c.URI()))
}

func TestUnmountBeforeResolveNeverConstructsSurface(t *testing.T) {
	e, _, c, svc := newTestEditor(t)

	cmd := e.Mount()
	require.NotNil(t, cmd)

	// Tear down while the resolution is still in flight.
	e.Unmount()

	msg := cmd() // resolution completes late
	e.Update(msg)

	assert.False(t, e.Mounted(), "surface must not be constructed after unmount")
	assert.False(t, svc.Open(c.URI()), "late-resolved model must be released")
}

func TestRemountDisposesPreviousSurface(t *testing.T) {
	e, _, c, svc := newTestEditor(t)

	mount(t, e)
	firstGen := e.gen

	mount(t, e)
	assert.True(t, e.Mounted())
	assert.Greater(t, e.gen, firstGen)
	assert.True(t, svc.Open(c.URI()))
}

func TestEditWritesBackAndMarksDirty(t *testing.T) {
	e, nb, c, _ := newTestEditor(t)
	mount(t, e)

	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Contains(t, c.Source, "x")
	assert.True(t, nb.Dirty())
}

func TestUndoingEditClearsDirty(t *testing.T) {
	e, nb, _, _ := newTestEditor(t)
	mount(t, e)

	original := e.model.Content()
	e.model.SetContent(original + "x")
	require.True(t, nb.Dirty())

	e.model.SetContent(original)
	assert.False(t, nb.Dirty(), "content equal to saved baseline must clear dirty")
}

func TestMarkSaved(t *testing.T) {
	e, nb, _, _ := newTestEditor(t)
	mount(t, e)

	e.model.SetContent("changed")
	require.True(t, nb.Dirty())

	e.MarkSaved()
	assert.False(t, nb.Dirty())

	// The new baseline holds: same content stays clean, new edits dirty.
	e.model.SetContent("changed again")
	assert.True(t, nb.Dirty())
}

func TestContentHeightTracksContent(t *testing.T) {
	e, _, _, _ := newTestEditor(t)
	mount(t, e)

	base := e.ContentHeight()
	assert.GreaterOrEqual(t, base, minEditorHeight)

	e.model.SetContent("1\n2\n3\n4\n5\n6\n7\n8")
	assert.Equal(t, 8, e.ContentHeight())

	// Clamped at the maximum.
	long := ""
	for i := 0; i < 40; i++ {
		long += "line\n"
	}
	e.model.SetContent(long)
	assert.Equal(t, maxEditorHeight, e.ContentHeight())
}

func TestUnmountReleasesModel(t *testing.T) {
	e, _, c, svc := newTestEditor(t)
	mount(t, e)

	e.Unmount()
	assert.False(t, e.Mounted())
	assert.False(t, svc.Open(c.URI()))
}

func TestKeyInputIgnoredWhileUnmounted(t *testing.T) {
	e, nb, _, _ := newTestEditor(t)

	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, nb.Dirty())
}
