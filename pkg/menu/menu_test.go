package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/cells/pkg/document"
)

func newTestNotebook() (*document.Notebook, *document.Cell, *document.Cell) {
	nb := document.NewNotebook("test.nb.md", "markdown-notebook")
	markup := nb.AppendCell(document.KindMarkup, "markdown", "# hi")
	code := nb.AppendCell(document.KindCode, "python", "print(1)")
	return nb, markup, code
}

func TestContextEval(t *testing.T) {
	ctx := Context{
		"cellKind":     "code",
		"cellLanguage": "python",
		"firstCell":    "false",
	}

	tests := []struct {
		expr string
		want bool
	}{
		{"", true},
		{"cellKind", true},
		{"firstCell", false},
		{"!firstCell", true},
		{"missing", false},
		{"!missing", true},
		{"cellKind == code", true},
		{"cellKind == 'markup'", false},
		{"cellKind != markup", true},
		{"cellKind == code && cellLanguage == python", true},
		{"cellKind == code && firstCell", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := ctx.Eval(tt.expr); got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestContextFor(t *testing.T) {
	nb, markup, code := newTestNotebook()

	ctx := ContextFor(nb, code)
	assert.Equal(t, "markdown-notebook", ctx["notebookType"])
	assert.Equal(t, "code", ctx["cellKind"])
	assert.Equal(t, "python", ctx["cellLanguage"])
	assert.Equal(t, "false", ctx["firstCell"])
	assert.Equal(t, "true", ctx["lastCell"])

	ctx = ContextFor(nb, markup)
	assert.Equal(t, "true", ctx["firstCell"])
	assert.Equal(t, "false", ctx["lastCell"])
}

func TestAssembleFiltersAndPreservesOrder(t *testing.T) {
	nb, _, code := newTestNotebook()

	r := NewRegistry()
	r.Append(LocationCellToolbar, Item{ID: "run", Icon: "▶", When: "cellKind == code", Command: "cell.run"})
	r.Append(LocationCellToolbar, Item{ID: "render", When: "cellKind == markup", Command: "cell.render"})
	r.Append(LocationCellToolbar, Item{ID: "delete", Command: "cell.delete"})

	items := r.Assemble(LocationCellToolbar, nb, code)
	require.Len(t, items, 2)
	assert.Equal(t, "run", items[0].ID)
	assert.Equal(t, "delete", items[1].ID)
}

func TestResolvedItemRunsCommandWithCell(t *testing.T) {
	nb, _, code := newTestNotebook()

	r := NewRegistry()
	var gotNB *document.Notebook
	var gotCell *document.Cell
	r.RegisterCommand("cell.run", func(nb *document.Notebook, cell *document.Cell) error {
		gotNB, gotCell = nb, cell
		return nil
	})
	r.Append(LocationCellToolbar, Item{ID: "run", Command: "cell.run"})

	items := r.Assemble(LocationCellToolbar, nb, code)
	require.Len(t, items, 1)
	require.NoError(t, items[0].Run())
	assert.Same(t, nb, gotNB)
	assert.Same(t, code, gotCell)
}

func TestRunUnregisteredCommand(t *testing.T) {
	nb, _, code := newTestNotebook()

	r := NewRegistry()
	r.Append(LocationCellToolbar, Item{ID: "ghost", Command: "does.not.exist"})

	items := r.Assemble(LocationCellToolbar, nb, code)
	require.Len(t, items, 1)
	assert.Error(t, items[0].Run())
}

func TestSubmenu(t *testing.T) {
	nb, _, code := newTestNotebook()

	r := NewRegistry()
	r.RegisterCommand("cell.moveUp", func(*document.Notebook, *document.Cell) error { return nil })
	r.Append(LocationCellToolbar, Item{ID: "more", Icon: "⋯", Submenu: LocationCellExtras})
	r.Append(LocationCellExtras, Item{ID: "moveUp", When: "!firstCell", Command: "cell.moveUp"})

	items := r.Assemble(LocationCellToolbar, nb, code)
	require.Len(t, items, 1)
	require.True(t, items[0].IsSubmenu())
	assert.Error(t, items[0].Run())

	sub := items[0].OpenSubmenu()
	require.Len(t, sub, 1)
	assert.Equal(t, "moveUp", sub[0].ID)
}
