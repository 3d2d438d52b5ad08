package menu

import (
	"strconv"
	"strings"

	"github.com/grovetools/cells/pkg/document"
)

// Context is the set of context keys a cell exposes for menu visibility
// conditions.
type Context map[string]string

// ContextFor builds the context key map for a cell within its notebook.
func ContextFor(nb *document.Notebook, cell *document.Cell) Context {
	ctx := Context{}
	if nb != nil {
		ctx["notebookType"] = nb.Type
		ctx["notebookDirty"] = strconv.FormatBool(nb.Dirty())
		if cell != nil {
			idx := nb.CellIndex(cell)
			ctx["cellIndex"] = strconv.Itoa(idx)
			ctx["firstCell"] = strconv.FormatBool(idx == 0)
			ctx["lastCell"] = strconv.FormatBool(idx == len(nb.Cells())-1)
		}
	}
	if cell != nil {
		ctx["cellKind"] = string(cell.Kind)
		ctx["cellLanguage"] = cell.Language
	}
	return ctx
}

// Eval evaluates a visibility condition against the context. The condition
// language is deliberately small: bare keys test truthiness, ! negates,
// == and != compare against a literal, && joins clauses. The empty
// condition is always true.
func (c Context) Eval(expr string) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true
	}
	for _, clause := range strings.Split(expr, "&&") {
		if !c.evalClause(strings.TrimSpace(clause)) {
			return false
		}
	}
	return true
}

func (c Context) evalClause(clause string) bool {
	switch {
	case clause == "":
		return true
	case strings.Contains(clause, "!="):
		parts := strings.SplitN(clause, "!=", 2)
		return c[strings.TrimSpace(parts[0])] != trimLiteral(parts[1])
	case strings.Contains(clause, "=="):
		parts := strings.SplitN(clause, "==", 2)
		return c[strings.TrimSpace(parts[0])] == trimLiteral(parts[1])
	case strings.HasPrefix(clause, "!"):
		return !c.truthy(strings.TrimSpace(clause[1:]))
	default:
		return c.truthy(clause)
	}
}

func (c Context) truthy(key string) bool {
	v, ok := c[key]
	return ok && v != "" && v != "false"
}

func trimLiteral(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `'"`)
	return s
}
