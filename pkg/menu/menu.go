// Package menu provides the registry and assembly of context-sensitive
// per-cell menu items.
package menu

import (
	"fmt"
	"sync"

	"github.com/grovetools/cells/pkg/document"
)

// Location names a menu attachment point.
type Location string

const (
	LocationCellToolbar Location = "cell/toolbar"
	LocationCellSidebar Location = "cell/sidebar"
	LocationCellExtras  Location = "cell/extras"
)

// CommandFunc is a command bound to a menu item. It receives the notebook
// model and the cell the menu was assembled for.
type CommandFunc func(nb *document.Notebook, cell *document.Cell) error

// Item is a registered menu entry. Exactly one of Command and Submenu
// should be set: Command names a registered command, Submenu names the
// location whose items open as a nested menu.
type Item struct {
	ID      string
	Icon    string
	Label   string
	When    string
	Command string
	Submenu Location
}

// Registry holds menu items per location plus the commands they bind to.
// Items keep their append order; assembly never re-sorts.
type Registry struct {
	mu         sync.RWMutex
	byLocation map[Location][]Item
	commands   map[string]CommandFunc
}

// NewRegistry creates an empty menu registry.
func NewRegistry() *Registry {
	return &Registry{
		byLocation: make(map[Location][]Item),
		commands:   make(map[string]CommandFunc),
	}
}

// Append adds an item to the end of a location's list.
func (r *Registry) Append(loc Location, item Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byLocation[loc] = append(r.byLocation[loc], item)
}

// RegisterCommand binds a command ID to its implementation.
func (r *Registry) RegisterCommand(id string, fn CommandFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[id] = fn
}

// Items returns the raw (unfiltered) items for a location in append order.
func (r *Registry) Items(loc Location) []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.byLocation[loc]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// ResolvedItem is a visible menu entry bound to its target notebook and
// cell. Run executes the bound command; IsSubmenu reports whether the item
// opens a nested menu instead.
type ResolvedItem struct {
	Item

	registry *Registry
	notebook *document.Notebook
	cell     *document.Cell
}

// IsSubmenu reports whether clicking the item opens a submenu.
func (ri ResolvedItem) IsSubmenu() bool {
	return ri.Submenu != ""
}

// Run executes the item's bound command with the notebook and cell it was
// assembled for.
func (ri ResolvedItem) Run() error {
	if ri.IsSubmenu() {
		return fmt.Errorf("menu item %s opens a submenu, not a command", ri.ID)
	}
	ri.registry.mu.RLock()
	fn, ok := ri.registry.commands[ri.Command]
	ri.registry.mu.RUnlock()
	if !ok {
		return fmt.Errorf("menu item %s: command not registered: %s", ri.ID, ri.Command)
	}
	return fn(ri.notebook, ri.cell)
}

// OpenSubmenu assembles the submenu's items against the same cell context.
func (ri ResolvedItem) OpenSubmenu() []ResolvedItem {
	if !ri.IsSubmenu() {
		return nil
	}
	return ri.registry.Assemble(ri.Submenu, ri.notebook, ri.cell)
}

// Assemble returns the ordered, visible items for a location, filtered by
// each item's When condition evaluated against the cell's context.
func (r *Registry) Assemble(loc Location, nb *document.Notebook, cell *document.Cell) []ResolvedItem {
	ctx := ContextFor(nb, cell)

	var out []ResolvedItem
	for _, item := range r.Items(loc) {
		if !ctx.Eval(item.When) {
			continue
		}
		out = append(out, ResolvedItem{
			Item:     item,
			registry: r,
			notebook: nb,
			cell:     cell,
		})
	}
	return out
}
