// Package registry tracks the notebook types known to the application and
// the order in which they were registered.
package registry

import (
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/grovetools/cells/pkg/models"
)

// Registry manages notebook type registration and lookup. Registration
// order is preserved: when two types claim a resource with equal rank, the
// first registered wins.
type Registry struct {
	mu      sync.RWMutex
	ordered []*models.NotebookTypeDescriptor
	byID    map[string]*models.NotebookTypeDescriptor
	version uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byID: make(map[string]*models.NotebookTypeDescriptor),
	}
}

// NewWithBuiltins creates a registry pre-populated with the built-in
// notebook types.
func NewWithBuiltins() (*Registry, error) {
	r := New()
	for _, d := range models.BuiltinNotebookTypes {
		if err := r.Register(d); err != nil {
			return nil, fmt.Errorf("register builtin %s: %w", d.ID, err)
		}
	}
	return r, nil
}

// Register adds a descriptor. Registering an ID that already exists replaces
// the descriptor in place and keeps its original position in the order.
func (r *Registry) Register(d *models.NotebookTypeDescriptor) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validate descriptor: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[d.ID]; ok {
		*existing = *d
		r.version++
		return nil
	}

	cp := *d
	r.ordered = append(r.ordered, &cp)
	r.byID[cp.ID] = &cp
	r.version++
	return nil
}

// Unregister removes a descriptor by ID. Removing an unknown ID is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	for i, d := range r.ordered {
		if d.ID == id {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
	r.version++
}

// Get retrieves a descriptor by ID.
func (r *Registry) Get(id string) (*models.NotebookTypeDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("notebook type not found: %s", id)
	}
	cp := *d
	return &cp, nil
}

// List returns all registered descriptors in registration order.
func (r *Registry) List() []*models.NotebookTypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.NotebookTypeDescriptor, 0, len(r.ordered))
	for _, d := range r.ordered {
		cp := *d
		out = append(out, &cp)
	}
	return out
}

// Version returns a counter that increments on every mutation. Consumers
// caching resolution results key their entries on this value.
func (r *Registry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// RegisterContributions decodes descriptor maps from configuration and
// registers them. The maps come from the notebook_types list in config.yaml.
func (r *Registry) RegisterContributions(raw []map[string]any) error {
	for i, m := range raw {
		var d models.NotebookTypeDescriptor
		if err := mapstructure.Decode(m, &d); err != nil {
			return fmt.Errorf("decode notebook type %d: %w", i, err)
		}
		if err := r.Register(&d); err != nil {
			return fmt.Errorf("register notebook type %d: %w", i, err)
		}
	}
	return nil
}
