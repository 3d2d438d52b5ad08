// Package opener decides which notebook type handles a given resource and
// builds the construction options for its editor widget.
package opener

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/cells/pkg/models"
	"github.com/grovetools/cells/pkg/registry"
)

// ErrNoHandler is returned when no registered notebook type selects the
// resource.
var ErrNoHandler = errors.New("no notebook type handles resource")

// ErrNotResolved is returned when widget options are requested for a
// resource that has not been successfully resolved first.
var ErrNotResolved = errors.New("resource not resolved: call CanHandle first")

// OpenOptions are the caller-supplied options for opening a resource.
type OpenOptions struct {
	ReadOnly bool
	Preview  bool
}

// WidgetOptions carry everything needed to construct a notebook widget for
// a resource, including the resolved notebook type.
type WidgetOptions struct {
	OpenOptions
	URI          string
	NotebookType string
}

type cacheEntry struct {
	desc    *models.NotebookTypeDescriptor
	version uint64
}

// Handler resolves resources to notebook types. Successful resolutions are
// cached by resource identity; entries are recomputed when the registry has
// been mutated since they were stored.
type Handler struct {
	registry *registry.Registry
	log      *logrus.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New creates a handler backed by the given registry.
func New(reg *registry.Registry, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Handler{
		registry: reg,
		log:      log,
		cache:    make(map[string]cacheEntry),
	}
}

// CanHandle returns the handler's rank for the resource: non-negative means
// the handler can open it (higher wins among competing handlers), negative
// means it cannot.
func (h *Handler) CanHandle(uri string) int {
	version := h.registry.Version()

	h.mu.Lock()
	if entry, ok := h.cache[uri]; ok && entry.version == version {
		h.mu.Unlock()
		return entry.desc.Rank()
	}
	h.mu.Unlock()

	best := h.resolve(uri)
	rank := best.Rank()
	if rank < 0 {
		// Not cached so late registrations get picked up on the next call.
		return models.RankNone
	}

	h.mu.Lock()
	h.cache[uri] = cacheEntry{desc: best, version: version}
	h.mu.Unlock()

	h.log.Debugf("resolved %s to notebook type %s (rank %d)", uri, best.ID, rank)
	return rank
}

// resolve scans the registry for the best-ranked descriptor selecting the
// resource. Ties keep the first-registered descriptor: replacement happens
// only on a strictly greater rank.
func (h *Handler) resolve(uri string) *models.NotebookTypeDescriptor {
	var best *models.NotebookTypeDescriptor
	bestRank := models.RankNone

	for _, d := range h.registry.List() {
		if !d.SelectedBy(uri) {
			continue
		}
		if r := d.Rank(); r > bestRank {
			best = d
			bestRank = r
		}
	}
	return best
}

// Resolved returns the cached descriptor for the resource, if the cache
// entry exists and is current.
func (h *Handler) Resolved(uri string) (*models.NotebookTypeDescriptor, bool) {
	version := h.registry.Version()

	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.cache[uri]
	if !ok || entry.version != version {
		return nil, false
	}
	return entry.desc, true
}

// WidgetOptions builds the construction options for the resource's notebook
// widget. The resource must have been resolved by a prior successful
// CanHandle call; otherwise ErrNotResolved is returned.
func (h *Handler) WidgetOptions(uri string, opts OpenOptions) (*WidgetOptions, error) {
	desc, ok := h.Resolved(uri)
	if !ok {
		return nil, ErrNotResolved
	}
	return &WidgetOptions{
		OpenOptions:  opts,
		URI:          uri,
		NotebookType: desc.ID,
	}, nil
}

// Open resolves the resource and builds its widget options in one step,
// returning ErrNoHandler when nothing selects it.
func (h *Handler) Open(uri string, opts OpenOptions) (*WidgetOptions, error) {
	if h.CanHandle(uri) < 0 {
		return nil, ErrNoHandler
	}
	return h.WidgetOptions(uri, opts)
}
