// Package textmodel manages the in-memory text content backing cell
// editors. Models are URI-keyed and reference counted: resolving an already
// open model shares it, and the last release evicts it.
package textmodel

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/cells/pkg/events"
)

// ChangeEvent describes a content mutation of a text model.
type ChangeEvent struct {
	URI     string
	Content string
	Version int
}

// Model is the editable text content for a single resource (typically one
// cell).
type Model struct {
	uri string
	svc *Service

	mu       sync.Mutex
	content  string
	version  int
	refs     int
	onChange events.Emitter[ChangeEvent]
}

// URI returns the resource identity the model was resolved for.
func (m *Model) URI() string {
	return m.uri
}

// Content returns the current text.
func (m *Model) Content() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Version returns the mutation counter, starting at 1 for freshly loaded
// content.
func (m *Model) Version() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// SetContent replaces the text and notifies change listeners. Setting
// identical content is a no-op.
func (m *Model) SetContent(content string) {
	m.mu.Lock()
	if m.content == content {
		m.mu.Unlock()
		return
	}
	m.content = content
	m.version++
	ev := ChangeEvent{URI: m.uri, Content: content, Version: m.version}
	m.mu.Unlock()

	m.onChange.Emit(ev)
}

// OnDidChangeContent registers a listener for content mutations.
func (m *Model) OnDidChangeContent(fn func(ChangeEvent)) events.Disposable {
	return m.onChange.Listen(fn)
}

// Release drops one reference. The model is evicted from its service when
// the count reaches zero.
func (m *Model) Release() {
	m.svc.release(m)
}

// Service resolves and tracks text models.
type Service struct {
	log *logrus.Logger

	mu     sync.Mutex
	models map[string]*Model
}

// NewService creates an empty text model service.
func NewService(log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Service{
		log:    log,
		models: make(map[string]*Model),
	}
}

// Resolve returns the model for uri, loading its initial content through
// load on first resolution. The load callback may block; cancellation of
// ctx aborts resolution before a new model is installed.
func (s *Service) Resolve(ctx context.Context, uri string, load func() (string, error)) (*Model, error) {
	s.mu.Lock()
	if m, ok := s.models[uri]; ok {
		m.mu.Lock()
		m.refs++
		m.mu.Unlock()
		s.mu.Unlock()
		return m, nil
	}
	s.mu.Unlock()

	content, err := load()
	if err != nil {
		return nil, fmt.Errorf("load text model %s: %w", uri, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolve text model %s: %w", uri, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A concurrent resolve may have won the race.
	if m, ok := s.models[uri]; ok {
		m.mu.Lock()
		m.refs++
		m.mu.Unlock()
		return m, nil
	}

	m := &Model{
		uri:     uri,
		svc:     s,
		content: content,
		version: 1,
		refs:    1,
	}
	s.models[uri] = m
	s.log.Debugf("resolved text model %s (%d bytes)", uri, len(content))
	return m, nil
}

// Open reports whether a model for uri is currently resolved.
func (s *Service) Open(uri string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.models[uri]
	return ok
}

func (s *Service) release(m *Model) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.mu.Lock()
	if m.refs > 0 {
		m.refs--
	}
	evict := m.refs == 0
	m.mu.Unlock()

	if evict {
		delete(s.models, m.uri)
		s.log.Debugf("evicted text model %s", m.uri)
	}
}
