// Package service wires the notebook type registry, the opener, the text
// model service and the open history into one application service.
package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/cells/pkg/document"
	"github.com/grovetools/cells/pkg/history"
	"github.com/grovetools/cells/pkg/models"
	"github.com/grovetools/cells/pkg/opener"
	"github.com/grovetools/cells/pkg/registry"
	"github.com/grovetools/cells/pkg/textmodel"
)

// Config holds service configuration.
type Config struct {
	DataDir string

	// NotebookTypes are additional descriptors contributed through the
	// config file, decoded by the registry.
	NotebookTypes []map[string]any
}

// Service is the core notebook service.
type Service struct {
	Registry   *registry.Registry
	Handler    *opener.Handler
	TextModels *textmodel.Service
	History    *history.Store
	Config     *Config

	log *logrus.Logger
}

// New creates the service: builtin types plus config contributions, an
// opener over the registry, and the history store under the data dir.
func New(config *Config, log *logrus.Logger) (*Service, error) {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
	}

	reg, err := registry.NewWithBuiltins()
	if err != nil {
		return nil, fmt.Errorf("initialize registry: %w", err)
	}
	if err := reg.RegisterContributions(config.NotebookTypes); err != nil {
		return nil, fmt.Errorf("register configured notebook types: %w", err)
	}

	store, err := history.NewStore(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	return &Service{
		Registry:   reg,
		Handler:    opener.New(reg, log),
		TextModels: textmodel.NewService(log),
		History:    store,
		Config:     config,
		log:        log,
	}, nil
}

// Types returns the registered notebook types in registration order.
func (s *Service) Types() []*models.NotebookTypeDescriptor {
	return s.Registry.List()
}

// OpenNotebook resolves the notebook type for path, loads and parses the
// file, and records the open. A missing file yields an empty notebook of
// the resolved type.
func (s *Service) OpenNotebook(path string, opts opener.OpenOptions) (*document.Notebook, *opener.WidgetOptions, error) {
	uri, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve path: %w", err)
	}

	widgetOpts, err := s.Handler.Open(uri, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	return s.loadNotebook(uri, widgetOpts)
}

// OpenNotebookWith bypasses selector resolution and opens path with an
// explicitly chosen notebook type.
func (s *Service) OpenNotebookWith(path, typeID string, opts opener.OpenOptions) (*document.Notebook, *opener.WidgetOptions, error) {
	uri, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve path: %w", err)
	}

	if _, err := s.Registry.Get(typeID); err != nil {
		return nil, nil, err
	}

	widgetOpts := &opener.WidgetOptions{
		OpenOptions:  opts,
		URI:          uri,
		NotebookType: typeID,
	}
	return s.loadNotebook(uri, widgetOpts)
}

func (s *Service) loadNotebook(uri string, widgetOpts *opener.WidgetOptions) (*document.Notebook, *opener.WidgetOptions, error) {
	content := ""
	if data, err := os.ReadFile(uri); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("read notebook: %w", err)
	}

	nb, err := document.Parse(uri, content)
	if err != nil {
		return nil, nil, fmt.Errorf("parse notebook: %w", err)
	}
	if nb.Type == "" {
		nb.Type = widgetOpts.NotebookType
	}

	if err := s.History.Record(uri, widgetOpts.NotebookType); err != nil {
		// Not fatal, the notebook still opens.
		s.log.Warnf("record open history: %v", err)
	}

	return nb, widgetOpts, nil
}

// SaveNotebook encodes the notebook and writes it back to its file.
func (s *Service) SaveNotebook(nb *document.Notebook) error {
	content, err := document.Build(nb)
	if err != nil {
		return fmt.Errorf("encode notebook: %w", err)
	}
	if err := os.WriteFile(nb.URI(), []byte(content), 0644); err != nil {
		return fmt.Errorf("write notebook: %w", err)
	}
	return nil
}

// Close releases the service's resources.
func (s *Service) Close() error {
	return s.History.Close()
}
