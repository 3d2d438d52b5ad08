package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/cells/pkg/document"
	"github.com/grovetools/cells/pkg/opener"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(&Config{DataDir: filepath.Join(t.TempDir(), "data")}, nil)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestOpenNotebook(t *testing.T) {
	svc := newTestService(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "log.nb.md")
	content := "---\ntype: markdown-notebook\ntitle: Log\n---\n\nHello.\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	nb, opts, err := svc.OpenNotebook(path, opener.OpenOptions{})
	if err != nil {
		t.Fatalf("Failed to open notebook: %v", err)
	}
	if opts.NotebookType != "markdown-notebook" {
		t.Errorf("Expected markdown-notebook, got %s", opts.NotebookType)
	}
	if len(nb.Cells()) != 1 {
		t.Errorf("Expected 1 cell, got %d", len(nb.Cells()))
	}

	// The open must be recorded.
	e, err := svc.History.Get(nb.URI())
	if err != nil {
		t.Fatalf("Expected history entry: %v", err)
	}
	if e.NotebookType != "markdown-notebook" {
		t.Errorf("History recorded wrong type: %s", e.NotebookType)
	}
}

func TestOpenNotebookNoHandler(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.OpenNotebook(filepath.Join(t.TempDir(), "data.bin"), opener.OpenOptions{})
	if err == nil {
		t.Fatal("Expected error for unhandled resource")
	}
	if !strings.Contains(err.Error(), "no notebook type handles") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestOpenNotebookMissingFile(t *testing.T) {
	svc := newTestService(t)

	nb, opts, err := svc.OpenNotebook(filepath.Join(t.TempDir(), "new.nb.md"), opener.OpenOptions{})
	if err != nil {
		t.Fatalf("Expected empty notebook for missing file, got %v", err)
	}
	if len(nb.Cells()) != 0 {
		t.Errorf("Expected no cells, got %d", len(nb.Cells()))
	}
	if nb.Type != opts.NotebookType {
		t.Errorf("Expected type inherited from resolution, got %s", nb.Type)
	}
}

func TestOpenNotebookWith(t *testing.T) {
	svc := newTestService(t)

	path := filepath.Join(t.TempDir(), "data.txt")
	nb, opts, err := svc.OpenNotebookWith(path, "scratch", opener.OpenOptions{ReadOnly: true})
	if err != nil {
		t.Fatalf("Failed to open with explicit type: %v", err)
	}
	if opts.NotebookType != "scratch" || !opts.ReadOnly {
		t.Errorf("Unexpected options: %+v", opts)
	}
	if nb.Type != "scratch" {
		t.Errorf("Expected scratch type, got %s", nb.Type)
	}

	if _, _, err := svc.OpenNotebookWith(path, "no-such-type", opener.OpenOptions{}); err == nil {
		t.Error("Expected error for unknown type")
	}
}

func TestSaveNotebookRoundTrip(t *testing.T) {
	svc := newTestService(t)

	path := filepath.Join(t.TempDir(), "notes.nb.md")
	nb, _, err := svc.OpenNotebook(path, opener.OpenOptions{})
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}

	nb.Title = "Notes"
	nb.AppendCell(document.KindCode, "go", "fmt.Println(1)")
	if err := svc.SaveNotebook(nb); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	again, _, err := svc.OpenNotebook(path, opener.OpenOptions{})
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	if again.Title != "Notes" || len(again.Cells()) != 1 {
		t.Errorf("Round trip failed: %+v", again)
	}
}

func TestConfiguredTypesAreRegistered(t *testing.T) {
	svc, err := New(&Config{
		DataDir: filepath.Join(t.TempDir(), "data"),
		NotebookTypes: []map[string]any{
			{
				"id":       "org-notebook",
				"priority": "default",
				"selectors": []map[string]any{
					{"filename_pattern": "*.org"},
				},
			},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	defer svc.Close()

	nb, opts, err := svc.OpenNotebook(filepath.Join(t.TempDir(), "todo.org"), opener.OpenOptions{})
	if err != nil {
		t.Fatalf("Failed to open org file: %v", err)
	}
	if opts.NotebookType != "org-notebook" {
		t.Errorf("Expected org-notebook, got %s", opts.NotebookType)
	}
	_ = nb
}
