package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/grovetools/cells/cmd/config"
	"github.com/grovetools/cells/internal/tui/notebook"
	"github.com/grovetools/cells/pkg/document"
	"github.com/grovetools/cells/pkg/opener"
	"github.com/grovetools/cells/pkg/service"
)

func NewOpenCmd(svc **service.Service) *cobra.Command {
	var (
		readOnly bool
		typeID   string
	)

	cmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Open a notebook file in the cell editor",
		Long: `Open a notebook file in the cell editor.

The notebook type is resolved from the registered type selectors; use
--type to override the resolution.

Examples:
  cells open journal.nb.md        # resolve the type from selectors
  cells open --type scratch x.txt # force a specific notebook type
  cells open --read-only plan.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if !isatty.IsTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("open requires an interactive terminal")
			}

			opts := opener.OpenOptions{ReadOnly: readOnly}

			var nb *document.Notebook
			var widgetOpts *opener.WidgetOptions
			var err error
			if typeID != "" {
				nb, widgetOpts, err = s.OpenNotebookWith(args[0], typeID, opts)
			} else {
				nb, widgetOpts, err = s.OpenNotebook(args[0], opts)
			}
			if err != nil {
				return err
			}

			save := s.SaveNotebook
			if readOnly {
				save = nil
			}

			model := notebook.New(widgetOpts, nb, s.TextModels, notebook.DefaultMenus(), config.NewLogger(), save)
			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Open without saving enabled")
	cmd.Flags().StringVarP(&typeID, "type", "t", "", "Notebook type to open with, bypassing selector resolution")

	return cmd
}
