package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/grovetools/cells/pkg/service"
)

func NewTypesCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List registered notebook types",
		Long: `List the registered notebook types in registration order, with their
priority classification and file selectors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			types := s.Types()

			if jsonOutput {
				data, err := json.MarshalIndent(types, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal types: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			titler := cases.Title(language.English)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRIORITY\tSELECTORS")
			for _, d := range types {
				name := d.DisplayName
				if name == "" {
					name = d.ID
				}
				name = titler.String(name)

				patterns := make([]string, 0, len(d.Selectors))
				for _, sel := range d.Selectors {
					patterns = append(patterns, sel.FilenamePattern)
				}

				priority := string(d.Priority)
				if priority == "" {
					priority = "default"
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, name, priority, strings.Join(patterns, ", "))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
