package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/cells/pkg/service"
)

func NewHistoryCmd(svc **service.Service) *cobra.Command {
	var (
		jsonOutput bool
		clearURI   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show which notebook type opened each file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if clearURI != "" {
				if err := s.History.Remove(clearURI); err != nil {
					return fmt.Errorf("clear history entry: %w", err)
				}
				fmt.Printf("Cleared history for %s\n", clearURI)
				return nil
			}

			entries, err := s.History.List()
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal history: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(entries) == 0 {
				fmt.Println("No notebooks opened yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tTYPE\tOPENS\tLAST OPENED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					e.URI, e.NotebookType, e.OpenCount, e.LastOpened.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&clearURI, "clear", "", "Remove the history entry for a file")

	return cmd
}
