package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grovetools/cells/pkg/service"
)

func NewDoctorCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and registry health",
		Long: `The doctor command checks for common configuration issues:

- Notebook types without selectors (they can never be resolved)
- Selector patterns that are not valid globs
- Duplicate selector patterns across types with equal priority
- History database access`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			issues := 0

			fmt.Println("Checking notebook types...")
			seen := map[string]string{} // pattern+priority -> type ID
			for _, d := range s.Types() {
				if len(d.Selectors) == 0 {
					fmt.Printf("  ⚠ %s has no selectors and can only be opened with --type\n", d.ID)
					issues++
				}
				for _, sel := range d.Selectors {
					if sel.FilenamePattern == "" {
						fmt.Printf("  ⚠ %s has an empty selector pattern\n", d.ID)
						issues++
						continue
					}
					if _, err := filepath.Match(sel.FilenamePattern, "probe"); err != nil {
						fmt.Printf("  ⚠ %s has a malformed pattern %q: %v\n", d.ID, sel.FilenamePattern, err)
						issues++
					}
					key := fmt.Sprintf("%s/%d", sel.FilenamePattern, d.Rank())
					if prev, ok := seen[key]; ok {
						fmt.Printf("  ⚠ %s and %s both claim %q at equal priority; first registered wins\n",
							prev, d.ID, sel.FilenamePattern)
						issues++
					} else {
						seen[key] = d.ID
					}
				}
			}

			fmt.Println("Checking history database...")
			if _, err := s.History.List(); err != nil {
				fmt.Printf("  ⚠ history unreadable: %v\n", err)
				issues++
			}

			if cfg := viper.ConfigFileUsed(); cfg != "" {
				fmt.Printf("Config file: %s\n", cfg)
			} else {
				fmt.Println("Config file: none (builtin types only)")
			}

			if issues == 0 {
				fmt.Println("\nNo issues found.")
			} else {
				fmt.Printf("\n%d issue(s) found.\n", issues)
			}
			return nil
		},
	}

	return cmd
}
