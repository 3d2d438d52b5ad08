package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/cells/cmd"
	"github.com/grovetools/cells/cmd/config"
	"github.com/grovetools/cells/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := &cobra.Command{
		Use:          "cells",
		Short:        "A cell-based notebook editor for the terminal",
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)

	cobra.OnInitialize(config.InitConfig)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		var err error
		svc, err = config.InitService()
		return err
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if svc != nil {
			svc.Close()
		}
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewOpenCmd(&svc))
	rootCmd.AddCommand(cmd.NewTypesCmd(&svc))
	rootCmd.AddCommand(cmd.NewHistoryCmd(&svc))
	rootCmd.AddCommand(cmd.NewDoctorCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
