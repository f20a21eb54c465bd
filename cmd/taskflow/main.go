package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskflow/core/cmd/taskflow/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow task, project, and calendar manager",
		Long:  `TaskFlow is a single-user task, project, and calendar manager backed by pluggable key-value storage.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewTaskCommand())
	rootCmd.AddCommand(commands.NewProjectCommand())
	rootCmd.AddCommand(commands.NewEventCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewPrefsCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
