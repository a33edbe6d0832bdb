package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillfort/trak/internal/taskfile"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize trak storage",
		Long:  "Create configuration and data directories, initialize the SQLite database, and seed the task manager files.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	env, err := openEnv(true)
	if err != nil {
		return err
	}
	defer env.close()

	// The flat-file store lives alongside the database.
	if err := taskfile.NewStore(env.dataDir).Ensure(); err != nil {
		return fmt.Errorf("initialize task files: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config directory: %s\n", env.configDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Data directory:   %s\n", env.dataDir)
	fmt.Fprintln(cmd.OutOrStdout(), "Trak initialized successfully")
	return nil
}
