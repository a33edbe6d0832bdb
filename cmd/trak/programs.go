// The three interactive program commands. Each opens the shared
// environment, builds a session over the command's streams, and hands
// control to the program loop in internal/cli.
package main

import (
	"github.com/spf13/cobra"

	"github.com/quillfort/trak/internal/cli"
	"github.com/quillfort/trak/internal/taskfile"
)

func newTrackerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracker",
		Short: "Interactive fitness tracker",
		Long:  "Manage workout categories, exercises, routines, goals, and progress reports through a menu loop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(true)
			if err != nil {
				return err
			}
			defer env.close()

			s := cli.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), env.log)
			s.Log.Info("tracker started", "data_dir", env.dataDir)
			return cli.RunTracker(s, env.backend)
		},
	}
}

func newBookstoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookstore",
		Short: "Interactive bookstore inventory",
		Long:  "Enter, update, delete, and search books in the inventory through a menu loop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(true)
			if err != nil {
				return err
			}
			defer env.close()

			s := cli.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), env.log)
			s.Log.Info("bookstore started", "data_dir", env.dataDir)
			return cli.RunBookstore(s, env.backend)
		},
	}
}

func newTaskmanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taskman",
		Short: "Interactive task manager",
		Long:  "Assign and review tasks stored in flat files, behind a credential login with admin and user roles.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(false)
			if err != nil {
				return err
			}
			defer env.close()

			store := taskfile.NewStore(env.dataDir)
			s := cli.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), env.log)
			s.Log.Info("taskman started", "data_dir", env.dataDir)
			return cli.RunTaskman(s, store)
		},
	}
}
