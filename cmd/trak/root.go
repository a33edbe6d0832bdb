package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillfort/trak/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
}

var flags rootFlags

// NewRootCmd creates the top-level "trak" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trak",
		Short: "Interactive record management over SQLite and flat files",
		Long: "Trak bundles three interactive programs: a fitness tracker and a\n" +
			"bookstore over SQLite, and a credential-gated task manager over\n" +
			"flat files. All three share one configuration and data layout.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: ./.trak-db)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newTrackerCmd())
	root.AddCommand(newBookstoreCmd())
	root.AddCommand(newTaskmanCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
// Storage-engine failures and spent login budgets are system exits; every
// other error is a user error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if types.IsStorageError(err) || errors.Is(err, types.ErrLoginAttemptsExhausted) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}
