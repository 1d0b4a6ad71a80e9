// Package cli implements the arcade command-line interface.
//
// Commands evaluate geometry scripts, report the loops and faces they
// produce, and export meshes as STL. All commands support --verbose (-v)
// for debug-level logging and --tolerances to load a TOML tolerance file.
// The logger and tolerances are passed to commands through
// context.Context.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chazu/arcade/pkg/config"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the arcade CLI with ctx and returns the first command error.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		verbose        bool
		tolerancesPath string
	)

	root := &cobra.Command{
		Use:          "arcade",
		Short:        "arcade builds boundary-representation geometry from scripts",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)

			tol := config.Default()
			if tolerancesPath != "" {
				var err error
				if tol, err = config.Load(tolerancesPath); err != nil {
					return err
				}
				logger.Debug("loaded tolerances", "path", tolerancesPath)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withTolerances(withLogger(ctx, logger), tol))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("arcade %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&tolerancesPath, "tolerances", "", "TOML file overriding the default tolerances")

	root.AddCommand(newEvalCmd())
	root.AddCommand(newLoopsCmd())
	root.AddCommand(newFlaskCmd())

	return root
}
