// Package cmd contains the foxup command-line interface.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/adamancini/foxup/internal/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	quiet   bool

	// Effective configuration, loaded in the persistent pre-run.
	cfg config.Config

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           log.WarnLevel,
	})
)

func newRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "foxup",
		Short: "Install and update Firefox from Mozilla's release archive",
		Long: `foxup manages a single Firefox installation under /opt/firefox.

It resolves the latest available release from Mozilla's download redirector,
unpacks the tarball into place, and keeps the launcher symlink and desktop
menu entry consistent with the installed version.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case verbose:
				logger.SetLevel(log.DebugLevel)
			case quiet:
				logger.SetLevel(log.ErrorLevel)
			}
			var err error
			cfg, err = config.Load(cfgFile)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to an override config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute runs the CLI. The process context is cancelled on SIGINT or
// SIGTERM so an in-flight download aborts and its staging file is removed.
func Execute(version, commit, date string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd(version, commit, date).ExecuteContext(ctx)
}
