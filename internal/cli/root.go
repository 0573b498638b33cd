package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ksyq12/ood-portal-generator/internal/logger"
	"github.com/ksyq12/ood-portal-generator/internal/output"
	"github.com/ksyq12/ood-portal-generator/internal/portal"
)

var (
	configPath string
	jsonOutput bool
	verbose    bool
	version    = "dev"

	// exitCode is set by commands that report their outcome through the
	// process status (update with --detailed-exitcodes).
	exitCode = portal.ExitOK
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ood-portal-generator",
	Short: "Generate and install the Open OnDemand Apache configuration",
	Long: `ood-portal-generator renders ood-portal.conf, the Apache virtual host for
Open OnDemand, from /etc/ood/config/ood_portal.yml.

The update command installs the result without clobbering local edits: the
live file is only replaced when it still matches the checksum recorded the
last time it was generated. Otherwise the new configuration is written next
to it as ood-portal.conf.new.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the command's status.
func Execute() {
	os.Exit(run())
}

// run executes the root command and returns the process status. Errors are
// printed here rather than by cobra.
func run() int {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		return portal.ExitFailure
	}
	return exitCode
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Portal options file (default /etc/ood/config/ood_portal.yml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
