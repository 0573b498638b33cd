package cli

import (
	"context"
	"time"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/ksyq12/ood-portal-generator/internal/logger"
	"github.com/ksyq12/ood-portal-generator/internal/output"
	"github.com/ksyq12/ood-portal-generator/internal/portal"
)

var dryRun bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Install ood-portal.conf without overwriting local edits",
	Long: `Render the Apache virtual host and install it.

The live file is replaced (after a backup to <live>.bak) when it still
matches the checksum recorded at the last update, when no checksum has been
recorded yet, or with --force. If the live file was edited since, the new
configuration is written to <live>.new instead.

With --detailed-exitcodes the process status reports the outcome:
  0  already up to date
  3  live file replaced, reload Apache
  4  live file was edited, new configuration staged to <live>.new

Examples:
  ood-portal-generator update
  ood-portal-generator update --detailed-exitcodes
  ood-portal-generator update --force
  ood-portal-generator update --dry-run`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&livePath, "output", "o", "", "Live Apache configuration file")
	updateCmd.Flags().StringVar(&checksumPath, "sum", "", "Checksum file (default /etc/ood/config/ood_portal.sha256sum)")
	updateCmd.Flags().BoolVarP(&forceReplace, "force", "f", false, "Replace the live file even if it was edited")
	updateCmd.Flags().BoolVarP(&detailedExitCodes, "detailed-exitcodes", "d", false, "Report the outcome through exit codes 0, 3 and 4")
	updateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would happen without writing anything")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	defer logger.Since("update", time.Now())

	s, err := resolveSettings()
	if err != nil {
		return err
	}

	ctrl, err := newController(s)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if dryRun {
		res, err := ctrl.Plan(ctx)
		if err != nil {
			return err
		}
		return outputUpdateDryRun(res)
	}

	res, err := ctrl.Update(ctx)
	if err != nil {
		return err
	}
	exitCode = res.ExitCode

	if jsonOutput {
		return output.JSON(res)
	}

	switch res.Action {
	case portal.ActionReplaced:
		output.Success("Generated new %s", res.LivePath)
		if res.BackupPath != "" {
			output.Info("Previous configuration backed up to %s", res.BackupPath)
		}
		output.Info("Reload Apache to apply the new configuration")
	case portal.ActionStaged:
		output.Warn("%s was modified since it was last generated", res.LivePath)
		output.Info("New configuration written to %s", res.StagedPath)
		output.Info("Review it with 'ood-portal-generator diff --staged', then merge it by hand or rerun update with --force")
	default:
		output.Success("%s is up to date", res.LivePath)
	}
	return nil
}

// outputUpdateDryRun reports the planned action and previews the change
func outputUpdateDryRun(res *portal.Result) error {
	var diff string
	if res.Changed {
		diff = udiff.Unified(res.LivePath, res.LivePath+" (candidate)", readContent(res.LivePath), res.Candidate)
	}

	if jsonOutput {
		return output.JSON(struct {
			*portal.Result
			DryRun bool   `json:"dry_run"`
			Diff   string `json:"diff,omitempty"`
		}{res, true, diff})
	}

	switch res.Action {
	case portal.ActionReplaced:
		output.Info("Would replace %s", res.LivePath)
		if res.BackupPath != "" {
			output.Info("Would back up the current file to %s", res.BackupPath)
		}
	case portal.ActionStaged:
		output.Warn("%s was modified since it was last generated", res.LivePath)
		output.Info("Would write the new configuration to %s", res.StagedPath)
	default:
		output.Success("%s is up to date", res.LivePath)
		return nil
	}
	output.Print("")
	output.Diff(diff)
	return nil
}
