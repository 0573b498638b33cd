package cli

import (
	"context"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/ksyq12/ood-portal-generator/internal/errors"
	"github.com/ksyq12/ood-portal-generator/internal/output"
)

var diffStaged bool

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show how the live file differs from a fresh render",
	Long: `Print a unified diff between the live ood-portal.conf and the
configuration update would install.

With --staged the live file is compared against the staged <live>.new file
left behind by a previous update instead.

Examples:
  ood-portal-generator diff
  ood-portal-generator diff --staged`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVarP(&livePath, "output", "o", "", "Live Apache configuration file")
	diffCmd.Flags().BoolVar(&diffStaged, "staged", false, "Compare against the staged .new file")

	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	ctrl, err := newController(s)
	if err != nil {
		return err
	}

	var target, candidate string
	if diffStaged {
		target = ctrl.Settings().StagedPath
		if !deps.FS.Exists(target) {
			return errors.NotFound(target)
		}
		candidate = readContent(target)
	} else {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		res, err := ctrl.Plan(ctx)
		if err != nil {
			return err
		}
		target = s.LivePath + " (candidate)"
		candidate = res.Candidate
	}

	diff := udiff.Unified(s.LivePath, target, readContent(s.LivePath), candidate)

	if jsonOutput {
		return output.JSON(map[string]interface{}{
			"live":    s.LivePath,
			"against": target,
			"changed": diff != "",
			"diff":    diff,
		})
	}

	if diff == "" {
		output.Success("%s matches %s", s.LivePath, target)
		return nil
	}
	output.Diff(diff)
	return nil
}
