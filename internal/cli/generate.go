package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ksyq12/ood-portal-generator/internal/errors"
	"github.com/ksyq12/ood-portal-generator/internal/logger"
	"github.com/ksyq12/ood-portal-generator/internal/output"
	"github.com/ksyq12/ood-portal-generator/internal/template"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render ood-portal.conf to stdout or a file",
	Long: `Render the Apache virtual host from the portal options.

The result is printed to stdout unless --output is given. Nothing is
installed and no checksum is recorded; use update for that.

Examples:
  ood-portal-generator generate
  ood-portal-generator generate -c ./ood_portal.yml -o /tmp/ood-portal.conf`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the configuration to this file instead of stdout")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := deps.SettingsLoader.Load()
	if err != nil {
		return err
	}
	if configPath != "" {
		s.ConfigPath = configPath
	}

	opts, err := deps.OptionsLoader.Load(s.ConfigPath)
	if err != nil {
		return err
	}

	start := time.Now()
	content, err := template.Render(opts, s.ConfigPath)
	logger.Since("render", start)
	if err != nil {
		return err
	}

	if generateOutput == "" {
		output.Raw(content)
		return nil
	}

	if err := deps.FS.Write(generateOutput, []byte(content)); err != nil {
		return errors.WrapPath(errors.ErrCodeIO, "failed to write configuration", generateOutput, err)
	}
	return outputResult(
		map[string]interface{}{
			"success": true,
			"output":  generateOutput,
		},
		"Configuration written to %s", generateOutput,
	)
}
