package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/ood-portal-generator/internal/checksum"
	"github.com/ksyq12/ood-portal-generator/internal/output"
)

var saveChecksum bool

// Checksum states reported by the checksum command
const (
	statusMatch    = "match"
	statusModified = "modified"
	statusNoRecord = "no record"
	statusNoFile   = "missing"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum",
	Short: "Report or record the checksum of the live file",
	Long: `Compare the live ood-portal.conf against the checksum recorded the
last time it was generated.

A "modified" status means update will stage its output to <live>.new rather
than overwrite the file. Use --save to accept the current live file as the
new baseline, for example after merging local edits by hand.

Examples:
  ood-portal-generator checksum
  ood-portal-generator checksum --save`,
	Args: cobra.NoArgs,
	RunE: runChecksum,
}

func init() {
	checksumCmd.Flags().StringVarP(&livePath, "output", "o", "", "Live Apache configuration file")
	checksumCmd.Flags().StringVar(&checksumPath, "sum", "", "Checksum file (default /etc/ood/config/ood_portal.sha256sum)")
	checksumCmd.Flags().BoolVar(&saveChecksum, "save", false, "Record the live file's current checksum")

	rootCmd.AddCommand(checksumCmd)
}

type checksumStatus struct {
	LivePath     string `json:"live_path"`
	ChecksumPath string `json:"checksum_path"`
	Exists       bool   `json:"exists"`
	Recorded     string `json:"recorded,omitempty"`
	Current      string `json:"current,omitempty"`
	Status       string `json:"status"`
	Saved        bool   `json:"saved,omitempty"`
}

func runChecksum(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	ctrl, err := newController(s)
	if err != nil {
		return err
	}

	st := checksumStatus{
		LivePath:     s.LivePath,
		ChecksumPath: s.ChecksumPath,
	}

	if saveChecksum {
		if err := ctrl.SaveChecksum(s.LivePath); err != nil {
			return err
		}
		st.Saved = true
	}

	st.Exists = ctrl.ChecksumExists()
	if lines, err := deps.FS.ReadLines(s.ChecksumPath); err == nil {
		if rec, ok := checksum.Lookup(checksum.ParseLines(lines), s.LivePath); ok {
			st.Recorded = rec.Digest
		}
	}
	if lines, err := deps.FS.ReadLines(s.LivePath); err == nil {
		st.Current = checksum.Digest(lines)
	}

	switch {
	case st.Current == "":
		st.Status = statusNoFile
	case st.Recorded == "":
		st.Status = statusNoRecord
	case ctrl.ChecksumMatches(s.LivePath):
		st.Status = statusMatch
	default:
		st.Status = statusModified
	}

	if jsonOutput {
		return output.JSON(st)
	}

	if st.Saved {
		output.Success("Recorded checksum of %s in %s", s.LivePath, s.ChecksumPath)
	}
	output.Table(
		[]string{"PATH", "RECORDED", "CURRENT", "STATUS"},
		[][]string{{st.LivePath, short(st.Recorded), short(st.Current), st.Status}},
	)
	if st.Status == statusModified {
		output.Print("")
		output.Warn("%s was modified since it was last generated; update will stage to %s", s.LivePath, ctrl.Settings().StagedPath)
	}
	return nil
}

// short abbreviates a digest for table output
func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	if digest == "" {
		return "-"
	}
	return digest
}
