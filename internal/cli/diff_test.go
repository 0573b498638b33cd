package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ksyq12/ood-portal-generator/internal/filesystem"
)

func TestRunDiff(t *testing.T) {
	t.Run("no differences", func(t *testing.T) {
		m := filesystem.NewMock(map[string]string{mockLivePath: renderDefault(t)})
		useDeps(t, NewMockDeps().WithFS(m).Build())

		out := captureOutput(t, func() {
			if err := runDiff(diffCmd, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
		if !strings.Contains(out, "matches") {
			t.Errorf("expected a match message, got:\n%s", out)
		}
	})

	t.Run("live against candidate", func(t *testing.T) {
		m := filesystem.NewMock(map[string]string{mockLivePath: oldConfig})
		useDeps(t, NewMockDeps().WithFS(m).Build())

		out := captureOutput(t, func() {
			if err := runDiff(diffCmd, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
		if !strings.Contains(out, "--- "+mockLivePath) {
			t.Errorf("missing diff header:\n%s", out)
		}
		if !strings.Contains(out, "-  ServerName old.example.edu") {
			t.Errorf("missing removed line:\n%s", out)
		}
		if len(m.WriteCalls) != 0 {
			t.Error("diff must not write files")
		}
	})

	t.Run("missing live file shows everything as added", func(t *testing.T) {
		useDeps(t, NewMockDeps().Build())

		out := captureOutput(t, func() {
			if err := runDiff(diffCmd, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
		if !strings.Contains(out, "+<VirtualHost") {
			t.Errorf("expected added vhost lines:\n%s", out)
		}
	})

	t.Run("staged file", func(t *testing.T) {
		m := filesystem.NewMock(map[string]string{
			mockLivePath: editedConfig,
			stagedPath:   oldConfig,
		})
		useDeps(t, NewMockDeps().WithFS(m).Build())
		diffStaged = true
		jsonOutput = true

		out := captureOutput(t, func() {
			if err := runDiff(diffCmd, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})

		var got struct {
			Against string `json:"against"`
			Changed bool   `json:"changed"`
			Diff    string `json:"diff"`
		}
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", out, err)
		}
		if got.Against != stagedPath || !got.Changed {
			t.Errorf("unexpected result %+v", got)
		}
		if !strings.Contains(got.Diff, "+  ServerName old.example.edu") {
			t.Errorf("diff should add the staged line:\n%s", got.Diff)
		}
	})

	t.Run("staged file missing", func(t *testing.T) {
		m := filesystem.NewMock(map[string]string{mockLivePath: editedConfig})
		useDeps(t, NewMockDeps().WithFS(m).Build())
		diffStaged = true

		if err := runDiff(diffCmd, nil); err == nil {
			t.Error("expected error when no staged file exists")
		}
	})
}
