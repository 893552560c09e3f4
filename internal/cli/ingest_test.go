// internal/cli/ingest_test.go
package localmind

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// execRoot runs the root command with the given args against a throwaway
// config and log file, restoring shared command state afterwards.
func execRoot(t *testing.T, dir string, args ...string) error {
	t.Helper()

	t.Setenv("LOCALMIND_LOG_FILE", filepath.Join(dir, "localmind.log"))

	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs(append(args, "--config", filepath.Join(dir, "config.json")))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		currentConfig = nil
	})

	return rootCmd.Execute()
}

// TestIngestCmdPerFileFailureExitsClean ensures per-file errors stay inside
// the ingest report: the command reports them and still exits zero. Only
// finding nothing to ingest at all fails the command.
func TestIngestCmdPerFileFailureExitsClean(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "notes.bin")
	if err := os.WriteFile(bad, []byte{0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execRoot(t, dir, "ingest", bad); err != nil {
		t.Fatalf("per-file failure must not fail the command, got: %v", err)
	}
}

// TestIngestCmdNothingToIngestFails covers the total-failure case: a
// directory with no supported files is an error, not a silent no-op.
func TestIngestCmdNothingToIngestFails(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "docs")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := execRoot(t, dir, "ingest", empty); err == nil {
		t.Fatal("expected an error when no ingestible files are found")
	}
}
