package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// binary locates the vitalit executable. VITALIT_BIN_DIR overrides the
// default of ../../bin relative to this package.
func binary(t *testing.T) string {
	t.Helper()
	binDir := os.Getenv("VITALIT_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	cliPath := filepath.Join(binDir, "vitalit")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s; build it with 'go build -o bin/vitalit ./cmd/vitalit'", cliPath)
	}
	return cliPath
}

// isolatedEnv points HOME and the data file at tempDir so the run never
// touches the user's real data.
func isolatedEnv(tempDir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "VITALIT_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("VITALIT_CONFIG=%s", filepath.Join(tempDir, "vitalit", "vitalit.db")),
		"VITALIT_TIMEZONE=UTC",
	)
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := binary(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)
	t.Logf("Running test in temp dir: %s", tempDir)

	t.Log("Initializing storage...")
	runCmd(t, cliPath, env, "", "init")
	expectOutput(t, runCmd(t, cliPath, env, "", "doctor"), "All diagnostics passed")

	t.Log("Gated challenge before activation...")
	if out, err := tryCmd(cliPath, env, "", "challenge", "start", "walk-14"); err == nil {
		t.Fatalf("walk-14 started without a plan:\n%s", out)
	}

	t.Log("Activating plan...")
	expectOutput(t, runCmd(t, cliPath, env, "", "plan", "activate", "1", "--password", "kick2024"), "Kickstart activated")
	expectOutput(t, runCmd(t, cliPath, env, "", "plan", "status"), "day(s) left")

	t.Log("Working through day 1...")
	runCmd(t, cliPath, env, "", "challenge", "start", "walk-14")
	runCmd(t, cliPath, env, "", "challenge", "complete", "1", "1")
	out := runCmd(t, cliPath, env, "", "challenge", "complete", "1", "2")
	expectOutput(t, out, "Day 1 complete")
	expectOutput(t, out, "Badge unlocked")
	expectOutput(t, runCmd(t, cliPath, env, "", "badge", "list"), "First Step")

	t.Log("Journaling...")
	runCmd(t, cliPath, env, "", "log", "water", "0.5")
	runCmd(t, cliPath, env, "", "log", "mood", "4")
	runCmd(t, cliPath, env, "", "log", "weight", "80")
	today := runCmd(t, cliPath, env, "", "today")
	expectOutput(t, today, "Water: 0.50 L")
	expectOutput(t, today, "Weight: 80.0 kg")

	t.Log("Undoing the weight entry...")
	runCmd(t, cliPath, env, "y\n", "undo")
	if strings.Contains(runCmd(t, cliPath, env, "", "today"), "Weight:") {
		t.Error("undo left the weight entry in place")
	}

	t.Log("Exporting...")
	exportPath := filepath.Join(tempDir, "export.csv")
	runCmd(t, cliPath, env, "", "export", "-o", exportPath)
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	expectOutput(t, string(data), "walk-14")

	t.Log("Backing up...")
	expectOutput(t, runCmd(t, cliPath, env, "", "backup", "create"), "Backup created")
	expectOutput(t, runCmd(t, cliPath, env, "", "backup", "list"), "Available backups")

	t.Log("Resetting...")
	runCmd(t, cliPath, env, "", "reset", "--yes")
	if out := runCmd(t, cliPath, env, "", "today"); strings.Contains(out, "0.50 L") {
		t.Errorf("reset kept the water log:\n%s", out)
	}

	t.Log("Re-importing the export...")
	expectOutput(t, runCmd(t, cliPath, env, "", "import", exportPath), "Imported")
	expectOutput(t, runCmd(t, cliPath, env, "", "challenge", "show", "walk-14"), "[✓] Day 1")
}

func tryCmd(path string, env []string, stdin string, args ...string) (string, error) {
	cmd := exec.Command(path, args...)
	cmd.Env = env
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func runCmd(t *testing.T, path string, env []string, stdin string, args ...string) string {
	t.Helper()
	out, err := tryCmd(path, env, stdin, args...)
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return out
}

func expectOutput(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("output does not contain %q:\n%s", want, out)
	}
}
