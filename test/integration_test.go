//go:build integration

package test_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var testBinary string

func TestMain(m *testing.M) {
	testBinary = os.Getenv("WINKEYS_TEST_BIN")
	if testBinary == "" {
		fmt.Fprintln(os.Stderr, "WINKEYS_TEST_BIN not set; run: make test-integration")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func cmds(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "winkeys.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runReplay runs the daemon in replay mode with the given config and
// script, returning its combined output and the log directory.
func runReplay(t *testing.T, config, stdin string) (output, logDir string) {
	t.Helper()
	logDir = t.TempDir()
	cfgPath := writeConfig(t, config)

	cmd := exec.Command(testBinary, "--replay", "--no-update-check",
		"-c", cfgPath, "--logpath", logDir)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = os.Environ()

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("winkeysd exited with error: %v\noutput: %s", err, out)
	}
	return string(out), logDir
}

func requireLines(t *testing.T, output string, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if !strings.Contains(output, line) {
			t.Errorf("output missing %q:\n%s", line, output)
		}
	}
}

const ctrlAConfig = `
[[hotkey]]
keys = "ctrl+a"
run = "true"
`

func TestReplayDispatch(t *testing.T) {
	out, _ := runReplay(t, ctrlAConfig, cmds(
		"DOWN LCONTROL", "DOWN A", "UP A", "UP LCONTROL",
		"DOWN A", "UP A",
		"SLEEP 200", "QUIT"))

	requireLines(t, out,
		"down LCONTROL allow",
		"down A block",
		"fired ctrl+a",
		"down A allow") // bare A after the chord released
}

func TestReplayPassThrough(t *testing.T) {
	config := `
[[hotkey]]
keys = "ctrl+a"
run = "true"
pass_through = true
`
	out, _ := runReplay(t, config, cmds(
		"DOWN LCONTROL", "DOWN A", "UP A", "UP LCONTROL",
		"SLEEP 200", "QUIT"))

	requireLines(t, out, "down A allow", "fired ctrl+a")
}

func TestReplayPauseToggle(t *testing.T) {
	config := ctrlAConfig + `
[[hotkey]]
keys = "ctrl+p"
pause_toggle = true
`
	out, _ := runReplay(t, config, cmds(
		"DOWN LCONTROL", "DOWN P", "UP P", "SLEEP 200",
		"DOWN A", "UP A", // paused: chord is allowed through
		"DOWN P", "UP P", "SLEEP 200",
		"DOWN A", "UP A", // unpaused: chord is suppressed again
		"UP LCONTROL",
		"SLEEP 200", "QUIT"))

	requireLines(t, out,
		"fired ctrl+p paused=true",
		"down A allow",
		"fired ctrl+p paused=false",
		"down A block")
}

func TestReplaySteal(t *testing.T) {
	out, _ := runReplay(t, ctrlAConfig, cmds(
		"STEAL",
		"DOWN A", "UP A",
		"DOWN ESCAPE", "UP ESCAPE",
		"SLEEP 200",
		"DOWN B", "UP B",
		"SLEEP 100", "QUIT"))

	requireLines(t, out,
		"down A block",
		"down ESCAPE block",
		"freed",
		"down B allow")
}

func TestReplayWinReplace(t *testing.T) {
	config := `
[[hotkey]]
keys = "win+e"
run = "true"
`
	out, _ := runReplay(t, config, cmds(
		"DOWN LWIN", "DOWN E", "UP E", "UP LWIN",
		"SLEEP 200", "QUIT"))

	requireLines(t, out,
		"down LWIN allow",
		"down E replace",
		"fired win+e")
}

func TestReplayWritesDiagnosticsLog(t *testing.T) {
	_, logDir := runReplay(t, ctrlAConfig, cmds("SLEEP 100", "QUIT"))

	data, err := os.ReadFile(filepath.Join(logDir, "diagnostics_log.txt"))
	if err != nil {
		t.Fatalf("reading diagnostics log: %v", err)
	}
	if !strings.Contains(string(data), "keyboard capture started") {
		t.Errorf("diagnostics log missing capture start:\n%s", data)
	}
}
