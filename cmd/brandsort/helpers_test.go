package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	logDir     string
	configPath string
}

// setupCLITestEnv writes a config with a private log directory. An empty
// apiBind disables the daemon API.
func setupCLITestEnv(t *testing.T, apiBind string) *cliTestEnv {
	t.Helper()
	t.Setenv("BRANDSORT_ROOT", "")
	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		logDir:     filepath.Join(base, "logs"),
		configPath: filepath.Join(base, "config.toml"),
	}
	content := fmt.Sprintf("[paths]\nlog_dir = %q\napi_bind = %q\n\n[logging]\nlevel = \"info\"\n", env.logDir, apiBind)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if env != nil {
		args = append([]string{"--config", env.configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q, got:\n%s", substr, output)
	}
}
