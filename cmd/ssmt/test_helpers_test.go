package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ssmt/internal/testsupport"
)

type cliTestEnv struct {
	base       string
	resources  string
	local      string
	configPath string
}

// setupCLITestEnv lays out a bundled library with two games and writes a
// config pointing every path into a temp directory.
func setupCLITestEnv(t *testing.T, catalogURL string) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	env := &cliTestEnv{
		base:       base,
		resources:  filepath.Join(base, "resources"),
		local:      filepath.Join(base, "local"),
		configPath: filepath.Join(base, "ssmt.toml"),
	}
	t.Setenv("HOME", base)

	games := filepath.Join(env.resources, "Games")
	testsupport.WritePNG(t, filepath.Join(games, "Alpha", "Icon.png"), 8, 8)
	testsupport.WritePNG(t, filepath.Join(games, "Alpha", "Background.png"), 16, 9)
	testsupport.WriteText(t, filepath.Join(games, "Alpha", "Config.json"), `{"basic":{"gamePreset":"GIMI","backgroundType":"image"}}`)
	testsupport.WritePNG(t, filepath.Join(games, "Beta", "Icon.png"), 8, 8)
	testsupport.WriteText(t, filepath.Join(games, "GameIconConfig.json"),
		`{"GameIconSettingList":[{"GameName":"Alpha","Show":true},{"GameName":"Beta","Show":false}]}`)

	if catalogURL == "" {
		catalogURL = "http://127.0.0.1:1/catalog"
	}
	content := fmt.Sprintf(
		"[paths]\nresource_dir = %q\nlocal_data_dir = %q\n\n[catalog]\nbase_url = %q\ntimeout_seconds = 5\n\n[logging]\nlevel = \"error\"\ndir = %q\n",
		env.resources,
		env.local,
		catalogURL,
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) globalGames() string {
	return filepath.Join(e.local, "SSMT4GlobalConfigs", "Games")
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
