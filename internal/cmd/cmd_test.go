package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/tripflow/internal/config"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	want := []string{"serve", "plan", "config", "version"}
	for _, name := range want {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	err := runConfigSet(configSetCmd, []string{"server.bogus", "1"})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown configuration key") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	if err := runConfigSet(configSetCmd, []string{"wizard.default_days", "many"}); err == nil {
		t.Error("expected error for non-integer value")
	}
	if err := runConfigSet(configSetCmd, []string{"client.timeout_seconds", "-1"}); err == nil {
		t.Error("expected error for negative value")
	}
	if err := runConfigSet(configSetCmd, []string{"logging.level", "loud"}); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestConfigInitWritesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := runConfigInit(configInitCmd, nil); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	data, err := os.ReadFile(config.ConfigFile())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "base_url") {
		t.Error("generated config is missing client settings")
	}

	// A second init must refuse to overwrite
	if err := runConfigInit(configInitCmd, nil); err == nil {
		t.Error("expected error when config file already exists")
	}
}

func TestConfigFilePathUnderConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	got := config.ConfigFile()
	if filepath.Dir(got) != config.ConfigDir() {
		t.Errorf("config file %q not under config dir %q", got, config.ConfigDir())
	}
}
