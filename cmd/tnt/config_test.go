package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/franz/tnt-search/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newImportConfig binds a fresh --batch-size flag the way the import
// command does and parses args into it.
func newImportConfig(t *testing.T, args ...string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "import"}
	cmd.Flags().Int("batch-size", defaultBatchSize, "")
	viper.BindPFlag(keyBatchSize, cmd.Flags().Lookup("batch-size"))
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
}

func TestBatchSize(t *testing.T) {
	tests := []struct {
		args     []string
		expected int
	}{
		{nil, defaultBatchSize},
		{[]string{"--batch-size", "1"}, 1},
		{[]string{"--batch-size", "250"}, 250},
	}

	for _, tt := range tests {
		newImportConfig(t, tt.args...)
		n, err := batchSize()
		if err != nil {
			t.Errorf("args %v: unexpected error: %v", tt.args, err)
			continue
		}
		if n != tt.expected {
			t.Errorf("args %v: expected %d, got %d", tt.args, tt.expected, n)
		}
	}
}

func TestBatchSize_RejectsExplicitZero(t *testing.T) {
	for _, value := range []string{"0", "-5"} {
		newImportConfig(t, "--batch-size", value)
		if _, err := batchSize(); !errors.Is(err, util.ErrInvalidConfig) {
			t.Errorf("--batch-size %s: expected ErrInvalidConfig, got %v", value, err)
		}
	}
}

func TestBatchSize_FromEnvironment(t *testing.T) {
	newImportConfig(t)
	viper.SetEnvPrefix("TNT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	t.Setenv("TNT_IMPORT_BATCH_SIZE", "42")
	if n, err := batchSize(); err != nil || n != 42 {
		t.Errorf("expected 42 from environment, got %d (%v)", n, err)
	}

	t.Setenv("TNT_IMPORT_BATCH_SIZE", "0")
	if _, err := batchSize(); !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for zero from environment, got %v", err)
	}

	t.Setenv("TNT_IMPORT_BATCH_SIZE", "lots")
	if _, err := batchSize(); !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for non-numeric value, got %v", err)
	}
}

func TestStorePath(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path, err := storePath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != util.DefaultStorePath() {
		t.Errorf("expected default store path, got %s", path)
	}

	viper.Set(keyDB, "/srv/tnt/releases.db")
	if path, _ := storePath(); path != "/srv/tnt/releases.db" {
		t.Errorf("expected configured path, got %s", path)
	}

	viper.Set(keyDB, "")
	if _, err := storePath(); !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for empty path, got %v", err)
	}
}

func TestConfigString_ExplicitValueWins(t *testing.T) {
	newSearchCmd(t, "--mode", "glob")

	if got := configString(keyMode, "substring"); got != "glob" {
		t.Errorf("expected glob, got %s", got)
	}

	viper.Reset()
	if got := configString(keyMode, "substring"); got != "substring" {
		t.Errorf("expected default for unset key, got %s", got)
	}
}
