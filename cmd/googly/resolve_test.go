package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/googly/internal/config"
)

func newTestCmd(t *testing.T, presetName, file string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addSimFlags(cmd)
	preset, configFile = presetName, file
	t.Cleanup(func() { preset, configFile = "", "" })
	return cmd
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := resolveConfig(newTestCmd(t, "", ""))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestResolveLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eyes.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  damping: 0.2\n  gravity: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newTestCmd(t, "suzanne", path)
	if err := cmd.Flags().Set("gravity", "2"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("motion", "orbit"); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Rig.EyeRadius != 0.25 {
		t.Errorf("preset eye radius lost: %v", cfg.Rig.EyeRadius)
	}
	if cfg.Physics.Damping != 0.2 {
		t.Errorf("file should override preset damping, got %v", cfg.Physics.Damping)
	}
	if cfg.Physics.Gravity != 2 {
		t.Errorf("flag should override file gravity, got %v", cfg.Physics.Gravity)
	}
	if cfg.Host.Motion != "orbit" {
		t.Errorf("expected orbit, got %s", cfg.Host.Motion)
	}
	if cfg.Run.Dt != config.DefaultDt {
		t.Errorf("unset flag should not override, got dt %v", cfg.Run.Dt)
	}
}

func TestResolveErrors(t *testing.T) {
	if _, err := resolveConfig(newTestCmd(t, "nope", "")); err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("expected unknown preset error, got %v", err)
	}

	if _, err := resolveConfig(newTestCmd(t, "", filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
		t.Error("expected error for missing config file")
	}

	cmd := newTestCmd(t, "", "")
	if err := cmd.Flags().Set("dt", "0"); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "step", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "step=3") {
		t.Errorf("unexpected log output %q", out)
	}

	buf.Reset()
	newLogger(&buf, "loud").Info("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Error("unknown level should fall back to info")
	}
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"damping=0.01, 0.02", "gravity=1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "damping" || names[1] != "gravity" {
		t.Errorf("unexpected names %v", names)
	}
	if len(ranges[0]) != 2 || ranges[0][1] != 0.02 || ranges[1][0] != 1 {
		t.Errorf("unexpected ranges %v", ranges)
	}

	for _, bad := range []string{"damping", "=1,2", "damping=", "damping=1,x"} {
		if _, _, err := parseGrid([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
