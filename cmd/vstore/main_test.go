package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != version {
		t.Errorf("output = %q, want %q", out.String(), version)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	opts := &rootOptions{logLevel: "debug"}
	cfg, err := opts.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vstore.json")
	if err := os.WriteFile(path, []byte(`{"inspect":{"port":8181}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := (&rootOptions{configPath: path}).loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr() != "localhost:8181" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	if _, err := (&rootOptions{logLevel: "loud"}).loadConfig(); err == nil {
		t.Error("expected validation error")
	}
}
