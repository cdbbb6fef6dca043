package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gosdml.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output.Format != "binary" || cfg.Output.Tab != 2 {
		t.Fatalf("unexpected defaults %+v", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.CodecName() != "binary" {
		t.Fatalf("codec name = %q", cfg.CodecName())
	}
}

func TestLoad_NoPathNoEnvUsesDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.Format != "binary" {
		t.Fatalf("format = %q", cfg.Output.Format)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	path := writeConfig(t, "output:\n  format: json\n  compression: zstd\n")
	t.Setenv(EnvVar, path)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CodecName() != "json+zstd" {
		t.Fatalf("codec name = %q", cfg.CodecName())
	}
	if cfg.Output.Tab != 2 {
		t.Fatalf("tab default lost: %d", cfg.Output.Tab)
	}
}

func TestLoad_FlagWinsOverEnv(t *testing.T) {
	t.Setenv(EnvVar, writeConfig(t, "output:\n  format: json\n"))
	cfg, err := Load(writeConfig(t, "output:\n  format: cbor\nload:\n  max_depth: 8\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.Format != "cbor" || cfg.Load.MaxDepth != 8 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadFile_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "output:\n  colour: red\n",
		"bad format":     "output:\n  format: xml\n",
		"bad compressor": "output:\n  compression: gzip\n",
		"negative limit": "load:\n  max_bytes: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFile_EmptyFileIsDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.EqualFold(cfg.Output.Format, "binary") {
		t.Fatalf("format = %q", cfg.Output.Format)
	}
}
