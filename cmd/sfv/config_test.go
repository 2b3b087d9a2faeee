package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sfv/internal/log"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sfv.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("os.WriteFile(%q) error = %v, want nil", path, err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") error = %v, want nil", err)
	}
	if diff := cmp.Diff(cfg, DefaultConfig()); diff != "" {
		t.Errorf("loadConfig(\"\") mismatch (-got +want):\n%v", diff)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
[log]
format = "dev"

[limits]
max_members = 32
max_key_length = 16
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig(%q) error = %v, want nil", path, err)
	}

	want := DefaultConfig()
	want.Log.Format = log.FormatDev
	want.Limits.MaxMembers = 32
	want.Limits.MaxKeyLength = 16
	if diff := cmp.Diff(cfg, want); diff != "" {
		t.Errorf("loadConfig(%q) mismatch (-got +want):\n%v", path, diff)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "info"

[limits]
max_parameters = 4
`)
	t.Setenv("SFV_LOG_LEVEL", "debug")
	t.Setenv("SFV_MAX_INPUT_LENGTH", "128")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig(%q) error = %v, want nil", path, err)
	}

	want := DefaultConfig()
	want.Log.Level = "debug"
	want.Limits.MaxInputLength = 128
	want.Limits.MaxParameters = 4
	if diff := cmp.Diff(cfg, want); diff != "" {
		t.Errorf("loadConfig(%q) mismatch (-got +want):\n%v", path, diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"malformed toml", "[log\nformat = 1", nil},
		{"unknown key", "[log]\ncolor = true", nil},
		{"negative limit", "[limits]\nmax_members = -1", nil},
		{"bad env number", "", map[string]string{"SFV_MAX_MEMBERS": "many"}},
		{"fractional env number", "", map[string]string{"SFV_MAX_KEY_LENGTH": "1.5"}},
		{"negative env number", "", map[string]string{"SFV_MAX_PARAMETERS": "-3"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, c.content)
			if _, err := loadConfig(path); err == nil {
				t.Errorf("loadConfig(%q) error = nil, want error", c.content)
			}
		})
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("loadConfig(missing) error = nil, want error")
	}
}
