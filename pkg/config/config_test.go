package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.History.Backend != "bolt" {
		t.Errorf("expected default backend bolt, got %q", cfg.History.Backend)
	}
	if cfg.History.Key != "analysisHistory" {
		t.Errorf("expected default key analysisHistory, got %q", cfg.History.Key)
	}
	if cfg.Server.Addr != "127.0.0.1:7700" {
		t.Errorf("expected loopback server addr, got %q", cfg.Server.Addr)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected text output, got %q", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "non-existent file returns defaults",
			yaml: "", // signal: don't create a file
			check: func(t *testing.T, cfg *Config) {
				if cfg.History.Backend != "bolt" {
					t.Errorf("expected default backend, got %q", cfg.History.Backend)
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
history:
  backend: sqlite
  dir: /var/lib/riskscope
server:
  addr: 127.0.0.1:9000
output:
  format: json
log:
  level: debug
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.History.Backend != "sqlite" {
					t.Errorf("expected backend sqlite, got %q", cfg.History.Backend)
				}
				if cfg.History.Dir != "/var/lib/riskscope" {
					t.Errorf("expected dir override, got %q", cfg.History.Dir)
				}
				if cfg.History.Key != "analysisHistory" {
					t.Errorf("expected key to keep its default, got %q", cfg.History.Key)
				}
				if cfg.Server.Addr != "127.0.0.1:9000" {
					t.Errorf("expected addr override, got %q", cfg.Server.Addr)
				}
				if cfg.Output.Format != "json" || cfg.Log.Level != "debug" {
					t.Errorf("unexpected output/log: %+v %+v", cfg.Output, cfg.Log)
				}
			},
		},
		{
			name: "empty history dir falls back to data dir",
			yaml: "history:\n  dir: \"\"\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.History.Dir != DataDir() {
					t.Errorf("expected dir %q, got %q", DataDir(), cfg.History.Dir)
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "history: [\n",
			wantErr: "parsing config",
		},
		{
			name:    "unknown backend rejected",
			yaml:    "history:\n  backend: postgres\n",
			wantErr: "invalid history backend",
		},
		{
			name:    "unknown format rejected",
			yaml:    "output:\n  format: xml\n",
			wantErr: "invalid output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			if tt.yaml != "" {
				if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := Load(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidateRejectsEmptyDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.History.Dir = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "history dir") {
		t.Errorf("Validate() error = %v, want history dir error", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/rs")
	t.Setenv(EnvBackend, "file")
	t.Setenv(EnvLogLevel, "warn")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.History.Dir != "/tmp/rs" || cfg.History.Backend != "file" || cfg.Log.Level != "warn" {
		t.Errorf("env not applied: %+v %+v", cfg.History, cfg.Log)
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(nested); got != "" {
		t.Errorf("expected no config, got %q", got)
	}

	cfgDir := filepath.Join(root, ".riskscope")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(cfgDir, "config.yaml")
	if err := os.WriteFile(want, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(nested); got != want {
		t.Errorf("FindConfigFile() = %q, want %q", got, want)
	}
}

func TestDataDir(t *testing.T) {
	if !strings.HasSuffix(DataDir(), filepath.Join(".cache", "riskscope")) {
		t.Errorf("DataDir() = %q", DataDir())
	}
}
