package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/store"
)

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	dir, err := configDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-config", appName); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    func(Config) bool
		wantErr bool
	}{
		{
			name: "sqlite backend",
			body: "[store]\nbackend = \"sqlite\"\nsqlite_path = \"/tmp/b.db\"\n\n[server]\naddr = \":9090\"\n",
			want: func(c Config) bool {
				return c.Store.Backend == "sqlite" && c.Store.SQLitePath == "/tmp/b.db" &&
					c.Server.Addr == ":9090" && c.Log.Level == "info"
			},
		},
		{
			name: "debug level",
			body: "[log]\nlevel = \"debug\"\n",
			want: func(c Config) bool { return c.logLevel() == log.DebugLevel && c.Store.Backend == "file" },
		},
		{name: "unknown backend", body: "[store]\nbackend = \"etcd\"\n", wantErr: true},
		{name: "unknown key", body: "[store]\nbucket = \"x\"\n", wantErr: true},
		{name: "bad level", body: "[log]\nlevel = \"loud\"\n", wantErr: true},
		{name: "not toml", body: "[store\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(writeConfig(t, tt.body))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("error = %v, want INVALID_CONFIG", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if !tt.want(cfg) {
				t.Errorf("config = %+v", cfg)
			}
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config: %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("config = %+v, want defaults", cfg)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tests := []StoreConfig{
		{Backend: backendMemory},
		{Backend: backendFile, Dir: filepath.Join(dir, "boards")},
		{Backend: backendSQLite, SQLitePath: filepath.Join(dir, "boards.db")},
	}
	for _, cfg := range tests {
		t.Run(cfg.Backend, func(t *testing.T) {
			st, err := openStore(ctx, cfg)
			if err != nil {
				t.Fatalf("openStore: %v", err)
			}
			defer st.Close()

			if inst, ok := st.(*store.Instrumented); !ok || inst.Backend() != cfg.Backend {
				t.Errorf("store %T is not instrumented as %s", st, cfg.Backend)
			}
			snap := layer.FromLayers(layer.Layer{ID: "a", Type: layer.IdeaCard, Width: 100, Height: 100})
			if err := st.Save(ctx, "team", snap); err != nil {
				t.Fatal(err)
			}
			got, err := st.Load(ctx, "team")
			if err != nil || got.Len() != 1 {
				t.Errorf("Load = %d layers, %v", got.Len(), err)
			}
		})
	}

	if _, err := openStore(ctx, StoreConfig{Backend: "etcd"}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown backend error = %v", err)
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("255,128,0")
	if err != nil || c != (layer.Color{R: 255, G: 128}) {
		t.Errorf("parseColor = %+v, %v", c, err)
	}
	for _, bad := range []string{"", "1,2", "300,0,0", "red"} {
		if _, err := parseColor(bad); err == nil || !strings.Contains(err.Error(), "r,g,b") {
			t.Errorf("parseColor(%q) error = %v", bad, err)
		}
	}
}
