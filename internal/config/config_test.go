package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, root, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		body    string // empty means no file
		envTZ   string
		want    *Config
		wantErr bool
	}{
		{
			name: "missing file gives defaults",
			want: &Config{PriorityWindowDays: 7, Log: LogConfig{Level: "info", Format: "json"}},
		},
		{
			name: "values from file",
			body: "timezone = \"Europe/Rome\"\npriority_window_days = 3\n\n[log]\nlevel = \"debug\"\n",
			want: &Config{
				Timezone:           "Europe/Rome",
				PriorityWindowDays: 3,
				Log:                LogConfig{Level: "debug", Format: "json"},
			},
		},
		{
			name:  "LOCUS_TZ overrides file",
			body:  "timezone = \"Europe/Rome\"\n",
			envTZ: "UTC",
			want:  &Config{Timezone: "UTC", PriorityWindowDays: 7, Log: LogConfig{Level: "info", Format: "json"}},
		},
		{
			name: "non-positive window falls back",
			body: "priority_window_days = -2\n",
			want: &Config{PriorityWindowDays: 7, Log: LogConfig{Level: "info", Format: "json"}},
		},
		{
			name:    "malformed file",
			body:    "timezone = \n",
			wantErr: true,
		},
		{
			name:    "unknown timezone",
			body:    "timezone = \"Mars/Olympus\"\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			t.Setenv("LOCUS_TZ", tt.envTZ)
			if tt.body != "" {
				writeConfig(t, root, tt.body)
			}

			got, err := Load(root)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Load() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.want.Root = root
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("LOCUS_TZ", "")
	root := filepath.Join(t.TempDir(), "store")

	cfg := Default(root)
	cfg.Timezone = "Asia/Tokyo"
	cfg.PriorityWindowDays = 14
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, FileName+".tmp")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind: %v", err)
	}

	got, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPaths(t *testing.T) {
	cfg := Default("/data")
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"items", cfg.ItemsDir(), "/data/items"},
		{"index", cfg.IndexDir(), "/data/index"},
		{"aliases", cfg.AliasDBPath(), "/data/aliases.db"},
		{"logs", cfg.LogDir(), "/data/logs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestRootPath(t *testing.T) {
	t.Setenv("LOCUS_HOME", "/srv/locus")
	if got := RootPath(); got != "/srv/locus" {
		t.Errorf("RootPath() = %q, want /srv/locus", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("LOCUS_HOME", "")
	if got, want := RootPath(), filepath.Join(home, ".locus"); got != want {
		t.Errorf("RootPath() = %q, want %q", got, want)
	}
}
