package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPath(t *testing.T) {
	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := Path()
	want := "/custom/config/citeurl/config.yml"
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}

	os.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = Path()
	want = filepath.Join(home, ".config", "citeurl", "config.yml")
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

func TestLoad_NotFound(t *testing.T) {
	ResetCache()
	defer ResetCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WikidataUsername != "" || cfg.LedgerPath != "" {
		t.Errorf("missing file should yield empty config, got %+v", cfg)
	}
}

func TestLoad_Valid(t *testing.T) {
	ResetCache()
	defer ResetCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "citeurl")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "wikidata_username: TestUser\nwikidata_password: hunter2\nledger_path: ~/uploads.db\nedit_interval_secs: 5\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WikidataUsername != "TestUser" {
		t.Errorf("WikidataUsername = %q, want TestUser", cfg.WikidataUsername)
	}
	if cfg.WikidataPassword != "hunter2" {
		t.Errorf("WikidataPassword = %q", cfg.WikidataPassword)
	}
	if cfg.EditIntervalSecs != 5 {
		t.Errorf("EditIntervalSecs = %d, want 5", cfg.EditIntervalSecs)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "uploads.db"); cfg.LedgerPath != want {
		t.Errorf("LedgerPath = %q, want %q (tilde expanded)", cfg.LedgerPath, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	ResetCache()
	defer ResetCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "citeurl")
	os.MkdirAll(configDir, 0755)
	os.WriteFile(filepath.Join(configDir, "config.yml"), []byte("{not yaml"), 0600)
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	if _, err := Load(); err == nil {
		t.Error("Load() should return error for invalid YAML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	ResetCache()
	defer ResetCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{WikidataUsername: "SavedUser", EditIntervalSecs: 7}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(Path())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.WikidataUsername != "SavedUser" || loaded.EditIntervalSecs != 7 {
		t.Errorf("round trip config = %+v", loaded)
	}
}

func TestGetWikidataCredentials_EnvWins(t *testing.T) {
	ResetCache()
	defer ResetCache()

	origUser := os.Getenv("WIKIDATA_USERNAME")
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer func() {
		os.Setenv("WIKIDATA_USERNAME", origUser)
		os.Setenv("XDG_CONFIG_HOME", origXDG)
	}()

	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "citeurl")
	os.MkdirAll(configDir, 0755)
	os.WriteFile(filepath.Join(configDir, "config.yml"),
		[]byte("wikidata_username: ConfigUser\n"), 0600)
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	os.Setenv("WIKIDATA_USERNAME", "EnvUser")
	if got := GetWikidataUsername(); got != "EnvUser" {
		t.Errorf("GetWikidataUsername() = %q, want EnvUser", got)
	}

	os.Setenv("WIKIDATA_USERNAME", "")
	ResetCache()
	if got := GetWikidataUsername(); got != "ConfigUser" {
		t.Errorf("GetWikidataUsername() = %q, want ConfigUser", got)
	}
}

func TestResolvedLedgerPath_Default(t *testing.T) {
	ResetCache()
	defer ResetCache()

	origXDG := os.Getenv("XDG_CONFIG_HOME")
	origData := os.Getenv("XDG_DATA_HOME")
	defer func() {
		os.Setenv("XDG_CONFIG_HOME", origXDG)
		os.Setenv("XDG_DATA_HOME", origData)
	}()

	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	os.Setenv("XDG_DATA_HOME", "/custom/data")

	want := "/custom/data/citeurl/uploads.db"
	if got := ResolvedLedgerPath(); got != want {
		t.Errorf("ResolvedLedgerPath() = %q, want %q", got, want)
	}
}

func TestGetSet(t *testing.T) {
	cfg := &Config{}

	if err := cfg.Set("wikidata_username", "Someone"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Set("edit_interval_secs", "4"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Set("edit_interval_secs", "nope"); err == nil {
		t.Error("Set() accepted a non-numeric interval")
	}
	if err := cfg.Set("bogus", "x"); err == nil {
		t.Error("Set() accepted an unknown key")
	}

	if got, _ := cfg.Get("wikidata_username"); got != "Someone" {
		t.Errorf("Get(wikidata_username) = %q", got)
	}
	if got, _ := cfg.Get("edit_interval_secs"); got != "4" {
		t.Errorf("Get(edit_interval_secs) = %q", got)
	}
	if _, err := cfg.Get("bogus"); err == nil {
		t.Error("Get() accepted an unknown key")
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/data/uploads.db", filepath.Join(home, "data/uploads.db")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandTilde(tt.input); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
