package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DZR_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputFormat != FormatJSON {
		t.Errorf("OutputFormat = %q, want %q", cfg.OutputFormat, FormatJSON)
	}
	if cfg.OutputWidth != 0 {
		t.Errorf("OutputWidth = %d, want 0", cfg.OutputWidth)
	}
	if cfg.Deezer.Perms != "basic_access" {
		t.Errorf("Deezer.Perms = %q, want basic_access", cfg.Deezer.Perms)
	}
	if filepath.Base(cfg.ArchivePath) != "archive.db" {
		t.Errorf("ArchivePath = %q, want a path ending in archive.db", cfg.ArchivePath)
	}
	if !cfg.Deezer.TokenExpiry.IsZero() {
		t.Errorf("TokenExpiry = %v, want zero", cfg.Deezer.TokenExpiry)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DZR_CONFIG_DIR", dir)

	expiry := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cfg := &Config{
		OutputFormat: FormatTable,
		OutputWidth:  40,
		ArchivePath:  filepath.Join(dir, "export.db"),
		Deezer: DeezerConfig{
			AppID:       "123456",
			Secret:      "s3cret",
			RedirectURL: "http://localhost:8080/callback",
			Perms:       "basic_access,manage_library",
			AccessToken: "frXYZ",
			TokenExpiry: expiry,
		},
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.OutputFormat != FormatTable || loaded.OutputWidth != 40 {
		t.Errorf("output settings = %q/%d, want table/40", loaded.OutputFormat, loaded.OutputWidth)
	}
	if loaded.ArchivePath != cfg.ArchivePath {
		t.Errorf("ArchivePath = %q, want %q", loaded.ArchivePath, cfg.ArchivePath)
	}
	if loaded.Deezer.AppID != "123456" || loaded.Deezer.Secret != "s3cret" {
		t.Errorf("app credentials = %q/%q, want 123456/s3cret", loaded.Deezer.AppID, loaded.Deezer.Secret)
	}
	if loaded.Deezer.AccessToken != "frXYZ" {
		t.Errorf("AccessToken = %q, want frXYZ", loaded.Deezer.AccessToken)
	}
	if !loaded.Deezer.TokenExpiry.Equal(expiry) {
		t.Errorf("TokenExpiry = %v, want %v", loaded.Deezer.TokenExpiry, expiry)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DZR_CONFIG_DIR", t.TempDir())
	t.Setenv("DZR_OUTPUT_FORMAT", "TABLE")
	t.Setenv("DZR_DEEZER_ACCESS_TOKEN", "from-env")
	t.Setenv("DZR_DEEZER_BASE_URL", "http://127.0.0.1:9999/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputFormat != FormatTable {
		t.Errorf("OutputFormat = %q, want table", cfg.OutputFormat)
	}
	if cfg.Deezer.AccessToken != "from-env" {
		t.Errorf("AccessToken = %q, want from-env", cfg.Deezer.AccessToken)
	}
	if cfg.Deezer.BaseURL != "http://127.0.0.1:9999/" {
		t.Errorf("BaseURL = %q, want override", cfg.Deezer.BaseURL)
	}
}

func TestLoad_DeezerEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantApp string
	}{
		{
			name: "sdk variables",
			env: map[string]string{
				"DEEZER_CLIENT_ID":    "123456",
				"DEEZER_SECRET_ID":    "s3cret",
				"DEEZER_REDIRECT_URL": "http://localhost:8080/callback",
			},
			wantApp: "123456",
		},
		{
			name: "prefixed variable wins",
			env: map[string]string{
				"DZR_DEEZER_APP_ID": "654321",
				"DEEZER_CLIENT_ID":  "123456",
				"DEEZER_SECRET_ID":  "s3cret",
			},
			wantApp: "654321",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DZR_CONFIG_DIR", t.TempDir())
			for _, k := range []string{"DZR_DEEZER_APP_ID", "DZR_DEEZER_SECRET", "DZR_DEEZER_REDIRECT_URL", "DEEZER_CLIENT_ID", "DEEZER_SECRET_ID", "DEEZER_REDIRECT_URL"} {
				t.Setenv(k, tt.env[k])
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Deezer.AppID != tt.wantApp {
				t.Errorf("AppID = %q, want %q", cfg.Deezer.AppID, tt.wantApp)
			}
			if cfg.Deezer.Secret != "s3cret" {
				t.Errorf("Secret = %q, want s3cret", cfg.Deezer.Secret)
			}
			if want := tt.env["DEEZER_REDIRECT_URL"]; cfg.Deezer.RedirectURL != want {
				t.Errorf("RedirectURL = %q, want %q", cfg.Deezer.RedirectURL, want)
			}
		})
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DZR_CONFIG_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output_format: xml\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for invalid output_format")
	}
}
