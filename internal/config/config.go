package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/spf13/viper"
)

// Output formats understood by the CLI.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Config holds application configuration
type Config struct {
	// Output format for API responses: "json" or "table"
	// Default: "json"
	OutputFormat string

	// Fixed width of the title column in table output (0 = no limit)
	OutputWidth int

	// Path of the SQLite database used by the export command
	// Default: ~/.local/share/dzr/archive.db
	ArchivePath string

	// Deezer application registration and saved token
	Deezer DeezerConfig
}

// DeezerConfig holds Deezer specific configuration
type DeezerConfig struct {
	AppID       string
	Secret      string
	RedirectURL string
	Perms       string

	// Token saved by "dzr auth"; a zero TokenExpiry means it does not expire
	AccessToken string
	TokenExpiry time.Time

	// API endpoint override, used for testing
	BaseURL string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(getConfigDir())
	v.AddConfigPath(".")

	v.SetDefault("output_format", FormatJSON)
	v.SetDefault("output_width", 0)
	v.SetDefault("archive_path", defaultArchivePath())
	v.SetDefault("deezer.perms", "basic_access")
	v.SetDefault("deezer.base_url", "")

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// DZR_DEEZER_APP_ID overrides deezer.app_id, and so on
	v.SetEnvPrefix("DZR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The variables the Deezer SDK reads are honored too, e.g. from a .env file
	for key, env := range map[string]string{
		"deezer.app_id":       deezer.EnvClientID,
		"deezer.secret":       deezer.EnvSecret,
		"deezer.redirect_url": deezer.EnvRedirectURL,
	} {
		if err := v.BindEnv(key, "DZR_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{
		OutputFormat: strings.ToLower(v.GetString("output_format")),
		OutputWidth:  v.GetInt("output_width"),
		ArchivePath:  v.GetString("archive_path"),
		Deezer: DeezerConfig{
			AppID:       v.GetString("deezer.app_id"),
			Secret:      v.GetString("deezer.secret"),
			RedirectURL: v.GetString("deezer.redirect_url"),
			Perms:       v.GetString("deezer.perms"),
			AccessToken: v.GetString("deezer.access_token"),
			TokenExpiry: v.GetTime("deezer.token_expiry"),
			BaseURL:     v.GetString("deezer.base_url"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be fixed up later
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case FormatJSON, FormatTable:
	default:
		return fmt.Errorf("invalid output_format %q: must be %q or %q", c.OutputFormat, FormatJSON, FormatTable)
	}
	if c.OutputWidth < 0 {
		return fmt.Errorf("invalid output_width %d: must not be negative", c.OutputWidth)
	}
	return nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	if dir := os.Getenv("DZR_CONFIG_DIR"); dir != "" {
		_ = os.MkdirAll(dir, 0755)
		return dir
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "dzr")
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

func defaultArchivePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "archive.db"
	}
	return filepath.Join(homeDir, ".local", "share", "dzr", "archive.db")
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	configFile := filepath.Join(getConfigDir(), "config.yaml")

	v.Set("output_format", c.OutputFormat)
	v.Set("output_width", c.OutputWidth)
	v.Set("archive_path", c.ArchivePath)
	v.Set("deezer.app_id", c.Deezer.AppID)
	v.Set("deezer.secret", c.Deezer.Secret)
	v.Set("deezer.redirect_url", c.Deezer.RedirectURL)
	v.Set("deezer.perms", c.Deezer.Perms)
	v.Set("deezer.access_token", c.Deezer.AccessToken)
	if !c.Deezer.TokenExpiry.IsZero() {
		v.Set("deezer.token_expiry", c.Deezer.TokenExpiry.UTC().Format(time.RFC3339))
	}
	if c.Deezer.BaseURL != "" {
		v.Set("deezer.base_url", c.Deezer.BaseURL)
	}

	// The file holds the app secret and token
	if err := v.WriteConfigAs(configFile); err != nil {
		return err
	}
	return os.Chmod(configFile, 0600)
}
