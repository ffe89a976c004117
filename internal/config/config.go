package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const DefaultBaseURL = "http://127.0.0.1:8000"

type Profile struct {
	BaseURL        string `json:"base_url"`
	DropDir        string `json:"drop_dir,omitempty"`
	Markdown       bool   `json:"markdown,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	ExportPath     string `json:"export_path,omitempty"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// ApplyOverrides layers flag and environment values from v over the active
// profile. Overrides live only in memory and are never saved.
func (c *Config) ApplyOverrides(v *viper.Viper) {
	if c.currentProfile == nil {
		c.currentProfile = &Profile{}
	}
	if v.IsSet("base_url") && v.GetString("base_url") != "" {
		c.currentProfile.BaseURL = v.GetString("base_url")
	}
	if v.IsSet("drop_dir") && v.GetString("drop_dir") != "" {
		c.currentProfile.DropDir = v.GetString("drop_dir")
	}
	if v.IsSet("markdown") {
		c.currentProfile.Markdown = v.GetBool("markdown")
	}
	if v.IsSet("timeout_seconds") {
		c.currentProfile.TimeoutSeconds = v.GetInt("timeout_seconds")
	}
}

// Validate reports whether the active profile points at a usable service URL.
func (c *Config) Validate() error {
	u, err := url.Parse(c.GetBaseURL())
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.GetBaseURL(), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.GetBaseURL())
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", c.GetBaseURL())
	}
	return nil
}

func (c *Config) IsValid() bool {
	return c.Validate() == nil
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil || c.currentProfile.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.currentProfile.BaseURL
}

func (c *Config) GetDropDir() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.DropDir
}

func (c *Config) GetMarkdown() bool {
	return c.currentProfile != nil && c.currentProfile.Markdown
}

// GetTimeout returns the request timeout; zero means none.
func (c *Config) GetTimeout() time.Duration {
	if c.currentProfile == nil || c.currentProfile.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.currentProfile.TimeoutSeconds) * time.Second
}

func (c *Config) GetExportPath() string {
	if c.currentProfile == nil || c.currentProfile.ExportPath == "" {
		return "roripdf-transcript.html"
	}
	return c.currentProfile.ExportPath
}

// HomeDir is the directory holding config.json and the log file.
func HomeDir() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func getConfigPath() (string, error) {
	var configDir string

	// Use RORIPDF_HOME if set, otherwise use user's home directory
	if home := os.Getenv("RORIPDF_HOME"); home != "" {
		return filepath.Join(home, "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir = filepath.Join(homeDir, ".roripdf")

	return filepath.Join(configDir, "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func DefaultProfile() Profile {
	return Profile{BaseURL: DefaultBaseURL}
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": DefaultProfile(),
		},
		ActiveProfile: "default",
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}
