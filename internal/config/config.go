package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdrive-tools/gsync/internal/utils"
)

var (
	home, _               = os.UserHomeDir()
	DefaultConfigDir      = filepath.Join(home, ".gsync")
	DefaultConfigPath     = filepath.Join(DefaultConfigDir, "config.json")
	DefaultCredentialsSrc = filepath.Join(DefaultConfigDir, "credentials.json")
	DefaultTokenPath      = filepath.Join(DefaultConfigDir, "token.json")
	DefaultDBPath         = filepath.Join(DefaultConfigDir, "identity.db")
)

// Config is the run configuration threaded explicitly into both engines.
type Config struct {
	// CredentialsPath points at the OAuth client secret file.
	CredentialsPath string `json:"credentials_path"`
	// TokenPath is the cached user token, rewritten on refresh.
	TokenPath string `json:"token_path"`
	// DBPath is the identity store location.
	DBPath string `json:"db_path"`
	// AlwaysPDF exports every native document as PDF instead of its
	// per-type interchange format.
	AlwaysPDF bool `json:"always_pdf"`

	Path string `json:"-"`
}

func Default() *Config {
	return &Config{
		CredentialsPath: DefaultCredentialsSrc,
		TokenPath:       DefaultTokenPath,
		DBPath:          DefaultDBPath,
	}
}

func (c *Config) Validate() error {
	if c.CredentialsPath == "" {
		return fmt.Errorf("credentials path not set")
	}
	if c.TokenPath == "" {
		return fmt.Errorf("token path not set")
	}
	if c.DBPath == "" {
		return fmt.Errorf("identity db path not set")
	}
	return nil
}

func (c *Config) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.Path = path
	return cfg, nil
}
