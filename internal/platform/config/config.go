package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultLocalAPIURL  = "http://localhost:3001/api"
	defaultHostedAPIURL = "https://backend-five-sable-52.vercel.app/api"

	defaultPopupTimeout = 5 * time.Second
	defaultPollEvery    = 400 * time.Millisecond
)

type Config struct {
	ProfileDir   string
	APIBaseURL   string
	DashboardURL string
	DBPath       string
	PopupTimeout time.Duration
	PollEvery    time.Duration
}

// fileConfig mirrors the optional config.yaml in the profile dir.
type fileConfig struct {
	APIBaseURL   string `yaml:"api_base_url"`
	DashboardURL string `yaml:"dashboard_url"`
	PopupTimeout string `yaml:"popup_timeout"`
	PollEvery    string `yaml:"poll_every"`
}

// New resolves the profile directory and layers configuration:
// defaults, then config.yaml, then environment. A .env in the working
// directory is loaded best-effort so the hosted backend can be selected
// during development without exporting anything.
func New(profileDir string) (Config, error) {
	if profileDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		profileDir = filepath.Join(home, ".leadclip")
	}

	_ = godotenv.Load()

	cfg := Config{
		ProfileDir:   profileDir,
		APIBaseURL:   defaultLocalAPIURL,
		DashboardURL: "http://localhost:3001",
		DBPath:       filepath.Join(profileDir, "leadclip.db"),
		PopupTimeout: defaultPopupTimeout,
		PollEvery:    defaultPollEvery,
	}
	if os.Getenv("LEADCLIP_API_MODE") == "hosted" {
		cfg.APIBaseURL = defaultHostedAPIURL
	}

	if err := cfg.applyFile(filepath.Join(profileDir, "config.yaml")); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("LEADCLIP_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("LEADCLIP_DASHBOARD_URL"); v != "" {
		cfg.DashboardURL = v
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	if fc.APIBaseURL != "" {
		c.APIBaseURL = fc.APIBaseURL
	}
	if fc.DashboardURL != "" {
		c.DashboardURL = fc.DashboardURL
	}
	if fc.PopupTimeout != "" {
		d, err := time.ParseDuration(fc.PopupTimeout)
		if err != nil {
			return fmt.Errorf("parse popup_timeout: %w", err)
		}
		c.PopupTimeout = d
	}
	if fc.PollEvery != "" {
		d, err := time.ParseDuration(fc.PollEvery)
		if err != nil {
			return fmt.Errorf("parse poll_every: %w", err)
		}
		c.PollEvery = d
	}
	return nil
}
