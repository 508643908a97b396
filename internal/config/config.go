package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultLocale          = "en"
	defaultHomePath        = "/"
	defaultRecheckInterval = 30 * time.Second
	defaultNotifyStagger   = 800 * time.Millisecond
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the tunables for the trophy engine and CLI.
type Config struct {
	Locale          string   `yaml:"locale"`
	CatalogURLs     []string `yaml:"catalog_urls"`
	StoragePath     string   `yaml:"storage_path"`
	HomePath        string   `yaml:"home_path"`
	RecheckInterval Duration `yaml:"recheck_interval"`
	NotifyStagger   Duration `yaml:"notify_stagger"`
}

// Default returns the built-in configuration. The storage path lands under
// the user's home directory, falling back to the working directory when the
// home directory cannot be resolved.
func Default() Config {
	return Config{
		Locale:          defaultLocale,
		HomePath:        defaultHomePath,
		StoragePath:     filepath.Join(configDir(), "trophies.db"),
		RecheckInterval: Duration(defaultRecheckInterval),
		NotifyStagger:   Duration(defaultNotifyStagger),
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	return filepath.Join(configDir(), "trophies.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "trophies")
}

// Load reads a YAML config file. A missing file yields the defaults; a file
// that exists but does not parse is an error. Fields the file omits keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}
	if cfg.HomePath == "" {
		cfg.HomePath = defaultHomePath
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = Default().StoragePath
	}
	if cfg.RecheckInterval == 0 {
		cfg.RecheckInterval = Duration(defaultRecheckInterval)
	}
	if cfg.NotifyStagger == 0 {
		cfg.NotifyStagger = Duration(defaultNotifyStagger)
	}
	return cfg, nil
}
