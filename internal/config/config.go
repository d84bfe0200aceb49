package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces the environment overrides, e.g. VIBECATALOG_BACKEND_URL.
const envPrefix = "VIBECATALOG_"

// Config contains the program configuration
type Config struct {
	BackendURL     string        `yaml:"backend_url"`
	SessionCookie  string        `yaml:"session_cookie"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ItemsPerPage   int           `yaml:"items_per_page"`
	ListenAddr     string        `yaml:"listen_addr"`
	Verbose        bool          `yaml:"verbose"`
	LogFile        string        `yaml:"log_file"`
	LogMaxSizeMB   int           `yaml:"log_max_size_mb"`
	LogMaxBackups  int           `yaml:"log_max_backups"`
	RedisAddr      string        `yaml:"redis_addr"`
	RedisPassword  string        `yaml:"redis_password"`
	RedisDB        int           `yaml:"redis_db"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		BackendURL:     "http://localhost:5000",
		RequestTimeout: 2 * time.Minute,
		ItemsPerPage:   15,
		ListenAddr:     ":8080",
		LogFile:        filepath.Join(GetDefaultLogPath(), "vibecatalog.log"),
		LogMaxSizeMB:   10,
		LogMaxBackups:  3,
		CacheTTL:       24 * time.Hour,
	}
}

// LoadConfigFile loads configuration from a YAML file, then applies
// overrides from a .env file and the environment.
// If path is empty, searches standard locations.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	// A missing .env is normal; existing environment variables win over it.
	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	cfg.LogFile = ExpandHome(cfg.LogFile)

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s %q: %w", envPrefix, key, v, err)
			}
			*dst = n
		}
		return nil
	}
	duration := func(key string, dst *time.Duration) error {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s %q: %w", envPrefix, key, v, err)
			}
			*dst = d
		}
		return nil
	}

	str("BACKEND_URL", &cfg.BackendURL)
	str("SESSION_COOKIE", &cfg.SessionCookie)
	str("LISTEN_ADDR", &cfg.ListenAddr)
	str("LOG_FILE", &cfg.LogFile)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("REDIS_PASSWORD", &cfg.RedisPassword)

	if v, ok := os.LookupEnv(envPrefix + "VERBOSE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sVERBOSE %q: %w", envPrefix, v, err)
		}
		cfg.Verbose = b
	}

	for key, dst := range map[string]*int{
		"ITEMS_PER_PAGE":  &cfg.ItemsPerPage,
		"REDIS_DB":        &cfg.RedisDB,
		"LOG_MAX_SIZE_MB": &cfg.LogMaxSizeMB,
		"LOG_MAX_BACKUPS": &cfg.LogMaxBackups,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	if err := duration("REQUEST_TIMEOUT", &cfg.RequestTimeout); err != nil {
		return err
	}
	return duration("CACHE_TTL", &cfg.CacheTTL)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./vibecatalog.yaml",
		"./vibecatalog.yml",
		filepath.Join(home, ".config", "vibecatalog", "config.yaml"),
		filepath.Join(home, ".config", "vibecatalog", "config.yml"),
		filepath.Join(home, ".vibecatalog.yaml"),
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "vibecatalog", "config.yaml")
}

// GetDefaultLogPath returns the default log directory path
func GetDefaultLogPath() string {
	return filepath.Join(homeDir(), ".local", "share", "vibecatalog", "logs")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// CacheEnabled reports whether catalog lookups go through Redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend URL cannot be empty")
	}
	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("backend URL must start with http:// or https://")
	}

	if c.ItemsPerPage < 1 || c.ItemsPerPage > 100 {
		return fmt.Errorf("items_per_page must be between 1 and 100, got %d", c.ItemsPerPage)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}

	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr cannot be empty")
	}

	if c.CacheEnabled() {
		if c.CacheTTL <= 0 {
			return fmt.Errorf("cache_ttl must be positive when redis_addr is set, got %s", c.CacheTTL)
		}
		if c.RedisDB < 0 {
			return fmt.Errorf("redis_db cannot be negative, got %d", c.RedisDB)
		}
	}

	return nil
}
