package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Store backends selectable with store.type
const (
	StoreTypePostgres = "postgres"
	StoreTypeSQLite   = "sqlite"
	StoreTypeMemory   = "memory"
)

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

// Load loads the configuration following proper precedence: defaults → config file → environment variables
func Load() {
	LoadDefault()

	configFile := os.Getenv("USRMGT_CONFIG_FILE")
	if configFile == "" {
		configFile = "usrmgt.yaml"
	}

	if err := LoadFromFile(configFile); err != nil {
		log.Printf("Failed to load config file: %v, using defaults", err)
	} else {
		log.Printf("Successfully loaded config from file: %s", configFile)
	}

	// Environment variables have the highest priority
	ApplyEnvOverrides()
}

func LoadDefault() {
	config := defaultConfig
	_loaded = &config
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := defaultConfig

	// Merge YAML values over defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config file: %w", err)
	}

	_loaded = &cfg
	return nil
}

// Validate checks the values that have a closed set of options
func (c *Config) Validate() error {
	switch c.Common.Store.Type {
	case StoreTypePostgres, StoreTypeSQLite, StoreTypeMemory:
	default:
		return fmt.Errorf("unsupported store type: %q", c.Common.Store.Type)
	}

	switch c.Common.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format: %q", c.Common.Log.Format)
	}

	if c.Common.Http.Port <= 0 {
		return fmt.Errorf("http port must be a positive integer")
	}

	return nil
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "json",
		},
		Http: httpConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: storeConfig{
			Type:    StoreTypePostgres,
			Migrate: true,
		},
		Postgres: postgresConfig{
			User:               "postgres",
			Password:           "postgres",
			Host:               "localhost",
			Port:               5432,
			Database:           "usrmgt",
			MaxOpenConnections: 10,
		},
		SQLite: sqliteConfig{
			Path: "usrmgt.db",
		},
	},
}

type Common struct {
	Log      logConfig      `yaml:"log"`
	Http     httpConfig     `yaml:"http"`
	Store    storeConfig    `yaml:"store"`
	Postgres postgresConfig `yaml:"postgres"`
	SQLite   sqliteConfig   `yaml:"sqlite"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (c httpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type storeConfig struct {
	Type    string `yaml:"type"`    // "postgres", "sqlite" or "memory"
	Migrate bool   `yaml:"migrate"` // create the users table on startup
}

type postgresConfig struct {
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Database           string `yaml:"database"`
	MaxOpenConnections int    `yaml:"max_open_connections"`
}

func (c postgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		url.QueryEscape(c.Database),
	)
}

type sqliteConfig struct {
	Path string `yaml:"path"` // file path, or ":memory:"
}

func (c sqliteConfig) DSN() string {
	if c.Path == ":memory:" {
		return c.Path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", c.Path)
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Log
}

func Http() httpConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Http
}

func Store() storeConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Store
}

func Postgres() postgresConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Postgres
}

func SQLite() sqliteConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.SQLite
}

// Get returns the full configuration
func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}

func ApplyEnvOverrides() {
	if _loaded == nil {
		return
	}

	if logLevel := os.Getenv("USRMGT_LOG_LEVEL"); logLevel != "" {
		_loaded.Common.Log.Level = logLevel
	}
	if logFormat := os.Getenv("USRMGT_LOG_FORMAT"); logFormat != "" {
		_loaded.Common.Log.Format = logFormat
	}

	if httpHost := os.Getenv("USRMGT_HTTP_HOST"); httpHost != "" {
		_loaded.Common.Http.Host = httpHost
	}
	if httpPort := os.Getenv("USRMGT_HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			_loaded.Common.Http.Port = port
		}
	}

	if storeType := os.Getenv("USRMGT_STORE_TYPE"); storeType != "" {
		_loaded.Common.Store.Type = storeType
	}
	if migrate := os.Getenv("USRMGT_STORE_MIGRATE"); migrate != "" {
		if enabled, err := strconv.ParseBool(migrate); err == nil {
			_loaded.Common.Store.Migrate = enabled
		}
	}

	if dbHost := os.Getenv("USRMGT_DB_HOST"); dbHost != "" {
		_loaded.Common.Postgres.Host = dbHost
	}
	if dbPort := os.Getenv("USRMGT_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			_loaded.Common.Postgres.Port = port
		}
	}
	if dbUser := os.Getenv("USRMGT_DB_USER"); dbUser != "" {
		_loaded.Common.Postgres.User = dbUser
	}
	if dbPassword := os.Getenv("USRMGT_DB_PASSWORD"); dbPassword != "" {
		_loaded.Common.Postgres.Password = dbPassword
	}
	if dbName := os.Getenv("USRMGT_DB_NAME"); dbName != "" {
		_loaded.Common.Postgres.Database = dbName
	}

	if sqlitePath := os.Getenv("USRMGT_SQLITE_PATH"); sqlitePath != "" {
		_loaded.Common.SQLite.Path = sqlitePath
	}
}
