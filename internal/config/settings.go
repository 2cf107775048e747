package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BENEFITCALC_SERVER_ADDR
const EnvPrefix = "BENEFITCALC"

// Settings holds application configuration (as opposed to calculator inputs)
type Settings struct {
	PlanYear   int           `mapstructure:"plan_year"`
	LimitsFile string        `mapstructure:"limits_file"` // optional extra plan-year tables
	Logging    LoggingConfig `mapstructure:"logging"`
	Server     ServerConfig  `mapstructure:"server"`
	Storage    StorageConfig `mapstructure:"storage"`
	Output     OutputConfig  `mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// ServerConfig holds HTTP API options
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig selects the session store
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory, sqlite, postgres
	Path   string `mapstructure:"path"`   // sqlite database file
	DSN    string `mapstructure:"dsn"`    // postgres connection string
}

// OutputConfig holds report output options
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
}

// SetDefaults registers every setting's default so environment overrides resolve
func SetDefaults(v *viper.Viper) {
	v.SetDefault("plan_year", DefaultPlanYear)
	v.SetDefault("limits_file", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.path", "benefitcalc.db")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("output.format", "console")
	v.SetDefault("output.dir", ".")
}

// LoadEnvFiles loads .env style files into the process environment. Missing files are skipped;
// variables already set are not overwritten.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// LoadSettings reads settings from defaults, an optional config file and the environment.
// With an empty configFile, config.yaml is searched in the working directory and
// $HOME/.config/benefitcalc; not finding one is not an error.
func LoadSettings(v *viper.Viper, configFile string) (*Settings, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/benefitcalc")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	// Conventional fallback used by hosted Postgres providers
	if s.Storage.DSN == "" {
		s.Storage.DSN = os.Getenv("DATABASE_URL")
	}

	if err := ValidateSettings(&s); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

// ValidateSettings checks settings values that would otherwise fail late
func ValidateSettings(s *Settings) error {
	switch s.Storage.Driver {
	case "memory":
	case "sqlite":
		if s.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case "postgres":
		if s.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn (or DATABASE_URL) is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q (expected memory, sqlite or postgres)", s.Storage.Driver)
	}
	if s.PlanYear <= 0 {
		return fmt.Errorf("plan_year must be positive")
	}
	return nil
}

// BuildLimitRegistry returns the built-in tables plus any from the settings' limits file
func BuildLimitRegistry(s *Settings) (*LimitRegistry, error) {
	r := NewLimitRegistry()
	if s.LimitsFile != "" {
		if err := r.LoadLimitsFromFile(s.LimitsFile); err != nil {
			return nil, err
		}
	}
	if _, err := r.Lookup(s.PlanYear); err != nil {
		return nil, fmt.Errorf("default plan year: %w", err)
	}
	return r, nil
}
