// Package config loads and validates application configuration from a YAML
// file and environment variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	Mode           string   `mapstructure:"mode" validate:"oneof=debug release test"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PlannerConfig holds the scheduling defaults applied when a request omits
// them.
type PlannerConfig struct {
	DefaultHorizonDays int     `mapstructure:"default_horizon_days" validate:"min=1,max=120"`
	DefaultHoursPerDay float64 `mapstructure:"default_hours_per_day" validate:"gt=0"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type SupabaseConfig struct {
	URL   string `mapstructure:"url"`
	Key   string `mapstructure:"key"`
	Table string `mapstructure:"table"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Database        string            `mapstructure:"database"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
}

// StoreConfig selects the persistence backend. "memory" is the demo fallback
// store; "supabase" and "mysql" require their sections to be set.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=memory supabase mysql"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studyloop")
	}

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("planner.default_horizon_days", 14)
	v.SetDefault("planner.default_hours_per_day", 2.0)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("supabase.table", "study_plans")
	v.SetDefault("database.port", 3306)
	v.SetDefault("store.backend", "memory")

	// Secrets come from the environment only, never from the config file.
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("supabase.url", "SUPABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind SUPABASE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("supabase.key", "SUPABASE_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind SUPABASE_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "MYSQL_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind MYSQL_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
