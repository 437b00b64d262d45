// Package config loads settings from pixswap.yaml, environment variables
// with the PIXSWAP_ prefix, and an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr     string        `mapstructure:"listen_addr"`
	Quality        int           `mapstructure:"quality"`
	Engine         string        `mapstructure:"engine"`
	NoticeTTL      time.Duration `mapstructure:"notice_ttl"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	LogLevel       string        `mapstructure:"log_level"`
}

// Load reads configuration. cfgFile overrides the search path when set.
func Load(cfgFile string) (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("quality", 90)
	v.SetDefault("engine", "pure")
	v.SetDefault("notice_ttl", 3*time.Second)
	v.SetDefault("max_upload_bytes", int64(32<<20))
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pixswap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pixswap"))
		}
	}

	v.SetEnvPrefix("PIXSWAP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		return nil, fmt.Errorf("quality must be in 1-100, got %d", cfg.Quality)
	}
	return &cfg, nil
}
