package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode             string        `mapstructure:"mode"`
	Port             int           `mapstructure:"port"`
	Secret           string        `mapstructure:"secret"`
	PlatformBaseURL  string        `mapstructure:"platform_base_url"`
	PlatformTimeout  time.Duration `mapstructure:"platform_timeout"`
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
	WriteDeadline    time.Duration `mapstructure:"write_deadline"`
	SendBuffer       int           `mapstructure:"send_buffer"`
	HeartbeatTimeout time.Duration `mapstructure:"heartbeat_timeout"`
	SweepInterval    time.Duration `mapstructure:"sweep_interval"`
	RateLimit        int           `mapstructure:"rate_limit"`
	RateInterval     time.Duration `mapstructure:"rate_interval"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("platform_base_url", "http://localhost:9090")
	v.SetDefault("platform_timeout", "5s")
	v.SetDefault("handshake_timeout", "10s")
	v.SetDefault("write_deadline", "5s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("heartbeat_timeout", "45s")
	v.SetDefault("sweep_interval", "15s")
	v.SetDefault("rate_limit", 20)
	v.SetDefault("rate_interval", "10s")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
