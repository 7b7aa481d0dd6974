package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	// TrustedOrigins is derived from the comma-separated TRUSTED_ORIGINS value.
	TrustedOrigins    []string `mapstructure:"-"`
	RawTrustedOrigins string   `mapstructure:"TRUSTED_ORIGINS"`

	DB struct {
		Host     string `mapstructure:"POSTGRES_HOST"`
		Port     string `mapstructure:"POSTGRES_PORT"`
		User     string `mapstructure:"POSTGRES_USER"`
		Password string `mapstructure:"POSTGRES_PASSWORD"`
		Name     string `mapstructure:"POSTGRES_DB"`
	} `mapstructure:",squash"`

	Auth struct {
		Secret    string        `mapstructure:"JWT_SECRET"`
		TokenTime time.Duration `mapstructure:"JWT_EXPIRY"`
	} `mapstructure:",squash"`
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.RawTrustedOrigins != "" {
		origins := strings.Split(config.RawTrustedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		config.TrustedOrigins = origins
	}

	// tokens expire after an hour unless configured otherwise
	if config.Auth.TokenTime == 0 {
		config.Auth.TokenTime = time.Hour
	}

	return &config, nil
}
