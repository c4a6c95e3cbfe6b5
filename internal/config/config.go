package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App        App
	HTTPServer HTTPServer
	Dataset    Dataset
	Live       Live
	Ships      Ships
	Redis      Redis
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"mining-hub"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
