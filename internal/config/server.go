package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	// AdminAPIKey guards the admin routes. Empty disables the check,
	// matching local/dev behavior.
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	LeaderboardMaxRows int `env:"LEADERBOARD_MAX_ROWS" envDefault:"100"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
