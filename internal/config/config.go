// Package config loads service settings from the environment, an optional
// .env file and an optional YAML file.
package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Words struct {
	File string `yaml:"file" env:"WORDS_FILE"`
	DB   string `yaml:"db" env:"WORDS_DB"`
}

type Session struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-default:"dev_secret_change_me"`
	TTL    time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
}

type Admin struct {
	User         string `yaml:"user" env:"ADMIN_USER" env-default:"admin"`
	PasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
}

type Config struct {
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Port           string        `yaml:"port" env:"PORT" env-default:"5175"`
	ClientOrigin   string        `yaml:"client_origin" env:"CLIENT_ORIGIN" env-default:"http://localhost:5173"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"10s"`
	RateLimit      int           `yaml:"rate_limit" env:"RATE_LIMIT" env-default:"50"`
	FilterWorkers  int           `yaml:"filter_workers" env:"FILTER_WORKERS" env-default:"4"`
	Words          Words         `yaml:"words"`
	Session        Session       `yaml:"session"`
	Admin          Admin         `yaml:"admin"`
}

// Load reads .env (if present) into the environment, then fills Config from
// path when given, otherwise from the environment alone. Environment values
// override the file.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
