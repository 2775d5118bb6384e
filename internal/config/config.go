package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":5000"`

	// SecretKey signs every issued token. Required: there is deliberately
	// no default, a missing key must fail startup.
	SecretKey string `env:"SECRET_KEY,required"`

	Database struct {
		Host     string `env:"DB_HOST" envDefault:"localhost"`
		Port     string `env:"DB_PORT" envDefault:"5432"`
		User     string `env:"DB_USER,required"`
		Password string `env:"DB_PASSWORD,required"`
		Name     string `env:"DB_NAME,required"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
	}

	// Admin seed account, created at startup when absent. Seeding is
	// skipped when the password is empty.
	Admin struct {
		Username string `env:"ADMIN_USERNAME" envDefault:"admin"`
		Password string `env:"ADMIN_PASSWORD"`
	}

	Log struct {
		Path  string `env:"LOG_PATH" envDefault:"./taskboard.log"`
		Debug bool   `env:"DEBUG" envDefault:"false"`
	}

	Tracing struct {
		Enabled  bool   `env:"TRACING_ENABLED" envDefault:"false"`
		Endpoint string `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	}

	CORS struct {
		Origins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	}
}

// New loads .env if present and parses the environment into a Config.
func New() (*Config, error) {
	_ = godotenv.Load()
	cfg, err := env.ParseAs[Config]()
	return &cfg, err
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Name, c.Database.Password)
}
