package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":5000"`
	Env             string        `envconfig:"APP_ENV" default:"development"`
	MongoURI        string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase   string        `envconfig:"MONGO_DATABASE" default:"bistroBD"`
	AccessSecret    string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	TokenTTL        time.Duration `envconfig:"TOKEN_TTL" default:"1h"`
	PaymentSecret   string        `envconfig:"PAYMENT_SECRET_KEY"`
	PaymentCurrency string        `envconfig:"PAYMENT_CURRENCY" default:"usd"`
}

func Load() (Config, error) {
	_ = godotenv.Load() // load .env if it exists
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
