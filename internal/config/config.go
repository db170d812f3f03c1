package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Port          string  `env:"PORT" envDefault:"8080"`
	APIURL        string  `env:"API_URL" envDefault:"http://localhost:8080"`
	MongoURI      string  `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string  `env:"MONGODB_DATABASE" envDefault:"remodely"`
	RedisAddr     string  `env:"REDIS_ADDR"`
	JWTSecret     string  `env:"JWT_SECRET" envDefault:"devsecret"`
	EncryptionKey string  `env:"ENCRYPTION_KEY"`
	Shopify       Shopify `envPrefix:"SHOPIFY_"`
}

// Shopify contains the app credentials issued by the Shopify partner
// dashboard. Empty values are tolerated at startup; operations that need
// them fail with a configuration error instead.
type Shopify struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
