package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envOverlay mirrors the Config fields settable from the environment.
// Durations are integers in seconds; unset variables leave defaults alone.
type envOverlay struct {
	EndpointAddr         string `envconfig:"ADDRESS"`
	DatabaseDSN          string `envconfig:"DATABASE_DSN"`
	SecretKey            string `envconfig:"SECRET_KEY"`
	TokenValiditySeconds int    `envconfig:"TOKEN_VALIDITY_SECONDS"`
	PokeAPIBaseURL       string `envconfig:"POKEAPI_BASE_URL"`
	PokeAPITimeoutSecs   int    `envconfig:"POKEAPI_TIMEOUT_SECONDS"`
	RateLimitMax         int    `envconfig:"RATE_LIMIT_MAX"`
	RateLimitWindowSecs  int    `envconfig:"RATE_LIMIT_WINDOW_SECONDS"`
	BcryptCost           int    `envconfig:"BCRYPT_COST"`
	MaxConcurrentHashes  int    `envconfig:"MAX_CONCURRENT_HASHES"`
}

// parseEnv overlays environment variables onto config.
func parseEnv(config *Config) {
	var e envOverlay
	if err := envconfig.Process("", &e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != "" {
		config.EndpointAddr = e.EndpointAddr
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.TokenValiditySeconds > 0 {
		config.TokenValidityDuration = time.Duration(e.TokenValiditySeconds) * time.Second
	}
	if e.PokeAPIBaseURL != "" {
		config.PokeAPIBaseURL = e.PokeAPIBaseURL
	}
	if e.PokeAPITimeoutSecs > 0 {
		config.PokeAPITimeout = time.Duration(e.PokeAPITimeoutSecs) * time.Second
	}
	if e.RateLimitMax > 0 {
		config.RateLimitMax = e.RateLimitMax
	}
	if e.RateLimitWindowSecs > 0 {
		config.RateLimitWindow = time.Duration(e.RateLimitWindowSecs) * time.Second
	}
	if e.BcryptCost > 0 {
		config.BcryptCost = e.BcryptCost
	}
	if e.MaxConcurrentHashes > 0 {
		config.MaxConcurrentHashes = e.MaxConcurrentHashes
	}
}
