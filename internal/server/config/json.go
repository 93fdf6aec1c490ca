package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pokebox/pokebox/internal/flagx"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// Durations are plain integers (seconds) to keep the files trivial to write;
// zero values leave the corresponding Config field untouched.
type JsonConfig struct {
	EndpointAddr         string `json:"endpoint_addr"`
	DatabaseDSN          string `json:"database_dsn"`
	SecretKey            string `json:"secret_key"`
	TokenValiditySeconds int    `json:"token_validity_seconds"`
	PokeAPIBaseURL       string `json:"pokeapi_base_url"`
	PokeAPITimeoutSecs   int    `json:"pokeapi_timeout_seconds"`
	RateLimitMax         int    `json:"rate_limit_max"`
	RateLimitWindowSecs  int    `json:"rate_limit_window_seconds"`
	BcryptCost           int    `json:"bcrypt_cost"`
	MaxConcurrentHashes  int    `json:"max_concurrent_hashes"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flags, when present. Reading or unmarshalling failures panic: a
// broken config file should stop startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValiditySeconds > 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValiditySeconds) * time.Second
	}
	if c.PokeAPIBaseURL != "" {
		config.PokeAPIBaseURL = c.PokeAPIBaseURL
	}
	if c.PokeAPITimeoutSecs > 0 {
		config.PokeAPITimeout = time.Duration(c.PokeAPITimeoutSecs) * time.Second
	}
	if c.RateLimitMax > 0 {
		config.RateLimitMax = c.RateLimitMax
	}
	if c.RateLimitWindowSecs > 0 {
		config.RateLimitWindow = time.Duration(c.RateLimitWindowSecs) * time.Second
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.MaxConcurrentHashes > 0 {
		config.MaxConcurrentHashes = c.MaxConcurrentHashes
	}
}
