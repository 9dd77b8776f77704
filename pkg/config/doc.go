// Package config reads typed configuration from environment variables.
//
// Structs are described with github.com/caarlos0/env tags; a .env file in the
// working directory is loaded once through github.com/joho/godotenv.
//
//	type Config struct {
//		HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8080"`
//		SnapshotTTL time.Duration `env:"SNAPSHOT_TTL" envDefault:"24h"`
//	}
//
//	cfg := config.MustLoad[Config]()
//
// Load caches per type, so every package asking for the same struct sees
// the same values. Parse skips the cache and accepts options, which is what
// tests use.
package config
