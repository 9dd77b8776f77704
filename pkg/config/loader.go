package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache      sync.Map // reflect.Type -> *entry
	dotenvOnce sync.Once
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

// Load parses T from the environment. The first call per type reads .env
// (if present) and parses; later calls return the same value or error.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//	cfg, err := config.Load[ServerConfig]()
func Load[T any]() (T, error) {
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	key := reflect.TypeFor[T]()
	e, _ := cache.LoadOrStore(key, &entry{})
	ent := e.(*entry)
	ent.once.Do(func() {
		ent.value, ent.err = Parse[T]()
	})
	if ent.err != nil {
		var zero T
		return zero, ent.err
	}
	return ent.value.(T), nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any]() T {
	v, err := Load[T]()
	if err != nil {
		panic(err)
	}
	return v
}

// Option adjusts a single Parse call.
type Option func(*parseConfig)

type parseConfig struct {
	opts    env.Options
	dotenvs []string
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(c *parseConfig) { c.opts.Prefix = prefix }
}

// WithEnvironment parses from vars instead of the process environment.
func WithEnvironment(vars map[string]string) Option {
	return func(c *parseConfig) { c.opts.Environment = vars }
}

// WithDotenv reads the given files into the process environment first.
// Variables already set are not overridden.
func WithDotenv(paths ...string) Option {
	return func(c *parseConfig) { c.dotenvs = append(c.dotenvs, paths...) }
}

// Parse reads T without caching.
func Parse[T any](opts ...Option) (T, error) {
	var (
		cfg parseConfig
		v   T
	)
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.dotenvs) > 0 {
		if err := godotenv.Load(cfg.dotenvs...); err != nil {
			return v, errors.Join(ErrDotenv, err)
		}
	}
	if err := env.ParseWithOptions(&v, cfg.opts); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}
