package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/tuskchat/internal/core"
)

// KVConfig holds the connection settings of the remote list store.
// Both values are required; absence fails at startup, not per call.
type KVConfig struct {
	URL     string        `env:"KV_REST_API_URL,required,notEmpty"`
	Token   string        `env:"KV_REST_API_TOKEN,required,notEmpty"`
	Timeout time.Duration `env:"KV_TIMEOUT" envDefault:"10s"`
}

func NewKVConfig() (*KVConfig, error) {
	return parseKVConfig(env.Options{})
}

func parseKVConfig(opts env.Options) (*KVConfig, error) {
	c := &KVConfig{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("%w: KV_REST_API_URL and KV_REST_API_TOKEN must be set: %w", core.ErrConfiguration, err)
	}

	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid KV_REST_API_URL %q", core.ErrConfiguration, c.URL)
	}
	return c, nil
}
