package llm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/tuskchat/internal/core"
)

// DynamicProvider lets the model be swapped at runtime without
// interrupting calls already in flight.
type DynamicProvider struct {
	config  core.ProviderConfig
	current atomic.Value
	mu      sync.Mutex
	factory func(context.Context, core.ProviderConfig) (core.AIProvider, error)
}

func NewDynamicProvider(
	ctx context.Context,
	config core.ProviderConfig,
) (*DynamicProvider, error) {
	return newDynamicProvider(ctx, config, NewProvider)
}

func newDynamicProvider(
	ctx context.Context,
	config core.ProviderConfig,
	factory func(context.Context, core.ProviderConfig) (core.AIProvider, error),
) (*DynamicProvider, error) {
	d := &DynamicProvider{
		config:  config,
		factory: factory,
	}

	provider, err := factory(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(provider)
	return d, nil
}

func (d *DynamicProvider) Generate(ctx context.Context, prompt string) (string, error) {
	provider := d.current.Load().(core.AIProvider)
	return provider.Generate(ctx, prompt)
}

func (d *DynamicProvider) GetModel() string {
	return d.config.GetModel()
}

func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	previous := d.config.GetModel()
	if err := d.config.SetModel(model); err != nil {
		return err
	}

	newProvider, err := d.factory(ctx, d.config)
	if err != nil {
		_ = d.config.SetModel(previous)
		return fmt.Errorf("failed to create provider: %w", err)
	}

	// Atomic swap
	d.current.Store(newProvider)
	return nil
}
