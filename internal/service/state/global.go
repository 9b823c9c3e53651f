package state

import (
	"context"

	"github.com/sandevgo/tuskchat/pkg/log"
)

type modelSwitcher interface {
	GetModel() string
	SetModel(ctx context.Context, model string) error
}

// GlobalState holds runtime settings shared by every transport.
type GlobalState struct {
	provider modelSwitcher
}

func NewGlobalState(provider modelSwitcher) *GlobalState {
	return &GlobalState{
		provider: provider,
	}
}

func (s *GlobalState) ChangeModel(ctx context.Context, model string) error {
	prev := s.provider.GetModel()
	if err := s.provider.SetModel(ctx, model); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("model", model).Msg("model switch rejected")
		return err
	}
	log.FromCtx(ctx).Info().Str("from", prev).Str("to", s.provider.GetModel()).Msg("model switched")
	return nil
}
