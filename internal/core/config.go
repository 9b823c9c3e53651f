package core

import "context"

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	SetModel(model string) error
	GetMaxOutputTokens() int
	GetAPIKey() string
	GetBaseURL() string
}

type GlobalState interface {
	ChangeModel(ctx context.Context, model string) error
}
