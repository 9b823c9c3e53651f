package core

import "context"

// AIProvider turns a prompt into a single text completion.
type AIProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type TokenCounter interface {
	Count(text string) int
}
