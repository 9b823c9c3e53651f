package command

import (
	"context"

	"github.com/sandevgo/tuskchat/internal/core"
)

type clearer interface {
	Clear(ctx context.Context, userID string) error
}

type ClearCommand struct {
	chat      clearer
	formatter *ResponseFormatter
}

func NewClearCommand(chat clearer) core.Command {
	return &ClearCommand{
		chat:      chat,
		formatter: NewResponseFormatter(),
	}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Delete the stored conversation"
}

func (c *ClearCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	if err := c.chat.Clear(ctx, userID); err != nil {
		return "", err
	}
	return c.formatter.Success("Conversation history cleared"), nil
}
