package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/tuskchat/internal/core"
)

const (
	defaultHistoryShown = 10
	historyPreviewLen   = 120
)

type historyReader interface {
	History(ctx context.Context, userID string) ([]core.Message, error)
}

type HistoryCommand struct {
	chat      historyReader
	formatter *ResponseFormatter
}

func NewHistoryCommand(chat historyReader) core.Command {
	return &HistoryCommand{
		chat:      chat,
		formatter: NewResponseFormatter(),
	}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show the most recent stored messages"
}

func (c *HistoryCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	shown := defaultHistoryShown
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", fmt.Errorf("invalid count %q", args[0])
		}
		shown = n
	}

	msgs, err := c.chat.History(ctx, userID)
	if err != nil {
		return "", err
	}

	if len(msgs) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("History"),
			c.formatter.Label("Stored messages", "0"),
		), nil
	}

	total := len(msgs)
	if total > shown {
		msgs = msgs[total-shown:]
	}

	items := make([]string, len(msgs))
	for i, m := range msgs {
		items[i] = c.formatter.Entry(m.Role, preview(m.Content))
	}

	return c.formatter.Combine(
		c.formatter.Info("History"),
		c.formatter.Label("Stored messages", strconv.Itoa(total)),
		c.formatter.List(items),
		c.formatter.Usage("/history [count]"),
	), nil
}

func preview(content string) string {
	s := strings.Join(strings.Fields(content), " ")
	r := []rune(s)
	if len(r) > historyPreviewLen {
		return string(r[:historyPreviewLen-3]) + "..."
	}
	return s
}
