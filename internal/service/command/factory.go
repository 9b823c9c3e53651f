package command

import (
	"context"

	"github.com/sandevgo/tuskchat/internal/core"
)

type chatService interface {
	History(ctx context.Context, userID string) ([]core.Message, error)
	Clear(ctx context.Context, userID string) error
}

func NewCommands(
	chat chatService,
	cfg core.ProviderConfig,
	state core.GlobalState,
) []core.Command {
	help := NewHelpCommand()
	cmds := []core.Command{
		NewClearCommand(chat),
		NewHistoryCommand(chat),
		NewModelCommand(cfg, state),
		help,
	}
	help.commands = cmds
	return cmds
}
