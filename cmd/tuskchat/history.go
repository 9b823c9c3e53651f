package main

import (
	"fmt"

	"github.com/sandevgo/tuskchat/internal/service/ui"
	"github.com/sandevgo/tuskchat/pkg/log"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear the stored conversation",
}

var historyShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the stored conversation",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		cfg := mustLoadAppConfig(ctx)
		ctx = log.WithUser(ctx, cfg.UserID)
		store, cleanup, err := initHistory(ctx, cfg)
		if err != nil {
			return err
		}
		if cleanup != nil {
			defer func() { _ = cleanup.Shutdown(ctx) }()
		}

		msgs, err := store.Messages(ctx, cfg.UserID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.TitleStyle.Render(fmt.Sprintf("%d messages for %s", len(msgs), cfg.UserID)))
		for _, m := range msgs {
			fmt.Fprintf(out, "%s %s\n", ui.RoleStyle(m.Role).Render(m.Role+":"), m.Content)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:          "clear",
	Short:        "Delete the stored conversation",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		cfg := mustLoadAppConfig(ctx)
		ctx = log.WithUser(ctx, cfg.UserID)
		store, cleanup, err := initHistory(ctx, cfg)
		if err != nil {
			return err
		}
		if cleanup != nil {
			defer func() { _ = cleanup.Shutdown(ctx) }()
		}

		if err := store.Clear(ctx, cfg.UserID); err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Msg("conversation history cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "Conversation history cleared")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyShowCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
