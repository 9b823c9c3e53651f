package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/tuskchat/internal/config"
	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/pkg/conv"
	"github.com/sandevgo/tuskchat/pkg/log"
)

type chatService interface {
	History(ctx context.Context, userID string) ([]core.Message, error)
	Send(ctx context.Context, userID, input string) (core.Message, error)
}

type ReadLine struct {
	cfg    *config.AppConfig
	chat   chatService
	router core.CmdRouter
	rl     *readline.Instance
	onExit func()
}

func NewReadLine(chat chatService, router core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     cfg.GetInputHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:    cfg,
		chat:   chat,
		router: router,
		rl:     rl,
	}, nil
}

// OnExit registers fn to run when the user leaves the REPL.
func (r *ReadLine) OnExit(fn func()) {
	r.onExit = fn
}

func (r *ReadLine) Start(ctx context.Context) error {
	if r.onExit != nil {
		defer r.onExit()
	}

	ctx = log.WithUser(ctx, r.cfg.UserID)
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")

	r.printHistory(ctx)

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		r.handleLine(ctx, r.rl.Stdout(), line)
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

func (r *ReadLine) printHistory(ctx context.Context) {
	msgs, err := r.chat.History(ctx, r.cfg.UserID)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to load history")
		renderError(r.rl.Stdout(), err)
		return
	}
	renderHistory(r.rl.Stdout(), msgs)
}

// handleLine never aborts the loop: failures are shown and the prompt returns.
func (r *ReadLine) handleLine(ctx context.Context, w io.Writer, line string) {
	if out, ok := r.router.Execute(ctx, r.cfg.UserID, line); ok {
		fmt.Fprintln(w, conv.MarkdownToPlainText([]byte(out)))
		return
	}

	reply, err := r.chat.Send(ctx, r.cfg.UserID, line)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("chat turn failed")
		renderError(w, err)
		return
	}
	renderMessage(w, reply)
}
