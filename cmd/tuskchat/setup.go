package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/tuskchat/internal/config"
	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/internal/providers/llm"
	"github.com/sandevgo/tuskchat/internal/service/chat"
	"github.com/sandevgo/tuskchat/internal/service/command"
	"github.com/sandevgo/tuskchat/internal/service/history"
	"github.com/sandevgo/tuskchat/internal/service/state"
	"github.com/sandevgo/tuskchat/internal/storage/kv"
	"github.com/sandevgo/tuskchat/internal/storage/memory"
	"github.com/sandevgo/tuskchat/internal/storage/sqlite"
	"github.com/sandevgo/tuskchat/internal/transport/cli"
	"github.com/sandevgo/tuskchat/internal/transport/telegram"
	"github.com/sandevgo/tuskchat/pkg/log"
	"github.com/sandevgo/tuskchat/pkg/srv"
	"github.com/sandevgo/tuskchat/pkg/tokens"
)

// NewServices wires every component. stop ends the run when the REPL exits.
func NewServices(ctx context.Context, stop context.CancelFunc) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Configuration
	appCfg := mustLoadAppConfig(ctx)

	llmCfg, err := config.NewLLMConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid LLM configuration")
	}

	// 2. Storage
	store, cleanup, err := initHistory(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize history storage")
	}
	if cleanup != nil {
		services = append(services, cleanup)
	}

	// 3. AI Provider
	aiProvider, err := llm.NewDynamicProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Chat Service
	counter := tokens.NewCounter()
	chatSvc := chat.NewService(
		store,
		aiProvider,
		chat.WithContextTurns(appCfg.ContextTurns),
		chat.WithTokenCounter(counter),
	)

	// 5. Commands
	globalState := state.NewGlobalState(aiProvider)
	router := command.New(command.NewCommands(chatSvc, llmCfg, globalState))

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, chatSvc, router, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	logger.Info().
		Str("backend", appCfg.Backend).
		Str("provider", llmCfg.GetProvider()).
		Str("model", llmCfg.GetModel()).
		Str("user", appCfg.UserID).
		Msg("services configured")

	return services
}

// mustLoadAppConfig loads .env and the app config. Configuration errors are fatal.
func mustLoadAppConfig(ctx context.Context) *config.AppConfig {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	appCfg, err := config.NewAppConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	return appCfg
}

// initHistory builds the store over the configured backend.
// The returned service, when not nil, releases the backend on shutdown.
func initHistory(ctx context.Context, cfg *config.AppConfig) (*history.Store, srv.Service, error) {
	backend, cleanup, err := initBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(backend, history.WithLimit(cfg.HistoryLimit)), cleanup, nil
}

func initBackend(ctx context.Context, cfg *config.AppConfig) (core.ListBackend, srv.Service, error) {
	switch cfg.Backend {
	case config.BackendKV:
		kvCfg, err := config.NewKVConfig()
		if err != nil {
			return nil, nil, err
		}
		client, err := kv.NewClient(kvCfg)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	case config.BackendSQLite:
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewListStore(db), srv.NewCleanup(db.Close), nil
	case config.BackendMemory:
		log.FromCtx(ctx).Warn().Msg("in-memory history is lost on exit")
		return memory.NewListStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown history backend %q", core.ErrConfiguration, cfg.Backend)
	}
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	chatSvc *chat.Service,
	router core.CmdRouter,
	stop context.CancelFunc,
) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if cfg.IsTelegramSelected() {
		tgCfg, err := config.NewTelegramConfig()
		if err != nil {
			return nil, err
		}
		bot, err := telegram.NewBot(ctx, tgCfg, cfg.UserID, chatSvc, router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	// Terminal REPL
	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(chatSvc, router, cfg)
		if err != nil {
			return nil, err
		}
		rl.OnExit(stop)
		services = append(services, rl)
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("%w: no transport enabled", core.ErrConfiguration)
	}
	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
