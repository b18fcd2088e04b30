package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hrishikeshyadav/portfolio/backend/internal/config"
	"github.com/hrishikeshyadav/portfolio/backend/internal/handler"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/persona"
	"github.com/hrishikeshyadav/portfolio/backend/internal/service/ai"
	"github.com/hrishikeshyadav/portfolio/backend/internal/service/chat"
	contactservice "github.com/hrishikeshyadav/portfolio/backend/internal/service/contact"
	"github.com/hrishikeshyadav/portfolio/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog, _ := logger.New("dev")
		bootLog.Fatal("failed to load configuration", "error", err)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log, _ = logger.New("dev")
		log.Warn("failed to build logger, falling back to dev mode", "mode", cfg.Log.Mode, "error", err)
	}
	defer log.Sync()

	if envErr != nil {
		log.Warn("failed to load .env file, continuing with system environment variables only", "error", envErr)
	}

	backends, err := storage.Open(ctx, cfg.Store, log)
	if err != nil {
		log.Fatal("failed to open store", "driver", cfg.Store.Driver, "error", err)
	}
	defer func() {
		if err := backends.Close(); err != nil {
			log.Warn("failed to close store", "error", err)
		}
	}()

	assistant := persona.Default()

	// 凭证缺失时服务照常启动，每次对话都会以 500 失败
	var completer chat.Completer
	if missing := cfg.AI.MissingCredential(); missing != "" {
		log.Warn("AI credentials not configured, chat replies will fail", "provider", cfg.AI.Provider, "reason", missing)
		completer = ai.Unavailable{Reason: missing}
	} else {
		aiService, err := ai.NewService(ctx, cfg.AI, assistant, log)
		if err != nil {
			log.Error("failed to initialize AI service", "provider", cfg.AI.Provider, "error", err)
			completer = ai.Unavailable{Reason: err.Error()}
		} else {
			log.Info("AI service initialized", "provider", cfg.AI.Provider, "streaming", aiService.StreamingEnabled())
			completer = aiService
		}
	}

	relay := chat.NewRelay(backends.Chat, completer,
		chat.WithHistoryLimit(cfg.Chat.HistoryLimit),
		chat.WithLogger(log),
	)
	contactSvc := contactservice.NewService(backends.Contact, log)

	router := handler.NewRouter(handler.Deps{
		Log:            log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Relay:          relay,
		Contact:        contactSvc,
		Persona:        assistant,
	})

	startServer(ctx, log, cfg.Server, router)
}

func startServer(ctx context.Context, log *logger.Logger, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("portfolio backend listening", "addr", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatal("server error", "error", err)
	}
	log.Info("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
