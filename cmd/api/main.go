package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"debate-arena/internal/config"
	"debate-arena/internal/handler"
	"debate-arena/internal/hub"
	"debate-arena/internal/observability"
	debateservice "debate-arena/internal/service/debate"
	"debate-arena/internal/service/judge"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.Judge.Token == "" {
		log.Println("warning: HF_API_TOKEN not set, debate evaluations will fail")
	}

	metrics := observability.NewMetrics("debate_arena")
	store := debateservice.NewService()
	connections := hub.New()
	judgeClient := judge.New(judge.Config{
		URL:          cfg.Judge.URL,
		Token:        cfg.Judge.Token,
		MaxNewTokens: cfg.Judge.MaxNewTokens,
		Timeout:      cfg.Judge.Timeout,
	})
	coord := debateservice.NewCoordinator(store, connections, judgeClient, metrics)

	router := handler.NewRouter(store, coord, connections, metrics)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Debate Arena listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
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
