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

	"github.com/nuanxinlab/heartchat-go/internal/config"
	"github.com/nuanxinlab/heartchat-go/internal/devserver"
	"github.com/nuanxinlab/heartchat-go/internal/model/therapist"
	"github.com/nuanxinlab/heartchat-go/internal/service/reply"
	"github.com/nuanxinlab/heartchat-go/internal/service/session"
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

	therapistStore := therapist.NewMemoryStore(therapist.Seed())
	sessionService := session.NewService()

	replyService, err := reply.NewService(ctx, cfg.Model)
	if err != nil {
		log.Printf("warning: failed to initialize model-backed replies: %v", err)
		log.Println("falling back to scripted replies - 请检查 Ark 模型相关环境变量")
		replyService, _ = reply.NewService(ctx, config.ModelConfig{})
	}
	if replyService.ModelBacked() {
		log.Println("model-backed replies enabled")
	} else {
		log.Println("Ark 凭证未配置，使用脚本化回复")
	}

	router := devserver.NewRouter(therapistStore, sessionService, replyService)

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

	log.Printf("heartchat mock server listening on %s", addr)
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
