package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"chartsmith/internal/config"
	"chartsmith/internal/llm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("llm client: %v", err)
	}
	defer client.Close()

	stores, err := initStores(cfg)
	if err != nil {
		log.Fatalf("stores: %v", err)
	}
	defer stores.Close()

	s := newAPIServer(client, stores)
	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: h2c.NewHandler(buildMux(s), &http2.Server{}),
	}

	go func() {
		log.Printf("api listening on %s (env=%s, llm=%s)", cfg.Port, cfg.Env, client.Name())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	// Flush every open styling session before the process goes away;
	// pending edits must not be dropped on teardown.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.sessions.CloseAll(shutdownCtx); err != nil {
		log.Printf("shutdown: styling flush: %v", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func newLLMClient(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	var (
		client llm.Client
		err    error
	)
	switch cfg.Provider {
	case "gemini":
		client, err = llm.NewGeminiClient(ctx, cfg.Model)
	case "groq":
		client, err = llm.NewGroqClient("", cfg.Model)
	default:
		client = llm.NewFakeClient()
	}
	if err != nil {
		return nil, err
	}
	return llm.Wrap(client, llm.LogCalls()), nil
}
