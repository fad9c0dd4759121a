package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "cruisebooking/internal/config"
	router "cruisebooking/internal/http"
	"cruisebooking/internal/store"
	"cruisebooking/internal/upstream"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	drafts, cleanup, err := newDraftStore(env)
	if err != nil {
		log.Fatalf("draft store init failed: %v", err)
	}
	defer cleanup()

	client := upstream.New(env.UpstreamBaseURL, env.UpstreamTimeout)

	r := router.NewRouter(env, drafts, client)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s (upstream %s)", env.AppAddr, env.UpstreamBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}

func newDraftStore(env intconfig.Env) (store.DraftStore, func(), error) {
	if strings.EqualFold(env.DraftStore, "redis") {
		client, err := store.NewRedisClient(env.RedisURL, env.RedisPassword, env.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client, env.DraftTTL), func() { _ = client.Close() }, nil
	}
	mem := store.NewMemoryStore(env.DraftTTL)
	return mem, mem.Close, nil
}
