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

	"github.com/gin-gonic/gin"

	"rollcall/internal/accounts"
	"rollcall/internal/attendance"
	"rollcall/internal/auth"
	"rollcall/internal/config"
	"rollcall/internal/handler"
	"rollcall/internal/queue"
	"rollcall/internal/store"
	"rollcall/internal/students"
)

func main() {
	cfg := config.Load()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewDB(cfg.DatabaseURL)
	if db == nil {
		return err
	}
	defer db.Close()

	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokens(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	accountSvc := accounts.NewService(accounts.NewRepository(db.Client), hasher, tokens)

	// An unreachable database is logged and the server keeps running; requests that
	// touch storage fail until it comes back.
	if err != nil {
		log.Printf("warning: db not reachable: %v", err)
	} else {
		log.Println("Connected to database")
		if err := store.Migrate(cfg.DatabaseURL); err != nil {
			log.Printf("warning: migrations failed: %v", err)
		}
		if _, err := accountSvc.Bootstrap(ctx, cfg.BootstrapUsername, cfg.BootstrapPassword); err != nil {
			log.Printf("error creating bootstrap account: %v", err)
		}
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()

	ledgerRepo := attendance.NewRepository(db.Client)
	var cache attendance.Cache
	var q queue.Queue
	if redisClient != nil {
		cache = attendance.NewRedisCache(redisClient.Client, cfg.CacheTTL)
	}
	if cfg.QueueBackend == "memory" || redisClient == nil {
		mem := queue.NewInMemory(64)
		q = mem
		go func() {
			if err := attendance.NewSummarizer(ledgerRepo, cache).Run(ctx, mem); err != nil {
				log.Printf("summarizer stopped: %v", err)
			}
		}()
	} else {
		q = queue.NewRedisQueue(redisClient.Client, queue.DefaultKey)
	}

	h := handler.New(
		accountSvc,
		students.NewService(students.NewRepository(db.Client)),
		attendance.NewService(ledgerRepo, cache, q),
		db,
		redisClient,
	)
	r := handler.NewRouter(h, tokens, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
