package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"forik/backend/internal/api/handler"
	"forik/backend/internal/complaint"
	"forik/backend/internal/config"
	"forik/backend/internal/delivery"
	"forik/backend/internal/export"
	"forik/backend/internal/hub"
	"forik/backend/internal/localization"
	"forik/backend/internal/logging"
	"forik/backend/internal/status"
	"forik/backend/internal/storage"
	"forik/backend/internal/submission"
	"forik/backend/internal/suggest"
	"forik/backend/internal/template"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// buildStore selects the persistence backend: Redis by default, PostgreSQL
// for installs that want the state in the same database as everything else,
// memory for throwaway runs.
func buildStore(log *zap.SugaredLogger) (storage.Store, error) {
	switch backend := env("STORE_BACKEND", "redis"); backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Infow("record store ready", "backend", "redis")
		return storage.NewRedisStore(rdb), nil

	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			env("DB_HOST", "localhost"),
			env("DB_USER", "forik"),
			os.Getenv("DB_PASSWORD"),
			env("DB_NAME", "forikdb"),
			env("DB_PORT", "5432"),
		)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store, err := storage.NewGormStore(db)
		if err != nil {
			return nil, fmt.Errorf("migrate kv schema: %w", err)
		}
		log.Infow("record store ready", "backend", "postgres")
		return store, nil

	case "memory":
		log.Infow("record store ready", "backend", "memory")
		return storage.NewMemStore(), nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file, using process environment")
	}

	log, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := buildStore(log)
	if err != nil {
		log.Fatalw("store init failed", "error", err)
	}

	routing, err := config.LoadRouting(os.Getenv("ROUTING_FILE"))
	if err != nil {
		log.Fatalw("routing table init failed", "error", err)
	}
	loc, err := localization.NewLocalizer()
	if err != nil {
		log.Fatalw("localization init failed", "error", err)
	}

	templates := template.NewService(store)
	records := complaint.NewService(store, templates)
	sender := delivery.NewSender(store, log)
	suggestions := suggest.NewService(store)
	snapshots := export.NewService(store, records)

	eventHub := hub.NewManager(log)
	watcher := status.NewWatcher(records, store, eventHub, sender, log)
	bridge := submission.NewBridge(env("BRIDGE_URL", "http://localhost:8090"))
	runner := submission.NewRunner(records, templates, routing, bridge, eventHub, log)

	h := handler.NewHandler(records, templates, sender, runner, suggestions, snapshots,
		eventHub, loc, routing, store, log, env("JWT_SECRET", "forik-dev-secret"))

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	h.Register(r)

	server := &http.Server{
		Addr:           ":" + env("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return eventHub.Run(ctx) })
	g.Go(func() error { return watcher.Run(ctx) })
	g.Go(func() error {
		log.Infow("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		runner.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalw("backend stopped", "error", err)
	}
	log.Infow("backend stopped")
}
