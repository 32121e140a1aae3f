package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"skillmuse/internal/api"
	"skillmuse/internal/config"
	"skillmuse/internal/extract"
	"skillmuse/internal/lesson"
	"skillmuse/internal/providers"
	"skillmuse/internal/storage"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("storage init failed", zap.Error(err))
	}
	defer closeStore()

	manager, err := providers.NewManager(cfg)
	if err != nil {
		log.Fatal("provider init failed", zap.Error(err))
	}

	audit := func(ctx context.Context, rec lesson.AuditRecord) {
		err := store.Audit.InsertLLMCall(ctx, storage.LLMCallRecord{
			Operation:    rec.Operation,
			ProviderName: rec.Provider,
			Model:        rec.Model,
			Status:       rec.Status,
			ErrorType:    string(rec.ErrorType),
		})
		if err != nil {
			log.Warn("llm audit insert failed", zap.Error(err))
		}
	}

	generator := lesson.NewGenerator(cfg, manager, audit, log)
	extractor := extract.New(cfg)
	srv := api.NewServer(cfg, store, extractor, generator, log)

	log.Info("skillmuse api listening",
		zap.String("addr", cfg.APIAddr),
		zap.String("llm_providers", cfg.LLMProviders),
		zap.Bool("database", cfg.DatabaseURL != ""))
	if err := http.ListenAndServe(cfg.APIAddr, srv.Routes()); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

// openStore picks Postgres when DATABASE_URL is set and falls back to the
// in-memory store otherwise, so the API runs without any local services.
func openStore(cfg config.Config, log *zap.Logger) (*storage.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info("no DATABASE_URL set, using in-memory store")
		return storage.NewMemoryStore(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return storage.NewPostgresStore(db), db.Close, nil
}
