// Package bootstrap opens everything the pipeline needs from a Config.
package bootstrap

import (
	"fmt"
	"log"

	"phishguard-api/classifier"
	"phishguard-api/config"
	"phishguard-api/features"
	"phishguard-api/lookup"
	"phishguard-api/services"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds the long-lived collaborators shared by the server and the CLI.
type App struct {
	DB       *gorm.DB
	Store    *services.PredictionStore
	Cache    *services.CacheService
	Audit    *services.AuditLog
	Mapping  *lookup.Mapping
	Model    classifier.Model
	Pipeline *services.Pipeline
}

// OpenStore connects to the configured database and migrates the predictions table.
func OpenStore(cfg config.DatabaseConfig) (*gorm.DB, *services.PredictionStore, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql db handle: %w", err)
	}
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	store := services.NewPredictionStore(db)
	if err := store.AutoMigrate(); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return db, store, nil
}

// NewExtractor builds the URL feature extractor. WHOIS answers are cached in
// redis when the cache is available.
func NewExtractor(cfg config.FeatureConfig, cache *services.CacheService) *features.URLExtractor {
	var whois features.WhoisLookup = features.NewWhoisClient(cfg.Timeout)
	if cache.Available() {
		whois = features.NewCachedWhois(whois, cache, cfg.WhoisCacheTTL)
	}
	return features.NewURLExtractor(whois, features.NewDNSResolver(cfg.Timeout), cfg.Timeout)
}

// New loads the model, mapping and sinks and assembles the pipeline.
// Redis is optional: a failed connection is logged and the app runs without it.
func New(cfg *config.Config) (*App, error) {
	db, store, err := OpenStore(cfg.Database)
	if err != nil {
		return nil, err
	}

	model, err := classifier.Load(cfg.Model.Path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	mapping, err := lookup.Load(cfg.Data.MappingPath)
	if err != nil {
		return nil, fmt.Errorf("load mapping: %w", err)
	}
	log.Printf("loaded %d legitimate-site mappings from %s", mapping.Len(), cfg.Data.MappingPath)

	audit, err := services.OpenAuditLog(cfg.Data.AuditFile)
	if err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}

	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("redis unavailable, continuing without pub/sub and whois cache: %v", err)
	}

	channel := ""
	if cache.Available() {
		channel = cfg.Redis.Channel
	}

	pipeline := services.NewPipeline(
		NewExtractor(cfg.Features, cache),
		model,
		store,
		audit,
		mapping,
		cache,
		services.PipelineOptions{Channel: channel, PersistSuggestion: cfg.Data.PersistSuggestion},
	)

	return &App{
		DB:       db,
		Store:    store,
		Cache:    cache,
		Audit:    audit,
		Mapping:  mapping,
		Model:    model,
		Pipeline: pipeline,
	}, nil
}

// Close releases the audit file, redis and the database handle.
func (a *App) Close() {
	if err := a.Audit.Close(); err != nil {
		log.Printf("close audit file: %v", err)
	}
	if err := a.Cache.Close(); err != nil {
		log.Printf("close redis: %v", err)
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
