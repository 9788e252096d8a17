package main

import (
	"context"
	"log"

	"github.com/contractdesk/go-contract-backend/config"
	"github.com/contractdesk/go-contract-backend/internal/assets"
	"github.com/contractdesk/go-contract-backend/internal/bootstrap"
	"github.com/contractdesk/go-contract-backend/internal/catalog"
	"github.com/contractdesk/go-contract-backend/internal/designer/render"
	"github.com/contractdesk/go-contract-backend/internal/designer/rules"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	cat, err := catalog.Load(cfg.App.CatalogPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	engine, err := rules.FromCatalog(cat)
	if err != nil {
		log.Fatalf("connection rules: %v", err)
	}
	registry := render.NewRegistry(cat)

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	sqlDB, err := bootstrap.OpenSQLDB(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("sql db: %v", err)
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	var uploader *assets.Uploader
	if cfg.Assets.Bucket != "" {
		uploader, err = assets.NewUploader(ctx, cfg.Assets.Bucket, cfg.Assets.Region, cfg.Assets.Prefix)
		if err != nil {
			log.Fatalf("assets: %v", err)
		}
	} else {
		log.Println("ASSETS_BUCKET not set, icon uploads disabled")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "contract-designer-api",
		Version:        cfg.App.Version,
		Catalog:        cat,
		Engine:         engine,
		Registry:       registry,
		DB:             db,
		SQLDB:          sqlDB,
		Redis:          rdb,
		SessionTTL:     cfg.Redis.SessionTTL,
		Uploader:       uploader,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	log.Printf("contract-designer-api listening on :%s (env=%s)", cfg.Server.Port, cfg.App.Environment)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
