package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/contractdesk/go-contract-backend/config"
	"github.com/contractdesk/go-contract-backend/internal/bootstrap"
	"github.com/contractdesk/go-contract-backend/internal/catalog"
	"github.com/contractdesk/go-contract-backend/internal/designer/render"
	"github.com/contractdesk/go-contract-backend/internal/designer/rules"
	"github.com/contractdesk/go-contract-backend/internal/sessions"
	tpldomain "github.com/contractdesk/go-contract-backend/internal/templates/domain"
	"github.com/contractdesk/go-contract-backend/internal/templates/repository"
	"github.com/contractdesk/go-contract-backend/internal/templates/service"
)

// RunAutosave runs the dirty-session sweeper on a cron schedule until the
// process is signalled.
func RunAutosave() {
	svc, cleanup := buildSessionService()
	defer cleanup()

	schedule := os.Getenv("AUTOSAVE_CRON")
	if schedule == "" {
		schedule = "@every 1m"
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		sweep(svc)
	}); err != nil {
		log.Fatalf("cron schedule %q: %v", schedule, err)
	}
	c.Start()
	log.Printf("autosave sweeper running (schedule=%s)", schedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Println("autosave sweeper stopped")
}

// RunSweepOnce performs a single sweep and exits. Useful for cron-less
// deployments and debugging.
func RunSweepOnce() {
	svc, cleanup := buildSessionService()
	defer cleanup()
	sweep(svc)
}

func sweep(svc *sweeper) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ids, err := svc.repo.DirtySessions(ctx)
	if err != nil {
		log.Printf("autosave: list dirty sessions: %v", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	saved, conflicts := 0, 0
	for _, id := range ids {
		if _, _, err := svc.sessions.Save(ctx, id); err != nil {
			if errors.Is(err, tpldomain.ErrVersionConflict) {
				// Someone saved the template behind this session. Leave the
				// session dirty so the editor gets a conflict on manual save.
				conflicts++
				continue
			}
			log.Printf("autosave: session %s: %v", id, err)
			continue
		}
		saved++
	}
	log.Printf("autosave: swept %d sessions (saved=%d conflicts=%d)", len(ids), saved, conflicts)
}

type sweeper struct {
	repo     *sessions.Repo
	sessions *sessions.Service
}

func buildSessionService() (*sweeper, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	cat, err := catalog.Load(cfg.App.CatalogPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	engine, err := rules.FromCatalog(cat)
	if err != nil {
		log.Fatalf("connection rules: %v", err)
	}

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := bootstrap.OpenSQLDB(ctx, cfg.Database.DSN)
	if err != nil {
		db.Close()
		log.Fatalf("sql db: %v", err)
	}
	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		db.Close()
		sqlDB.Close()
		log.Fatalf("redis: %v", err)
	}

	templateSvc := service.NewTemplateService(
		repository.NewTemplateRepository(db),
		repository.NewVersionRepository(sqlDB),
	)
	sessionRepo := sessions.NewRepo(rdb, cfg.Redis.SessionTTL)
	sessionSvc := sessions.NewService(sessionRepo, templateSvc, cat, engine, render.NewRegistry(cat))

	cleanup := func() {
		rdb.Close()
		sqlDB.Close()
		db.Close()
	}
	return &sweeper{repo: sessionRepo, sessions: sessionSvc}, cleanup
}
