package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Andtit4/site-database-sub001/internal/application/services"
	"github.com/Andtit4/site-database-sub001/internal/bootstrap"
	"github.com/Andtit4/site-database-sub001/internal/config"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/internal/infrastructure/database"
	"github.com/Andtit4/site-database-sub001/internal/infrastructure/lock"
	"github.com/Andtit4/site-database-sub001/pkg/auth"
)

func main() {
	cfg, err := config.Load(".env", "../.env", "../../.env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := services.ValidateSchedule(cfg.Reconcile.Schedule); err != nil {
		log.Fatalf("Invalid RECONCILE_SCHEDULE: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()
	log.Println("✅ Database connection established")

	if err := bootstrap.InitializeSchema(ctx, conn.DB()); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	var locker ports.Locker = lock.NewLocalLocker()
	if cfg.Redis.Addr != "" {
		client, err := lock.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		locker = lock.Chain{locker, lock.NewRedisLocker(client, cfg.Redis.LockTTL)}
		log.Printf("🔑 DDL locks shared through redis at %s", cfg.Redis.Addr)
	}

	svcMgr := services.NewServiceManager(conn.DB(), services.ServiceOptions{
		Locker:            locker,
		Tokens:            auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		ReconcileSchedule: cfg.Reconcile.Schedule,
	})
	log.Println("🔧 Service manager initialized")

	if err := bootstrap.InitializeSystemData(ctx, svcMgr.Auth, cfg.Auth); err != nil {
		log.Fatalf("Failed to initialize system data: %v", err)
	}

	if err := svcMgr.Reconciler.Start(); err != nil {
		log.Fatalf("Failed to start schema reconciler: %v", err)
	}
	defer svcMgr.Reconciler.Stop()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: newRouter(cfg, svcMgr),
	}

	go func() {
		log.Printf("🚀 Server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⏳ Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Graceful shutdown failed: %v", err)
	}
	log.Println("👋 Server stopped")
}
