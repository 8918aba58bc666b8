// Package server wires the storage, services, and HTTP surface into a
// running API server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"

	"github.com/marcelofalero/swse-architech/internal/api"
	"github.com/marcelofalero/swse-architech/internal/auth"
	"github.com/marcelofalero/swse-architech/internal/config"
	internaldb "github.com/marcelofalero/swse-architech/internal/db"
	"github.com/marcelofalero/swse-architech/internal/db/repository"
	"github.com/marcelofalero/swse-architech/internal/service"
)

// Run migrates the store, seeds the default resource types, and serves
// the API until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	writeDB, readDB, err := internaldb.OpenSQLitePair(cfg.DBPath, 4)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer writeDB.Close()
	defer readDB.Close()

	if err := internaldb.RunMigrations(writeDB); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	// Repositories interleave reads and writes on most paths, so they
	// run on the serialized write pool. The read pool backs the health
	// probe and keeps a lane open for moving listing queries off the
	// writer.
	users := repository.NewUserRepo(writeDB)
	resources := repository.NewResourceRepo(writeDB)
	grants := repository.NewGrantRepo(writeDB)
	groups := repository.NewGroupRepo(writeDB)
	types := repository.NewResourceTypeRepo(writeDB)

	keys := auth.NewKeyCache(cfg.Federated.JWKSURL, cfg.Federated.KeyCacheTTL)
	tokens := auth.NewTokenService(keys)
	validator := service.NewSchemaValidator(types)

	accountSvc := service.NewAccountService(users, tokens, cfg.SessionSecret, cfg.Federated.ClientID, logger)
	resourceSvc := service.NewResourceService(resources, grants, groups, validator, logger)
	sharingSvc := service.NewSharingService(resources, grants, groups, logger)
	groupSvc := service.NewGroupService(groups)
	typeSvc := service.NewTypeService(types, validator)

	if err := typeSvc.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed resource types: %w", err)
	}

	handler := api.NewHandler(accountSvc, resourceSvc, sharingSvc, groupSvc, typeSvc, logger)
	router := api.NewRouter(handler, tokens, api.RouterConfig{
		SessionSecret:  cfg.SessionSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Readiness:      readDB.PingContext,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP API listening", "addr", cfg.ListenAddr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
