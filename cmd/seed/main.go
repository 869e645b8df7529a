package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/plantify/config"
	"github.com/oksasatya/plantify/internal/container"
	pginfra "github.com/oksasatya/plantify/internal/infrastructure/postgres"
	"github.com/oksasatya/plantify/internal/router"
	"github.com/oksasatya/plantify/pkg/apperror"
	"github.com/oksasatya/plantify/pkg/helpers"
)

const (
	demoEmail    = "demo@plantify.app"
	demoPassword = "password123"
	demoName     = "Demo User"
)

// seed fills the explore catalog and creates a demo account. Running it
// again leaves existing rows alone.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(helpers.TokenConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}))
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		if es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass); err == nil {
			container.SetES(es)
		} else {
			logger.WithError(err).Warn("elasticsearch unavailable; catalog will not be indexed")
		}
	}

	explore := router.BuildExploreService()
	res, err := explore.Seed(ctx)
	if err != nil {
		log.Fatalf("failed to seed explore catalog: %v", err)
	}
	logger.WithFields(logrus.Fields{"plants": res.Plants, "problems": res.Problems}).Info("explore catalog ready")

	if n, err := explore.Reindex(ctx); err != nil {
		logger.WithError(err).Warn("reindex catalog failed")
	} else if n > 0 {
		logger.WithField("plants", n).Info("catalog indexed")
	}

	auth := router.BuildAuthService()
	u, err := auth.Register(ctx, demoEmail, demoPassword, demoName)
	switch {
	case errors.Is(err, apperror.ErrDuplicateEntry):
		logger.WithField("email", demoEmail).Info("demo user already exists")
	case err != nil:
		log.Fatalf("failed to seed demo user: %v", err)
	default:
		logger.WithFields(logrus.Fields{"id": u.User.ID, "email": u.User.Email}).Info("seeded demo user")
	}
}
