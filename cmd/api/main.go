package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "lendvault-backend/internal/adapter/http"
	"lendvault-backend/internal/adapter/middleware"
	adporacle "lendvault-backend/internal/adapter/oracle"
	"lendvault-backend/internal/adapter/repository/mysql"
	"lendvault-backend/internal/config"
	"lendvault-backend/internal/domain/oracle"
	"lendvault-backend/internal/infrastructure/cache"
	"lendvault-backend/internal/infrastructure/db"
	"lendvault-backend/internal/policy"
	"lendvault-backend/internal/usecase/ledger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// seed the treasury pool on first boot
	tokens := mysql.NewTokenRepository(gdb)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := tokens.EnsurePool(ctx, cfg.PoolInitialSupply); err != nil {
		cancel()
		log.Fatalf("treasury pool: %v", err)
	}
	cancel()

	var feed oracle.PriceOracle
	switch cfg.OracleMode {
	case config.OracleModeRedis:
		feed = adporacle.NewRedisOracle(rdb, cfg.OracleRedisKey)
	default:
		feed = adporacle.NewStaticOracle(cfg.OracleStaticPrice)
	}

	uc := ledger.NewUsecase(mysql.NewGormUoW(gdb), policy.New(policy.DefaultConfig()), feed)

	h := httpadp.NewHandler()
	ah := httpadp.NewAccountHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// routes
	e.GET("/health", h.Health)

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	g := e.Group("", idemp)
	g.POST("/accounts", ah.CreateAccount)
	g.GET("/accounts/:owner_id", ah.GetAccount)
	g.POST("/accounts/:owner_id/loans", ah.Originate)
	g.POST("/accounts/:owner_id/loans/:loan_id/repayments", ah.Repay)
	g.POST("/accounts/:owner_id/withdrawals", ah.Withdraw)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
