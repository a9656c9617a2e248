package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"inventory/internal/config"
	"inventory/internal/infra/cache"
	"inventory/internal/infra/db"
	repo "inventory/internal/repository"
	"inventory/internal/server"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func main() {
	logger := log.New("inventory")
	logger.SetHeader(`{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`)

	//.envは無くてもよい（環境変数だけで動く）
	if err := godotenv.Load(); err != nil {
		logger.Warnf("no .env loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	logger.SetLevel(logLevel(cfg.LogLevel))
	log.SetLevel(logLevel(cfg.LogLevel))

	// 金額はJSONの数値で返す
	decimal.MarshalJSONWithoutQuotes = true

	//DB接続
	gormDB, err := db.Connect(cfg, gormWriter{logger})
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("db migrate: %v", err)
	}

	//カテゴリキャッシュ（REDIS_ADDR未設定ならキャッシュなし）
	var categoryCache repo.CategoryCache = cache.NoopCategoryCache{}
	redisClient, err := cache.NewRedisClient(context.Background(), cfg)
	if err != nil {
		logger.Warnf("redis disabled: %v", err)
	}
	if redisClient != nil {
		categoryCache = cache.NewRedisCategoryCache(redisClient, cfg.CategoryCacheTTL)
	}

	e := server.New(cfg, logger, server.NewHandlers(gormDB, categoryCache, cfg.Port))

	//Server起動
	go func() {
		logger.Infof("listening on %s (driver=%s)", cfg.Addr(), cfg.DBDriver)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				return e.Shutdown(ctx)
			},
			"redis": func(ctx context.Context) error {
				return closeRedis(redisClient)
			},
			"db": func(ctx context.Context) error {
				return db.Close(ctx, gormDB)
			},
		},
	)

	code := <-wait
	logger.Infof("exited with code %d", code)
	os.Exit(code)
}

func closeRedis(c *redis.Client) error {
	if c == nil {
		return nil
	}
	return c.Close()
}

func logLevel(s string) log.Lvl {
	switch s {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// GORMのSQLログをechoと同じロガーへ流す
type gormWriter struct {
	l *log.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.l.Infof(format, args...)
}
