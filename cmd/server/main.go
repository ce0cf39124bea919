package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"quant_backend/internal/app/router"
	authhandler "quant_backend/internal/feature/auth/transport/handler"
	authusecase "quant_backend/internal/feature/auth/usecase"
	"quant_backend/internal/feature/timeseries/adapters"
	tshandler "quant_backend/internal/feature/timeseries/transport/handler"
	tsusecase "quant_backend/internal/feature/timeseries/usecase"
	"quant_backend/internal/platform/cache"
	infradb "quant_backend/internal/platform/db"
	jwtmw "quant_backend/internal/platform/jwt"
	infraredis "quant_backend/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	seriesRepo := adapters.NewSeriesRepository(db)
	obsRepo := adapters.NewObservationRepository(db)
	runsRepo := adapters.NewIngestRunRepository(db)
	returnsRepo := adapters.NewReturnsRepository(db)

	// Redisキャッシュでラップ（日次データは日付の変わり目まで有効）
	ttl := cache.TimeUntilNextMidnightUTC()
	cachedReturnsRepo := cache.NewCachingReturnsRepository(rdb, ttl, returnsRepo, "returns")

	// Usecase
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	gen := jwtmw.NewGenerator(secret, 12*time.Hour)
	authUC := authusecase.NewAuthUsecase(gen, os.Getenv("OPS_USER"), os.Getenv("OPS_PASSWORD_HASH"))
	seriesUC := tsusecase.NewSeriesUsecase(seriesRepo, obsRepo)
	returnsUC := tsusecase.NewReturnsUsecase(cachedReturnsRepo)
	runsUC := tsusecase.NewRunsUsecase(runsRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	seriesH := tshandler.NewSeriesHandler(seriesUC)
	returnsH := tshandler.NewReturnsHandler(returnsUC)
	runsH := tshandler.NewRunsHandler(runsUC)

	// ルータ生成
	r := router.NewRouter(authH, seriesH, returnsH, runsH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
