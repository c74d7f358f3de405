package di

import (
	"context"
	"fmt"
	"time"

	"benefits-server/api"
	"benefits-server/api/catalog"
	"benefits-server/config"
	"benefits-server/dao/redis"
	"benefits-server/db"
	"benefits-server/logger"
	"benefits-server/server"
	"benefits-server/server/handlers"
	services "benefits-server/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	Config                   config.Config
	RedisClient              db.RedisClient
	RedisBenefitDao          *redis.RedisBenefitDAO
	CatalogAPI               catalog.CatalogAPI
	BenefitService           *services.BenefitService
	BenefitsRefresherService *services.BenefitsRefresherService
	BenefitHandler           *handlers.BenefitHandler
	DaysHandler              *handlers.DaysHandler
	RateLimiter              *server.RateLimiter
	MuxRouter                *mux.Router
	Router                   *server.Router
	BenefitsHttpServer       *server.BenefitsHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	log := logger.Named("di")
	log.Info("Initializing container", zap.String("env", cfg.Env))

	var redisClient db.RedisClient
	if cfg.IsTest() {
		log.Info("Using mock redis client")
		redisClient = db.NewMockRedisClient()
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisClient = db.NewGeoRedisClient(redisInternalClient)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	redisBenefitDao := redis.NewRedisBenefitDAO(redisClient)

	var catalogAPI catalog.CatalogAPI
	if cfg.IsProduction() {
		log.Info("Using catalog api", zap.String("base_url", cfg.CatalogBaseURL))
		catalogAPI = catalog.NewCatalogApiClient(api.NewHTTPClient(cfg.CatalogBaseURL))
		catalogAPI.SetCredentials(cfg.CatalogAPIKey)
	} else {
		log.Info("Using mock catalog api")
		catalogAPI = catalog.NewCatalogApiClientMock()
	}

	benefitService := services.NewBenefitService(redisBenefitDao)
	refresher := services.NewBenefitsRefresherService(redisBenefitDao, catalogAPI, cfg.CatalogMaxPages)

	benefitHandler := handlers.NewBenefitHandler(benefitService)
	daysHandler := handlers.NewDaysHandler(benefitService)

	rateLimiter := server.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst)
	muxRouter := mux.NewRouter()
	router := server.NewRouter(benefitHandler, daysHandler, muxRouter,
		server.RequestIDMiddleware,
		server.AccessLogMiddleware(logger.Named("http")),
		rateLimiter.Middleware,
	)
	httpServer := server.NewBenefitsHttpServer(router, muxRouter, cfg.AppPort)

	return &Container{
		Config:                   cfg,
		RedisClient:              redisClient,
		RedisBenefitDao:          redisBenefitDao,
		CatalogAPI:               catalogAPI,
		BenefitService:           benefitService,
		BenefitsRefresherService: refresher,
		BenefitHandler:           benefitHandler,
		DaysHandler:              daysHandler,
		RateLimiter:              rateLimiter,
		MuxRouter:                muxRouter,
		Router:                   router,
		BenefitsHttpServer:       httpServer,
	}, nil
}
