package main

import (
	"time"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/config"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/handler"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/infra/cache"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/infra/db"
	infraRepo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/infra/repository"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/logging"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/server"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const recommendationTTL = 10 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Measurement{},
		&model.Product{},
		&model.Stock{},
		&model.Cart{},
		&model.CartItem{},
		&model.CartDetails{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderDetails{},
	); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	itemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	cartDetailsRepo := infraRepo.NewCartDetailsGormRepository(gormDB)
	catalogRepo := infraRepo.NewCatalogGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderDetailsRepo := infraRepo.NewOrderDetailsGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	var productCache usecase.ProductListCache
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, recommendations uncached", zap.Error(err))
		} else {
			productCache = cache.NewRecommendationCache(client, recommendationTTL)
		}
	}

	minOrderPrice, err := decimal.NewFromString(cfg.MinOrderPrice)
	if err != nil {
		log.Warn("invalid MIN_ORDER_PRICE, using 0", zap.String("value", cfg.MinOrderPrice))
		minOrderPrice = decimal.Zero
	}

	cartUC := usecase.NewCartUsecase(cartRepo, itemRepo, cartDetailsRepo, catalogRepo, userRepo, productCache, minOrderPrice, log)
	orderUC := usecase.NewOrderUsecase(txManager, cartRepo, itemRepo, orderRepo, orderDetailsRepo, catalogRepo, log)
	lifecycleUC := usecase.NewOrderLifecycleUsecase(orderRepo, orderDetailsRepo, log)

	cartH := handler.NewCartHandler(cartUC, cfg)
	orderH := handler.NewOrderHandler(orderUC, lifecycleUC, cfg)

	e := server.New(log, cartH, orderH)

	log.Info("starting api", zap.String("port", cfg.Port), zap.String("env", cfg.GoEnv))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
