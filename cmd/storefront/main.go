package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appearanceapp "github.com/wyfcoding/storefront/internal/appearance/application"
	appearancedomain "github.com/wyfcoding/storefront/internal/appearance/domain"
	appearancemysql "github.com/wyfcoding/storefront/internal/appearance/infrastructure/persistence/mysql"
	appearancehttp "github.com/wyfcoding/storefront/internal/appearance/interfaces/http"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/catalog/infrastructure/messaging"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/storefront/internal/catalog/interfaces/http"
	merchapp "github.com/wyfcoding/storefront/internal/merchandising/application"
	merchmysql "github.com/wyfcoding/storefront/internal/merchandising/infrastructure/persistence/mysql"
	merchhttp "github.com/wyfcoding/storefront/internal/merchandising/interfaces/http"
	pricingapp "github.com/wyfcoding/storefront/internal/pricing/application"
	pricingdomain "github.com/wyfcoding/storefront/internal/pricing/domain"
	pricingmysql "github.com/wyfcoding/storefront/internal/pricing/infrastructure/persistence/mysql"
	pricinghttp "github.com/wyfcoding/storefront/internal/pricing/interfaces/http"
	recapp "github.com/wyfcoding/storefront/internal/recommendation/application"
	rechttp "github.com/wyfcoding/storefront/internal/recommendation/interfaces/http"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/mq"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/storefront/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("read config failed: %v", err))
	}

	// 2. Logger
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting service", "service", cfg.ServiceName, "version", cfg.Version, "environment", cfg.Environment)

	// 3. Database
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to connect database", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&catalogdomain.ProductImage{},
		&catalogdomain.ProductVariation{},
		&pricingdomain.Coupon{},
		&pricingdomain.CouponRedemption{},
		&appearancedomain.StoreSettings{},
		&appearancedomain.HomeBanner{},
	); err != nil {
		logger.Fatal(ctx, "Failed to migrate database", "error", err)
	}

	// 4. Event publisher
	publisher := messaging.NewNoopPublisher()
	if cfg.Kafka.Enabled {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "Failed to create kafka producer", "error", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaPublisher(producer, cfg.Kafka.Topic)
	}

	// 5. Infrastructure
	productRepo := catalogmysql.NewProductRepository(database.DB)
	categoryRepo := catalogmysql.NewCategoryRepository(database.DB)
	couponRepo := pricingmysql.NewCouponRepository(database.DB)
	positionRepo := merchmysql.NewPositionRepository(database)
	settingsRepo := appearancemysql.NewSettingsRepository(database.DB)
	bannerRepo := appearancemysql.NewBannerRepository(database.DB)

	// 6. Application
	catalogCommands := catalogapp.NewCatalogCommandService(productRepo, categoryRepo, publisher)
	catalogQueries := catalogapp.NewCatalogQueryService(productRepo, categoryRepo)
	pricingService := pricingapp.NewPricingService(productRepo, couponRepo)
	recommendationService := recapp.NewRecommendationService(productRepo)
	merchandisingService := merchapp.NewMerchandisingService(positionRepo)
	appearanceService := appearanceapp.NewAppearanceService(settingsRepo, bannerRepo)

	// 7. HTTP
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogging())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	api := router.Group("/api/v1")
	cataloghttp.NewCatalogHandler(catalogCommands, catalogQueries).RegisterRoutes(api)
	pricinghttp.NewPricingHandler(pricingService).RegisterRoutes(api)
	rechttp.NewRecommendationHandler(recommendationService).RegisterRoutes(api)
	merchhttp.NewMerchandisingHandler(merchandisingService).RegisterRoutes(api)
	appearancehttp.NewAppearanceHandler(appearanceService).RegisterRoutes(api)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	// 8. Start
	go func() {
		logger.Info(ctx, "Starting HTTP server", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server failed", "error", err)
		}
	}()

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown failed", "error", err)
	}
	logger.Info(ctx, "Server exiting")
}
