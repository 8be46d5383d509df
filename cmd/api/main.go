package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	appslip "github.com/jhoicas/almacen-api/internal/application/slip"
	appstock "github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/cache"
	"github.com/jhoicas/almacen-api/internal/infrastructure/event"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis opcional: sin REDIS_ADDR el resolver va directo a PostgreSQL.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()
	}

	// Kafka opcional: sin KAFKA_BROKERS no se publican eventos de movimiento.
	var publisher appstock.MovementPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := event.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() { _ = producer.Close() }()
		publisher = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("productor de eventos habilitado")
	}

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewStorageLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	slipRepo := postgres.NewSlipRepository(pool)
	detailRepo := postgres.NewSlipDetailRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := cache.NewLocationResolver(locationRepo, rdb, time.Duration(cfg.Redis.TTLSec)*time.Second)

	stockOps := appstock.NewOperationsUseCase(txRunner, itemRepo, resolver, publisher,
		log.WithComponent("inventory"), appstock.VirtualLocations{
			FreezeCode: cfg.Inventory.FreezeLocationCode,
			ScrapCode:  cfg.Inventory.ScrapLocationCode,
		})
	stockQuery := appstock.NewQueryUseCase(stockRepo, movementRepo, resolver)

	slipUC := appslip.NewUseCase(txRunner, slipRepo, detailRepo, resolver, stockOps,
		log.WithComponent("slips"), cfg.Worker.Count, cfg.Worker.QueueSize)
	slipUC.StartWorkers(ctx)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	slipPDFUC := appslip.NewPDFUseCase(slipRepo, detailRepo, itemRepo, resolver, pdfGenerator)

	itemUC := usecase.NewItemUseCase(itemRepo, stockRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	locationUC := usecase.NewStorageLocationUseCase(locationRepo, warehouseRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		WarehouseUC: warehouseUC,
		LocationUC:  locationUC,
		StockOps:    stockOps,
		StockQuery:  stockQuery,
		SlipUC:      slipUC,
		SlipPDF:     slipPDFUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Drenar la cola de líneas antes de soltar el pool de BD.
	slipUC.StopWorkers()

	log.Info().Msg("aplicación detenida")
}
