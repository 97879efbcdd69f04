package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"example.com/westo/services/garment/config"
	"example.com/westo/services/garment/internal/api"
	"example.com/westo/services/garment/internal/cache"
	"example.com/westo/services/garment/internal/database"
	"example.com/westo/services/garment/internal/messaging"
	"example.com/westo/services/garment/internal/metrics"
	"example.com/westo/services/garment/internal/repository"
	"example.com/westo/services/garment/internal/search"
	"example.com/westo/services/garment/internal/service"
	"example.com/westo/services/garment/internal/tracing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for the garment inventory endpoints`,
	RunE:  runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without caching")
		redisCache = &cache.RedisCache{}
	}
	defer redisCache.Close()

	tracer, err := tracing.NewTracer(cfg.Tracing)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		tracer = &tracing.NewRelicTracer{}
	}
	defer tracer.Close()

	elasticClient, err := search.NewElasticClient(cfg.Elastic)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Elasticsearch client, continuing without search")
	}

	serviceBus, err := messaging.NewServiceBus(cfg.ServiceBus)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Service Bus, continuing without events")
		serviceBus = &messaging.ServiceBus{}
	}
	defer serviceBus.Close()

	metricsCollector := metrics.NewMetrics()
	metricsCollector.SetHealthCheck("database", true)

	cuttingRepo := repository.NewCuttingRecordRepository(db)
	orderRepo := repository.NewManufacturingOrderRepository(db)
	qrRepo := repository.NewQRProductRepository(db)
	fabricRepo := repository.NewFabricRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	services := api.Services{
		Cutting:       service.NewCuttingService(cuttingRepo, redisCache),
		Manufacturing: service.NewManufacturingService(orderRepo, cuttingRepo, qrRepo, serviceBus, redisCache, metricsCollector, tracer),
		QRProduct:     service.NewQRProductService(qrRepo, elasticClient),
		Fabric:        service.NewFabricService(fabricRepo, metricsCollector),
		Employee:      service.NewEmployeeService(employeeRepo),
		Dashboard:     service.NewDashboardService(fabricRepo, cuttingRepo, orderRepo, qrRepo, redisCache),
	}

	server := api.NewServer(cfg, services, metricsCollector, tracer)

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Shutting down API server")
	return nil
}
