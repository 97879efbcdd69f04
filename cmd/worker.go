package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"example.com/westo/services/garment/config"
	"example.com/westo/services/garment/internal/cache"
	"example.com/westo/services/garment/internal/database"
	"example.com/westo/services/garment/internal/messaging"
	"example.com/westo/services/garment/internal/metrics"
	"example.com/westo/services/garment/internal/repository"
	"example.com/westo/services/garment/internal/search"
	"example.com/westo/services/garment/internal/service"
	"example.com/westo/services/garment/internal/tracing"

	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background worker",
	Long: `Start the background worker that indexes completed orders from the
Service Bus queue and reconciles missing QR products`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
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

	g, ctx := errgroup.WithContext(ctx)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
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
		return errors.Wrap(err, "failed to initialize Service Bus")
	}
	defer serviceBus.Close()

	metricsCollector := metrics.NewMetrics()

	cuttingRepo := repository.NewCuttingRecordRepository(db)
	orderRepo := repository.NewManufacturingOrderRepository(db)
	qrRepo := repository.NewQRProductRepository(db)

	manufacturingService := service.NewManufacturingService(orderRepo, cuttingRepo, qrRepo, serviceBus, redisCache, metricsCollector, tracer)
	qrService := service.NewQRProductService(qrRepo, elasticClient)

	// Index QR products into the search cluster as completion events
	// arrive on the queue.
	g.Go(func() error {
		log.Info().Str("queue", cfg.ServiceBus.QueueName).Msg("Starting Service Bus processor")
		return serviceBus.ProcessMessages(ctx, func(ctx context.Context, event messaging.Event) error {
			if event.Type != messaging.EventOrderCompleted || event.Order == nil {
				log.Warn().Str("type", event.Type).Msg("Skipping unrecognized event")
				return nil
			}
			return qrService.Index(ctx, event.Order.ManufacturingID)
		})
	})

	// The reconciliation job backstops the completion flow: any order
	// that reached Completed without its QR product gets one here.
	g.Go(func() error {
		log.Info().Dur("interval", cfg.Reconcile.Interval).Msg("Starting QR product reconciliation job")

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return err
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Reconcile.Interval),
			gocron.NewTask(func() {
				if err := manufacturingService.ReconcileQRProducts(ctx, cfg.Reconcile.BatchSize); err != nil {
					log.Error().Err(err).Msg("Failed to reconcile QR products")
				}
			}),
		)
		if err != nil {
			return err
		}

		scheduler.Start()

		<-ctx.Done()

		return scheduler.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker error")
		return err
	}

	log.Info().Msg("Worker shutting down gracefully")
	return nil
}
