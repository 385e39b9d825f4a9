package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/nordeim/Elderly-Care-Center/internal/config"
	bookingRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/booking"
	caregiverRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/caregiver"
	mediaRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/media"
	notificationRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/notification"
	reservationRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/reservation"
	slotRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/slot"
	"github.com/nordeim/Elderly-Care-Center/internal/integrations/mailer"
	"github.com/nordeim/Elderly-Care-Center/internal/integrations/smsgateway"
	"github.com/nordeim/Elderly-Care-Center/internal/jobs"
	mediaPipeline "github.com/nordeim/Elderly-Care-Center/internal/media"
	dispatchNotificationUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/dispatch_notification"
	ingestMediaUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/ingest_media"
	sweepReservationsUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/sweep_reservations"
	transcodeMediaUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/transcode_media"
	"github.com/nordeim/Elderly-Care-Center/pkg/logger"
	"github.com/nordeim/Elderly-Care-Center/pkg/metrics"
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
	"github.com/nordeim/Elderly-Care-Center/pkg/types"
)

const workerConcurrency = 10

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting elderly daycare worker...")

	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	quietStart, err := types.NewTimeStringFromString(cfg.Notifications.QuietHoursStart)
	if err != nil {
		log.Fatal("Invalid quiet_hours_start: %v", err)
	}
	quietEnd, err := types.NewTimeStringFromString(cfg.Notifications.QuietHoursEnd)
	if err != nil {
		log.Fatal("Invalid quiet_hours_end: %v", err)
	}

	// Инициализируем репозитории
	txMgr := txmanager.NewTransactionManager(db)
	bookingRepository := bookingRepo.NewRepository(db)
	slotRepository := slotRepo.NewRepository(db)
	reservationRepository := reservationRepo.NewRepository(db)
	caregiverRepository := caregiverRepo.NewRepository(db)
	notificationRepository := notificationRepo.NewRepository(db)
	mediaRepository := mediaRepo.NewRepository(db)

	// Каналы доставки
	emailClient := mailer.NewClient(cfg.Notifications.SMTP, log)
	smsClient := smsgateway.NewClient(cfg.Notifications.SMS, log)

	// Медиа-пайплайн
	scanScript := ""
	if cfg.Media.VirusScanEnabled {
		scanScript = cfg.Media.VirusScanScript
	}
	scanner := mediaPipeline.NewScanner(scanScript, cfg.Media.VirusScanTimeout, log)
	transcoder := mediaPipeline.NewTranscoder(cfg.Media, log)

	// Клиент очереди: cron-постановка задач из этого же процесса
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	enqueuer := jobs.NewEnqueuer(asynqClient, cfg.Notifications.MaxAttempts, cfg.Media.MaxAttempts, log)

	// Инициализируем use cases
	sweepUseCase := sweepReservationsUC.NewUseCase(
		reservationRepository,
		slotRepository,
		txMgr,
		metricsCollector,
		log,
		cfg.Sweeper.BatchSize,
	)
	dispatchUseCase := dispatchNotificationUC.NewUseCase(
		notificationRepository,
		bookingRepository,
		slotRepository,
		caregiverRepository,
		emailClient,
		smsClient,
		metricsCollector,
		log,
		dispatchNotificationUC.Settings{
			QuietHoursStart:  quietStart,
			QuietHoursEnd:    quietEnd,
			SimulateDelivery: cfg.Notifications.SimulateDelivery,
		},
	)
	ingestUseCase := ingestMediaUC.NewUseCase(
		mediaRepository,
		scanner,
		enqueuer,
		metricsCollector,
		log,
	)
	transcodeUseCase := transcodeMediaUC.NewUseCase(
		mediaRepository,
		transcoder,
		metricsCollector,
		log,
	)

	// Сервер очереди задач
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:    workerConcurrency,
		RetryDelayFunc: jobs.RetryDelayFunc(cfg.Notifications.RetryBackoffSeconds, cfg.Media.RetryBackoffSeconds),
	})

	mux := asynq.NewServeMux()
	jobs.NewHandlers(sweepUseCase, dispatchUseCase, ingestUseCase, transcodeUseCase, log).Register(mux)

	// Планировщик периодических задач
	poller := jobs.NewNotificationPoller(notificationRepository, enqueuer, log, cfg.Sweeper.BatchSize)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Sweeper.Interval, func() {
		if err := enqueuer.EnqueueSweep(context.Background()); err != nil {
			log.Error("Failed to enqueue sweep task: %v", err)
		}
	}); err != nil {
		log.Fatal("Invalid sweeper interval %q: %v", cfg.Sweeper.Interval, err)
	}
	if _, err := scheduler.AddFunc(cfg.Notifications.EnqueueInterval, func() {
		if err := poller.Run(context.Background()); err != nil {
			log.Error("Notification poller run failed: %v", err)
		}
	}); err != nil {
		log.Fatal("Invalid notifications enqueue_interval %q: %v", cfg.Notifications.EnqueueInterval, err)
	}
	scheduler.Start()
	log.Info("Scheduler started (sweeper=%q, notifications=%q)", cfg.Sweeper.Interval, cfg.Notifications.EnqueueInterval)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatal("Worker server failed: %v", err)
		}
	}()
	log.Info("Worker started (concurrency=%d)", workerConcurrency)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker...")

	schedulerCtx := scheduler.Stop()
	<-schedulerCtx.Done()

	srv.Shutdown()

	log.Info("Worker stopped gracefully")
}
