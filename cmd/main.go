package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"

	adminInboxHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/admin_inbox"
	cancelBookingHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/create_booking"
	createDepositHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/create_deposit"
	createHoldHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/create_hold"
	exportCalendarHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/export_calendar"
	getBookingHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/get_booking"
	getCaregiverBookingsHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/get_caregiver_bookings"
	getUpcomingSlotsHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/get_upcoming_slots"
	healthHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/health"
	registerMediaHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/register_media"
	stripeWebhookHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/stripe_webhook"
	updateBookingStatusHandler "github.com/nordeim/Elderly-Care-Center/internal/api/handlers/update_booking_status"
	"github.com/nordeim/Elderly-Care-Center/internal/api/middleware"
	"github.com/nordeim/Elderly-Care-Center/internal/config"
	bookingRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/booking"
	caregiverRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/caregiver"
	catalogRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/catalog"
	mediaRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/media"
	notificationRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/notification"
	paymentRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/payment"
	reservationRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/reservation"
	slotRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/slot"
	stripeClient "github.com/nordeim/Elderly-Care-Center/internal/integrations/stripeclient"
	"github.com/nordeim/Elderly-Care-Center/internal/jobs"
	bookingsService "github.com/nordeim/Elderly-Care-Center/internal/service/bookings"
	calendarfeedService "github.com/nordeim/Elderly-Care-Center/internal/service/calendarfeed"
	paymentsService "github.com/nordeim/Elderly-Care-Center/internal/service/payments"
	cancelBookingUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/cancel_booking"
	createBookingUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/create_booking"
	createDepositUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/create_deposit"
	createHoldUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/create_hold"
	registerMediaUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/register_media"
	updateBookingStatusUC "github.com/nordeim/Elderly-Care-Center/internal/usecase/update_booking_status"
	"github.com/nordeim/Elderly-Care-Center/pkg/logger"
	"github.com/nordeim/Elderly-Care-Center/pkg/metrics"
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
)

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

	log.Info("Starting elderly daycare booking service...")

	// Метрики нужны не только на /metrics: их пишут usecases,
	// поэтому коллектор создается всегда, а endpoint — по конфигу
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент очереди задач: постановка приемки медиа из API
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	enqueuer := jobs.NewEnqueuer(asynqClient, cfg.Notifications.MaxAttempts, cfg.Media.MaxAttempts, log)

	// Интеграция со Stripe
	stripe := stripeClient.NewClient(cfg.Payments.StripeSecretKey, log)

	// Инициализируем репозитории
	txMgr := txmanager.NewTransactionManager(db)
	bookingRepository := bookingRepo.NewRepository(db)
	slotRepository := slotRepo.NewRepository(db)
	reservationRepository := reservationRepo.NewRepository(db)
	caregiverRepository := caregiverRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	notificationRepository := notificationRepo.NewRepository(db)
	mediaRepository := mediaRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, caregiverRepository, log)
	calendarSvc := calendarfeedService.NewService(bookingRepository, slotRepository, caregiverRepository, catalogRepository, log)
	paymentSvc := paymentsService.NewService(paymentRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		caregiverRepository,
		txMgr,
		metricsCollector,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		slotRepository,
		caregiverRepository,
		notificationRepository,
		txMgr,
		metricsCollector,
		log,
		cfg.Notifications.DefaultWindowHours,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		metricsCollector,
		log,
	)
	createHoldUseCase := createHoldUC.NewUseCase(
		slotRepository,
		reservationRepository,
		txMgr,
		log,
		cfg.Sweeper.HoldTTLMinutes,
	)
	createDepositUseCase := createDepositUC.NewUseCase(
		bookingRepository,
		slotRepository,
		catalogRepository,
		paymentRepository,
		stripe,
		log,
		cfg.Payments.Currency,
		cfg.Payments.DefaultDepositCents,
	)
	registerMediaUseCase := registerMediaUC.NewUseCase(mediaRepository, enqueuer, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	getUpcomingSlots := getUpcomingSlotsHandler.NewHandler(bookingSvc, log)
	getCaregiverBookings := getCaregiverBookingsHandler.NewHandler(bookingSvc, log)
	adminInbox := adminInboxHandler.NewHandler(bookingSvc, log)
	exportCalendar := exportCalendarHandler.NewHandler(calendarSvc, log)
	createDeposit := createDepositHandler.NewHandler(createDepositUseCase, log)
	registerMedia := registerMediaHandler.NewHandler(registerMediaUseCase, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(paymentSvc, cfg.Payments.StripeWebhookSecret, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Ближайшие слоты с доступностью
	api.HandleFunc("/slots/upcoming", getUpcomingSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования (гости допускаются)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Временное удержание места в слоте
	api.HandleFunc("/slots/{slotId}/hold", createHold.Handle).Methods(http.MethodPost)

	// Депозит по бронированию
	api.HandleFunc("/bookings/{id}/deposit", createDeposit.Handle).Methods(http.MethodPost)

	// Вебхук Stripe (аутентификация подписью)
	api.HandleFunc("/payments/webhook", stripeWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Кабинет опекуна ---
	protected.HandleFunc("/caregivers/me/bookings", getCaregiverBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/caregivers/me/calendar.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/admin/bookings", adminInbox.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/admin/media", registerMedia.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
