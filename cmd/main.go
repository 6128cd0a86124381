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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	addToWaitlistHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/add_to_waitlist"
	blockDatesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/block_dates"
	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_service"
	generateScheduleHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/generate_schedule"
	getAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_schedule"
	getServiceConfigHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_service_config"
	listBlocksHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_blocks"
	listBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_bookings"
	listWaitlistHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_waitlist"
	promoteWaitlistHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/promote_waitlist"
	unblockDateHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/unblock_date"
	updateBookingStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking_status"
	updateServiceConfigHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_service_config"
	updateSlotHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_slot"
	validateBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	scheduleCache "github.com/m04kA/SMC-SchedulingService/internal/infra/cache/schedule"
	blockRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/block"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/patientservice"
	blocksService "github.com/m04kA/SMC-SchedulingService/internal/service/blocks"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	configService "github.com/m04kA/SMC-SchedulingService/internal/service/config"
	waitlistService "github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
	cancelBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	generateScheduleUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/generate_schedule"
	getAvailabilityUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
	validateBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/migrator"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	// .env необязателен, переменные могут прийти из окружения
	_ = godotenv.Load()

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

	log.Info("Starting SMC-SchedulingService...")

	// Метрики собираются всегда, наружу отдаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	version, err := migrator.Up(db, cfg.Database.MigrationsPath)
	if err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database schema at version %d", version)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis для кэша шаблонов расписания
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// без Redis сервис работает, кэш просто промахивается
		log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
	}

	// RabbitMQ для уведомлений листа ожидания
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ: %v", err)
	}
	defer amqpConn.Close()

	amqpCh, err := amqpConn.Channel()
	if err != nil {
		log.Fatal("Failed to open RabbitMQ channel: %v", err)
	}
	defer amqpCh.Close()

	if _, err := amqpCh.QueueDeclare(cfg.RabbitMQ.Queue, true, false, false, false, nil); err != nil {
		log.Fatal("Failed to declare queue %s: %v", cfg.RabbitMQ.Queue, err)
	}

	publisher := notifier.NewPublisher(
		amqpCh,
		cfg.RabbitMQ.Queue,
		time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second,
		log,
	)
	patientClient := patientservice.NewClient(
		cfg.PatientService.URL,
		time.Duration(cfg.PatientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integrations initialized (RabbitMQ queue=%s, PatientService=%s timeout=%ds)",
		cfg.RabbitMQ.Queue, cfg.PatientService.URL, cfg.PatientService.Timeout)

	// Репозитории
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	waitlistRepository := waitlistRepo.NewRepository(wrappedDB)

	templates := scheduleCache.NewCache(
		scheduleRepository,
		rdb,
		time.Duration(cfg.Redis.TemplateTTL)*time.Second,
		metricsCollector,
		log,
	)

	// Use cases и сервисы
	generateScheduleUseCase := generateScheduleUC.NewUseCase(serviceRepository, templates, txMgr, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		serviceRepository,
		templates,
		blockRepository,
		bookingRepository,
		metricsCollector,
		log,
	)
	validateBookingUseCase := validateBookingUC.NewUseCase(getAvailabilityUseCase, bookingRepository, log)

	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		publisher,
		patientClient,
		cfg.Waitlist.NotifyTTLDuration(),
		metricsCollector,
		log,
	)
	configSvc := configService.NewService(serviceRepository, templates, generateScheduleUseCase, txMgr, log)
	blockSvc := blocksService.NewService(blockRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		validateBookingUseCase,
		bookingRepository,
		waitlistSvc,
		txMgr,
		metricsCollector,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingRepository, waitlistSvc, txMgr, log)

	// Handlers
	createService := createServiceHandler.NewHandler(configSvc, log)
	getServiceConfig := getServiceConfigHandler.NewHandler(configSvc, log)
	updateServiceConfig := updateServiceConfigHandler.NewHandler(configSvc, log)
	generateSchedule := generateScheduleHandler.NewHandler(generateScheduleUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(configSvc, log)
	updateSlot := updateSlotHandler.NewHandler(configSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	blockDates := blockDatesHandler.NewHandler(blockSvc, log)
	listBlocks := listBlocksHandler.NewHandler(blockSvc, log)
	unblockDate := unblockDateHandler.NewHandler(blockSvc, log)
	addToWaitlist := addToWaitlistHandler.NewHandler(waitlistSvc, log)
	listWaitlist := listWaitlistHandler.NewHandler(waitlistSvc, log)
	promoteWaitlist := promoteWaitlistHandler.NewHandler(waitlistSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Услуги и шаблон расписания ---
	api.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}/config", getServiceConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/config", updateServiceConfig.Handle).Methods(http.MethodPut)
	api.HandleFunc("/services/{serviceId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/schedule/generate", generateSchedule.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}/schedule/{weekday}/slots/{time}", updateSlot.Handle).Methods(http.MethodPatch)

	// --- Доступность и бронирования ---
	api.HandleFunc("/services/{serviceId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/bookings/validate", validateBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Блокировки дат ---
	api.HandleFunc("/services/{serviceId}/blocks", blockDates.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}/blocks", listBlocks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/blocks/{date}", unblockDate.Handle).Methods(http.MethodDelete)

	// --- Лист ожидания ---
	api.HandleFunc("/services/{serviceId}/waitlist", addToWaitlist.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}/waitlist", listWaitlist.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/waitlist/promote", promoteWaitlist.Handle).Methods(http.MethodPost)

	// Фоновое истечение уведомлений листа ожидания
	bgCtx, stopBackground := context.WithCancel(context.Background())
	go waitlistSvc.RunExpiry(bgCtx, cfg.Waitlist.ExpiryIntervalDuration())
	log.Info("Waitlist expiry started (interval=%ds, notify_ttl=%dm)",
		cfg.Waitlist.ExpiryInterval, cfg.Waitlist.NotifyTTL)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopBackground()
	close(stopMetricsCh)

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
