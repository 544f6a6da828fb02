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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	buildQuoteHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/build_quote"
	cancelBookingHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/get_booking"
	getGuestBookingsHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/get_guest_bookings"
	getRateMatrixHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/get_rate_matrix"
	getVenueBookingsHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/get_venue_bookings"
	syncCalendarHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/sync_calendar"
	updateAvailabilityHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/update_availability"
	updateRateMatrixHandler "github.com/blocmark/BM-PricingService/internal/api/handlers/update_rate_matrix"
	"github.com/blocmark/BM-PricingService/internal/api/middleware"
	"github.com/blocmark/BM-PricingService/internal/config"
	availabilityRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/availability"
	bookingRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/booking"
	venueRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/venue"
	calendarSyncClient "github.com/blocmark/BM-PricingService/internal/integrations/calendarsync"
	paymentServiceClient "github.com/blocmark/BM-PricingService/internal/integrations/paymentservice"
	availabilityService "github.com/blocmark/BM-PricingService/internal/service/availability"
	bookingsService "github.com/blocmark/BM-PricingService/internal/service/bookings"
	ratesService "github.com/blocmark/BM-PricingService/internal/service/rates"
	buildQuoteUC "github.com/blocmark/BM-PricingService/internal/usecase/build_quote"
	createBookingUC "github.com/blocmark/BM-PricingService/internal/usecase/create_booking"
	syncCalendarUC "github.com/blocmark/BM-PricingService/internal/usecase/sync_calendar"
	"github.com/blocmark/BM-PricingService/pkg/dbmetrics"
	"github.com/blocmark/BM-PricingService/pkg/logger"
	"github.com/blocmark/BM-PricingService/pkg/metrics"
	"github.com/blocmark/BM-PricingService/pkg/simpletxmanager"
	"github.com/blocmark/BM-PricingService/pkg/txmanager"
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

	log.Info("Starting BM-PricingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	calendarClient := calendarSyncClient.NewClient(
		cfg.CalendarSync.URL,
		time.Duration(cfg.CalendarSync.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CalendarSync=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.CalendarSync.URL, cfg.CalendarSync.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		venueRepository        *venueRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		bookingRepository      *bookingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		venueRepository = venueRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		venueRepository = venueRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	ratesSvc := ratesService.NewService(
		venueRepository,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		venueRepository,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		venueRepository,
		log,
	)

	// Инициализируем use cases
	buildQuoteUseCase := buildQuoteUC.NewUseCase(
		venueRepository,
		availabilityRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		buildQuoteUseCase,
		bookingRepository,
		availabilityRepository,
		venueRepository,
		paymentClient,
		txMgr,
		log,
	)

	syncCalendarUseCase := syncCalendarUC.NewUseCase(
		venueRepository,
		availabilityRepository,
		calendarClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	buildQuote := buildQuoteHandler.NewHandler(buildQuoteUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getGuestBookings := getGuestBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	syncCalendar := syncCalendarHandler.NewHandler(syncCalendarUseCase, log)
	getRateMatrix := getRateMatrixHandler.NewHandler(ratesSvc, log)
	updateRateMatrix := updateRateMatrixHandler.NewHandler(ratesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет котировки без создания бронирования
	api.HandleFunc("/quotes", buildQuote.Handle).Methods(http.MethodPost)

	// Rate matrix площадки
	api.HandleFunc("/venues/{venueId}/rates", getRateMatrix.Handle).Methods(http.MethodGet)

	// Календарь доступности площадки
	api.HandleFunc("/venues/{venueId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований гостя
	protected.HandleFunc("/guests/{guestId}/bookings", getGuestBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Обновление rate matrix
	protected.HandleFunc("/venues/{venueId}/rates", updateRateMatrix.Handle).Methods(http.MethodPut)

	// Блокировка и разблокировка дат и слотов
	protected.HandleFunc("/venues/{venueId}/availability", updateAvailability.Handle).Methods(http.MethodPut)

	// Синхронизация с внешним календарем
	protected.HandleFunc("/venues/{venueId}/availability/sync", syncCalendar.Handle).Methods(http.MethodPost)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
