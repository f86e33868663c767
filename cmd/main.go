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

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/RoomBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/RoomBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/RoomBookingService/internal/api/handlers/get_booking"
	getPolicyHandler "github.com/m04kA/RoomBookingService/internal/api/handlers/get_policy"
	getRoomAvailabilityHandler "github.com/m04kA/RoomBookingService/internal/api/handlers/get_room_availability"
	getRoomBookingsHandler "github.com/m04kA/RoomBookingService/internal/api/handlers/get_room_bookings"
	getUserBookingsHandler "github.com/m04kA/RoomBookingService/internal/api/handlers/get_user_bookings"
	searchRoomsHandler "github.com/m04kA/RoomBookingService/internal/api/handlers/search_rooms"
	updatePolicyHandler "github.com/m04kA/RoomBookingService/internal/api/handlers/update_policy"
	"github.com/m04kA/RoomBookingService/internal/api/middleware"
	"github.com/m04kA/RoomBookingService/internal/config"
	"github.com/m04kA/RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/booking"
	maintenanceRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/maintenance"
	policyRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/policy"
	roomServiceClient "github.com/m04kA/RoomBookingService/internal/integrations/roomservice"
	userServiceClient "github.com/m04kA/RoomBookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/RoomBookingService/internal/service/bookings"
	policyService "github.com/m04kA/RoomBookingService/internal/service/policy"
	createBookingUC "github.com/m04kA/RoomBookingService/internal/usecase/create_booking"
	getRoomAvailabilityUC "github.com/m04kA/RoomBookingService/internal/usecase/get_room_availability"
	searchRoomsUC "github.com/m04kA/RoomBookingService/internal/usecase/search_rooms"
	"github.com/m04kA/RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/RoomBookingService/pkg/logger"
	"github.com/m04kA/RoomBookingService/pkg/metrics"
	"github.com/m04kA/RoomBookingService/pkg/simpletxmanager"
	"github.com/m04kA/RoomBookingService/pkg/txmanager"
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

	log.Info("Starting RoomBookingService...")
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
	roomClient := roomServiceClient.NewClient(
		cfg.RoomService.URL,
		time.Duration(cfg.RoomService.Timeout)*time.Second,
		log,
	)
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (RoomService=%s timeout=%ds, UserService=%s timeout=%ds)",
		cfg.RoomService.URL, cfg.RoomService.Timeout, cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		maintenanceRepository *maintenanceRepo.Repository
		policyRepository      *policyRepo.Repository
		txMgr                 createBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		maintenanceRepository = maintenanceRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		maintenanceRepository = maintenanceRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userClient,
		bookingsService.RealTimeProvider{},
		metricsCollector,
		log,
	)
	policySvc := policyService.NewService(
		policyRepository,
		userClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		maintenanceRepository,
		policyRepository,
		roomClient,
		txMgr,
		createBookingUC.RealTimeProvider{},
		metricsCollector,
		log,
	)

	searchRoomsUseCase := searchRoomsUC.NewUseCase(
		bookingRepository,
		maintenanceRepository,
		policyRepository,
		roomClient,
		metricsCollector,
		log,
	)

	getRoomAvailabilityUseCase := getRoomAvailabilityUC.NewUseCase(
		bookingRepository,
		maintenanceRepository,
		policyRepository,
		roomClient,
		getRoomAvailabilityUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getRoomBookings := getRoomBookingsHandler.NewHandler(bookingSvc, log)
	searchRooms := searchRoomsHandler.NewHandler(searchRoomsUseCase, log)
	getRoomAvailability := getRoomAvailabilityHandler.NewHandler(getRoomAvailabilityUseCase, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(policySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной request id для всех запросов
	r.Use(middleware.RequestID)

	// Ограничение частоты запросов (если включено)
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Health endpoint (публичный, без аутентификации)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, domain.CodeInternalError, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

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

	// Поиск комнат с агрегированной доступностью на окно
	api.HandleFunc("/rooms/search", searchRooms.Handle).Methods(http.MethodGet)

	// Сетка доступности комнаты на день
	api.HandleFunc("/rooms/{roomId}/availability", getRoomAvailability.Handle).Methods(http.MethodGet)

	// Действующая политика бронирования
	api.HandleFunc("/policy", getPolicy.Handle).Methods(http.MethodGet)

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

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Список бронирований комнаты (для администратора)
	protected.HandleFunc("/rooms/{roomId}/bookings", getRoomBookings.Handle).Methods(http.MethodGet)

	// Обновление политики бронирования (для администратора)
	protected.HandleFunc("/policy", updatePolicy.Handle).Methods(http.MethodPut)

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
