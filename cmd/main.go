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

	addScheduleExceptionHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/add_schedule_exception"
	addScheduleOverrideHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/add_schedule_override"
	checkStaffAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/check_staff_availability"
	createPatternHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_pattern"
	createScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_schedule"
	deleteScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_schedule"
	exportPatternFeedHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/export_pattern_feed"
	generateNextBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/generate_next_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_available_slots"
	getClientPatternsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_client_patterns"
	getPatternHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_pattern"
	getStaffAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_staff_availability"
	getStaffSchedulesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_staff_schedules"
	getUpcomingOccurrencesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_upcoming_occurrences"
	removeScheduleExceptionHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/remove_schedule_exception"
	removeScheduleOverrideHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/remove_schedule_override"
	updatePatternStatusHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_pattern_status"
	updateWeeklyScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_weekly_schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	patternRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/pattern"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	bookingServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-ScheduleService/internal/recurrence"
	patternsService "github.com/m04kA/SMC-ScheduleService/internal/service/patterns"
	schedulesService "github.com/m04kA/SMC-ScheduleService/internal/service/schedules"
	"github.com/m04kA/SMC-ScheduleService/internal/slots"
	exportPatternFeedUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/export_pattern_feed"
	generateNextBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_next_booking"
	getUpcomingOccurrencesUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_upcoming_occurrences"
	"github.com/m04kA/SMC-ScheduleService/internal/worker"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
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

	// Инициализируем интеграционного клиента BookingService
	bookingClient := bookingServiceClient.NewClient(
		cfg.BookingService.URL,
		time.Duration(cfg.BookingService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (BookingService=%s timeout=%ds)",
		cfg.BookingService.URL, cfg.BookingService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		scheduleRepository *scheduleRepo.Repository
		patternRepository  *patternRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		patternRepository = patternRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		scheduleRepository = scheduleRepo.NewRepository(db)
		patternRepository = patternRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем вычислительное ядро: резолвер доступности,
	// генератор слотов и движок повторений
	resolver := availability.NewResolver(scheduleRepository, log)
	slotGenerator := slots.NewGenerator(resolver, log)
	engine := recurrence.NewEngine()

	// Инициализируем сервисы
	scheduleSvc := schedulesService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)
	patternSvc := patternsService.NewService(
		patternRepository,
		log,
	)

	// Инициализируем use cases
	getUpcomingOccurrencesUseCase := getUpcomingOccurrencesUC.NewUseCase(
		patternRepository,
		engine,
		log,
	)
	generateNextBookingUseCase := generateNextBookingUC.NewUseCase(
		patternRepository,
		engine,
		resolver,
		bookingClient,
		log,
	)
	exportPatternFeedUseCase := exportPatternFeedUC.NewUseCase(
		patternRepository,
		engine,
		log,
	)

	// Инициализируем handlers
	getStaffAvailability := getStaffAvailabilityHandler.NewHandler(resolver, log)
	checkStaffAvailability := checkStaffAvailabilityHandler.NewHandler(resolver, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotGenerator, log)
	createSchedule := createScheduleHandler.NewHandler(scheduleSvc, log)
	getStaffSchedules := getStaffSchedulesHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)
	updateWeeklySchedule := updateWeeklyScheduleHandler.NewHandler(scheduleSvc, log)
	addScheduleException := addScheduleExceptionHandler.NewHandler(scheduleSvc, log)
	removeScheduleException := removeScheduleExceptionHandler.NewHandler(scheduleSvc, log)
	addScheduleOverride := addScheduleOverrideHandler.NewHandler(scheduleSvc, log)
	removeScheduleOverride := removeScheduleOverrideHandler.NewHandler(scheduleSvc, log)
	createPattern := createPatternHandler.NewHandler(patternSvc, log)
	getPattern := getPatternHandler.NewHandler(patternSvc, log)
	getClientPatterns := getClientPatternsHandler.NewHandler(patternSvc, log)
	updatePatternStatus := updatePatternStatusHandler.NewHandler(patternSvc, log)
	getUpcomingOccurrences := getUpcomingOccurrencesHandler.NewHandler(getUpcomingOccurrencesUseCase, log)
	generateNextBooking := generateNextBookingHandler.NewHandler(generateNextBookingUseCase, log)
	exportPatternFeed := exportPatternFeedHandler.NewHandler(exportPatternFeedUseCase, log)

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

	// Доступность сотрудника на дату
	api.HandleFunc("/staff/{staffId}/availability",
		getStaffAvailability.Handle).Methods(http.MethodGet)

	// Проверка доступности сотрудника в интервале времени
	api.HandleFunc("/staff/{staffId}/availability/check",
		checkStaffAvailability.Handle).Methods(http.MethodGet)

	// Свободные слоты сотрудника для записи
	api.HandleFunc("/staff/{staffId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Экспорт серии занятий календарной лентой iCalendar
	api.HandleFunc("/patterns/{patternId}/feed.ics",
		exportPatternFeed.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписания сотрудников ---
	// Создание расписания
	protected.HandleFunc("/schedules", createSchedule.Handle).Methods(http.MethodPost)

	// Список расписаний сотрудника
	protected.HandleFunc("/staff/{staffId}/schedules", getStaffSchedules.Handle).Methods(http.MethodGet)

	// Удаление расписания
	protected.HandleFunc("/schedules/{scheduleId}", deleteSchedule.Handle).Methods(http.MethodDelete)

	// Замена недельной сетки расписания
	protected.HandleFunc("/schedules/{scheduleId}/weekly", updateWeeklySchedule.Handle).Methods(http.MethodPut)

	// Исключения расписания (отгулы, отпуска)
	protected.HandleFunc("/schedules/{scheduleId}/exceptions", addScheduleException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedules/{scheduleId}/exceptions", removeScheduleException.Handle).Methods(http.MethodDelete)

	// Переопределения расписания (особые рабочие дни)
	protected.HandleFunc("/schedules/{scheduleId}/overrides", addScheduleOverride.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedules/{scheduleId}/overrides", removeScheduleOverride.Handle).Methods(http.MethodDelete)

	// --- Паттерны повторяющихся занятий ---
	// Создание паттерна
	protected.HandleFunc("/patterns", createPattern.Handle).Methods(http.MethodPost)

	// Получение паттерна по ID
	protected.HandleFunc("/patterns/{patternId}", getPattern.Handle).Methods(http.MethodGet)

	// Паттерны клиента
	protected.HandleFunc("/clients/{clientId}/patterns", getClientPatterns.Handle).Methods(http.MethodGet)

	// Управление жизненным циклом паттерна
	protected.HandleFunc("/patterns/{patternId}/status", updatePatternStatus.Handle).Methods(http.MethodPatch)

	// Ближайшие занятия серии
	protected.HandleFunc("/patterns/{patternId}/occurrences", getUpcomingOccurrences.Handle).Methods(http.MethodGet)

	// Материализация следующего занятия серии
	protected.HandleFunc("/patterns/{patternId}/bookings", generateNextBooking.Handle).Methods(http.MethodPost)

	// Инициализируем фонового работника материализации (если включен)
	var materializer *worker.Materializer
	if cfg.Materializer.Enabled {
		materializer = worker.NewMaterializer(
			patternRepository,
			generateNextBookingUseCase,
			engine,
			log,
			cfg.Materializer.CronSpec,
			cfg.Materializer.HorizonDays,
		)
		if err := materializer.Start(); err != nil {
			log.Fatal("Failed to start materializer: %v", err)
		}
		log.Info("Materializer started (cron=%q, horizon=%d days)",
			cfg.Materializer.CronSpec, cfg.Materializer.HorizonDays)
	}

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

	// Останавливаем фонового работника
	if materializer != nil {
		materializer.Stop()
		log.Info("Materializer stopped")
	}

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
