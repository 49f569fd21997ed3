package main

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/app/delivery/http/routers"
	"clinic-service/internal/app/drivers/database"
	"clinic-service/internal/app/drivers/logger"
	"clinic-service/internal/app/drivers/messaging"
	"clinic-service/internal/app/drivers/rbac"
	"clinic-service/internal/app/drivers/storage"
	"clinic-service/internal/app/services/core/appointments"
	"clinic-service/internal/app/services/core/auth"
	"clinic-service/internal/app/services/core/invoices"
	"clinic-service/internal/app/services/core/messages"
	"clinic-service/internal/app/services/core/reports"
	"clinic-service/internal/app/services/core/session"
	"clinic-service/internal/app/services/core/users"
	"clinic-service/internal/app/services/shared/locker"
	"clinic-service/internal/app/services/shared/metrics"
	"clinic-service/internal/app/services/shared/notifier"
	"clinic-service/internal/app/services/shared/outbox"
	"clinic-service/internal/app/services/shared/redis"
	sharedStorage "clinic-service/internal/app/services/shared/storage"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        database.NewMongoDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		Logger:         zapLogger,
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig, internalConfig),
		Minio:          storage.NewMinio(driverConfig, internalConfig),
		Enforcer:       rbac.NewEnforcer(internalConfig),
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	cfg := bootstrap.InternalConfig

	clinicMetrics := metrics.NewClinicMetrics(prometheus.DefaultRegisterer)

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	outboxService := outbox.NewOutboxService(redisRepository, log)
	documentStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)

	messageRepository := messages.NewMessageMongoRepository(bootstrap.MongoDB)
	notificationService, err := notifier.NewNotifierService(
		bootstrap.RabbitMQ,
		messageRepository,
		cfg.RabbitMQ.NotificationQueue,
		cfg.Clinic.PhoneDefaultRegion,
		log,
	)
	if err != nil {
		return err
	}

	// Repositories
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)
	invoiceRepository := invoices.NewInvoiceMongoRepository(bootstrap.MongoDB)
	reportRepository := reports.NewReportMongoRepository(bootstrap.MongoDB)

	// Usecases
	sessionService := session.NewSessionService(redisRepository, log)
	authUsecase := auth.NewAuthUsecase(userRepository, sessionService, cfg, log)
	reportUsecase := reports.NewReportUsecase(reportRepository, appointmentRepository, invoiceRepository, log)
	invoiceUsecase := invoices.NewInvoiceUsecase(
		invoiceRepository,
		appointmentRepository,
		userRepository,
		redisRepository,
		documentStorage,
		clinicMetrics,
		cfg,
		log,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		userRepository,
		invoiceUsecase,
		reportUsecase,
		notificationService,
		outboxService,
		clinicMetrics,
		cfg,
		log,
	)

	// Outbox replay worker
	worker := reports.NewWorker(log, cfg, lockerService, outboxService, reportUsecase, invoiceUsecase, clinicMetrics)
	worker.Start(context.Background())
	bootstrap.WorkerStop = worker.Stop

	// HTTP
	middlewares := middlewares.NewMiddlewares(log, sessionService, bootstrap.Enforcer, clinicMetrics, cfg)
	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewares,
		controllers.NewAuthController(log, authUsecase),
		controllers.NewAppointmentController(log, appointmentUsecase),
		controllers.NewInvoiceController(log, invoiceUsecase, reportUsecase),
		controllers.NewReportController(log, reportUsecase),
	)
	return nil
}
