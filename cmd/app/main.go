package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fueldispatch/cmd"
	httpadapter "fueldispatch/internal/adapters/in/http"
	"fueldispatch/internal/adapters/out/intake"
	"fueldispatch/internal/adapters/out/notify"
	"fueldispatch/internal/core/ports"
	"fueldispatch/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	intakeClient := mustCreateIntakeClient(configs)
	notifier := createNotifier(configs, logger)

	root := cmd.NewCompositionRoot(configs, gormDB, intakeClient, notifier, logger)

	coordinator, err := root.CreateCoordinator()
	if err != nil {
		log.Fatalf("Failed to create coordinator: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreateSyncIntakeOrdersCommandHandler(),
		root.CreateReportDelayedDeliveriesCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	server := httpadapter.NewServer(
		coordinator,
		root.CreateGetPendingOrdersQueryHandler(),
		root.CreateGetCompletedOrdersQueryHandler(),
		root.CreateGetCapacityQueryHandler(),
	)

	startWebServer(server, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn("No .env file found (using environment variables)")
	}

	return cmd.Config{
		HTTPPort:           envOr("HTTP_PORT", "8080"),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             os.Getenv("DB_PORT"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          envOr("DB_SSLMODE", "disable"),
		IntakeBaseURL:      os.Getenv("INTAKE_BASE_URL"),
		NotifyRegion:       os.Getenv("NOTIFY_AWS_REGION"),
		NotifyFromEmail:    os.Getenv("NOTIFY_FROM_EMAIL"),
		NotifyOpsEmail:     os.Getenv("NOTIFY_OPS_EMAIL"),
		RiderName:          os.Getenv("RIDER_NAME"),
		CapacityLiters:     os.Getenv("CAPACITY_LITERS"),
		KegSizeLiters:      os.Getenv("KEG_SIZE_LITERS"),
		BatchTimeWindowMin: os.Getenv("BATCH_TIME_WINDOW_MIN"),
		RescheduleDelayMin: os.Getenv("RESCHEDULE_DELAY_MIN"),
		DelayThresholdMin:  os.Getenv("DELAY_THRESHOLD_MIN"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustCreateIntakeClient(configs cmd.Config) ports.IntakeClient {
	client, err := intake.NewClient(configs.IntakeBaseURL, nil)
	if err != nil {
		log.Fatalf("Failed to create intake client: %v", err)
	}
	return client
}

// createNotifier returns nil when notification addresses are not configured;
// the handlers treat a nil notifier as notifications disabled.
func createNotifier(configs cmd.Config, logger *slog.Logger) ports.Notifier {
	if configs.NotifyFromEmail == "" || configs.NotifyOpsEmail == "" {
		logger.Info("notifications disabled: NOTIFY_FROM_EMAIL or NOTIFY_OPS_EMAIL not set")
		return nil
	}

	notifier, err := notify.NewSESNotifier(context.Background(),
		configs.NotifyRegion, configs.NotifyFromEmail, configs.NotifyOpsEmail, logger)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}
	return notifier
}

func startWebServer(server *httpadapter.Server, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
