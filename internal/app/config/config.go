package config

import (
	"clinic-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "clinic"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Colombo"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			ReportRepairCronSpec:       utils.GetEnvString("APP_REPORT_REPAIR_CRON_SPEC", "@every 5m"),
			ReportRepairLockTTLSeconds: utils.GetEnvInt("APP_REPORT_REPAIR_LOCK_TTL_SECONDS", 60),
			OutboxMaxAttempts:          utils.GetEnvInt("APP_OUTBOX_MAX_ATTEMPTS", 5),
			StrictRateLimitRequests:    utils.GetEnvInt("APP_STRICT_RATE_LIMIT_REQUESTS", 5),
			StrictRateLimitWindowSec:   utils.GetEnvInt("APP_STRICT_RATE_LIMIT_WINDOW_SECONDS", 60),
			StrictRateLimitBlockSec:    utils.GetEnvInt("APP_STRICT_RATE_LIMIT_BLOCK_SECONDS", 300),
			RBACModelPath:              utils.GetEnvString("APP_RBAC_MODEL_PATH", "resources/rbac_model.conf"),
			RBACPolicyPath:             utils.GetEnvString("APP_RBAC_POLICY_PATH", "resources/rbac_policy.csv"),
		},
		Clinic: AppClinic{
			DefaultPatientPassword:   utils.GetEnvString("CLINIC_DEFAULT_PATIENT_PASSWORD", "defaultPassword123"),
			DefaultConsultationFee:   utils.GetEnvInt64("CLINIC_DEFAULT_CONSULTATION_FEE", 500),
			PlatformFee:              utils.GetEnvInt64("CLINIC_PLATFORM_FEE", 50),
			SynthesizedEmailDomain:   utils.GetEnvString("CLINIC_SYNTHESIZED_EMAIL_DOMAIN", "clinic.local"),
			PhoneDefaultRegion:       utils.GetEnvString("CLINIC_PHONE_DEFAULT_REGION", "LK"),
			InvoiceSequenceTTLInHour: utils.GetEnvInt("CLINIC_INVOICE_SEQUENCE_TTL_IN_HOUR", 48),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 12),
		},
		Session: Session{
			ExpiryInHours: utils.GetEnvInt("SESSION_EXPIRY_IN_HOURS", 12),
		},
		RabbitMQ: AppRabbitMQ{
			NotificationQueue: utils.GetEnvString("APP_RABBITMQ_NOTIFICATION_QUEUE", "clinic.notifications"),
		},
		Minio: AppMinio{
			InvoiceBucketName: utils.GetEnvString("APP_MINIO_INVOICE_BUCKET_NAME", "invoices"),
		},
	}
}
