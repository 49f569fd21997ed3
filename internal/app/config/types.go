package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}

	InternalConfig struct {
		App      App
		Clinic   AppClinic
		JWT      JWT
		Session  Session
		RabbitMQ AppRabbitMQ
		Minio    AppMinio
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
		// ReportRepairCronSpec schedules the outbox replay worker (e.g. "@every 5m")
		ReportRepairCronSpec       string
		ReportRepairLockTTLSeconds int
		OutboxMaxAttempts          int
		StrictRateLimitRequests    int
		StrictRateLimitWindowSec   int
		StrictRateLimitBlockSec    int
		RBACModelPath              string
		RBACPolicyPath             string
	}

	AppClinic struct {
		DefaultPatientPassword   string
		DefaultConsultationFee   int64
		PlatformFee              int64
		SynthesizedEmailDomain   string
		PhoneDefaultRegion       string
		InvoiceSequenceTTLInHour int
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	Session struct {
		ExpiryInHours int
	}

	AppRabbitMQ struct {
		NotificationQueue string
	}

	AppMinio struct {
		InvoiceBucketName string
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)
