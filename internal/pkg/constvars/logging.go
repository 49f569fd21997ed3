package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingSessionDataKey    = "session_data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingOperationKey      = "operation"

	LoggingAppointmentIDKey  = "appointment_id"
	LoggingInvoiceIDKey      = "invoice_id"
	LoggingInvoiceNumberKey  = "invoice_number"
	LoggingPatientIDKey      = "patient_id"
	LoggingDoctorIDKey       = "doctor_id"
	LoggingUserIDKey         = "user_id"
	LoggingRoleKey           = "role"
	LoggingStatusKey         = "status"
	LoggingPaymentStatusKey  = "payment_status"
	LoggingSideEffectKey     = "side_effect"
	LoggingCountKey          = "count"
	LoggingOutboxKindKey     = "outbox_kind"
	LoggingOutboxAttemptsKey = "outbox_attempts"
	LoggingBucketNameKey     = "bucket_name"
	LoggingObjectNameKey     = "object_name"
	LoggingQueueNameKey      = "queue_name"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
)
