package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":          "is required",
	"email":             "must be a valid email",
	"alphanum":          "must contain only alphanumeric characters",
	"min":               "must be at least %s characters long",
	"max":               "maximum at %s characters long",
	"numeric":           "must be a number",
	"len":               "must be %s characters long",
	"oneof":             "must be one of [%s]",
	"gt":                "must be greater than %s",
	"gte":               "must be greater than or equal to %s",
	"lt":                "must be less than %s",
	"lte":               "must be less than or equal to %s",
	"required_without":  "is required when %s is not present",
	"clinic_role":       "must be one of [Admin, Doctor, Compounder, Patient]",
	"payment_status":    "must be one of [Pending, Due, Accepted, Paid]",
	"appointment_state": "must be one of [Pending, Accepted, Rejected, Completed]",
	"invoice_status":    "must be one of [Unpaid, Partial, Paid, Cancelled]",
	"non_negative":      "must not be negative",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":              true,
	"max":              true,
	"len":              true,
	"gt":               true,
	"gte":              true,
	"lt":               true,
	"lte":              true,
	"oneof":            true,
	"required_without": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidUsernameOrPassword     = "Invalid Email Or Password!"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientTooManyRequests               = "Too many requests, you are blocked temporarily."

	ErrClientAppointmentNotFound        = "Appointment not found!"
	ErrClientPatientAppointmentNotFound = "No appointments found for this patient!"
	ErrClientSearchAppointmentNotFound  = "No appointments found for given search"
	ErrClientSearchCriteriaRequired     = "Please provide name or phone to search"
	ErrClientDoctorNotFound             = "Doctor not found"
	ErrClientDoctorNotFoundForID        = "doctor not found for id"
	ErrClientInvoiceNotFound            = "Invoice not found"
	ErrClientAppointmentInvoiceNotFound = "No invoices found for this appointment"
	ErrClientInvoiceRequiredFields      = "invoiceNumber and patient are required"
	ErrClientSearchQueryRequired        = "Search query required"
	ErrClientNoIDsProvided              = "No ids provided"
	ErrClientRoleNotAllowed             = "%s not authorized for this resource!"
	ErrClientNegativePayment            = "payment amount must not be negative"
	ErrClientReportNotFound             = "Report not found"
	ErrClientRequestBodyTooLarge        = "request body is too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseTime            = "cannot parse time into the given format"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevInvalidFormat              = "invalid %s format"
	ErrDevFailedToHashPassword       = "failed to hash password"
	ErrDevInvalidCredentials         = "invalid credentials"
	ErrDevRequesterMissing           = "requester missing from context"
	ErrDevValidationFailed           = "validation failed"

	// Domain messages
	ErrDevAppointmentNotFound      = "appointment %s not found"
	ErrDevDoctorNotFound           = "no doctor matched the request"
	ErrDevDoctorNotFoundForID      = "doctor not found for id %s"
	ErrDevInvoiceNotFound          = "invoice %s not found"
	ErrDevNoInvoicesForAppointment = "no invoices linked to appointment %s"
	ErrDevNegativePaymentAmount    = "payment amount %s is negative"
	ErrDevExportSpreadsheet        = "failed to export spreadsheet"
	ErrDevReportNotFound           = "report for appointment %s not found"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalid          = "invalid token"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthPermissionDenied      = "permission denied"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into rabbitmq queue '%s'"

	// Redis messages
	ErrDevRedisSetData         = "failed to SET data into redis"
	ErrDevRedisGetNoData       = "failed to GET data from redis, there is no data associated with key %s"
	ErrDevRedisDeleteData      = "failed to DELETE data from redis"
	ErrDevRedisIncrementValue  = "failed to INCR data in redis"
	ErrDevRedisExpire          = "failed to EXPIRE key in redis"
	ErrDevRedisRightPushToList = "failed to RPUSH data into list in redis"
	ErrDevRedisLeftPopList     = "failed to LPOP data from list in redis"
	ErrDevRedisListLength      = "failed to LLEN list in redis"
	ErrDevRedisUnlock          = "failed to release redis lock"

	// Server messages
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerParseSessionData = "failed to parse session data"
	ErrDevRequestBodyTooLarge    = "request body exceeds %d megabytes"
	ErrDevPanicRecovered         = "panic recovered while serving request"
)
