package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "CLNC_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&limit=%d"
	AppDefaultPageSize     = 50
)

const (
	MongoCollectionAppointments = "appointments"
	MongoCollectionInvoices     = "invoices"
	MongoCollectionReports      = "reports"
	MongoCollectionUsers        = "users"
	MongoCollectionMessages     = "messages"
)

const (
	RedisKeySessionPrefix        = "session:"
	RedisKeyInvoiceSequenceFmt   = "sequence:invoice:%s"
	RedisKeySideEffectOutbox     = "outbox:side_effects"
	RedisKeyReportRepairLeader   = "worker:report_repair:leader"
	InvoiceNumberFormat          = "INV-%s-%06d"
	InvoiceSequenceDateLayout    = "20060102"
	InvoiceDocumentObjectNameFmt = "invoices/invoice-%s.html"
	InvoiceDocumentFileNameFmt   = "invoice-%s.html"
	AppointmentDocumentFileName  = "appointment-%s.html"
	ReportSummaryExportFileName  = "report-summary.xlsx"
)
