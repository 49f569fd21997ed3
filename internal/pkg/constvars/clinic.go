package constvars

const (
	RoleAdmin      = "Admin"
	RoleDoctor     = "Doctor"
	RoleCompounder = "Compounder"
	RolePatient    = "Patient"
)

const (
	AppointmentStatusPending   = "Pending"
	AppointmentStatusAccepted  = "Accepted"
	AppointmentStatusRejected  = "Rejected"
	AppointmentStatusCompleted = "Completed"
)

const (
	PaymentStatusPending  = "Pending"
	PaymentStatusDue      = "Due"
	PaymentStatusAccepted = "Accepted"
	PaymentStatusPaid     = "Paid"
)

const (
	InvoiceStatusUnpaid    = "Unpaid"
	InvoiceStatusPartial   = "Partial"
	InvoiceStatusPaid      = "Paid"
	InvoiceStatusCancelled = "Cancelled"
)

const (
	PaymentMethodCash       = "Cash"
	PaymentMethodSettlement = "Settlement"
)

const (
	ReportStatusDue      = "Due"
	ReportStatusPaid     = "Paid"
	ReportStatusPartial  = "Partial"
	ReportStatusAdjusted = "Adjusted"
)

const (
	InvoiceItemConsultationFee = "Consultation Fee"
	InvoiceItemPlatformFee     = "Platform Fee"
)

const (
	ReportGroupByDay        = "day"
	ReportGroupByWeek       = "week"
	ReportGroupByMonth      = "month"
	ReportGroupOverall      = "overall"
	ReportSourceHybrid      = "hybrid"
	ReportSourceInvoice     = "invoice"
	ReportSourceAppointment = "appointment"
	DefaultStatsWindowDays  = 29
)

const (
	SideEffectInvoiceCreate   = "invoice_create"
	SideEffectInvoiceSettle   = "invoice_settle"
	SideEffectReportSync      = "report_sync"
	SideEffectNotification    = "notification"
	SideEffectDocumentArchive = "document_archive"
)

const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeEnqueued = "enqueued"
	OutcomeDropped  = "dropped"
)

const (
	NotificationStatusChangedFormat = "Your appointment scheduled on %s is now %s."
	NotificationEventStatusChanged  = "appointment.status_changed"
)

const (
	PatientNamePlaceholderFormat = "Patient-%s"
	PatientEmailFallbackLocal    = "patient"
	SynthesizedNICLength         = 13
	DaysPerYear                  = 365.25
	PriceFeeRatio                = "0.2"
)
