package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	LoginSuccess  = "successfully login"
	LogoutSuccess = "successfully logout"

	AppointmentCreatedSuccess       = "Appointment Send!"
	AppointmentFoundSuccess         = "appointments fetched successfully"
	AppointmentUpdatedSuccess       = "Appointment Updated!"
	AppointmentStatusUpdatedSuccess = "Appointment Status Updated!"
	AppointmentDeletedSuccess       = "Appointment Deleted!"
	AppointmentsBulkDeletedSuccess  = "Appointments Deleted!"

	InvoiceCreatedSuccess  = "invoice created successfully"
	InvoiceFoundSuccess    = "invoices fetched successfully"
	InvoiceUpdatedSuccess  = "invoice updated successfully"
	InvoiceSettledSuccess  = "invoice settled successfully"
	InvoiceDeletedSuccess  = "Invoice deleted"
	InvoiceStatsGetSuccess = "invoice stats fetched successfully"

	ReportSummaryGetSuccess = "report summary fetched successfully"
	ReportGetSuccess        = "report fetched successfully"
	ReportSyncedSuccess     = "report synced successfully"
)
