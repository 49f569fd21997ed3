package constvars

const (
	MethodGet    = "GET"
	MethodHead   = "HEAD"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

const (
	MIMETextHTML               = "text/html"
	MIMETextPlain              = "text/plain"
	MIMEApplicationJSON        = "application/json"
	MIMEOctetStream            = "application/octet-stream"
	MIMETextHTMLCharsetUTF8    = "text/html; charset=utf-8"
	MIMEApplicationSpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusNoContent = 204

	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusGone                = 410
	StatusRequestEntityTooBig = 413
	StatusTooManyRequests     = 429

	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAuthorization      = "Authorization"
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderXRequestID         = "X-Request-ID"
	HeaderUserAgent          = "User-Agent"
)

const (
	QueryDownload    = "download"
	QueryPage        = "page"
	QueryLimit       = "limit"
	QueryStart       = "start"
	QueryEnd         = "end"
	QueryGroup       = "group"
	QueryGroupBy     = "groupBy"
	QuerySource      = "source"
	QueryDoctor      = "doctor"
	QueryDoctorID    = "doctorId"
	QueryPatient     = "patient"
	QueryAppointment = "appointment"
	QueryStatus      = "status"
	QueryQ           = "q"
	QueryName        = "name"
	QueryPhone       = "phone"

	URLParamID        = "id"
	URLParamPatientID = "patientId"
)
