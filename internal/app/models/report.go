package models

type Report struct {
	ID              string `json:"id" bson:"_id,omitempty"`
	AppointmentID   string `json:"appointmentId" bson:"appointmentId"`
	DoctorID        string `json:"doctorId" bson:"doctorId"`
	PatientID       string `json:"patientId" bson:"patientId"`
	AppointmentDate string `json:"appointmentDate" bson:"appointmentDate"`
	Amount          Money  `json:"amount" bson:"amount"`
	Paid            Money  `json:"paid" bson:"paid"`
	Due             Money  `json:"due" bson:"due"`
	Revenue         Money  `json:"revenue" bson:"revenue"`
	Status          string `json:"status" bson:"status"`
	Notes           string `json:"notes" bson:"notes"`
	CreatedBy       string `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	TimeModel       `bson:",inline"`
}

type ReportSummary struct {
	Totals   ReportTotals   `json:"totals"`
	ByPeriod []ReportPeriod `json:"byPeriod"`
}

type ReportTotals struct {
	Revenue Money `json:"revenue"`
	Due     Money `json:"due"`
}

type ReportPeriod struct {
	Period       string `json:"period"`
	Revenue      Money  `json:"revenue"`
	Due          Money  `json:"due"`
	Invoices     int    `json:"invoices"`
	Appointments int    `json:"appointments"`
}

type InvoiceStat struct {
	Period       string `json:"period"`
	TotalEarning Money  `json:"totalEarning"`
	TotalDue     Money  `json:"totalDue"`
	Count        int    `json:"count"`
}

type InvoiceStats struct {
	TotalEarning Money         `json:"totalEarning"`
	TotalDue     Money         `json:"totalDue"`
	Groups       []InvoiceStat `json:"groups"`
}
