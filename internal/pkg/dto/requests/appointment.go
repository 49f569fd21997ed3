package requests

import "github.com/goccy/go-json"

type CreateAppointment struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"required"`
	NIC             string `json:"nic"`
	DOB             string `json:"dob"`
	Age             *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender          string `json:"gender"`
	Address         string `json:"address" validate:"required"`
	AppointmentDate string `json:"appointment_date"`
	Department      string `json:"department" validate:"required"`
	DoctorID        string `json:"doctorId"`
	HasVisited      bool   `json:"hasVisited"`
	Password        string `json:"password"`
	PaymentStatus   string `json:"paymentStatus" validate:"omitempty,payment_status"`
	Status          string `json:"status" validate:"omitempty,appointment_state"`
}

// UpdateAppointmentStatus lists the fields a dashboard edit may touch.
type UpdateAppointmentStatus struct {
	Status          string  `json:"status" validate:"omitempty,appointment_state"`
	PaymentStatus   string  `json:"paymentStatus" validate:"omitempty,payment_status"`
	AppointmentDate *string `json:"appointment_date"`
	Department      *string `json:"department"`
	Address         *string `json:"address"`
	HasVisited      *bool   `json:"hasVisited"`
}

type SavePrescription struct {
	Status        string          `json:"status" validate:"omitempty,appointment_state"`
	PaymentStatus string          `json:"paymentStatus" validate:"omitempty,payment_status"`
	Print         bool            `json:"print"`
	PrintAndSave  bool            `json:"printAndSave"`
	Result        json.RawMessage `json:"result"`
}

type BulkDeleteAppointments struct {
	IDs []string `json:"ids"`
}

type SearchAppointments struct {
	Name  string
	Phone string
}
