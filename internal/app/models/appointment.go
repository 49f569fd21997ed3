package models

import "time"

type Appointment struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	Name            string         `json:"name" bson:"name"`
	Email           string         `json:"email" bson:"email"`
	Phone           string         `json:"phone" bson:"phone"`
	NIC             string         `json:"nic" bson:"nic"`
	DOB             *time.Time     `json:"dob,omitempty" bson:"dob,omitempty"`
	Age             *int           `json:"age,omitempty" bson:"age,omitempty"`
	Gender          string         `json:"gender,omitempty" bson:"gender,omitempty"`
	Address         string         `json:"address" bson:"address"`
	AppointmentDate string         `json:"appointment_date" bson:"appointment_date"`
	Department      string         `json:"department" bson:"department"`
	Doctor          DoctorSnapshot `json:"doctor" bson:"doctor"`
	DoctorID        string         `json:"doctorId" bson:"doctorId"`
	PatientID       string         `json:"patientId" bson:"patientId"`
	HasVisited      bool           `json:"hasVisited" bson:"hasVisited"`
	Status          string         `json:"status" bson:"status"`
	PaymentStatus   string         `json:"paymentStatus" bson:"paymentStatus"`
	Price           Money          `json:"price" bson:"price"`
	Invoices        []string       `json:"invoices" bson:"invoices"`
	Result          []VisitRecord  `json:"result,omitempty" bson:"result,omitempty"`
	BookedBy        *BookedBy      `json:"bookedBy,omitempty" bson:"bookedBy,omitempty"`
	TimeModel       `bson:",inline"`
}

type DoctorSnapshot struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

type BookedBy struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
	Role string `json:"role,omitempty" bson:"role,omitempty"`
}

type VisitRecord struct {
	InitialComplain string     `json:"initialComplain,omitempty" bson:"initialComplain,omitempty"`
	MedicalHistory  string     `json:"medicalHistory,omitempty" bson:"medicalHistory,omitempty"`
	Diagnosys       Diagnosis  `json:"diagnosys" bson:"diagnosys"`
	MedicineAdvice  []Medicine `json:"medicineAdvice" bson:"medicineAdvice"`
	Advice          Advice     `json:"advice" bson:"advice"`
}

type Diagnosis struct {
	BP        string `json:"BP,omitempty" bson:"BP,omitempty"`
	Diabetics string `json:"Diabetics,omitempty" bson:"Diabetics,omitempty"`
	SPO2      string `json:"SPO2,omitempty" bson:"SPO2,omitempty"`
	Height    string `json:"Height,omitempty" bson:"Height,omitempty"`
	Weight    string `json:"Weight,omitempty" bson:"Weight,omitempty"`
	Others    string `json:"Others,omitempty" bson:"Others,omitempty"`
}

type Advice struct {
	Types  []string `json:"types" bson:"types"`
	Custom []string `json:"custom" bson:"custom"`
}

// Medicine keeps the canonical keys (name, type, dose, frequency, route,
// duration) alongside any extra keys sent by the client.
type Medicine map[string]string

func (a *Appointment) HasInvoice(invoiceID string) bool {
	for _, id := range a.Invoices {
		if id == invoiceID {
			return true
		}
	}
	return false
}
