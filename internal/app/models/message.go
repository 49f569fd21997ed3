package models

import "time"

type Message struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	FirstName     string    `json:"firstName" bson:"firstName"`
	LastName      string    `json:"lastName" bson:"lastName"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"phone" bson:"phone"`
	Message       string    `json:"message" bson:"message"`
	AppointmentID string    `json:"appointmentId,omitempty" bson:"appointmentId,omitempty"`
	Read          bool      `json:"read" bson:"read"`
	SentAt        time.Time `json:"sentAt" bson:"sentAt"`
}
