package models

import "time"

type Invoice struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	InvoiceNumber string        `json:"invoiceNumber" bson:"invoiceNumber"`
	Appointment   string        `json:"appointment,omitempty" bson:"appointment,omitempty"`
	Patient       string        `json:"patient" bson:"patient"`
	Doctor        string        `json:"doctor,omitempty" bson:"doctor,omitempty"`
	Items         []InvoiceItem `json:"items" bson:"items"`
	Subtotal      Money         `json:"subtotal" bson:"subtotal"`
	Tax           Money         `json:"tax" bson:"tax"`
	Discount      Money         `json:"discount" bson:"discount"`
	Total         Money         `json:"total" bson:"total"`
	Status        string        `json:"status" bson:"status"`
	IssuedAt      time.Time     `json:"issuedAt" bson:"issuedAt"`
	DueDate       *time.Time    `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Payments      []Payment     `json:"payments" bson:"payments"`
	TimeModel     `bson:",inline"`
}

type InvoiceItem struct {
	Description string `json:"description" bson:"description"`
	Quantity    int64  `json:"quantity" bson:"quantity"`
	UnitPrice   Money  `json:"unitPrice" bson:"unitPrice"`
	Total       Money  `json:"total" bson:"total"`
}

type Payment struct {
	PaidAt    time.Time `json:"paidAt" bson:"paidAt"`
	Amount    Money     `json:"amount" bson:"amount"`
	Method    string    `json:"method" bson:"method"`
	Reference string    `json:"reference,omitempty" bson:"reference,omitempty"`
	CreatedBy string    `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
}
