package requests

import (
	"clinic-service/internal/app/models"
	"time"
)

// InvoiceItem accepts the legacy name/price spellings next to description/unitPrice.
type InvoiceItem struct {
	Description string        `json:"description"`
	Name        string        `json:"name"`
	Quantity    int64         `json:"quantity" validate:"gte=0"`
	UnitPrice   *models.Money `json:"unitPrice" validate:"omitempty,non_negative"`
	Price       *models.Money `json:"price" validate:"omitempty,non_negative"`
	Total       *models.Money `json:"total" validate:"omitempty,non_negative"`
}

type Payment struct {
	Amount    models.Money `json:"amount"`
	Method    string       `json:"method"`
	Reference string       `json:"reference"`
	PaidAt    *time.Time   `json:"paidAt"`
}

type CreateInvoice struct {
	InvoiceNumber string        `json:"invoiceNumber"`
	Appointment   string        `json:"appointment"`
	Patient       string        `json:"patient"`
	Doctor        string        `json:"doctor"`
	Items         []InvoiceItem `json:"items" validate:"dive"`
	Tax           models.Money  `json:"tax" validate:"non_negative"`
	Discount      models.Money  `json:"discount" validate:"non_negative"`
	Status        string        `json:"status" validate:"omitempty,invoice_status"`
	IssuedAt      *time.Time    `json:"issuedAt"`
	DueDate       *time.Time    `json:"dueDate"`
	Payments      []Payment     `json:"payments"`
	CreatedBy     string        `json:"-"`
}

// UpdateInvoice is the allow-list of mutable invoice fields. Nil means untouched.
type UpdateInvoice struct {
	InvoiceNumber string        `json:"invoiceNumber"`
	Items         []InvoiceItem `json:"items" validate:"omitempty,dive"`
	Tax           *models.Money `json:"tax" validate:"omitempty,non_negative"`
	Discount      *models.Money `json:"discount" validate:"omitempty,non_negative"`
	Status        string        `json:"status" validate:"omitempty,invoice_status"`
	DueDate       *time.Time    `json:"dueDate"`
	Payments      []Payment     `json:"payments"`
	UpdatedBy     string        `json:"-"`
}

type InvoiceFilter struct {
	Patient     string
	Doctor      string
	Appointment string
	Status      string
	Q           string
	Start       *time.Time
	End         *time.Time
	Page        int
	Limit       int
}

type InvoiceStatsFilter struct {
	Start  *time.Time
	End    *time.Time
	Group  string
	Doctor string
}
