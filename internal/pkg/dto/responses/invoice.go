package responses

import "clinic-service/internal/app/models"

type SettleInvoices struct {
	Settled  []models.Invoice `json:"settled"`
	Failures []string         `json:"failures,omitempty"`
}

// Document is a rendered attachment returned by the usecases.
type Document struct {
	FileName    string
	ContentType string
	Body        []byte
}
