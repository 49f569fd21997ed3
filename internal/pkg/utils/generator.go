package utils

import (
	"clinic-service/internal/pkg/constvars"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateSessionID() string {
	return uuid.NewString()
}

// GenerateInvoiceNumber formats a per-day sequence value, e.g. INV-20260102-000042.
func GenerateInvoiceNumber(at time.Time, sequence int64) string {
	return fmt.Sprintf(constvars.InvoiceNumberFormat, at.Format(constvars.InvoiceSequenceDateLayout), sequence)
}
