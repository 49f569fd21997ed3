package invoices

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"fmt"
	"strings"
	"time"
)

// NormalizeItems maps client line items onto the stored shape. Legacy name and
// price keys are accepted, quantity is at least 1 and total defaults to
// quantity x unitPrice unless given explicitly.
func NormalizeItems(raw []requests.InvoiceItem) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(raw))
	for _, item := range raw {
		description := strings.TrimSpace(item.Description)
		if description == "" {
			description = strings.TrimSpace(item.Name)
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		var unitPrice models.Money
		switch {
		case item.UnitPrice != nil:
			unitPrice = *item.UnitPrice
		case item.Price != nil:
			unitPrice = *item.Price
		}
		if unitPrice < 0 {
			unitPrice = 0
		}

		total := models.Money(quantity) * unitPrice
		if item.Total != nil {
			total = models.MaxMoney(*item.Total, 0)
		}

		items = append(items, models.InvoiceItem{
			Description: description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Total:       total,
		})
	}
	return items
}

func RecomputeTotals(invoice *models.Invoice) {
	var subtotal models.Money
	for _, item := range invoice.Items {
		subtotal += item.Total
	}
	invoice.Subtotal = subtotal
	invoice.Total = models.MaxMoney(0, subtotal+invoice.Tax-invoice.Discount)
}

func PaidAmount(invoice *models.Invoice) models.Money {
	var paid models.Money
	for _, payment := range invoice.Payments {
		paid += payment.Amount
	}
	return paid
}

func DueAmount(invoice *models.Invoice) models.Money {
	return models.MaxMoney(0, invoice.Total-PaidAmount(invoice))
}

// AppendPayment adds to the ledger without touching the status.
func AppendPayment(invoice *models.Invoice, amount models.Money, method, reference, createdBy string, at time.Time) error {
	if amount < 0 {
		return exceptions.ErrNegativePaymentAmount(nil, amount.String())
	}
	if method == "" {
		method = constvars.PaymentMethodCash
	}
	invoice.Payments = append(invoice.Payments, models.Payment{
		PaidAt:    at,
		Amount:    amount,
		Method:    method,
		Reference: reference,
		CreatedBy: createdBy,
	})
	return nil
}

func RecomputeStatus(invoice *models.Invoice) {
	paid := PaidAmount(invoice)
	switch {
	case invoice.Total > 0 && paid >= invoice.Total:
		invoice.Status = constvars.InvoiceStatusPaid
	case paid > 0 && paid < invoice.Total:
		invoice.Status = constvars.InvoiceStatusPartial
	default:
		invoice.Status = constvars.InvoiceStatusUnpaid
	}
}

// Settle pays the outstanding balance with a single Settlement payment and
// reports whether a payment was appended. Calling it again is a no-op.
func Settle(invoice *models.Invoice, createdBy string, at time.Time) bool {
	due := DueAmount(invoice)
	appended := false
	if due > 0 {
		invoice.Payments = append(invoice.Payments, models.Payment{
			PaidAt:    at,
			Amount:    due,
			Method:    constvars.PaymentMethodSettlement,
			Reference: fmt.Sprintf("settle:%s", invoice.InvoiceNumber),
			CreatedBy: createdBy,
		})
		appended = true
	}
	RecomputeStatus(invoice)
	return appended
}
