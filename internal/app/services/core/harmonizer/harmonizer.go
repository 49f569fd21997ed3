// Package harmonizer decides the (status, paymentStatus) pair stored on an
// appointment so that Completed never coexists with an unpaid balance.
package harmonizer

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
)

type Context string

const (
	ContextCreate           Context = "create"
	ContextPrescriptionSave Context = "prescription_save"
	ContextStatusUpdate     Context = "status_update"
)

// Input holds the caller supplied values. Empty strings mean "not supplied".
type Input struct {
	Status        string
	PaymentStatus string
	Print         bool
	PrintAndSave  bool
}

type Decision struct {
	Status        string
	PaymentStatus string
}

// IsPaidEquivalent treats the legacy "Accepted" payment status as paid.
func IsPaidEquivalent(paymentStatus string) bool {
	return paymentStatus == constvars.PaymentStatusPaid || paymentStatus == constvars.PaymentStatusAccepted
}

func IsValidStatus(status string) bool {
	switch status {
	case constvars.AppointmentStatusPending,
		constvars.AppointmentStatusAccepted,
		constvars.AppointmentStatusRejected,
		constvars.AppointmentStatusCompleted:
		return true
	}
	return false
}

func IsValidPaymentStatus(paymentStatus string) bool {
	switch paymentStatus {
	case constvars.PaymentStatusPending,
		constvars.PaymentStatusDue,
		constvars.PaymentStatusAccepted,
		constvars.PaymentStatusPaid:
		return true
	}
	return false
}

// Harmonize never fails; contradictory input is overridden. existing may be nil.
func Harmonize(input Input, existing *models.Appointment, hctx Context) Decision {
	input = sanitize(input)

	var decision Decision
	switch hctx {
	case ContextCreate:
		decision = harmonizeCreate(input)
	case ContextPrescriptionSave:
		decision = harmonizePrescriptionSave(input, existing)
	default:
		decision = harmonizeStatusUpdate(input, existing)
	}
	return guard(decision)
}

func harmonizeCreate(input Input) Decision {
	paymentStatus := coalesce(input.PaymentStatus, constvars.PaymentStatusPending)

	if input.Status == constvars.AppointmentStatusCompleted && paymentStatus != constvars.PaymentStatusPaid {
		return Decision{Status: constvars.AppointmentStatusAccepted, PaymentStatus: constvars.PaymentStatusDue}
	}
	if input.Status != "" {
		return Decision{Status: input.Status, PaymentStatus: paymentStatus}
	}
	if paymentStatus == constvars.PaymentStatusPaid {
		return Decision{Status: constvars.AppointmentStatusAccepted, PaymentStatus: paymentStatus}
	}
	return Decision{Status: constvars.AppointmentStatusPending, PaymentStatus: paymentStatus}
}

func harmonizePrescriptionSave(input Input, existing *models.Appointment) Decision {
	existingStatus, existingPaymentStatus := existingValues(existing)

	completing := input.Status == constvars.AppointmentStatusCompleted || input.Print || input.PrintAndSave
	if completing {
		if IsPaidEquivalent(input.PaymentStatus) || IsPaidEquivalent(existingPaymentStatus) {
			return Decision{Status: constvars.AppointmentStatusCompleted, PaymentStatus: constvars.PaymentStatusPaid}
		}
		return Decision{Status: constvars.AppointmentStatusAccepted, PaymentStatus: constvars.PaymentStatusPending}
	}

	if input.Status == "" && IsPaidEquivalent(input.PaymentStatus) {
		return Decision{Status: constvars.AppointmentStatusAccepted, PaymentStatus: input.PaymentStatus}
	}
	// a completed visit whose payment is reopened keeps the caller's payment status
	if input.Status == "" && input.PaymentStatus != "" && existingStatus == constvars.AppointmentStatusCompleted {
		return Decision{Status: constvars.AppointmentStatusAccepted, PaymentStatus: input.PaymentStatus}
	}

	return Decision{
		Status:        coalesce(input.Status, existingStatus, constvars.AppointmentStatusPending),
		PaymentStatus: coalesce(input.PaymentStatus, existingPaymentStatus, constvars.PaymentStatusPending),
	}
}

func harmonizeStatusUpdate(input Input, existing *models.Appointment) Decision {
	existingStatus, existingPaymentStatus := existingValues(existing)

	if input.Status == constvars.AppointmentStatusCompleted {
		if IsPaidEquivalent(input.PaymentStatus) || IsPaidEquivalent(existingPaymentStatus) {
			return Decision{Status: constvars.AppointmentStatusCompleted, PaymentStatus: constvars.PaymentStatusPaid}
		}
		return Decision{
			Status:        constvars.AppointmentStatusAccepted,
			PaymentStatus: coalesce(input.PaymentStatus, constvars.PaymentStatusDue),
		}
	}

	if input.Status == "" && input.PaymentStatus != "" {
		if existingStatus == constvars.AppointmentStatusCompleted && IsPaidEquivalent(input.PaymentStatus) {
			return Decision{Status: constvars.AppointmentStatusCompleted, PaymentStatus: constvars.PaymentStatusPaid}
		}
		return Decision{Status: constvars.AppointmentStatusAccepted, PaymentStatus: input.PaymentStatus}
	}

	return Decision{
		Status:        coalesce(input.Status, existingStatus, constvars.AppointmentStatusPending),
		PaymentStatus: coalesce(input.PaymentStatus, existingPaymentStatus, constvars.PaymentStatusPending),
	}
}

// guard is the final safety net shared by every context.
func guard(decision Decision) Decision {
	if decision.Status == constvars.AppointmentStatusCompleted && !IsPaidEquivalent(decision.PaymentStatus) {
		return Decision{Status: constvars.AppointmentStatusAccepted, PaymentStatus: constvars.PaymentStatusDue}
	}
	return decision
}

// sanitize drops values outside the enum domains so they count as "not supplied".
func sanitize(input Input) Input {
	if !IsValidStatus(input.Status) {
		input.Status = ""
	}
	if !IsValidPaymentStatus(input.PaymentStatus) {
		input.PaymentStatus = ""
	}
	return input
}

func existingValues(existing *models.Appointment) (string, string) {
	if existing == nil {
		return "", ""
	}
	return existing.Status, existing.PaymentStatus
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
