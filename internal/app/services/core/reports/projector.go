package reports

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/harmonizer"
	"clinic-service/internal/app/services/core/invoices"
	"clinic-service/internal/pkg/constvars"
	"fmt"
)

const (
	heuristicCompleted   = "completed"
	heuristicAccepted    = "accepted"
	heuristicPaymentPaid = "payment_paid"
	heuristicUnpaid      = "unpaid"
)

// Project derives the report of an appointment from the appointment and its
// linked invoices. It reads nothing else, so the result can overwrite whatever
// is stored.
func Project(appointment *models.Appointment, linked []models.Invoice) models.Report {
	report := models.Report{
		AppointmentID:   appointment.ID,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		AppointmentDate: appointment.AppointmentDate,
	}

	var paymentCount int
	if len(linked) > 0 {
		for i := range linked {
			report.Amount += invoiceAmount(&linked[i])
			paymentCount += len(linked[i].Payments)
		}
	} else {
		report.Amount = appointment.Price
	}

	if paymentCount > 0 {
		for i := range linked {
			report.Paid += invoices.PaidAmount(&linked[i])
		}
		report.Due = models.MaxMoney(0, report.Amount-report.Paid)
		report.Notes = fmt.Sprintf("invoices:%d payments:%d", len(linked), paymentCount)
	} else {
		rule := heuristicRule(appointment)
		if rule == heuristicCompleted || rule == heuristicPaymentPaid {
			report.Paid = report.Amount
		} else {
			report.Due = report.Amount
		}
		if len(linked) > 0 {
			report.Notes = fmt.Sprintf("invoices:%d payments:0 status heuristic:%s", len(linked), rule)
		} else {
			report.Notes = fmt.Sprintf("appointment price, status heuristic:%s", rule)
		}
	}

	report.Revenue = report.Paid
	report.Status = reportStatus(report.Paid, report.Due)
	return report
}

func invoiceAmount(invoice *models.Invoice) models.Money {
	if invoice.Total == 0 && invoice.Subtotal > 0 {
		return invoice.Subtotal
	}
	return invoice.Total
}

func heuristicRule(appointment *models.Appointment) string {
	switch {
	case appointment.Status == constvars.AppointmentStatusCompleted:
		return heuristicCompleted
	case appointment.Status == constvars.AppointmentStatusAccepted:
		return heuristicAccepted
	case harmonizer.IsPaidEquivalent(appointment.PaymentStatus):
		return heuristicPaymentPaid
	}
	return heuristicUnpaid
}

// reportStatus lets any outstanding amount win, so a partly paid appointment
// is still reported as Due.
func reportStatus(paid, due models.Money) string {
	switch {
	case due > 0:
		return constvars.ReportStatusDue
	case paid > 0:
		return constvars.ReportStatusPaid
	}
	return constvars.ReportStatusAdjusted
}
