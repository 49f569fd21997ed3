package reports

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/invoices"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"sort"
	"time"
)

const unknownPeriod = "unknown"

// SummaryRange closes a start-only range at the end of the start day.
func SummaryRange(start, end *time.Time) (*time.Time, *time.Time) {
	if start != nil && end == nil {
		endOfDay := utils.EndOfDay(*start)
		end = &endOfDay
	}
	return start, end
}

func normalizeGroupBy(groupBy string) string {
	if groupBy == constvars.ReportGroupByMonth {
		return groupBy
	}
	return constvars.ReportGroupByDay
}

func normalizeSource(source string) string {
	switch source {
	case constvars.ReportSourceInvoice, constvars.ReportSourceAppointment:
		return source
	}
	return constvars.ReportSourceHybrid
}

// IncludesAppointments reports whether appointments without invoices count
// towards the summary for source.
func IncludesAppointments(source string) bool {
	return normalizeSource(source) != constvars.ReportSourceInvoice
}

// BuildSummary aggregates invoice payments as revenue and their unpaid
// remainder as due. Appointments without invoices add their price as revenue
// once Completed and Paid, as due otherwise.
func BuildSummary(linked []models.Invoice, unbilled []models.Appointment, groupBy string) *models.ReportSummary {
	groupBy = normalizeGroupBy(groupBy)
	periods := make(map[string]*models.ReportPeriod)
	summary := &models.ReportSummary{ByPeriod: []models.ReportPeriod{}}

	bucket := func(key string) *models.ReportPeriod {
		period, ok := periods[key]
		if !ok {
			period = &models.ReportPeriod{Period: key}
			periods[key] = period
		}
		return period
	}

	for i := range linked {
		invoice := &linked[i]
		period := bucket(utils.PeriodKey(invoice.IssuedAt, groupBy))
		paid := invoices.PaidAmount(invoice)
		due := invoices.DueAmount(invoice)
		period.Revenue += paid
		period.Due += due
		period.Invoices++
		summary.Totals.Revenue += paid
		summary.Totals.Due += due
	}

	for i := range unbilled {
		appointment := &unbilled[i]
		key := unknownPeriod
		if at, err := utils.ParseFlexibleTime(appointment.AppointmentDate); err == nil {
			key = utils.PeriodKey(at, groupBy)
		}
		period := bucket(key)
		if appointment.PaymentStatus == constvars.PaymentStatusPaid && appointment.Status == constvars.AppointmentStatusCompleted {
			period.Revenue += appointment.Price
			summary.Totals.Revenue += appointment.Price
		} else {
			period.Due += appointment.Price
			summary.Totals.Due += appointment.Price
		}
		period.Appointments++
	}

	for _, period := range periods {
		summary.ByPeriod = append(summary.ByPeriod, *period)
	}
	sort.Slice(summary.ByPeriod, func(i, j int) bool {
		return summary.ByPeriod[i].Period < summary.ByPeriod[j].Period
	})
	return summary
}
