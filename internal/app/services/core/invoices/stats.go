package invoices

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"sort"
	"time"
)

// StatsWindow resolves the issuedAt range for invoice stats. A missing end is
// today, a missing start is DefaultStatsWindowDays before the end.
func StatsWindow(start, end *time.Time, now time.Time) (time.Time, time.Time) {
	to := utils.EndOfDay(now)
	if end != nil {
		to = *end
	}
	from := utils.StartOfDay(to.AddDate(0, 0, -constvars.DefaultStatsWindowDays))
	if start != nil {
		from = *start
	}
	return from, to
}

func normalizeStatsGroup(group string) string {
	switch group {
	case constvars.ReportGroupByDay, constvars.ReportGroupByWeek, constvars.ReportGroupByMonth:
		return group
	}
	return constvars.ReportGroupOverall
}

// BuildInvoiceStats sums payments as earnings and the unpaid remainder as due,
// bucketed by issuedAt and sorted by period key.
func BuildInvoiceStats(invoices []models.Invoice, group string) *models.InvoiceStats {
	group = normalizeStatsGroup(group)
	buckets := make(map[string]*models.InvoiceStat)
	stats := &models.InvoiceStats{Groups: []models.InvoiceStat{}}

	for i := range invoices {
		invoice := &invoices[i]
		key := utils.PeriodKey(invoice.IssuedAt, group)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &models.InvoiceStat{Period: key}
			buckets[key] = bucket
		}
		paid := PaidAmount(invoice)
		due := DueAmount(invoice)
		bucket.TotalEarning += paid
		bucket.TotalDue += due
		bucket.Count++
		stats.TotalEarning += paid
		stats.TotalDue += due
	}

	for _, bucket := range buckets {
		stats.Groups = append(stats.Groups, *bucket)
	}
	sort.Slice(stats.Groups, func(i, j int) bool {
		return stats.Groups[i].Period < stats.Groups[j].Period
	})
	return stats
}
