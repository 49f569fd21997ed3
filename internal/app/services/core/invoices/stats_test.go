package invoices

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsFixture() []models.Invoice {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC) }
	return []models.Invoice{
		{IssuedAt: day(2), Total: 55000, Payments: []models.Payment{{Amount: 55000}}},
		{IssuedAt: day(2), Total: 30000, Payments: []models.Payment{{Amount: 10000}}},
		{IssuedAt: day(10), Total: 20000},
		{IssuedAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Total: 10000, Payments: []models.Payment{{Amount: 15000}}},
	}
}

func TestBuildInvoiceStats(t *testing.T) {
	t.Run("overall by default", func(t *testing.T) {
		stats := BuildInvoiceStats(statsFixture(), "")
		require.Len(t, stats.Groups, 1)
		assert.Equal(t, "overall", stats.Groups[0].Period)
		assert.Equal(t, 4, stats.Groups[0].Count)
		assert.Equal(t, models.Money(80000), stats.TotalEarning)
		// overpayment does not produce negative due
		assert.Equal(t, models.Money(40000), stats.TotalDue)
	})

	t.Run("by day sorted", func(t *testing.T) {
		stats := BuildInvoiceStats(statsFixture(), constvars.ReportGroupByDay)
		require.Len(t, stats.Groups, 3)
		assert.Equal(t, "2026-03-02", stats.Groups[0].Period)
		assert.Equal(t, models.Money(65000), stats.Groups[0].TotalEarning)
		assert.Equal(t, models.Money(20000), stats.Groups[0].TotalDue)
		assert.Equal(t, "2026-03-10", stats.Groups[1].Period)
		assert.Equal(t, "2026-04-01", stats.Groups[2].Period)
	})

	t.Run("by month", func(t *testing.T) {
		stats := BuildInvoiceStats(statsFixture(), constvars.ReportGroupByMonth)
		require.Len(t, stats.Groups, 2)
		assert.Equal(t, "2026-03", stats.Groups[0].Period)
		assert.Equal(t, 3, stats.Groups[0].Count)
	})

	t.Run("by week", func(t *testing.T) {
		stats := BuildInvoiceStats(statsFixture(), constvars.ReportGroupByWeek)
		require.Len(t, stats.Groups, 3)
		assert.Equal(t, "2026-W10", stats.Groups[0].Period)
	})

	t.Run("empty input", func(t *testing.T) {
		stats := BuildInvoiceStats(nil, constvars.ReportGroupByDay)
		assert.Empty(t, stats.Groups)
		assert.NotNil(t, stats.Groups)
		assert.Zero(t, stats.TotalEarning)
	})
}

func TestStatsWindow(t *testing.T) {
	now := time.Date(2026, 3, 31, 15, 0, 0, 0, time.UTC)

	from, to := StatsWindow(nil, nil, now)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, 31, to.Day())
	assert.Equal(t, 23, to.Hour())

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	from, to = StatsWindow(&start, &end, now)
	assert.Equal(t, start, from)
	assert.Equal(t, end, to)
}
