package requests

import "time"

type ReportSummaryFilter struct {
	Start    *time.Time
	End      *time.Time
	DoctorID string
	GroupBy  string
	Source   string
}
