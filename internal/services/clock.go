package services

import "time"

// Clock lets tests pin the report date.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ReportDateLayout is the local timestamp format written into reports.
const ReportDateLayout = "2006-01-02 15:04:05"
