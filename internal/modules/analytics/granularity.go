package analytics

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the bucket size of a trend series.
type Granularity string

const (
	Daily   Granularity = "Daily"
	Weekly  Granularity = "Weekly"
	Monthly Granularity = "Monthly"
)

// ParseGranularity matches s case-insensitively. Blank means Daily.
func ParseGranularity(s string) (Granularity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily":
		return Daily, true
	case "weekly":
		return Weekly, true
	case "monthly":
		return Monthly, true
	}
	return "", false
}

// Key returns the bucket t falls in: 2006-01-02, 2006-W01 (ISO week) or
// 2006-01. Keys of one granularity sort chronologically as strings.
func (g Granularity) Key(t time.Time) string {
	switch g {
	case Weekly:
		y, w := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	case Monthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// pgFormat is the to_char pattern producing the same keys as Key.
func (g Granularity) pgFormat() string {
	switch g {
	case Weekly:
		return `IYYY-"W"IW`
	case Monthly:
		return "YYYY-MM"
	default:
		return "YYYY-MM-DD"
	}
}
