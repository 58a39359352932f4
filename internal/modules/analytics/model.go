package analytics

import (
	"github.com/georgemunganga/supermart-backend/internal/modules/expense"
)

// Query carries the raw report parameters.
type Query struct {
	StartDate string
	EndDate   string
	GroupBy   string
}

// SalesTotals sums bills in a window.
type SalesTotals struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
	GST   float64 `json:"gst"`
}

// ModeTotal is revenue taken through one payment mode.
type ModeTotal struct {
	Mode  string  `json:"mode"`
	Total float64 `json:"total"`
}

// Bucket is one key of a grouped series.
type Bucket struct {
	Key   string
	Value float64
}

// TrendPoint merges revenue and expenses for one bucket.
type TrendPoint struct {
	Name    string  `json:"name"`
	Val     float64 `json:"val"`
	Expense float64 `json:"expense"`
}

// ProductSales is the all-time volume of one product name.
type ProductSales struct {
	Name     string  `json:"name"`
	TotalQty int     `json:"totalQty"`
	TotalRev float64 `json:"totalRev"`
}

type RangeSummary struct {
	Total     float64 `json:"total"`
	Count     int     `json:"count"`
	GST       float64 `json:"gst"`
	Expenses  float64 `json:"expenses"`
	NetProfit float64 `json:"netProfit"`
}

type DayReport struct {
	Date      string      `json:"date"`
	Total     float64     `json:"total"`
	Expenses  float64     `json:"expenses"`
	Breakdown []ModeTotal `json:"breakdown"`
}

type MonthSummary struct {
	Total float64 `json:"total"`
}

// Report is the analytics payload. Every facet is present even when empty.
// DayReport and Today both cover the calendar day of the window's end.
type Report struct {
	Range        RangeSummary       `json:"range"`
	PaymentModes []ModeTotal        `json:"paymentModes"`
	TrendData    []TrendPoint       `json:"trendData"`
	DayReport    DayReport          `json:"dayReport"`
	Today        SalesTotals        `json:"today"`
	Monthly      MonthSummary       `json:"monthly"`
	TopProducts  []ProductSales     `json:"topProducts"`
	Expenses     []*expense.Expense `json:"expenses"`
}
