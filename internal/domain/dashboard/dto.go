package dashboard

import "github.com/shopspring/decimal"

// ========== DAILY SUMMARY ==========

// SummaryResponse is the overview for a single day
type SummaryResponse struct {
	Date                   string          `json:"date"` // Format: "YYYY-MM-DD"
	TotalEmployees         int64           `json:"total_employees"`
	TotalAttendanceRecords int64           `json:"total_attendance_records"`
	Present                int64           `json:"present"`
	Absent                 int64           `json:"absent"`
	OnLeave                int64           `json:"on_leave"`
	HalfDay                int64           `json:"half_day"`
	Unmarked               int64           `json:"unmarked"`        // employees with no record for the day
	AttendanceRate         decimal.Decimal `json:"attendance_rate"` // present / marked, percent, 2 dp
}
