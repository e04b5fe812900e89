package dashboard

import "context"

type DashboardService interface {
	// GetSummary returns the overview for date (YYYY-MM-DD); empty means today (UTC)
	GetSummary(ctx context.Context, date string) (SummaryResponse, error)
}
