package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard summarizes month (YYYY-MM, default current) and today's attendance
	GetDashboard(ctx context.Context, month string) (*DashboardResponse, error)
}
