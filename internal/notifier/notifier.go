package notifier

import (
	"context"

	"github.com/mauv0809/rootstats/internal/chart"
)

// Notifier defines a high-level interface for publishing statistics charts.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendChart(ctx context.Context, c chart.Chart, dryRun bool) error
	SendDashboard(ctx context.Context, charts []chart.Chart, dryRun bool) error

	// For formatting responses for slash commands
	FormatChartResponse(c chart.Chart) (any, error)
	FormatDashboardResponse(charts []chart.Chart) (any, error)
	FormatUsageResponse(message string) (any, error)
}
