package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/rootstats/internal/chart"
	"github.com/slack-go/slack"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendChartCalls []struct {
		Chart  chart.Chart
		DryRun bool
	}
	SendDashboardCalls []struct {
		Charts []chart.Chart
		DryRun bool
	}

	// Injected failure for the send functions
	SendErr error

	// Call records for format functions
	LastFormattedChart     *chart.Chart
	LastFormattedDashboard []chart.Chart
	LastUsageMessage       string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendChartCalls = nil
	m.SendDashboardCalls = nil
	m.LastFormattedChart = nil
	m.LastFormattedDashboard = nil
	m.LastUsageMessage = ""
}

func (m *Mock) SendChart(_ context.Context, c chart.Chart, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendChartCalls = append(m.SendChartCalls, struct {
		Chart  chart.Chart
		DryRun bool
	}{c, dryRun})
	return m.SendErr
}

func (m *Mock) SendDashboard(_ context.Context, charts []chart.Chart, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDashboardCalls = append(m.SendDashboardCalls, struct {
		Charts []chart.Chart
		DryRun bool
	}{charts, dryRun})
	return m.SendErr
}

func (m *Mock) FormatChartResponse(c chart.Chart) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastFormattedChart = &c
	return textMessage(c.Title), nil
}

func (m *Mock) FormatDashboardResponse(charts []chart.Chart) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastFormattedDashboard = charts
	return textMessage("dashboard"), nil
}

func (m *Mock) FormatUsageResponse(message string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastUsageMessage = message
	return textMessage(message), nil
}

func textMessage(text string) slack.Message {
	return slack.NewBlockMessage(slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil))
}

// ChartCalls returns the number of SendChart calls.
func (m *Mock) ChartCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendChartCalls)
}

// DashboardCalls returns the number of SendDashboard calls.
func (m *Mock) DashboardCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendDashboardCalls)
}
