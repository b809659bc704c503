package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rootstats/internal/chart"
	"github.com/mauv0809/rootstats/internal/metrics"
	"github.com/mauv0809/rootstats/internal/notifier"
	"github.com/slack-go/slack"
)

// barWidth keeps code-block bars inside Slack's message column on mobile.
const barWidth = 20

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var (
	_ notifier.Notifier = (*Notifier)(nil)
	_ chart.Renderer    = (*Notifier)(nil)
)

// Notifier posts statistics charts to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return s.channelID, "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionText(message.Text, false),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Render posts a single chart to the configured channel.
func (s *Notifier) Render(ctx context.Context, c chart.Chart) error {
	return s.SendChart(ctx, c, false)
}

func (s *Notifier) SendChart(ctx context.Context, c chart.Chart, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatChart(c), dryRun)
	return err
}

func (s *Notifier) SendDashboard(ctx context.Context, charts []chart.Chart, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatDashboard(charts), dryRun)
	return err
}

// FormatChartResponse formats a single chart for a slash command response.
func (s *Notifier) FormatChartResponse(c chart.Chart) (any, error) {
	return s.formatChart(c), nil
}

// FormatDashboardResponse formats all charts for a slash command response.
func (s *Notifier) FormatDashboardResponse(charts []chart.Chart) (any, error) {
	return s.formatDashboard(charts), nil
}

// FormatUsageResponse formats a help or error text for a slash command response.
func (s *Notifier) FormatUsageResponse(message string) (any, error) {
	return s.formatUsage(message), nil
}

// formatChart creates the Slack message for one chart using Block Kit.
func (s *Notifier) formatChart(c chart.Chart) slack.Message {
	title := c.Title
	if title == "" {
		title = "Root statistics"
	}
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🌲 "+title, true, false)),
	}
	blocks = append(blocks, chartBlocks(c)...)

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = title
	return msg
}

// formatDashboard creates one message holding every chart, separated by dividers.
func (s *Notifier) formatDashboard(charts []chart.Chart) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🌲 Root game statistics 🌲", true, false)),
	}

	for i, c := range charts {
		if i > 0 {
			blocks = append(blocks, slack.NewDividerBlock())
		}
		if c.Title != "" {
			blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "*"+c.Title+"*", false, false), nil, nil))
		}
		blocks = append(blocks, chartBlocks(c)...)
	}

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = "Root game statistics"
	return msg
}

func (s *Notifier) formatUsage(message string) slack.Message {
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", message, false, false), nil, nil),
	)
}

// chartBlocks returns the bars as a code block plus an optional axis context line.
func chartBlocks(c chart.Chart) []slack.Block {
	rows := chart.Layout(c, barWidth)
	if len(rows) == 0 {
		return []slack.Block{
			slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No games recorded yet. Go play some Root!", true, false), nil, nil),
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.TrimRight(fmt.Sprintf("%s │ %s %s", row.Label, row.Bar, row.Value), " "))
	}
	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "```\n"+strings.Join(lines, "\n")+"\n```", false, false), nil, nil),
	}

	if c.XLabel != "" || c.YLabel != "" {
		var elements []slack.MixedElement
		if c.XLabel != "" {
			elements = append(elements, slack.NewTextBlockObject("mrkdwn", "*x:* "+c.XLabel, false, false))
		}
		if c.YLabel != "" {
			elements = append(elements, slack.NewTextBlockObject("mrkdwn", "*y:* "+c.YLabel, false, false))
		}
		blocks = append(blocks, slack.NewContextBlock("", elements...))
	}
	return blocks
}
