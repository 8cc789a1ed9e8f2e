package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/analytics"
	"github.com/slack-go/slack"
)

type SlackOption struct {
	// WebhookURL posts through an incoming webhook. It wins over BotToken.
	WebhookURL string
	BotToken   string
	ChannelID  string
	// APIURL overrides the Slack Web API base URL.
	APIURL string
}

func (o SlackOption) Enabled() bool {
	return o.WebhookURL != "" || (o.BotToken != "" && o.ChannelID != "")
}

type Slack struct {
	client  *slack.Client
	options SlackOption
}

func NewSlack(options SlackOption) *Slack {
	s := &Slack{options: options}
	if options.WebhookURL == "" && options.BotToken != "" {
		var opts []slack.Option
		if options.APIURL != "" {
			opts = append(opts, slack.OptionAPIURL(options.APIURL))
		}
		s.client = slack.New(options.BotToken, opts...)
	}
	return s
}

func AbsenteeMessage(day string, absentees []analytics.Absentee) string {
	if len(absentees) == 0 {
		return fmt.Sprintf("Attendance %s: everyone has checked in.", day)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Attendance %s: %d not checked in yet\n", day, len(absentees))
	for _, a := range absentees {
		b.WriteString("• ")
		b.WriteString(a.Name)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// NotifyAbsentees implements analytics.Notifier.
func (s *Slack) NotifyAbsentees(ctx context.Context, day string, absentees []analytics.Absentee) error {
	return s.post(ctx, AbsenteeMessage(day, absentees))
}

func (s *Slack) post(ctx context.Context, message string) error {
	if s.options.WebhookURL != "" {
		if err := slack.PostWebhookContext(ctx, s.options.WebhookURL, &slack.WebhookMessage{Text: message}); err != nil {
			return fmt.Errorf("failed to post webhook to Slack: %w", err)
		}
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("slack is not configured")
	}
	_, _, err := s.client.PostMessageContext(ctx,
		s.options.ChannelID,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

// Log is the notifier used when Slack is not configured.
type Log struct{}

func (Log) NotifyAbsentees(ctx context.Context, day string, absentees []analytics.Absentee) error {
	names := make([]string, 0, len(absentees))
	for _, a := range absentees {
		names = append(names, a.Name)
	}
	slog.Info("employees not checked in", "day", day, "count", len(absentees), "names", names)
	return nil
}
