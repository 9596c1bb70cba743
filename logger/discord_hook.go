package logger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/laralove143/sparkle-convenience/pkg/constants"
)

// WebhookExecutor is the subset of *discordgo.Session used to ship log
// entries to a webhook. It allows mocking in tests.
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordHook is a logrus hook that ships error-level entries to a Discord
// webhook so operators see them in a channel.
//
// Entries that don't fit Discord's message character limit are attached as a
// text file instead, which raises the limit. A client-side flood limiter
// drops entries beyond a burst so a crash loop can't flood the operator
// channel; this is not Discord rate limiting, which stays the SDK's job.
type DiscordHook struct {
	executor  WebhookExecutor
	webhookID string
	token     string
	username  string
	limiter   *rate.Limiter
}

// NewDiscordHook creates a hook shipping entries to the given webhook. The
// username overrides the webhook's display name; empty keeps the default.
func NewDiscordHook(executor WebhookExecutor, webhookID, token, username string) *DiscordHook {
	return &DiscordHook{
		executor:  executor,
		webhookID: webhookID,
		token:     token,
		username:  username,
		limiter:   rate.NewLimiter(rate.Every(constants.WebhookLogMinInterval), constants.WebhookLogBurst),
	}
}

// Levels returns the levels the hook fires on.
func (h *DiscordHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

// Fire ships the entry to the webhook. Entries beyond the flood limit are
// dropped silently.
func (h *DiscordHook) Fire(entry *logrus.Entry) error {
	if !h.limiter.Allow() {
		return nil
	}

	content := formatEntry(entry)

	params := &discordgo.WebhookParams{Username: h.username}
	if len(content) > constants.MaxMessageContentLength {
		params.Files = []*discordgo.File{{
			Name:        constants.WebhookLogFilename,
			ContentType: "text/plain",
			Reader:      strings.NewReader(content),
		}}
	} else {
		params.Content = content
	}

	if _, err := h.executor.WebhookExecute(h.webhookID, h.token, false, params); err != nil {
		return fmt.Errorf("failed to execute logging webhook: %w", err)
	}

	return nil
}

// formatEntry renders an entry as "time [LEVEL] message" followed by one
// key=value line per field, sorted by key for stable output.
func formatEntry(entry *logrus.Entry) string {
	var builder strings.Builder

	builder.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
	builder.WriteString(" [")
	builder.WriteString(strings.ToUpper(entry.Level.String()))
	builder.WriteString("] ")
	builder.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		builder.WriteString(fmt.Sprintf("\n%s=%v", key, entry.Data[key]))
	}

	return builder.String()
}
