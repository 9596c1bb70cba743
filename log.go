package sparkle

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/laralove143/sparkle-convenience/logger"
	"github.com/laralove143/sparkle-convenience/pkg/constants"
)

// webhookFinder is the subset of *discordgo.Session used to discover or
// create the logging webhook.
type webhookFinder interface {
	ChannelWebhooks(channelID string, options ...discordgo.RequestOption) ([]*discordgo.Webhook, error)
	WebhookCreate(channelID, name, avatar string, options ...discordgo.RequestOption) (*discordgo.Webhook, error)
}

// SetLoggingChannel installs a webhook hook on the global logger so that
// error-level entries are shipped to the given channel.
//
// It uses the first webhook in the channel whose token is visible to the bot
// or creates a new one if none exists.
func (b *Bot) SetLoggingChannel(channelID string) error {
	webhook, err := findLoggingWebhook(b.Session, channelID)
	if err != nil {
		return err
	}

	var username string
	if b.User != nil {
		username = b.User.Username
	}

	logger.AddHook(logger.NewDiscordHook(b.Session, webhook.ID, webhook.Token, username))

	logger.WithField("channel_id", channelID).Info("logging-channel-set")

	return nil
}

// Log logs an internal error for operator attention. It is a no-op on nil.
// Where the entry ends up depends on the logger configuration and hooks, see
// SetLoggingChannel.
func (b *Bot) Log(err error) {
	if err == nil {
		return
	}
	logger.WithError(err).Error("internal-error")
}

func findLoggingWebhook(session webhookFinder, channelID string) (*discordgo.Webhook, error) {
	webhooks, err := session.ChannelWebhooks(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel webhooks: %w", err)
	}

	for _, webhook := range webhooks {
		if webhook.Token != "" {
			return webhook, nil
		}
	}

	webhook, err := session.WebhookCreate(channelID, constants.LoggingWebhookName, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create logging webhook: %w", err)
	}

	return webhook, nil
}
