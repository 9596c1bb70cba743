// Package message provides a handle for sending one reply as a message, DM
// or webhook execution.
//
// The handle binds a session and a reply together; each method targets a
// different destination with the same payload. Payload validation is left to
// Discord and surfaced as API errors.
package message

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/laralove143/sparkle-convenience/logger"
	"github.com/laralove143/sparkle-convenience/reply"
	"github.com/laralove143/sparkle-convenience/usererr"
)

// Session is the subset of *discordgo.Session used to send messages, DMs and
// webhook executions. It allows mocking the Discord API in tests.
type Session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	WebhookThreadExecute(webhookID, token string, wait bool, threadID string, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	WebhookMessageEdit(webhookID, token, messageID string, data *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	WebhookMessageDelete(webhookID, token, messageID string, options ...discordgo.RequestOption) error
}

// Handle sends one reply to messages, DMs and webhooks.
type Handle struct {
	session Session
	reply   *reply.Reply
}

// NewHandle creates a handle sending the given reply.
func NewHandle(session Session, r *reply.Reply) *Handle {
	return &Handle{session: session, reply: r}
}

// CreateMessage sends the reply to the given channel.
func (h *Handle) CreateMessage(channelID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	message, err := h.session.ChannelMessageSendComplex(channelID, h.reply.MessageSend(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

// UpdateMessage edits the given message with the reply, overwriting all of
// the older message.
func (h *Handle) UpdateMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	message, err := h.session.ChannelMessageEditComplex(h.reply.MessageEdit(channelID, messageID), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	return message, nil
}

// CreatePrivateMessage sends the reply as a DM to the given user, creating
// or reusing the private channel.
func (h *Handle) CreatePrivateMessage(userID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	channel, err := h.session.UserChannelCreate(userID, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create private channel: %w", err)
	}
	return h.CreateMessage(channel.ID, options...)
}

// UpdatePrivateMessage edits the given DM with the reply, overwriting all of
// the older message.
func (h *Handle) UpdatePrivateMessage(userID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	channel, err := h.session.UserChannelCreate(userID, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create private channel: %w", err)
	}
	return h.UpdateMessage(channel.ID, messageID, options...)
}

// ExecuteWebhook executes the given webhook with the reply. The created
// message is only returned when the reply has Wait set; otherwise Discord
// returns no body.
func (h *Handle) ExecuteWebhook(webhookID, token string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	message, err := h.session.WebhookExecute(webhookID, token, h.reply.Wait, h.reply.WebhookParams(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute webhook: %w", err)
	}
	return message, nil
}

// ExecuteWebhookThread executes the given webhook with the reply in the
// given thread.
func (h *Handle) ExecuteWebhookThread(webhookID, token, threadID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	message, err := h.session.WebhookThreadExecute(webhookID, token, h.reply.Wait, threadID, h.reply.WebhookParams(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute webhook in thread: %w", err)
	}
	return message, nil
}

// UpdateWebhookMessage edits the given webhook message with the reply,
// overwriting all of the older message.
func (h *Handle) UpdateWebhookMessage(webhookID, token, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	message, err := h.session.WebhookMessageEdit(webhookID, token, messageID, h.reply.WebhookEdit(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to update webhook message: %w", err)
	}
	return message, nil
}

// ReportError reports a classified error to the given channel with the
// handle's reply.
//
// If the classification is Ignore, nothing is sent and nothing is returned.
// If sending fails for a reason that itself classifies as user-facing, the
// failure is swallowed; only internal failures propagate.
func (h *Handle) ReportError(channelID string, userErr usererr.UserError, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if _, ok := userErr.(usererr.Ignore); ok {
		return nil, nil
	}

	message, err := h.CreateMessage(channelID, options...)
	if err != nil {
		if _, internal := usererr.Classify(err, nil).(usererr.Internal); !internal {
			return nil, nil
		}
		return nil, err
	}

	return message, nil
}

// DeleteAfter deletes the given message after the duration passes, as an
// alternative to ephemeral messages. It returns immediately; a deletion
// failure is logged at warn level since there is no caller left to return it
// to.
func (h *Handle) DeleteAfter(channelID, messageID string, after time.Duration) {
	time.AfterFunc(after, func() {
		if err := h.session.ChannelMessageDelete(channelID, messageID); err != nil {
			logger.WithFields(logrus.Fields{
				"channel_id": channelID,
				"message_id": messageID,
				"error":      err,
			}).Warn("failed-to-delete-message")
		}
	})
}

// DeleteWebhookMessageAfter deletes the given webhook message after the
// duration passes. It returns immediately; a deletion failure is logged at
// warn level.
func (h *Handle) DeleteWebhookMessageAfter(webhookID, token, messageID string, after time.Duration) {
	time.AfterFunc(after, func() {
		if err := h.session.WebhookMessageDelete(webhookID, token, messageID); err != nil {
			logger.WithFields(logrus.Fields{
				"webhook_id": webhookID,
				"message_id": messageID,
				"error":      err,
			}).Warn("failed-to-delete-webhook-message")
		}
	})
}
