// Package sparkle is a convenience layer over discordgo for writing Discord
// bots.
//
// It adds builder types, an error taxonomy and interaction response-state
// tracking around calls into discordgo; the wire protocol, authentication,
// rate limiting and gateway management all stay discordgo's job. The full SDK
// surface remains reachable through Bot.Session.
package sparkle

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/laralove143/sparkle-convenience/interaction"
	"github.com/laralove143/sparkle-convenience/logger"
	"github.com/laralove143/sparkle-convenience/message"
	"github.com/laralove143/sparkle-convenience/reply"
)

// Bot holds the session and identity data required to run a bot.
type Bot struct {
	// Session is the underlying discordgo session, exposed so the full SDK
	// surface stays reachable
	Session *discordgo.Session
	// Application is the bot's application info, set by Open
	Application *discordgo.Application
	// User is the bot's own user info, set by Open
	User *discordgo.User
}

// New creates a bot with the given token and gateway intents. The "Bot "
// token prefix is added if missing. No network I/O happens until Open.
func New(token string, intents discordgo.Intent) (*Bot, error) {
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}

	logger.WithField("token", maskToken(token)).Debug("creating-discord-session")

	session, err := discordgo.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = intents

	return &Bot{Session: session}, nil
}

// Open fetches the bot's application and user info, then opens the gateway
// connection.
func (b *Bot) Open() error {
	var group errgroup.Group

	group.Go(func() error {
		application, err := b.Session.Application("@me")
		if err != nil {
			return fmt.Errorf("failed to get application info: %w", err)
		}
		b.Application = application
		return nil
	})

	group.Go(func() error {
		user, err := b.Session.User("@me")
		if err != nil {
			return fmt.Errorf("failed to get bot user: %w", err)
		}
		b.User = user
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}

	logger.WithField("user_id", b.User.ID).Info("gateway-connection-opened")

	return nil
}

// Close closes the gateway connection.
func (b *Bot) Close() error {
	if err := b.Session.Close(); err != nil {
		return fmt.Errorf("failed to close gateway connection: %w", err)
	}
	return nil
}

// InteractionHandle returns a handle tracking the response state of the
// given interaction.
func (b *Bot) InteractionHandle(i *discordgo.Interaction) *interaction.Handle {
	return interaction.NewHandle(b.Session, i)
}

// ReplyHandle returns a handle sending the given reply to messages, DMs and
// webhooks.
func (b *Bot) ReplyHandle(r *reply.Reply) *message.Handle {
	return message.NewHandle(b.Session, r)
}
