package sandbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	sparkle "github.com/laralove143/sparkle-convenience"
	"github.com/laralove143/sparkle-convenience/interaction"
	"github.com/laralove143/sparkle-convenience/logger"
	"github.com/laralove143/sparkle-convenience/prettify"
	"github.com/laralove143/sparkle-convenience/reply"
	"github.com/laralove143/sparkle-convenience/usererr"
)

// handlerFunc handles one interaction and returns an error to report to the
// user. Returned errors go through usererr.Classify before being shown.
type handlerFunc func(h *interaction.Handle, i *discordgo.Interaction) error

// userFacingError is the sandbox's own user-error domain. Its text is shown
// to the user as-is via usererr.Custom.
type userFacingError string

func (e userFacingError) Error() string { return string(e) }

func isUserFacing(err error) bool {
	var target userFacingError

	return errors.As(err, &target)
}

// Bot wires the library into a runnable test bot.
type Bot struct {
	bot    *sparkle.Bot
	config *Config
	runID  string

	commands             []*discordgo.ApplicationCommand
	commandHandlers      map[string]handlerFunc
	autocompleteHandlers map[string]handlerFunc
	componentHandlers    map[string]handlerFunc
	modalHandlers        map[string]handlerFunc

	registered []*discordgo.ApplicationCommand
}

// New creates the sandbox bot without opening a gateway connection.
func New(config *Config) (*Bot, error) {
	sparkleBot, err := sparkle.New(config.Bot.Token, discordgo.IntentsNone)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:    sparkleBot,
		config: config,
		runID:  uuid.NewString(),
	}
	bot.registerHandlers()

	return bot, nil
}

// Run connects to Discord, registers the sandbox commands and blocks until
// the context is canceled. Commands are deleted again on shutdown so stale
// entries don't linger between runs.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.bot.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	defer func() {
		if err := b.bot.Close(); err != nil {
			logger.WithError(err).Warn("failed-to-close-session")
		}
	}()

	if b.config.Logging.ChannelID != "" {
		if err := b.bot.SetLoggingChannel(b.config.Logging.ChannelID); err != nil {
			return fmt.Errorf("failed to set logging channel: %w", err)
		}
	}

	removeHandler := b.bot.Session.AddHandler(b.handleInteractionCreate)
	defer removeHandler()

	if err := b.createCommands(); err != nil {
		return err
	}
	defer b.deleteCommands()

	logger.WithFields(logrus.Fields{
		"run_id":  b.runID,
		"user_id": b.bot.User.ID,
	}).Info("sandbox-bot-running")

	<-ctx.Done()

	logger.Info("sandbox-bot-shutting-down")

	return nil
}

func (b *Bot) createCommands() error {
	for _, command := range b.commands {
		created, err := b.bot.Session.ApplicationCommandCreate(
			b.bot.Application.ID, b.config.Commands.GuildID, command)
		if err != nil {
			return fmt.Errorf("failed to create command %q: %w", command.Name, err)
		}

		b.registered = append(b.registered, created)
	}

	logger.WithField("count", len(b.registered)).Info("commands-registered")

	return nil
}

func (b *Bot) deleteCommands() {
	for _, command := range b.registered {
		err := b.bot.Session.ApplicationCommandDelete(
			b.bot.Application.ID, b.config.Commands.GuildID, command.ID)
		if err != nil {
			logger.WithError(err).WithField("command", command.Name).
				Warn("failed-to-delete-command")
		}
	}

	b.registered = nil
}

func (b *Bot) handleInteractionCreate(_ *discordgo.Session, event *discordgo.InteractionCreate) {
	i := event.Interaction

	name, ok := interaction.Name(i)
	if !ok {
		return
	}

	var handlers map[string]handlerFunc

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		handlers = b.commandHandlers
	case discordgo.InteractionApplicationCommandAutocomplete:
		handlers = b.autocompleteHandlers
	case discordgo.InteractionMessageComponent:
		handlers = b.componentHandlers
	case discordgo.InteractionModalSubmit:
		handlers = b.modalHandlers
	default:
		return
	}

	handler, ok := handlers[name]
	if !ok {
		logger.WithFields(logrus.Fields{
			"run_id":      b.runID,
			"interaction": name,
		}).Warn("no-handler-for-interaction")

		return
	}

	logger.WithFields(logrus.Fields{
		"run_id":      b.runID,
		"interaction": name,
	}).Debug("handling-interaction")

	handle := b.bot.InteractionHandle(i)
	if err := handler(handle, i); err != nil {
		b.reportError(handle, name, err)
	}
}

// reportError classifies the handler error, shows the user what they can
// act on and logs the rest.
func (b *Bot) reportError(handle *interaction.Handle, name string, err error) {
	userErr := usererr.Classify(err, isUserFacing)

	if _, internal := userErr.(usererr.Internal); internal {
		logger.WithError(err).WithFields(logrus.Fields{
			"run_id":      b.runID,
			"interaction": name,
		}).Error("interaction-handler-failed")
		b.bot.Log(err)
	}

	if _, reportErr := handle.ReportError(errorReply(userErr), userErr); reportErr != nil {
		b.bot.Log(fmt.Errorf("failed to report error for %q: %w", name, reportErr))
	}
}

func errorReply(userErr usererr.UserError) *reply.Reply {
	var content string

	switch e := userErr.(type) {
	case usererr.MissingPermissions:
		if e.Permissions != nil {
			content = "Please give me these permissions first:\n" +
				prettify.Permissions(*e.Permissions)
		} else {
			content = "Please make sure I have the permissions I need and try again."
		}
	case usererr.Custom:
		content = e.Err.Error()
	default:
		content = "Something went wrong on my side. Sorry, this one is on me."
	}

	return reply.New().SetContent(content).Ephemeral()
}
