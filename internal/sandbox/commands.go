package sandbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/laralove143/sparkle-convenience/interaction"
	"github.com/laralove143/sparkle-convenience/reply"
	"github.com/laralove143/sparkle-convenience/usererr"
)

const cleanupDelay = 10 * time.Second

// colors for the /color autocomplete, ordered as suggested.
var colorNames = []string{"Red", "Orange", "Yellow", "Green", "Blue", "Purple"}

var colorValues = map[string]int{
	"Red":    0xED4245,
	"Orange": 0xE67E22,
	"Yellow": 0xFEE75C,
	"Green":  0x57F287,
	"Blue":   0x3498DB,
	"Purple": 0x9B59B6,
}

// registerHandlers fills the command table and the per-type handler maps.
func (b *Bot) registerHandlers() {
	b.commands = []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check that the bot is alive",
		},
		{
			Name:        "color",
			Description: "Show a color swatch",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "name",
					Description:  "Name of the color",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		{
			Name:        "feedback",
			Description: "Send feedback through a form",
		},
		{
			Name:        "buttons",
			Description: "Show a message that updates itself on click",
		},
		{
			Name:        "cleanup",
			Description: "Send a message that deletes itself",
		},
		{
			Name:        "dm",
			Description: "Get a test message in your DMs",
		},
	}

	b.commandHandlers = map[string]handlerFunc{
		"ping":     b.handlePing,
		"color":    b.handleColor,
		"feedback": b.handleFeedback,
		"buttons":  b.handleButtons,
		"cleanup":  b.handleCleanup,
		"dm":       b.handleDM,
	}
	b.autocompleteHandlers = map[string]handlerFunc{
		"color": b.handleColorAutocomplete,
	}
	b.componentHandlers = map[string]handlerFunc{
		"buttons-refresh": b.handleButtonsRefresh,
	}
	b.modalHandlers = map[string]handlerFunc{
		"feedback": b.handleFeedbackModal,
	}
}

func (b *Bot) handlePing(h *interaction.Handle, _ *discordgo.Interaction) error {
	latency := b.bot.Session.HeartbeatLatency()

	_, err := h.Reply(reply.New().
		SetContent(fmt.Sprintf("Pong! Heartbeat latency is %s.", latency.Round(time.Millisecond))).
		Ephemeral())

	return err
}

func (b *Bot) handleColorAutocomplete(h *interaction.Handle, i *discordgo.Interaction) error {
	data, ok := interaction.CommandData(i)
	if !ok || len(data.Options) == 0 {
		return h.Autocomplete(nil)
	}

	partial := strings.ToLower(data.Options[0].StringValue())

	var choices []*discordgo.ApplicationCommandOptionChoice

	for _, name := range colorNames {
		if !strings.HasPrefix(strings.ToLower(name), partial) {
			continue
		}

		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}

	return h.Autocomplete(choices)
}

func (b *Bot) handleColor(h *interaction.Handle, i *discordgo.Interaction) error {
	data, ok := interaction.CommandData(i)
	if !ok || len(data.Options) == 0 {
		return userFacingError("Please tell me which color you want.")
	}

	name := data.Options[0].StringValue()

	value, ok := colorValues[name]
	if !ok {
		return userFacingError(fmt.Sprintf(
			"I don't know the color %q, pick one of the suggestions.", name))
	}

	_, err := h.Reply(reply.New().AddEmbed(&discordgo.MessageEmbed{
		Title: name,
		Color: value,
	}))

	return err
}

func (b *Bot) handleFeedback(h *interaction.Handle, _ *discordgo.Interaction) error {
	return h.Modal("feedback", "Send Feedback", []discordgo.TextInput{
		{
			CustomID:    "message",
			Label:       "Your feedback",
			Style:       discordgo.TextInputParagraph,
			Placeholder: "What should we know?",
			Required:    true,
			MaxLength:   1000,
		},
	})
}

func (b *Bot) handleFeedbackModal(h *interaction.Handle, i *discordgo.Interaction) error {
	data, ok := interaction.ModalData(i)
	if !ok {
		return fmt.Errorf("feedback handler got non-modal interaction")
	}

	feedback := modalInputValue(data, "message")
	if feedback == "" {
		return userFacingError("Your feedback came through empty, please try again.")
	}

	if _, err := h.Reply(reply.New().
		SetContent("Thanks for the feedback! I sent a copy to your DMs.").
		Ephemeral()); err != nil {
		return err
	}

	user := interaction.User(i)
	if user == nil {
		return fmt.Errorf("feedback interaction has no user")
	}

	copyReply := reply.New().SetContent("Here is a copy of your feedback:\n>>> " + feedback)
	if _, err := b.bot.ReplyHandle(copyReply).CreatePrivateMessage(user.ID); err != nil {
		return fmt.Errorf("failed to send feedback copy: %w", err)
	}

	return nil
}

func (b *Bot) handleButtons(h *interaction.Handle, _ *discordgo.Interaction) error {
	_, err := h.Reply(reply.New().
		SetContent("Clicked 0 times.").
		AddComponent(refreshButtonRow()))

	return err
}

func (b *Bot) handleButtonsRefresh(h *interaction.Handle, i *discordgo.Interaction) error {
	if err := h.Defer(interaction.Visible, interaction.Update); err != nil {
		return err
	}

	clicks := 1
	if i.Message != nil {
		// the click count lives in the message content itself
		if _, scanErr := fmt.Sscanf(i.Message.Content, "Clicked %d times.", &clicks); scanErr == nil {
			clicks++
		}
	}

	_, err := h.Reply(reply.New().
		SetContent(fmt.Sprintf("Clicked %d times.", clicks)).
		AddComponent(refreshButtonRow()).
		UpdateLastMessage())

	return err
}

func refreshButtonRow() discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: "buttons-refresh",
				Label:    "Click me",
				Style:    discordgo.PrimaryButton,
			},
		},
	}
}

func (b *Bot) handleCleanup(h *interaction.Handle, i *discordgo.Interaction) error {
	if err := h.CheckPermissions(discordgo.PermissionManageMessages); err != nil {
		return err
	}

	if err := h.Defer(interaction.Visible, interaction.Followup); err != nil {
		return err
	}

	msg, err := h.Reply(reply.New().SetContent(fmt.Sprintf(
		"This message deletes itself in %s.", cleanupDelay)))
	if err != nil {
		return err
	}

	channelID := msg.ChannelID
	if channelID == "" {
		channelID = i.ChannelID
	}

	b.bot.ReplyHandle(reply.New()).DeleteAfter(channelID, msg.ID, cleanupDelay)

	return nil
}

func (b *Bot) handleDM(h *interaction.Handle, i *discordgo.Interaction) error {
	user := interaction.User(i)
	if user == nil {
		return fmt.Errorf("dm interaction has no user")
	}

	dm := reply.New().SetContent("Hello! This is the DM test message.")

	if _, err := b.bot.ReplyHandle(dm).CreatePrivateMessage(user.ID); err != nil {
		if usererr.IsFailedDM(err) {
			return userFacingError("I can't DM you, check your privacy settings.")
		}

		return fmt.Errorf("failed to send test DM: %w", err)
	}

	_, err := h.Reply(reply.New().SetContent("Check your DMs!").Ephemeral())

	return err
}

// modalInputValue finds a text input's submitted value by custom ID.
func modalInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}

		for _, inner := range row.Components {
			input, ok := inner.(*discordgo.TextInput)
			if !ok {
				continue
			}

			if input.CustomID == customID {
				return input.Value
			}
		}
	}

	return ""
}
