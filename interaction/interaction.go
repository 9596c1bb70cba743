// Package interaction tracks the response state of a Discord interaction.
//
// Discord allows exactly one initial response per interaction; everything
// after that has to be a followup or an edit. Handle serializes that rule: it
// remembers whether the interaction was responded to and routes each call to
// the right API endpoint. A *Handle can be shared across goroutines, for
// example when a long-running command defers in one goroutine and replies
// from another.
//
// The handle never classifies or logs errors, it only returns them. Callers
// run returned errors through usererr.Classify to decide what to show the
// user.
package interaction

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/laralove143/sparkle-convenience/reply"
	"github.com/laralove143/sparkle-convenience/usererr"
)

// ErrAlreadyResponded is returned when an initial-response-only operation is
// called after the interaction was already responded to. It indicates a logic
// error in the caller and is never sent over the network.
var ErrAlreadyResponded = errors.New("initial response for that interaction has already been sent")

// Session is the subset of *discordgo.Session used to respond to
// interactions. It allows mocking the Discord API in tests.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageEdit(interaction *discordgo.Interaction, messageID string, data *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DeferVisibility defines whether a defer request is ephemeral.
type DeferVisibility int

const (
	// Ephemeral defers are only shown to the user that created the
	// interaction
	Ephemeral DeferVisibility = iota
	// Visible defers are shown to everyone in the channel
	Visible
)

// DeferBehavior defines whether the response after a defer updates the
// message the interaction is attached to or creates a new message. Only
// component interactions honor it; other interactions have no message of
// their own to update.
type DeferBehavior int

const (
	// Followup makes the next response create a new message
	Followup DeferBehavior = iota
	// Update makes the next response update the component's message
	Update
)

// Handle tracks the response state of one interaction.
//
// Create it with NewHandle and discard it when the handler returns; the
// interaction token expires on Discord's side after about 15 minutes anyway,
// so there is nothing worth persisting.
type Handle struct {
	session     Session
	interaction *discordgo.Interaction
	kind        discordgo.InteractionType

	// appPermissions is a snapshot of the bot's permissions in the
	// originating context at event-receipt time.
	appPermissions int64

	// mu guards responded and lastMessageID as one unit. Reply reads both
	// and conditionally writes both, so the whole check-call-mutate sequence
	// of every operation runs under the lock: two concurrent Reply calls can
	// never both send the initial response.
	mu            sync.Mutex
	responded     bool
	lastMessageID string
}

// NewHandle creates a handle for the given interaction.
//
// Interactions without permission info, such as those created in DMs, are
// treated as if the bot had every permission. discordgo can't distinguish an
// absent app_permissions field from an all-zero one, so a zero value also
// gets the all sentinel.
func NewHandle(session Session, i *discordgo.Interaction) *Handle {
	appPermissions := i.AppPermissions
	if appPermissions == 0 {
		appPermissions = discordgo.PermissionAll
	}

	return &Handle{
		session:        session,
		interaction:    i,
		kind:           i.Type,
		appPermissions: appPermissions,
	}
}

// CheckPermissions checks that the bot has the required permissions in the
// interaction's context. It returns usererr.MissingPermissions carrying
// exactly the missing subset, or nil if nothing is missing.
//
// It always returns nil in DMs, make sure the command can actually run there.
func (h *Handle) CheckPermissions(required int64) error {
	missing := required &^ h.appPermissions
	if missing != 0 {
		return usererr.MissingPermissions{Permissions: &missing}
	}
	return nil
}

// Defer acknowledges the interaction without content, buying time past
// Discord's initial-response deadline before a real reply.
//
// The visibility only affects the first Reply. Component interactions honor
// the behavior; every other kind always defers as Followup.
//
// Returns ErrAlreadyResponded without calling Discord if the interaction was
// already responded to.
func (h *Handle) Defer(visibility DeferVisibility, behavior DeferBehavior, options ...discordgo.RequestOption) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.responded {
		return ErrAlreadyResponded
	}

	kind := discordgo.InteractionResponseDeferredChannelMessageWithSource
	if h.kind == discordgo.InteractionMessageComponent && behavior == Update {
		kind = discordgo.InteractionResponseDeferredMessageUpdate
	}

	data := &discordgo.InteractionResponseData{}
	if visibility == Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := h.session.InteractionRespond(h.interaction, &discordgo.InteractionResponse{
		Type: kind,
		Data: data,
	}, options...)
	if err != nil {
		return fmt.Errorf("failed to defer interaction: %w", err)
	}

	h.responded = true

	return nil
}

// Reply replies to the interaction with the given reply.
//
// If this is the first response, it is sent as the interaction's initial
// response and no message is returned; Discord's response to that call
// carries no body. Otherwise the reply is routed based on r.UpdateLast:
//
//   - UpdateLast unset: a followup message is created and returned, and
//     becomes the target of later updates.
//   - UpdateLast set with an earlier followup: that followup is edited and
//     nothing is returned.
//   - UpdateLast set without an earlier followup: the original response is
//     edited in place and the resulting message is returned.
//
// On a component interaction that wasn't responded to yet, UpdateLast makes
// the initial response update the message the component is attached to.
//
// State only mutates after the API call succeeds, so a failed initial
// response leaves the handle unresponded.
func (h *Handle) Reply(r *reply.Reply, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.responded {
		kind := discordgo.InteractionResponseChannelMessageWithSource
		if r.UpdateLast && h.kind == discordgo.InteractionMessageComponent {
			kind = discordgo.InteractionResponseUpdateMessage
		}

		err := h.session.InteractionRespond(h.interaction, &discordgo.InteractionResponse{
			Type: kind,
			Data: r.InteractionResponseData(),
		}, options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create interaction response: %w", err)
		}

		h.responded = true

		return nil, nil
	}

	if !r.UpdateLast {
		message, err := h.session.FollowupMessageCreate(h.interaction, true, r.FollowupParams(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create followup message: %w", err)
		}

		h.lastMessageID = message.ID

		return message, nil
	}

	if h.lastMessageID != "" {
		if _, err := h.session.FollowupMessageEdit(h.interaction, h.lastMessageID, r.WebhookEdit(), options...); err != nil {
			return nil, fmt.Errorf("failed to update followup message: %w", err)
		}

		return nil, nil
	}

	message, err := h.session.InteractionResponseEdit(h.interaction, r.WebhookEdit(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to update original response: %w", err)
	}

	h.lastMessageID = message.ID

	return message, nil
}

// Autocomplete responds to the interaction with autocomplete suggestions.
//
// Returns ErrAlreadyResponded without calling Discord if the interaction was
// already responded to.
func (h *Handle) Autocomplete(choices []*discordgo.ApplicationCommandOptionChoice, options ...discordgo.RequestOption) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.responded {
		return ErrAlreadyResponded
	}

	err := h.session.InteractionRespond(h.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}, options...)
	if err != nil {
		return fmt.Errorf("failed to create autocomplete response: %w", err)
	}

	h.responded = true

	return nil
}

// Modal responds to the interaction with a modal. Each text input is wrapped
// in its own action row, as Discord requires.
//
// Returns ErrAlreadyResponded without calling Discord if the interaction was
// already responded to.
func (h *Handle) Modal(customID, title string, textInputs []discordgo.TextInput, options ...discordgo.RequestOption) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.responded {
		return ErrAlreadyResponded
	}

	components := make([]discordgo.MessageComponent, 0, len(textInputs))
	for _, textInput := range textInputs {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{textInput},
		})
	}

	err := h.session.InteractionRespond(h.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	}, options...)
	if err != nil {
		return fmt.Errorf("failed to create modal response: %w", err)
	}

	h.responded = true

	return nil
}

// ReportError reports a classified error to the user with the given reply.
//
// If the classification is Ignore, nothing is sent and nothing is returned.
// Otherwise the reply is sent like Reply. If sending it fails for a reason
// that itself classifies as user-facing, for example the bot lost the
// permission to speak in the meantime, the failure is swallowed; only
// internal failures propagate.
func (h *Handle) ReportError(r *reply.Reply, userErr usererr.UserError, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if _, ok := userErr.(usererr.Ignore); ok {
		return nil, nil
	}

	message, err := h.Reply(r, options...)
	if err != nil {
		if _, internal := usererr.Classify(err, nil).(usererr.Internal); !internal {
			return nil, nil
		}
		return nil, err
	}

	return message, nil
}
