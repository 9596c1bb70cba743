package interaction

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laralove143/sparkle-convenience/reply"
	"github.com/laralove143/sparkle-convenience/usererr"
)

// MockSession is a mock implementation of Session that records every call.
type MockSession struct {
	mu sync.Mutex

	respondErr      error
	followupErr     error
	followupEditErr error
	responseEditErr error

	responses     []*discordgo.InteractionResponse
	followups     []*discordgo.WebhookParams
	followupEdits []string
	responseEdits []*discordgo.WebhookEdit

	nextMessageID int
}

func (m *MockSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.respondErr != nil {
		return m.respondErr
	}
	m.responses = append(m.responses, resp)
	return nil
}

func (m *MockSession) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.followupErr != nil {
		return nil, m.followupErr
	}
	m.followups = append(m.followups, data)
	return m.newMessage(), nil
}

func (m *MockSession) FollowupMessageEdit(_ *discordgo.Interaction, messageID string, _ *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.followupEditErr != nil {
		return nil, m.followupEditErr
	}
	m.followupEdits = append(m.followupEdits, messageID)
	return m.newMessage(), nil
}

func (m *MockSession) InteractionResponseEdit(_ *discordgo.Interaction, newresp *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.responseEditErr != nil {
		return nil, m.responseEditErr
	}
	m.responseEdits = append(m.responseEdits, newresp)
	return m.newMessage(), nil
}

func (m *MockSession) newMessage() *discordgo.Message {
	m.nextMessageID++
	return &discordgo.Message{ID: fmt.Sprintf("message-%d", m.nextMessageID)}
}

func (m *MockSession) responseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}

func newCommandInteraction() *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:             "interaction-id",
		Token:          "interaction-token",
		Type:           discordgo.InteractionApplicationCommand,
		AppPermissions: discordgo.PermissionAll,
	}
}

func newComponentInteraction() *discordgo.Interaction {
	i := newCommandInteraction()
	i.Type = discordgo.InteractionMessageComponent
	return i
}

// TestResponseKindWireValues pins the numeric response kinds that cross the
// network boundary.
func TestResponseKindWireValues(t *testing.T) {
	assert.EqualValues(t, 4, discordgo.InteractionResponseChannelMessageWithSource)
	assert.EqualValues(t, 5, discordgo.InteractionResponseDeferredChannelMessageWithSource)
	assert.EqualValues(t, 6, discordgo.InteractionResponseDeferredMessageUpdate)
	assert.EqualValues(t, 7, discordgo.InteractionResponseUpdateMessage)
	assert.EqualValues(t, 8, discordgo.InteractionApplicationCommandAutocompleteResult)
	assert.EqualValues(t, 9, discordgo.InteractionResponseModal)
}

func TestHandle_CheckPermissions(t *testing.T) {
	t.Run("missing subset is returned exactly", func(t *testing.T) {
		i := newCommandInteraction()
		i.AppPermissions = discordgo.PermissionSendMessages

		h := NewHandle(&MockSession{}, i)

		err := h.CheckPermissions(discordgo.PermissionSendMessages | discordgo.PermissionManageMessages)

		var missingErr usererr.MissingPermissions
		require.ErrorAs(t, err, &missingErr)
		require.NotNil(t, missingErr.Permissions)
		assert.EqualValues(t, discordgo.PermissionManageMessages, *missingErr.Permissions)
	})

	t.Run("nothing missing", func(t *testing.T) {
		i := newCommandInteraction()
		i.AppPermissions = discordgo.PermissionSendMessages | discordgo.PermissionManageMessages

		h := NewHandle(&MockSession{}, i)

		assert.NoError(t, h.CheckPermissions(discordgo.PermissionSendMessages))
	})

	t.Run("unknown permissions mean all granted", func(t *testing.T) {
		// DM interactions carry no permission info; discordgo reports that
		// as zero.
		i := newCommandInteraction()
		i.AppPermissions = 0

		h := NewHandle(&MockSession{}, i)

		assert.NoError(t, h.CheckPermissions(discordgo.PermissionAdministrator))
	})
}

func TestHandle_Reply_InitialThenFollowup(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newCommandInteraction())

	message, err := h.Reply(reply.New().SetContent("a"))
	require.NoError(t, err)
	assert.Nil(t, message)
	require.Len(t, session.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, session.responses[0].Type)
	assert.Equal(t, "a", session.responses[0].Data.Content)

	message, err = h.Reply(reply.New().SetContent("b"))
	require.NoError(t, err)
	require.NotNil(t, message)
	require.Len(t, session.followups, 1)
	assert.Equal(t, "b", session.followups[0].Content)
	assert.Equal(t, message.ID, h.lastMessageID)
}

func TestHandle_Reply_UpdateLastWithoutFollowup_EditsOriginal(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newCommandInteraction())

	_, err := h.Reply(reply.New().SetContent("a"))
	require.NoError(t, err)
	require.Empty(t, h.lastMessageID)

	message, err := h.Reply(reply.New().SetContent("c").UpdateLastMessage())
	require.NoError(t, err)
	require.NotNil(t, message)
	require.Len(t, session.responseEdits, 1)
	require.NotNil(t, session.responseEdits[0].Content)
	assert.Equal(t, "c", *session.responseEdits[0].Content)
	assert.Equal(t, message.ID, h.lastMessageID)
}

func TestHandle_Reply_UpdateLastWithFollowup_EditsFollowup(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newCommandInteraction())

	_, err := h.Reply(reply.New().SetContent("a"))
	require.NoError(t, err)

	followup, err := h.Reply(reply.New().SetContent("b"))
	require.NoError(t, err)
	require.NotNil(t, followup)

	message, err := h.Reply(reply.New().SetContent("c").UpdateLastMessage())
	require.NoError(t, err)
	assert.Nil(t, message)
	require.Len(t, session.followupEdits, 1)
	assert.Equal(t, followup.ID, session.followupEdits[0])
	// The edit target stays the same followup.
	assert.Equal(t, followup.ID, h.lastMessageID)
}

func TestHandle_Reply_UpdateLastOnComponent_UpdatesAttachedMessage(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newComponentInteraction())

	message, err := h.Reply(reply.New().SetContent("a").UpdateLastMessage())
	require.NoError(t, err)
	assert.Nil(t, message)
	require.Len(t, session.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, session.responses[0].Type)
}

func TestHandle_Reply_FailedInitialLeavesUnresponded(t *testing.T) {
	session := &MockSession{respondErr: errors.New("connection reset")}
	h := NewHandle(session, newCommandInteraction())

	_, err := h.Reply(reply.New().SetContent("a"))
	require.Error(t, err)
	assert.False(t, h.responded)

	// A later attempt is still routed as the initial response.
	session.respondErr = nil
	message, err := h.Reply(reply.New().SetContent("a"))
	require.NoError(t, err)
	assert.Nil(t, message)
	assert.True(t, h.responded)
}

func TestHandle_Reply_FailedFollowupKeepsLastMessageID(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newCommandInteraction())

	_, err := h.Reply(reply.New().SetContent("a"))
	require.NoError(t, err)

	session.followupErr = errors.New("boom")
	_, err = h.Reply(reply.New().SetContent("b"))
	require.Error(t, err)
	assert.Empty(t, h.lastMessageID)
}

func TestHandle_Defer(t *testing.T) {
	tests := []struct {
		name        string
		interaction *discordgo.Interaction
		visibility  DeferVisibility
		behavior    DeferBehavior
		wantKind    discordgo.InteractionResponseType
		wantFlags   discordgo.MessageFlags
	}{
		{
			name:        "command followup visible",
			interaction: newCommandInteraction(),
			visibility:  Visible,
			behavior:    Followup,
			wantKind:    discordgo.InteractionResponseDeferredChannelMessageWithSource,
		},
		{
			name:        "command ignores update behavior",
			interaction: newCommandInteraction(),
			visibility:  Visible,
			behavior:    Update,
			wantKind:    discordgo.InteractionResponseDeferredChannelMessageWithSource,
		},
		{
			name:        "command ephemeral",
			interaction: newCommandInteraction(),
			visibility:  Ephemeral,
			behavior:    Followup,
			wantKind:    discordgo.InteractionResponseDeferredChannelMessageWithSource,
			wantFlags:   discordgo.MessageFlagsEphemeral,
		},
		{
			name:        "component followup",
			interaction: newComponentInteraction(),
			visibility:  Visible,
			behavior:    Followup,
			wantKind:    discordgo.InteractionResponseDeferredChannelMessageWithSource,
		},
		{
			name:        "component update",
			interaction: newComponentInteraction(),
			visibility:  Visible,
			behavior:    Update,
			wantKind:    discordgo.InteractionResponseDeferredMessageUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &MockSession{}
			h := NewHandle(session, tt.interaction)

			require.NoError(t, h.Defer(tt.visibility, tt.behavior))

			require.Len(t, session.responses, 1)
			assert.Equal(t, tt.wantKind, session.responses[0].Type)
			assert.Equal(t, tt.wantFlags, session.responses[0].Data.Flags)
			assert.True(t, h.responded)
		})
	}
}

func TestHandle_Defer_AfterResponse(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newCommandInteraction())

	require.NoError(t, h.Defer(Visible, Followup))

	err := h.Defer(Visible, Followup)
	assert.ErrorIs(t, err, ErrAlreadyResponded)
	assert.Equal(t, 1, session.responseCount())
}

func TestHandle_Autocomplete(t *testing.T) {
	session := &MockSession{}
	i := newCommandInteraction()
	i.Type = discordgo.InteractionApplicationCommandAutocomplete
	h := NewHandle(session, i)

	choices := []*discordgo.ApplicationCommandOptionChoice{{Name: "red", Value: "red"}}
	require.NoError(t, h.Autocomplete(choices))

	require.Len(t, session.responses, 1)
	assert.Equal(t, discordgo.InteractionApplicationCommandAutocompleteResult, session.responses[0].Type)
	assert.Equal(t, choices, session.responses[0].Data.Choices)
}

func TestHandle_Autocomplete_Twice(t *testing.T) {
	session := &MockSession{}
	i := newCommandInteraction()
	i.Type = discordgo.InteractionApplicationCommandAutocomplete
	h := NewHandle(session, i)

	choices := []*discordgo.ApplicationCommandOptionChoice{{Name: "red", Value: "red"}}
	require.NoError(t, h.Autocomplete(choices))

	err := h.Autocomplete(choices)
	assert.ErrorIs(t, err, ErrAlreadyResponded)
	// The second attempt must not reach the network.
	assert.Equal(t, 1, session.responseCount())
}

func TestHandle_Modal(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newCommandInteraction())

	textInputs := []discordgo.TextInput{
		{CustomID: "subject", Label: "Subject", Style: discordgo.TextInputShort},
		{CustomID: "body", Label: "Body", Style: discordgo.TextInputParagraph},
	}
	require.NoError(t, h.Modal("feedback-modal", "Feedback", textInputs))

	require.Len(t, session.responses, 1)
	resp := session.responses[0]
	assert.Equal(t, discordgo.InteractionResponseModal, resp.Type)
	assert.Equal(t, "feedback-modal", resp.Data.CustomID)
	assert.Equal(t, "Feedback", resp.Data.Title)

	// Each text input sits in its own action row.
	require.Len(t, resp.Data.Components, 2)
	for n, component := range resp.Data.Components {
		row, ok := component.(discordgo.ActionsRow)
		require.True(t, ok)
		require.Len(t, row.Components, 1)
		assert.Equal(t, textInputs[n], row.Components[0])
	}
}

func TestHandle_Modal_AfterResponse(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newCommandInteraction())

	_, err := h.Reply(reply.New().SetContent("a"))
	require.NoError(t, err)

	err = h.Modal("id", "title", nil)
	assert.ErrorIs(t, err, ErrAlreadyResponded)
	assert.Equal(t, 1, session.responseCount())
}

// TestHandle_Reply_FirstWriterWins checks that concurrent replies on a shared
// handle produce exactly one initial response.
func TestHandle_Reply_FirstWriterWins(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newCommandInteraction())

	const goroutines = 16

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Reply(reply.New().SetContent("racing"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, session.responseCount())
	assert.Len(t, session.followups, goroutines-1)
}

func TestHandle_ReportError(t *testing.T) {
	permissionReply := reply.New().SetContent("missing permissions").Ephemeral()

	t.Run("ignore sends nothing", func(t *testing.T) {
		session := &MockSession{}
		h := NewHandle(session, newCommandInteraction())

		message, err := h.ReportError(permissionReply, usererr.Ignore{})
		require.NoError(t, err)
		assert.Nil(t, message)
		assert.Zero(t, session.responseCount())
	})

	t.Run("reported to user", func(t *testing.T) {
		session := &MockSession{}
		h := NewHandle(session, newCommandInteraction())

		message, err := h.ReportError(permissionReply, usererr.MissingPermissions{})
		require.NoError(t, err)
		assert.Nil(t, message)
		require.Len(t, session.responses, 1)
		assert.Equal(t, "missing permissions", session.responses[0].Data.Content)
	})

	t.Run("user-facing reply failure is swallowed", func(t *testing.T) {
		session := &MockSession{respondErr: &discordgo.RESTError{
			Response: &http.Response{Status: "403 Forbidden"},
			Message:  &discordgo.APIErrorMessage{Code: 50013},
		}}
		h := NewHandle(session, newCommandInteraction())

		message, err := h.ReportError(permissionReply, usererr.MissingPermissions{})
		assert.NoError(t, err)
		assert.Nil(t, message)
	})

	t.Run("internal reply failure propagates", func(t *testing.T) {
		session := &MockSession{respondErr: errors.New("connection reset")}
		h := NewHandle(session, newCommandInteraction())

		_, err := h.ReportError(permissionReply, usererr.Internal{Err: errors.New("boom")})
		assert.Error(t, err)
	})
}

// TestHandle_FollowupError50013Classification checks that a 50013 on
// a followup classifies as missing permissions and decorates cleanly.
func TestHandle_FollowupError50013Classification(t *testing.T) {
	session := &MockSession{}
	h := NewHandle(session, newCommandInteraction())

	_, err := h.Reply(reply.New().SetContent("a"))
	require.NoError(t, err)

	session.followupErr = &discordgo.RESTError{
		Response: &http.Response{Status: "403 Forbidden"},
		Message:  &discordgo.APIErrorMessage{Code: 50013},
	}

	_, err = h.Reply(reply.New().SetContent("b"))
	require.Error(t, err)

	classified := usererr.Classify(err, nil)
	assert.Equal(t, usererr.MissingPermissions{}, classified)

	decorated := usererr.WithPermissions(classified, discordgo.PermissionSendMessages)
	missing, ok := decorated.(usererr.MissingPermissions)
	require.True(t, ok)
	require.NotNil(t, missing.Permissions)
	assert.EqualValues(t, discordgo.PermissionSendMessages, *missing.Permissions)
}
