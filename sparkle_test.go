package sparkle

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PrefixesToken(t *testing.T) {
	bot, err := New("raw-token-value", discordgo.IntentGuilds)

	require.NoError(t, err)
	require.NotNil(t, bot.Session)
	assert.Equal(t, "Bot raw-token-value", bot.Session.Token)
	assert.Equal(t, discordgo.IntentGuilds, bot.Session.Identify.Intents)
}

func TestNew_ToleratesPrefixedToken(t *testing.T) {
	bot, err := New("Bot raw-token-value", discordgo.IntentGuilds)

	require.NoError(t, err)
	assert.Equal(t, "Bot raw-token-value", bot.Session.Token)
}

func TestNew_DoesNotSetIdentity(t *testing.T) {
	// Application and user info are only fetched by Open.
	bot, err := New("raw-token-value", discordgo.IntentGuilds)

	require.NoError(t, err)
	assert.Nil(t, bot.Application)
	assert.Nil(t, bot.User)
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "short token fully masked", token: "short", want: "***"},
		{name: "long token keeps edges", token: "Bot abcdefghijklmnop", want: "Bot abc***mnop"},
		{name: "empty token", token: "", want: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskToken(tt.token))
		})
	}
}
