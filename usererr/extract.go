package usererr

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// Code digs a *discordgo.RESTError out of the error's wrap chain and returns
// its Discord API error code. The second return value is false when the error
// isn't a REST error or carries no code.
func Code(err error) (int, bool) {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return 0, false
	}
	return restErr.Message.Code, true
}

// IsUnknownMessage reports whether the error is an `Unknown message` API
// error, returned when the message was deleted before the request was sent.
func IsUnknownMessage(err error) bool {
	return hasCode(err, discordgo.ErrCodeUnknownMessage)
}

// IsMissingAccess reports whether the error is a `Missing access` API error.
func IsMissingAccess(err error) bool {
	return hasCode(err, discordgo.ErrCodeMissingAccess)
}

// IsFailedDM reports whether the error is a `Cannot send messages to this
// user` API error.
func IsFailedDM(err error) bool {
	return hasCode(err, discordgo.ErrCodeCannotSendMessagesToThisUser)
}

// IsMissingPermissions reports whether the error is a `Missing permissions`
// API error.
func IsMissingPermissions(err error) bool {
	return hasCode(err, discordgo.ErrCodeMissingPermissions)
}

// IsReactionBlocked reports whether the error is a `Reaction blocked` API
// error, returned when the target user blocked the bot.
func IsReactionBlocked(err error) bool {
	return hasCode(err, discordgo.ErrCodeReactionBlocked)
}

func hasCode(err error, want int) bool {
	code, ok := Code(err)
	return ok && code == want
}
