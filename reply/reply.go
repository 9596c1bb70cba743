// Package reply provides a single payload type shared by interaction
// responses, followups, messages, DMs and webhook executions.
//
// Every field is exported, so a Reply can be built with a struct literal or
// with the chainable setter methods. Which fields apply depends on where the
// reply is used; the rest are ignored. No validation happens here: content
// length, embed limits and the rest are checked by Discord itself and
// surfaced as API errors.
package reply

import "github.com/bwmarrin/discordgo"

// Reply is the message to reply with.
type Reply struct {
	// Content is the text content of the reply
	Content string
	// Embeds are the embeds of the reply
	Embeds []*discordgo.MessageEmbed
	// Components are the message components of the reply
	Components []discordgo.MessageComponent
	// Files are the attachments of the reply
	Files []*discordgo.File
	// Flags are the message flags of the reply
	Flags discordgo.MessageFlags
	// TTS makes the reply a text-to-speech message
	TTS bool
	// AllowedMentions overrides the bot's default allowed mentions
	AllowedMentions *discordgo.MessageAllowedMentions
	// UpdateLast makes interaction handles update the last response instead
	// of creating a new one
	UpdateLast bool
	// Reference makes the reply quote another message, only used when
	// creating messages
	Reference *discordgo.MessageReference
	// StickerIDs are the stickers of the reply, only used when creating
	// messages
	StickerIDs []string
	// Username overrides the webhook's username, only used when executing
	// webhooks
	Username string
	// AvatarURL overrides the webhook's avatar, only used when executing
	// webhooks
	AvatarURL string
	// ThreadName is the name of the thread created when executing the
	// webhook in a forum channel
	ThreadName string
	// Wait makes webhook executions wait for the created message to be
	// returned
	Wait bool
}

// New creates an empty Reply. At least one of content, embeds, components or
// files should be set before the reply is sent.
func New() *Reply {
	return &Reply{}
}

// SetContent sets the content of the reply, overwriting the previous content.
func (r *Reply) SetContent(content string) *Reply {
	r.Content = content
	return r
}

// AddEmbed adds an embed to the reply.
func (r *Reply) AddEmbed(embed *discordgo.MessageEmbed) *Reply {
	r.Embeds = append(r.Embeds, embed)
	return r
}

// AddComponent adds a component to the reply.
func (r *Reply) AddComponent(component discordgo.MessageComponent) *Reply {
	r.Components = append(r.Components, component)
	return r
}

// AddFile adds an attachment to the reply.
func (r *Reply) AddFile(file *discordgo.File) *Reply {
	r.Files = append(r.Files, file)
	return r
}

// Ephemeral makes the reply only visible to the invoking user. Only used in
// interactions.
func (r *Reply) Ephemeral() *Reply {
	r.Flags |= discordgo.MessageFlagsEphemeral
	return r
}

// SetFlags sets the flags of the reply, overwriting flags set before,
// including Ephemeral.
func (r *Reply) SetFlags(flags discordgo.MessageFlags) *Reply {
	r.Flags = flags
	return r
}

// SetTTS makes the reply a text-to-speech message.
func (r *Reply) SetTTS() *Reply {
	r.TTS = true
	return r
}

// SetAllowedMentions overrides the bot's default allowed mentions.
func (r *Reply) SetAllowedMentions(allowedMentions *discordgo.MessageAllowedMentions) *Reply {
	r.AllowedMentions = allowedMentions
	return r
}

// UpdateLastMessage makes interaction handles update the last response with
// this reply instead of creating a new one. The update overwrites all of the
// older message.
func (r *Reply) UpdateLastMessage() *Reply {
	r.UpdateLast = true
	return r
}

// SetReference makes the reply quote the given message, the same as the
// Reply button in the Discord client. Only used when creating messages.
func (r *Reply) SetReference(reference *discordgo.MessageReference) *Reply {
	r.Reference = reference
	return r
}

// AddSticker adds a sticker to the reply. Only used when creating messages.
func (r *Reply) AddSticker(stickerID string) *Reply {
	r.StickerIDs = append(r.StickerIDs, stickerID)
	return r
}

// SetUsername overrides the webhook's username. Only used when executing
// webhooks.
func (r *Reply) SetUsername(username string) *Reply {
	r.Username = username
	return r
}

// SetAvatarURL overrides the webhook's avatar. Only used when executing
// webhooks.
func (r *Reply) SetAvatarURL(avatarURL string) *Reply {
	r.AvatarURL = avatarURL
	return r
}

// SetThreadName sets the name of the thread created when the reply is
// executed by a webhook in a forum channel.
func (r *Reply) SetThreadName(threadName string) *Reply {
	r.ThreadName = threadName
	return r
}

// WaitForMessage makes webhook executions wait for the created message to be
// returned in the response.
func (r *Reply) WaitForMessage() *Reply {
	r.Wait = true
	return r
}
