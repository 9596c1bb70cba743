package reply

import "github.com/bwmarrin/discordgo"

// InteractionResponseData converts the reply into the data of an interaction
// response.
func (r *Reply) InteractionResponseData() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:         r.Content,
		Embeds:          r.Embeds,
		Components:      r.Components,
		Files:           r.Files,
		Flags:           r.Flags,
		TTS:             r.TTS,
		AllowedMentions: r.AllowedMentions,
	}
}

// FollowupParams converts the reply into the params of a followup message.
// Followups are posted through the interaction's own webhook, so the webhook
// identity fields are never set here.
func (r *Reply) FollowupParams() *discordgo.WebhookParams {
	return &discordgo.WebhookParams{
		Content:         r.Content,
		Embeds:          r.Embeds,
		Components:      r.Components,
		Files:           r.Files,
		Flags:           r.Flags,
		TTS:             r.TTS,
		AllowedMentions: r.AllowedMentions,
	}
}

// WebhookParams converts the reply into the params of a webhook execution,
// including the webhook identity and thread fields.
func (r *Reply) WebhookParams() *discordgo.WebhookParams {
	params := r.FollowupParams()
	params.Username = r.Username
	params.AvatarURL = r.AvatarURL
	params.ThreadName = r.ThreadName
	return params
}

// WebhookEdit converts the reply into a webhook message edit. All pointer
// fields are always set, since an update overwrites all of the older message.
func (r *Reply) WebhookEdit() *discordgo.WebhookEdit {
	content := r.Content
	embeds := r.Embeds
	components := r.Components

	return &discordgo.WebhookEdit{
		Content:         &content,
		Embeds:          &embeds,
		Components:      &components,
		Files:           r.Files,
		AllowedMentions: r.AllowedMentions,
	}
}

// MessageSend converts the reply into the data of a message creation.
func (r *Reply) MessageSend() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:         r.Content,
		Embeds:          r.Embeds,
		Components:      r.Components,
		Files:           r.Files,
		Flags:           r.Flags,
		TTS:             r.TTS,
		AllowedMentions: r.AllowedMentions,
		Reference:       r.Reference,
		StickerIDs:      r.StickerIDs,
	}
}

// MessageEdit converts the reply into an edit of the given message. All
// pointer fields are always set, since an update overwrites all of the older
// message.
func (r *Reply) MessageEdit(channelID, messageID string) *discordgo.MessageEdit {
	content := r.Content
	embeds := r.Embeds
	components := r.Components

	return &discordgo.MessageEdit{
		Content:         &content,
		Embeds:          &embeds,
		Components:      &components,
		Flags:           r.Flags,
		Files:           r.Files,
		AllowedMentions: r.AllowedMentions,
		Channel:         channelID,
		ID:              messageID,
	}
}
