// Package prettify formats Discord values into human-readable strings.
package prettify

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// permissionNames maps permission bits to the names Discord's client shows
// for them.
var permissionNames = map[int64]string{
	discordgo.PermissionCreateInstantInvite:   "Create Instant Invite",
	discordgo.PermissionKickMembers:           "Kick Members",
	discordgo.PermissionBanMembers:            "Ban Members",
	discordgo.PermissionAdministrator:         "Administrator",
	discordgo.PermissionManageChannels:        "Manage Channels",
	discordgo.PermissionManageServer:          "Manage Server",
	discordgo.PermissionAddReactions:          "Add Reactions",
	discordgo.PermissionViewAuditLogs:         "View Audit Log",
	discordgo.PermissionVoicePrioritySpeaker:  "Priority Speaker",
	discordgo.PermissionVoiceStreamVideo:      "Video",
	discordgo.PermissionViewChannel:           "View Channel",
	discordgo.PermissionSendMessages:          "Send Messages",
	discordgo.PermissionSendTTSMessages:       "Send TTS Messages",
	discordgo.PermissionManageMessages:        "Manage Messages",
	discordgo.PermissionEmbedLinks:            "Embed Links",
	discordgo.PermissionAttachFiles:           "Attach Files",
	discordgo.PermissionReadMessageHistory:    "Read Message History",
	discordgo.PermissionMentionEveryone:       "Mention Everyone",
	discordgo.PermissionUseExternalEmojis:     "Use External Emojis",
	discordgo.PermissionViewGuildInsights:     "View Server Insights",
	discordgo.PermissionVoiceConnect:          "Connect",
	discordgo.PermissionVoiceSpeak:            "Speak",
	discordgo.PermissionVoiceMuteMembers:      "Mute Members",
	discordgo.PermissionVoiceDeafenMembers:    "Deafen Members",
	discordgo.PermissionVoiceMoveMembers:      "Move Members",
	discordgo.PermissionVoiceUseVAD:           "Use Voice Activity",
	discordgo.PermissionChangeNickname:        "Change Nickname",
	discordgo.PermissionManageNicknames:       "Manage Nicknames",
	discordgo.PermissionManageRoles:           "Manage Roles",
	discordgo.PermissionManageWebhooks:        "Manage Webhooks",
	discordgo.PermissionManageEmojis:          "Manage Emojis and Stickers",
	discordgo.PermissionUseSlashCommands:      "Use Application Commands",
	discordgo.PermissionVoiceRequestToSpeak:   "Request to Speak",
	discordgo.PermissionManageEvents:          "Manage Events",
	discordgo.PermissionManageThreads:         "Manage Threads",
	discordgo.PermissionCreatePublicThreads:   "Create Public Threads",
	discordgo.PermissionCreatePrivateThreads:  "Create Private Threads",
	discordgo.PermissionUseExternalStickers:   "Use External Stickers",
	discordgo.PermissionSendMessagesInThreads: "Send Messages in Threads",
	discordgo.PermissionUseActivities:         "Use Embedded Activities",
	discordgo.PermissionModerateMembers:       "Moderate Members",
}

// Permissions returns the human-readable names of the known permissions set
// in the given bitset, one per line, ordered by ascending bit position.
// Unknown bits are skipped; zero yields an empty string.
func Permissions(permissions int64) string {
	var names []string

	for bit := 0; bit < 63; bit++ {
		flag := int64(1) << bit
		if permissions&flag == 0 {
			continue
		}
		if name, ok := permissionNames[flag]; ok {
			names = append(names, name)
		}
	}

	return strings.Join(names, "\n")
}
