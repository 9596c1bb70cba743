package interaction

import "github.com/bwmarrin/discordgo"

// Name returns the command name or the component/modal custom ID of the
// interaction. The second return value is false for ping interactions and
// any interaction without data.
func Name(i *discordgo.Interaction) (string, bool) {
	switch data := i.Data.(type) {
	case discordgo.ApplicationCommandInteractionData:
		return data.Name, true
	case discordgo.MessageComponentInteractionData:
		return data.CustomID, true
	case discordgo.ModalSubmitInteractionData:
		return data.CustomID, true
	default:
		return "", false
	}
}

// User returns the user that created the interaction, whether it was created
// in a DM or in a guild. Returns nil if there is no user, which shouldn't
// happen for interactions Discord actually delivers.
func User(i *discordgo.Interaction) *discordgo.User {
	if i.User != nil {
		return i.User
	}
	if i.Member != nil {
		return i.Member.User
	}
	return nil
}

// CommandData returns the application command data of the interaction. The
// second return value is false for other interaction kinds. Unlike
// discordgo's accessor, it doesn't panic.
func CommandData(i *discordgo.Interaction) (discordgo.ApplicationCommandInteractionData, bool) {
	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	return data, ok
}

// ComponentData returns the message component data of the interaction. The
// second return value is false for other interaction kinds. Unlike
// discordgo's accessor, it doesn't panic.
func ComponentData(i *discordgo.Interaction) (discordgo.MessageComponentInteractionData, bool) {
	data, ok := i.Data.(discordgo.MessageComponentInteractionData)
	return data, ok
}

// ModalData returns the modal submit data of the interaction. The second
// return value is false for other interaction kinds. Unlike discordgo's
// accessor, it doesn't panic.
func ModalData(i *discordgo.Interaction) (discordgo.ModalSubmitInteractionData, bool) {
	data, ok := i.Data.(discordgo.ModalSubmitInteractionData)
	return data, ok
}
