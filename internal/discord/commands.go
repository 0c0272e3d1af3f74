package discord

import "github.com/bwmarrin/discordgo"

// Slash command names.
const (
	CmdCheckServer      = "check_server"
	CmdSetDefaultServer = "set_default_server"

	optAddress = "address"
)

var dmPermission = false

var manageServer int64 = discordgo.PermissionManageServer

// Commands returns the application commands registered by the bot.
// Both commands are usable in guilds only.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:         CmdCheckServer,
			Description:  "Check who's online on a server",
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optAddress,
					Description: "The address and port of the server",
					MaxLength:   255,
				},
			},
		},
		{
			Name:                     CmdSetDefaultServer,
			Description:              "Set the default Minecraft server to check with the `check_server` command",
			DMPermission:             &dmPermission,
			DefaultMemberPermissions: &manageServer,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optAddress,
					Description: "The address and port of the new default server",
					Required:    true,
					MaxLength:   255,
				},
			},
		},
	}
}

// stringOption returns the value of a string option or "" when it is absent.
func stringOption(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}

	return ""
}
