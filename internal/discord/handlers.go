package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mcwho/internal/reply"
)

func (b *Bot) dispatch(ctx context.Context, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	logCtx := log.With().
		Str("command", data.Name).
		Str("guild", i.GuildID).
		Str("user", userID(i)).
		Logger()

	if i.GuildID == "" {
		b.respond(logCtx, i, reply.Plain("This command can only be used in a server."))
		return
	}
	if !b.allowed.Allowed(i.GuildID) {
		logCtx.Debug().Msg("Guild not allowed")
		b.respond(logCtx, i, reply.Plain("This server is not allowed to use this bot."))
		return
	}

	switch data.Name {
	case CmdCheckServer:
		b.checkServer(ctx, logCtx, i, stringOption(data, optAddress))
	case CmdSetDefaultServer:
		b.setDefaultServer(ctx, logCtx, i, stringOption(data, optAddress))
	default:
		logCtx.Warn().Msg("Unknown command")
	}
}

// checkServer defers publicly. A failure replaces the public placeholder with
// an ephemeral followup.
func (b *Bot) checkServer(ctx context.Context, logCtx zerolog.Logger, i *discordgo.Interaction, address string) {
	err := b.api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		logCtx.Error().Err(err).Msg("Failed to defer response")
		return
	}

	res, err := b.svc.Check(ctx, address, i.GuildID)
	if err != nil {
		if err := b.api.InteractionResponseDelete(i); err != nil {
			logCtx.Warn().Err(err).Msg("Failed to delete deferred response")
		}
		b.followup(logCtx, i, reply.CheckFailure(err))
		return
	}

	b.edit(logCtx, i, reply.Status(res.Address, res.Status))
}

// setDefaultServer defers ephemerally, every outcome is private to the caller.
func (b *Bot) setDefaultServer(ctx context.Context, logCtx zerolog.Logger, i *discordgo.Interaction, address string) {
	err := b.api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		logCtx.Error().Err(err).Msg("Failed to defer response")
		return
	}

	if !canManageServer(i) {
		logCtx.Debug().Msg("Missing Manage Server permission")
		b.edit(logCtx, i, reply.Plain("You need the Manage Server permission to change the default server."))
		return
	}

	res, err := b.svc.SetDefault(ctx, address, i.GuildID)
	if err != nil {
		b.edit(logCtx, i, reply.SetDefaultFailure(err))
		return
	}

	b.edit(logCtx, i, reply.DefaultUpdated(res.Address))
}

func (b *Bot) respond(logCtx zerolog.Logger, i *discordgo.Interaction, msg reply.Message) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed(msg)}}
	if msg.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := b.api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		logCtx.Error().Err(err).Msg("Failed to send response")
	}
}

func (b *Bot) edit(logCtx zerolog.Logger, i *discordgo.Interaction, msg reply.Message) {
	embeds := []*discordgo.MessageEmbed{embed(msg)}
	if _, err := b.api.InteractionResponseEdit(i, &discordgo.WebhookEdit{Embeds: &embeds}); err != nil {
		logCtx.Error().Err(err).Msg("Failed to edit response")
	}
}

func (b *Bot) followup(logCtx zerolog.Logger, i *discordgo.Interaction, msg reply.Message) {
	params := &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed(msg)}}
	if msg.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}

	if _, err := b.api.FollowupMessageCreate(i, true, params); err != nil {
		logCtx.Error().Err(err).Msg("Failed to send followup")
	}
}

// embed converts a rendered reply into a Discord embed.
func embed(msg reply.Message) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Description,
		Color:       msg.Color,
	}

	for _, f := range msg.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value})
	}
	if msg.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: msg.Footer}
	}

	return e
}

func canManageServer(i *discordgo.Interaction) bool {
	if i.Member == nil {
		return false
	}

	return i.Member.Permissions&(discordgo.PermissionManageServer|discordgo.PermissionAdministrator) != 0
}

func userID(i *discordgo.Interaction) string {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.ID
	case i.User != nil:
		return i.User.ID
	default:
		return ""
	}
}
