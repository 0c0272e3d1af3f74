// Package discord implements the Discord frontend: slash command registration,
// presence and interaction handling.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mcwho/internal/allowlist"
	"github.com/woozymasta/mcwho/internal/checker"
	"github.com/woozymasta/mcwho/internal/config"
)

// Service runs status checks and default server updates for a guild.
type Service interface {
	Check(ctx context.Context, address, unitID string) (checker.Result, error)
	SetDefault(ctx context.Context, address, unitID string) (checker.Result, error)
}

// responder is the subset of *discordgo.Session used to answer interactions.
type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot is a Discord gateway connection serving the slash commands.
type Bot struct {
	session *discordgo.Session
	api     responder
	svc     Service
	allowed *allowlist.List

	ctx    context.Context
	cancel context.CancelFunc

	testGuild string
	activity  string
}

// New creates a bot for the given token. Call Open to connect.
func New(cfg config.Discord, svc Service, allowed *allowlist.List) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		session:   session,
		api:       session,
		svc:       svc,
		allowed:   allowed,
		ctx:       ctx,
		cancel:    cancel,
		testGuild: cfg.TestGuild,
		activity:  cfg.Activity,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)

	return b, nil
}

// Open connects to the gateway and registers the slash commands, globally or
// to the test guild when one is configured.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}

	appID := b.session.State.User.ID
	cmds, err := b.session.ApplicationCommandBulkOverwrite(appID, b.testGuild, Commands())
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	log.Info().
		Int("commands", len(cmds)).
		Str("guild", b.testGuild).
		Msg("Discord commands registered")

	return nil
}

// Close abandons in-flight interactions and disconnects from the gateway.
func (b *Bot) Close() error {
	b.cancel()
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().
		Str("user", r.User.Username).
		Str("id", r.User.ID).
		Int("guilds", len(r.Guilds)).
		Msg("Logged in to Discord")

	if err := s.UpdateGameStatus(0, b.activity); err != nil {
		log.Warn().Err(err).Msg("Failed to update presence")
	}
}

func (b *Bot) onInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	b.dispatch(b.ctx, i.Interaction)
}
