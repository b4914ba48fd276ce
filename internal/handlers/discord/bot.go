// Package discord lets teams join, guess and follow a game from Discord.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jpcodeman/partygame/internal/services/game"
	"github.com/jpcodeman/partygame/internal/services/messaging"
)

// BotError is a custom error type for bot setup errors
type BotError string

// Error implements the error interface
func (e BotError) Error() string {
	return string(e)
}

const (
	ErrNilConfig           BotError = "config cannot be nil"
	ErrTokenRequired       BotError = "token cannot be empty"
	ErrNilGameService      BotError = "game service cannot be nil"
	ErrNilMessagingService BotError = "messaging service cannot be nil"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // command name to command ID
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	GameService      game.Service
	MessagingService messaging.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Token == "" {
		return nil, ErrTokenRequired
	}
	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}
	if cfg.MessagingService == nil {
		return nil, ErrNilMessagingService
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	cmd := NewPartygameCommand(b.config.GameService, b.config.MessagingService)
	if err := b.RegisterCommand(cmd); err != nil {
		return fmt.Errorf("failed to register partygame command: %w", err)
	}

	log.Info().Msg("discord bot is running")
	return nil
}

// Stop removes registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for name, id := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, id); err != nil {
			log.Warn().Err(err).Str("command", name).Str("command_id", id).Msg("failed to delete command")
			continue
		}
		log.Info().Str("command", name).Msg("deleted command")
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. Commands are global
// unless a guild ID is configured.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	created, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = created.ID
	log.Info().
		Str("command", cmd.GetName()).
		Str("command_id", created.ID).
		Str("guild_id", b.config.GuildID).
		Msg("registered command")

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.commands[name]
	if !ok {
		return
	}
	if err := h.Handle(s, i); err != nil {
		log.Error().Err(err).Str("command", name).Msg("error handling command")
	}
}
