// Package config handles the parsing and validation of application configuration
// from command-line arguments, environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/woozymasta/mcwho/internal/logger"
	"github.com/woozymasta/mcwho/internal/vars"
)

// MemoryStorage selects the in-memory store instead of an SQLite file.
const MemoryStorage = ":memory:"

// Config represents the complete application flags configuration.
type Config struct {
	// betteralign:ignore

	Server    Server        `group:"Server Options" env-namespace:"MCWHO"`
	Discord   Discord       `group:"Discord Options" namespace:"discord" env-namespace:"MCWHO_DISCORD"`
	Storage   Storage       `group:"Storage Options" namespace:"db" env-namespace:"MCWHO_DB"`
	Query     Query         `group:"Query Options" namespace:"query" env-namespace:"MCWHO_QUERY"`
	GeoIP     GeoIP         `group:"GeoIP Options" namespace:"geoip" env-namespace:"MCWHO_GEOIP"`
	RateLimit RateLimit     `group:"Rate Limit Options" namespace:"rate-limit" env-namespace:"MCWHO_RATE_LIMIT"`
	Logger    logger.Config `group:"Logger Options" namespace:"log" env-namespace:"MCWHO_LOG"`

	EnvFile      string   `long:"env-file" description:"Load environment variables from file before parsing" default:".env"`
	FakeServer   string   `long:"dev-fake-server" hidden:"true"`
	AllowedUnits []string `short:"u" long:"allowed-unit" env:"MCWHO_ALLOWED_UNITS" env-delim:"," description:"Unit (guild) IDs allowed to use the service, all when empty"`

	Version bool `short:"v" long:"version" description:"Print version and build info"`
}

// Server holds HTTP API configuration.
type Server struct {
	// betteralign:ignore

	Address     string `short:"l" long:"address" env:"LISTEN_ADDRESS" description:"HTTP API listen address, empty disables the API" default:":8080"`
	AuthToken   string `short:"t" long:"auth-token" env:"AUTH_TOKEN" description:"Token required to change default servers over HTTP"`
	MaxBodySize int64  `long:"max-body-size" env:"MAX_BODY_SIZE" description:"Max body size for incoming requests" default:"1024"`
	TrustProxy  bool   `long:"trust-proxy" env:"TRUST_PROXY" description:"Trust X-Forwarded-For headers"`
}

// Discord holds the Discord bot configuration.
type Discord struct {
	// betteralign:ignore

	Token     string `long:"token" env:"TOKEN" description:"Bot token, empty disables the Discord bot"`
	TestGuild string `long:"test-guild" env:"TEST_GUILD" description:"Register commands to this guild only (for testing)"`
	Activity  string `long:"activity" env:"ACTIVITY" description:"Game shown in the bot presence" default:"Minecraft"`
}

// Storage holds database configuration.
type Storage struct {
	// betteralign:ignore

	Path     string `short:"d" long:"path" env:"PATH" description:"Path to SQLite database or :memory:" default:"servers.db"`
	CheckAll bool   `long:"check-all" description:"Query every stored default server, log reachability and exit"`
}

// Query holds Minecraft status query configuration.
type Query struct {
	// betteralign:ignore

	Timeout     time.Duration `long:"timeout" env:"TIMEOUT" description:"Overall status query timeout" default:"3s"`
	DefaultPort uint16        `long:"default-port" env:"DEFAULT_PORT" description:"Port used when an address has none" default:"25565"`
}

// GeoIP holds MaxMind GeoIP configuration.
type GeoIP struct {
	// betteralign:ignore

	Path     string        `short:"g" long:"path" env:"PATH" description:"Path to MMDB file, empty disables country lookup"`
	URL      string        `long:"url" env:"URL" description:"URL to download MMDB" default:"https://git.io/GeoLite2-Country.mmdb"`
	Interval time.Duration `long:"interval" env:"INTERVAL" description:"Update interval check" default:"24h"`
}

// RateLimit holds inbound HTTP API rate limiting configuration.
type RateLimit struct {
	// betteralign:ignore

	Count  int           `long:"count" env:"COUNT" description:"Requests allowed per client IP within the window" default:"30"`
	Window time.Duration `long:"window" env:"WINDOW" description:"Rate limit window duration" default:"1m"`
}

// Parse reads the configuration from flags and environment variables.
// It terminates the application if the configuration is invalid or if the help flag is invoked.
func Parse() *Config {
	loadEnvFile(os.Args[1:])

	var cfg Config
	parser := flags.NewParser(&cfg, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}

	if cfg.Version {
		vars.Print()
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return &cfg
}

// Validate checks option combinations that go-flags cannot express.
func (c *Config) Validate() error {
	if c.Query.Timeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.Query.DefaultPort == 0 {
		return errors.New("default port must not be zero")
	}
	if c.Storage.CheckAll || c.FakeServer != "" {
		return nil
	}
	if c.Server.Address == "" && c.Discord.Token == "" {
		return errors.New("nothing to run: set `--discord-token' or `--address'")
	}
	if c.Server.Address != "" && c.Server.AuthToken == "" {
		return errors.New("required flag `-t, --auth-token' or environment variable `MCWHO_AUTH_TOKEN` was not specified")
	}
	if c.Server.Address != "" && (c.RateLimit.Count <= 0 || c.RateLimit.Window <= 0) {
		return errors.New("rate limit count and window must be positive")
	}

	return nil
}

// loadEnvFile loads the .env file named by --env-file (or the default) into
// the process environment. Variables already set take precedence.
func loadEnvFile(args []string) {
	path := ".env"
	for i, arg := range args {
		switch {
		case arg == "--env-file" && i+1 < len(args):
			path = args[i+1]
		case strings.HasPrefix(arg, "--env-file="):
			path = strings.TrimPrefix(arg, "--env-file=")
		}
	}

	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load env file %s: %v\n", path, err)
	}
}
