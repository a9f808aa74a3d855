// Package config loads command configuration from the environment and then
// lets command-line flags override it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

var errFlagSetRequired = errors.New("flag parser is required")

// Config holds game server configuration.
type Config struct {
	Addr        string        `env:"CONNECT_FOUR_ADDR"         envDefault:":8000"`
	WSAddr      string        `env:"CONNECT_FOUR_WS_ADDR"`
	FinishGrace time.Duration `env:"CONNECT_FOUR_FINISH_GRACE" envDefault:"5s"`
	Once        bool          `env:"CONNECT_FOUR_ONCE"`
}

// ClientConfig holds terminal client configuration.
type ClientConfig struct {
	Addr  string `env:"CONNECT_FOUR_SERVER_ADDR" envDefault:"localhost:8000"`
	WSURL string `env:"CONNECT_FOUR_SERVER_WS_URL"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errFlagSetRequired
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "TCP listen address for players")
	fs.StringVar(&cfg.WSAddr, "ws-addr", cfg.WSAddr, "WebSocket listen address for players (empty disables)")
	fs.DurationVar(&cfg.FinishGrace, "finish-grace", cfg.FinishGrace, "how long to wait for clients to close after the game ends")
	fs.BoolVar(&cfg.Once, "once", cfg.Once, "serve a single game and exit")
	if err := parseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.FinishGrace <= 0 {
		return Config{}, fmt.Errorf("finish grace must be positive, got %s", cfg.FinishGrace)
	}
	return cfg, nil
}

// ParseClientConfig parses environment and flags into a ClientConfig.
func ParseClientConfig(fs *flag.FlagSet, args []string) (ClientConfig, error) {
	if fs == nil {
		return ClientConfig{}, errFlagSetRequired
	}
	var cfg ClientConfig
	if err := ParseEnv(&cfg); err != nil {
		return ClientConfig{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "game server TCP address")
	fs.StringVar(&cfg.WSURL, "ws-url", cfg.WSURL, "game server WebSocket URL (overrides -addr)")
	if err := parseArgs(fs, args); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func parseArgs(fs *flag.FlagSet, args []string) error {
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}
