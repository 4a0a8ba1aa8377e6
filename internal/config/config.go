// Package config loads runtime configuration from environment variables and
// an optional config file, with safe defaults for every knob.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

// Config carries every tunable the engine reads at runtime.
type Config struct {
	// Turn deadlines. Bot and disconnected seats get the short timeout.
	TurnTimeoutHumanMs int64 `mapstructure:"turn_timeout_human_ms"`
	TurnTimeoutBotMs   int64 `mapstructure:"turn_timeout_bot_ms"`
	// Extra allowance for callbreak human turns.
	CallbreakExtraMs int64 `mapstructure:"callbreak_extra_ms"`

	// Match-end thresholds.
	HeartsTargetScore int `mapstructure:"hearts_target_score"`
	BiddingRounds     int `mapstructure:"bidding_rounds"`

	// Bounded per-match event stream size.
	EventStreamCap int `mapstructure:"event_stream_cap"`

	// Coin deltas by finishing position, best first.
	RewardTable [4]int64 `mapstructure:"reward_table"`

	// Dev gateway.
	ListenAddr  string `mapstructure:"listen_addr"`
	DatabaseURL string `mapstructure:"database_url"`
}

// Load reads configuration with the HEARTSPRO_ env prefix layered over an
// optional heartspro.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("heartspro")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("heartspro")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("turn_timeout_human_ms", 30_000)
	v.SetDefault("turn_timeout_bot_ms", 2_000)
	v.SetDefault("callbreak_extra_ms", 15_000)
	v.SetDefault("hearts_target_score", 100)
	v.SetDefault("bidding_rounds", 1)
	v.SetDefault("event_stream_cap", 256)
	v.SetDefault("reward_table", []int64{200, 100, -50, -100})
	v.SetDefault("listen_addr", ":8090")
	v.SetDefault("database_url", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration, used by tests and by adapters
// that run without an environment.
func Default() *Config {
	return &Config{
		TurnTimeoutHumanMs: 30_000,
		TurnTimeoutBotMs:   2_000,
		CallbreakExtraMs:   15_000,
		HeartsTargetScore:  100,
		BiddingRounds:      1,
		EventStreamCap:     256,
		RewardTable:        [4]int64{200, 100, -50, -100},
		ListenAddr:         ":8090",
	}
}

// TargetScore returns the score threshold for a game type.
func (c *Config) TargetScore(gt domain.GameType) int {
	if gt == domain.GameTypeHearts {
		return c.HeartsTargetScore
	}
	return 0
}

// Rounds returns the round count threshold for a game type.
func (c *Config) Rounds(gt domain.GameType) int {
	if gt == domain.GameTypeHearts {
		return 0
	}
	return c.BiddingRounds
}

// StaticRewards is a ports.RewardPolicy backed by the configured table.
type StaticRewards struct {
	Table [4]int64
}

// Rewards maps standings to per-seat coin deltas.
func (r StaticRewards) Rewards(_ domain.GameType, standings []int) [4]int64 {
	var out [4]int64
	for pos, seat := range standings {
		if pos < len(r.Table) {
			out[seat] = r.Table[pos]
		}
	}
	return out
}
