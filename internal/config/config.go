package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	defaultStake            = 10
	defaultMaxDealAttempts  = 10000
	defaultSeatTokenTTLSecs = 3600
)

// Runtime env keys read from the Nakama server config.
const (
	EnvSeatTokenSecret   = "mighty_seat_token_secret"
	EnvSeatTokenIssuer   = "mighty_seat_token_issuer"
	EnvSettlementEnabled = "mighty_settlement_enabled"
)

type StakeTier struct {
	ID    string `json:"id"`
	Stake int64  `json:"stake"`
}

type GameConfig struct {
	DefaultTier string      `json:"default_tier"`
	Tiers       []StakeTier `json:"stake_tiers"`
	// MaxDealAttempts bounds the redeal loop; 0 uses the default.
	MaxDealAttempts     int  `json:"max_deal_attempts"`
	SeatTokenTTLSeconds int  `json:"seat_token_ttl_seconds"`
	SettlementEnabled   bool `json:"settlement_enabled"`
}

// Env holds the settings taken from the runtime environment.
type Env struct {
	SeatTokenSecret   string
	SeatTokenIssuer   string
	SettlementEnabled bool
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetStake returns the gold stake per score point for a tier ID, or the
// default tier's stake if not found.
func GetStake(tierID string) int64 {
	if cfg == nil {
		return defaultStake
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.Stake
		}
	}

	// Fallback to default tier if specific ID not found
	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.Stake
		}
	}

	return defaultStake
}

// GetMaxDealAttempts returns the bound on reshuffles per deal.
func GetMaxDealAttempts() int {
	if cfg == nil || cfg.MaxDealAttempts <= 0 {
		return defaultMaxDealAttempts
	}
	return cfg.MaxDealAttempts
}

// GetSeatTokenTTL returns how long issued seat tokens stay valid.
func GetSeatTokenTTL() time.Duration {
	secs := defaultSeatTokenTTLSecs
	if cfg != nil && cfg.SeatTokenTTLSeconds > 0 {
		secs = cfg.SeatTokenTTLSeconds
	}
	return time.Duration(secs) * time.Second
}

// FromEnv reads the runtime env. The settlement flag from the env wins over
// the file; an unparsable value leaves the file setting in place.
func FromEnv(env map[string]string) Env {
	e := Env{
		SeatTokenSecret: env[EnvSeatTokenSecret],
		SeatTokenIssuer: env[EnvSeatTokenIssuer],
	}
	if cfg != nil {
		e.SettlementEnabled = cfg.SettlementEnabled
	}
	if val, ok := env[EnvSettlementEnabled]; ok {
		if b, err := strconv.ParseBool(val); err == nil {
			e.SettlementEnabled = b
		}
	}
	return e
}
