// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all simulation and server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// TICK CONFIGURATION
// =============================================================================

// TickConfig holds simulation clock settings.
type TickConfig struct {
	TicksPerSecond int // how many GameState.Tick calls the server drives per second
	TimeUpGrace    int // read from TIME_UP_GRACE and logged at startup; no server code applies it
}

// DefaultTick returns the default tick configuration.
func DefaultTick() TickConfig {
	return TickConfig{
		TicksPerSecond: 20,
		TimeUpGrace:    10,
	}
}

// TickFromEnv returns tick configuration with environment variable overrides.
func TickFromEnv() TickConfig {
	cfg := DefaultTick()

	if tps := getEnvInt("TICKS_PER_SECOND", 0); tps > 0 {
		cfg.TicksPerSecond = tps
	}
	if grace := getEnvInt("TIME_UP_GRACE", -1); grace >= 0 {
		cfg.TimeUpGrace = grace
	}

	return cfg
}

// =============================================================================
// RESOURCE LIMITS
// =============================================================================

// ResourceLimits controls DoS protection and performance limits, the same
// spirit as the teacher's per-frame particle/effect caps but sized to level
// and replay payloads instead of frame content. The values are read from the
// environment and logged at startup; no server code enforces them.
type ResourceLimits struct {
	MaxFieldWidth   int // hard cap on an uploaded level's field width
	MaxFieldHeight  int // hard cap on an uploaded level's field height
	MaxEntities     int // hard cap on entities a level may declare
	MaxReplayBytes  int // hard cap on an accepted replay payload's decoded size
	MaxSessions     int // hard cap on concurrently active play sessions
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxFieldWidth:  255,
		MaxFieldHeight: 255,
		MaxEntities:    4096,
		MaxReplayBytes: 1 << 20,
		MaxSessions:    500,
	}
}

// LimitsFromEnv returns resource limits with environment variable overrides.
func LimitsFromEnv() ResourceLimits {
	cfg := DefaultLimits()

	if v := getEnvInt("MAX_ENTITIES", 0); v > 0 {
		cfg.MaxEntities = v
	}
	if v := getEnvInt("MAX_REPLAY_BYTES", 0); v > 0 {
		cfg.MaxReplayBytes = v
	}
	if v := getEnvInt("MAX_SESSIONS", 0); v > 0 {
		cfg.MaxSessions = v
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int
	DebugPort     int
	AllowedOrigin string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:          3000,
		DebugPort:     9100,
		AllowedOrigin: "*",
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if p := getEnvInt("DEBUG_PORT", 0); p > 0 {
		cfg.DebugPort = p
	}
	if o := os.Getenv("ALLOWED_ORIGIN"); o != "" {
		cfg.AllowedOrigin = o
	}

	return cfg
}

// =============================================================================
// REPLAY CONFIGURATION
// =============================================================================

// ReplayConfig controls where recorded play-throughs are persisted.
type ReplayConfig struct {
	StorageDir string
}

// DefaultReplay returns the default replay configuration.
func DefaultReplay() ReplayConfig {
	return ReplayConfig{StorageDir: "replays"}
}

// ReplayFromEnv returns replay configuration with environment variable overrides.
func ReplayFromEnv() ReplayConfig {
	cfg := DefaultReplay()
	if dir := os.Getenv("REPLAY_DIR"); dir != "" {
		cfg.StorageDir = dir
	}
	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Tick   TickConfig
	Limits ResourceLimits
	Server ServerConfig
	Replay ReplayConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Tick:   TickFromEnv(),
		Limits: LimitsFromEnv(),
		Server: ServerFromEnv(),
		Replay: ReplayFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

