package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/host.yaml
var defaultHostYAML []byte

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultHostConfig returns the default host configuration.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Unit: UnitConfig{
			Builtin: "comfywars",
			Watch:   true,
		},
		TickRate: 60,
		Journal:  "~/.comfywars/journal.db",
		Log: LogConfig{
			Level: "info",
			File:  "~/.comfywars/comfywars.log",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultGameConfig returns the default game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Move: MoveConfig{
			Range:     9,
			Blocked:   -99,
			StepTicks: 6,
		},
		Costs: CostConfig{
			Plain:  2,
			Street: 1,
			Forest: 3,
			Water:  9999,
		},
	}
}
