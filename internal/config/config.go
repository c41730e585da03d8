// Package config provides YAML-based configuration loading for the host
// process and for the loadable game unit.
package config

import (
	"errors"
	"fmt"
	"time"
)

// HostConfig contains all configuration for the host process.
type HostConfig struct {
	Unit     UnitConfig `yaml:"unit"`
	TickRate int        `yaml:"tick_rate" env:"COMFYWARS_TICK_RATE"`
	Journal  string     `yaml:"journal" env:"COMFYWARS_JOURNAL"` // Empty disables the reload journal
	Log      LogConfig  `yaml:"log"`
	SSH      SSHConfig  `yaml:"ssh"`
}

// UnitConfig selects the loadable unit.
type UnitConfig struct {
	Path    string `yaml:"path" env:"COMFYWARS_UNIT"`       // Plugin artifact; empty means builtin
	Builtin string `yaml:"builtin" env:"COMFYWARS_BUILTIN"` // Registered unit linked into the binary
	Watch   bool   `yaml:"watch" env:"COMFYWARS_WATCH"`     // Reload when the artifact changes
}

// LogConfig defines logging parameters.
type LogConfig struct {
	Level string `yaml:"level" env:"COMFYWARS_LOG_LEVEL"`
	File  string `yaml:"file" env:"COMFYWARS_LOG_FILE"` // Used while the terminal UI owns stderr
}

// SSHConfig defines the SSH server parameters for remote play.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"COMFYWARS_SSH_ADDR"`
	HostKey     string        `yaml:"host_key" env:"COMFYWARS_SSH_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"COMFYWARS_SSH_IDLE_TIMEOUT"`
}

// GameConfig contains all configuration read by the game unit.
type GameConfig struct {
	Move   MoveConfig  `yaml:"move"`
	Costs  CostConfig  `yaml:"costs"`
	Assets AssetConfig `yaml:"assets"`
}

// MoveConfig defines movement planning and animation parameters.
type MoveConfig struct {
	Range     int `yaml:"range"`      // Seed value of the reachable-range relaxation
	Blocked   int `yaml:"blocked"`    // Value forced onto occupied cells
	StepTicks int `yaml:"step_ticks"` // Frames a move animation spends per path step
}

// CostConfig defines the cost of entering a cell per ground/terrain type.
type CostConfig struct {
	Plain  int `yaml:"plain"`
	Street int `yaml:"street"`
	Forest int `yaml:"forest"`
	Water  int `yaml:"water"`
}

// AssetConfig points at the asset files. Empty paths use embedded defaults.
type AssetConfig struct {
	Map     string `yaml:"map" env:"COMFYWARS_MAP"`
	Sprites string `yaml:"sprites" env:"COMFYWARS_SPRITES"`
	Atlas   string `yaml:"atlas" env:"COMFYWARS_ATLAS"`
}

// Validate checks the game configuration for values the planner cannot
// work with.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Move.Range <= 0 {
		errs = append(errs, fmt.Errorf("move.range must be positive, got %d", c.Move.Range))
	}
	if c.Move.StepTicks <= 0 {
		errs = append(errs, fmt.Errorf("move.step_ticks must be positive, got %d", c.Move.StepTicks))
	}
	for name, v := range map[string]int{
		"plain": c.Costs.Plain, "street": c.Costs.Street,
		"forest": c.Costs.Forest, "water": c.Costs.Water,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("costs.%s must be positive, got %d", name, v))
		}
	}
	return errors.Join(errs...)
}
