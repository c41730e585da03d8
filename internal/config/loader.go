package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// GameConfigEnv names the variable that points the unit at a game config
// file. The unit takes no arguments, so this is its only custom path.
const GameConfigEnv = "COMFYWARS_GAME_CONFIG"

// LoadHost loads the host configuration.
// Search order: customPath -> ~/.comfywars/configs/host.yaml -> ./configs/host.yaml -> embedded default.
// Environment variables override whatever was loaded.
func LoadHost(customPath string) (HostConfig, error) {
	cfg, err := load("host.yaml", customPath, defaultHostYAML, DefaultHostConfig)
	if err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return cfg, nil
}

// LoadGame loads the game configuration.
// Search order: customPath or $COMFYWARS_GAME_CONFIG -> ~/.comfywars/configs/game.yaml
// -> ./configs/game.yaml -> embedded default.
func LoadGame(customPath string) (GameConfig, error) {
	if customPath == "" {
		customPath = os.Getenv(GameConfigEnv)
	}
	cfg, err := load("game.yaml", customPath, defaultGameYAML, DefaultGameConfig)
	if err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// load decodes the first config found in the search order on top of the
// hardcoded defaults, so files only need to name the values they change.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Try custom path first
	if customPath != "" {
		path, err := ExpandPath(customPath)
		if err != nil {
			return cfg, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := defaults()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		candidate := defaults()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	candidate := defaults()
	if err := yaml.Unmarshal(embedded, &candidate); err != nil {
		return cfg, nil // Fallback to hardcoded if embed fails
	}
	return candidate, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".comfywars", "configs", filename)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/")), nil
}
