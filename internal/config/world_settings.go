package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// TerrainLayer is one y-range of the flat generator's fill table
//...").
type TerrainLayer struct {
	FromY     int32  `json:"fromY"`
	ToY       int32  `json:"toY"`
	BlockName string `json:"blockName"`
}

// WorldSettings is the optional YAML-backed world configuration: spawn
// point, terrain layer table, and default tint. Decoded via
// github.com/ghodss/yaml (a JSON-shaped YAML codec) rather than a
// second hand-rolled config format; JSON asset records still decode
// through encoding/json since the ZIP asset format is JSON, not YAML
// (see internal/assets).
type WorldSettings struct {
	SpawnX float32 `json:"spawnX"`
	SpawnY float32 `json:"spawnY"`
	SpawnZ float32 `json:"spawnZ"`

	DefaultTintARGB uint32 `json:"defaultTintArgb"`

	TerrainLayers []TerrainLayer `json:"terrainLayers"`
}

// DefaultWorldSettings mirrors the built-in flat-generator fill table and the
// spawn point world.New already assumes, expressed as data so an
// operator can override it without touching Go code.
func DefaultWorldSettings() *WorldSettings {
	return &WorldSettings{
		SpawnX:          0,
		SpawnY:          64,
		SpawnZ:          0,
		DefaultTintARGB: 0xFF5B9E28,
		TerrainLayers: []TerrainLayer{
			{FromY: 0, ToY: 1, BlockName: "bedrock"},
			{FromY: 1, ToY: 60, BlockName: "stone"},
			{FromY: 60, ToY: 63, BlockName: "dirt"},
			{FromY: 63, ToY: 64, BlockName: "grass"},
		},
	}
}

// LoadWorldSettings reads path as YAML, falling back to
// DefaultWorldSettings when path is empty.
func LoadWorldSettings(path string) (*WorldSettings, error) {
	if path == "" {
		return DefaultWorldSettings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read world settings %s: %w", path, err)
	}
	ws := DefaultWorldSettings()
	if err := yaml.Unmarshal(data, ws); err != nil {
		return nil, fmt.Errorf("config: parse world settings %s: %w", path, err)
	}
	return ws, nil
}
