// Command zytale-server runs the voxel-sandbox game server core: it
// loads configuration and the asset archive, builds the world store,
// and accepts QUIC connections until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/zytale/zytale-server/internal/assets"
	"github.com/zytale/zytale-server/internal/compress"
	"github.com/zytale/zytale-server/internal/conn"
	"github.com/zytale/zytale-server/internal/config"
	"github.com/zytale/zytale-server/internal/protocol"
	"github.com/zytale/zytale-server/internal/server"
	"github.com/zytale/zytale-server/internal/world"
)

func main() {
	configPath := flag.String("config", "zytale.toml", "path to the server's TOML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("zytale-server: %v", err)
	}
}

func run(configPath string) error {
	cfg, err := loadOrDefaultConfig(configPath)
	if err != nil {
		return err
	}

	archive, err := assets.Open(cfg.AssetArchivePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	assetsReg := assets.NewRegistry()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := assetsReg.LoadAll(ctx, archive); err != nil {
		return err
	}
	if err := assetsReg.Validate(); err != nil {
		return err
	}

	ws, err := config.LoadWorldSettings(cfg.WorldSettingsPath)
	if err != nil {
		return err
	}

	tints := world.EnvironmentTintSource{
		Lookup: func(environmentIndex uint8) (r, g, b byte, hasTint bool) {
			env, ok := assetsReg.Environments.GetByIndex(int32(environmentIndex))
			if !ok || !env.HasWaterTint {
				return 0, 0, 0, false
			}
			return env.WaterTintR, env.WaterTintG, env.WaterTintB, true
		},
	}
	w := world.New(tints)
	w.Spawn = world.SpawnPoint{X: ws.SpawnX, Y: ws.SpawnY, Z: ws.SpawnZ}
	if layers, err := terrainLayers(ws.TerrainLayers); err != nil {
		return err
	} else if len(layers) > 0 {
		w.Layers = layers
	}

	registry := protocol.NewRegistry()

	codec, err := compress.New()
	if err != nil {
		return err
	}
	defer codec.Close()

	certSrc, err := certSourceFor(cfg)
	if err != nil {
		return err
	}

	srv := server.New(cfg, certSrc, registry, assetsReg, w, codec, noopSessionService{})

	log.Printf("zytale-server: archive=%s world=%s listen=%s", cfg.AssetArchivePath, w.UUID, cfg.ListenAddr)
	return srv.Run(ctx)
}

func loadOrDefaultConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		cfg := config.DefaultConfig()
		if verr := cfg.Validate(); verr != nil {
			return nil, verr
		}
		log.Printf("zytale-server: no config at %s, using defaults", path)
		return cfg, nil
	}
	return config.Load(path)
}

// terrainLayers maps the world-settings layer table onto generator
// block ids.
func terrainLayers(layers []config.TerrainLayer) ([]world.Layer, error) {
	blockByName := map[string]uint32{
		"air":     world.AirBlockID,
		"bedrock": world.BlockBedrock,
		"stone":   world.BlockStone,
		"dirt":    world.BlockDirt,
		"grass":   world.BlockGrass,
	}
	out := make([]world.Layer, 0, len(layers))
	for _, l := range layers {
		block, ok := blockByName[l.BlockName]
		if !ok {
			return nil, fmt.Errorf("world settings: unknown terrain block %q", l.BlockName)
		}
		out = append(out, world.Layer{FromY: int(l.FromY), ToY: int(l.ToY), Block: block})
	}
	return out, nil
}

func certSourceFor(cfg *config.Config) (server.CertSource, error) {
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		return server.LoadCertSource(cfg.CertFile, cfg.KeyFile)
	}
	return server.NewSelfSignedCertSource()
}

// noopSessionService is the default SessionServiceClient when no real
// Session Service endpoint is configured: any grant is exchanged
// for itself, so the awaiting_auth phase always proceeds.
type noopSessionService struct{}

func (noopSessionService) ExchangeGrant(ctx context.Context, grantToken string) (string, error) {
	return grantToken, nil
}

var _ conn.SessionServiceClient = noopSessionService{}
