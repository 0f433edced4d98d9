package conn

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zytale/zytale-server/internal/protocol"
	"github.com/zytale/zytale-server/internal/protocol/assetfamily"
	"github.com/zytale/zytale-server/internal/wire"
)

// driveToPlaying runs the whole inbound handshake (Connect,
// RequestAssets, PlayerOptions) against a fresh connection and waits
// for the outbound queue to drain.
func driveToPlaying(t *testing.T, c *Connection) {
	t.Helper()
	ctx := context.Background()

	connect, err := c.deps.Registry.Encode(protocol.IDConnect, &protocol.ConnectPacket{
		ProtocolCRC:   ProtocolCRC,
		ProtocolBuild: ProtocolBuild,
		Username:      "steve",
	})
	require.NoError(t, err)
	require.NoError(t, c.HandlePacket(ctx, protocol.IDConnect, connect))
	require.Equal(t, PhaseSetup, c.Phase())

	reqAssets, err := c.deps.Registry.Encode(protocol.IDRequestAsset, &protocol.RequestAssetsPacket{})
	require.NoError(t, err)
	require.NoError(t, c.HandlePacket(ctx, protocol.IDRequestAsset, reqAssets))
	require.Equal(t, PhaseLoading, c.Phase())

	playerOpts, err := c.deps.Registry.Encode(protocol.IDPlayerOption, &protocol.PlayerOptionsPacket{})
	require.NoError(t, err)
	require.NoError(t, c.HandlePacket(ctx, protocol.IDPlayerOption, playerOpts))
	require.Equal(t, PhasePlaying, c.Phase())

	deadline := time.Now().Add(5 * time.Second)
	for c.stream.PendingCount() > 0 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	require.Zero(t, c.stream.PendingCount(), "outbound queue never drained")
}

func TestJoinSequenceStreamsFullViewRadius(t *testing.T) {
	c, transport := newTestConnection(t, nil)
	c.deps.Config.ViewRadius = 1 // 3x3 chunks keeps the test fast

	driveToPlaying(t, c)

	var parser wire.Parser
	parser.Feed(transport.Bytes())
	var ids []uint32
	counts := make(map[uint32]int)
	for {
		f, ok, err := parser.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		ids = append(ids, f.ID)
		counts[f.ID]++
	}

	// 3 column packets + 10 sections per chunk across 3x3 chunks.
	require.Equal(t, 9, counts[protocol.IDSetChunkHeightmap])
	require.Equal(t, 9, counts[protocol.IDSetChunkTintmap])
	require.Equal(t, 9, counts[protocol.IDSetChunkEnvironment])
	require.Equal(t, 90, counts[protocol.IDSetChunk])
	require.Equal(t, 1, counts[protocol.IDEntityUpdate])

	// The join-traffic invariant, scaled to radius 1: 13 packets per
	// chunk across (2r+1)^2 = 9 chunks, plus the 6 preamble packets and
	// the entity spawn — 117 + 6 + 1 = 124. At the production radius of
	// 6 the same arithmetic gives 2197 + 6 + 1 = 2204.
	chunkRelated := counts[protocol.IDSetChunkHeightmap] +
		counts[protocol.IDSetChunkTintmap] +
		counts[protocol.IDSetChunkEnvironment] +
		counts[protocol.IDSetChunk]
	require.Equal(t, 117, chunkRelated)
	require.Equal(t, 124, chunkRelated+6+counts[protocol.IDEntityUpdate])

	// Exactly one WorldLoadProgress and one WorldLoadFinished go out,
	// at the end of the asset burst; the per-chunk streaming loop sends
	// no progress frames of its own.
	require.Equal(t, 1, counts[protocol.IDWorldLoadProg])
	require.Equal(t, 1, counts[protocol.IDWorldLoadFin])

	// Every UpdateXxx family was emitted exactly once during loading.
	updateFrames := 0
	for id, n := range counts {
		if id >= protocol.UpdateFamilyIDBase {
			updateFrames += n
		}
	}
	require.Equal(t, len(assetfamily.Table), updateFrames)

	// The preamble appears once each, in the required order.
	preamble := []uint32{
		protocol.IDConnectAccept,
		protocol.IDSetClientId,
		protocol.IDViewRadius,
		protocol.IDJoinWorld,
		protocol.IDSetGameMode,
		protocol.IDSetEntitySdd,
	}
	positions := make(map[uint32]int)
	for pos, id := range ids {
		if _, seen := positions[id]; !seen {
			positions[id] = pos
		}
	}
	for i, id := range preamble {
		require.Equal(t, 1, counts[id], "preamble id %d", id)
		if i > 0 {
			require.Less(t, positions[preamble[i-1]], positions[id],
				"preamble id %d arrived before %d", id, preamble[i-1])
		}
	}

	// ClientReady completes the sequence without further traffic.
	ready, err := c.deps.Registry.Encode(protocol.IDClientReady, &protocol.ClientReadyPacket{})
	require.NoError(t, err)
	require.NoError(t, c.HandlePacket(context.Background(), protocol.IDClientReady, ready))
}

func TestJoinSequenceSpawnEntityShape(t *testing.T) {
	c, transport := newTestConnection(t, nil)
	c.deps.Config.ViewRadius = 1

	driveToPlaying(t, c)

	var parser wire.Parser
	parser.Feed(transport.Bytes())
	for {
		f, ok, err := parser.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		if f.ID != protocol.IDEntityUpdate {
			continue
		}
		decoded, err := c.deps.Registry.Decode(f.ID, f.Payload)
		require.NoError(t, err)
		p := decoded.(*protocol.EntityUpdatesPacket)
		require.Len(t, p.Entities, 1)
		e := p.Entities[0]
		require.Equal(t, protocol.EntityAdd, e.Action)
		require.Equal(t, c.deps.World.Spawn.X, e.X)
		require.Equal(t, c.deps.World.Spawn.Y, e.Y)
		require.Equal(t, c.deps.World.Spawn.Z, e.Z)
		require.Equal(t, float32(1), e.QW)
		require.Zero(t, e.VX)
		require.Zero(t, e.VY)
		require.Zero(t, e.VZ)
		return
	}
	t.Fatal("no EntityUpdates frame found")
}
