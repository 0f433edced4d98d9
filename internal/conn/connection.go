// Package conn implements the per-client phase gate, the primary
// stream's framing/pending-send bookkeeping (stream.go, pending.go),
// and the join sequence that streams terrain to a newly-joined player
// (join.go). State is atomic/mutex-guarded and mutated only from
// within callbacks the transport already serializes per-stream.
package conn

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"

	"github.com/zytale/zytale-server/internal/assets"
	"github.com/zytale/zytale-server/internal/compress"
	"github.com/zytale/zytale-server/internal/config"
	"github.com/zytale/zytale-server/internal/protoerr"
	"github.com/zytale/zytale-server/internal/protocol"
	"github.com/zytale/zytale-server/internal/protocol/assetfamily"
	"github.com/zytale/zytale-server/internal/world"
)

// Protocol-version constants the handshake checks every Connect
// against: client build number 2, protocol CRC 1789265863.
const (
	ProtocolCRC   int32 = 1789265863
	ProtocolBuild int32 = 2
)

// Deps bundles the shared, server-owned collaborators a Connection
// needs but does not own: the packet registry, asset registry, and
// world are read by many connections concurrently and are synchronized
// internally rather than per-connection.
type Deps struct {
	Registry   *protocol.Registry
	Assets     *assets.Registry
	World      *world.World
	Config     *config.Config
	Compress   *compress.Codec
	SessionSvc SessionServiceClient
}

// Connection is one client's phase-gated state machine. All mutation
// happens from HandlePacket/Close, which the caller (the server's
// per-stream receive loop) must not invoke concurrently for the same
// connection — the same serialization guarantee the transport gives
// its own callbacks.
type Connection struct {
	ClientID int32
	PeerAddr net.Addr

	deps   Deps
	stream *Stream

	mu            sync.Mutex
	phase         Phase
	username      string
	playerUUID    [16]byte
	hasIdentity   bool
	awaitingReady bool

	closed int32
}

// New constructs a Connection in PhaseInitial, owning stream.
func New(clientID int32, stream *Stream, peerAddr net.Addr, deps Deps) *Connection {
	return &Connection{
		ClientID: clientID,
		PeerAddr: peerAddr,
		deps:     deps,
		stream:   stream,
		phase:    PhaseInitial,
	}
}

// Phase returns the connection's current phase.
func (c *Connection) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Connection) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

func (c *Connection) logf(format string, args ...any) {
	log.Printf("[conn %d/%s] "+format, append([]any{c.ClientID, c.Phase()}, args...)...)
}

func (c *Connection) logDropped(name string) {
	c.logf("dropped %s: not expected in this phase", name)
}

// sendPacket encodes v with id's registered codec, applies compression
// per the descriptor's flag, and hands the frame to the
// stream's async send queue.
func (c *Connection) sendPacket(id uint32, v any) error {
	desc, ok := c.deps.Registry.ByID(id)
	if !ok || desc.Codec == nil {
		return fmt.Errorf("conn: no codec for packet id %d", id)
	}
	payload, err := desc.Codec.Encode(v)
	if err != nil {
		return protoerr.Wrap(protoerr.Protocol, fmt.Errorf("encode %s: %w", desc.Name, err))
	}
	payload = c.deps.Compress.EncodeIfFlagged(desc.Compressed, payload)
	if err := c.stream.SendAsync(id, payload); err != nil {
		return protoerr.Wrap(protoerr.Transport, fmt.Errorf("send %s: %w", desc.Name, err))
	}
	return nil
}

// HandlePacket decodes one inbound frame and routes it through the
// phase gate. Decoding failures are protocol
// errors (malformed framing); everything else the gate itself decides
// between "act" and "log and drop."
func (c *Connection) HandlePacket(ctx context.Context, id uint32, body []byte) error {
	desc, ok := c.deps.Registry.ByID(id)
	name := "unknown"
	if ok {
		name = desc.Name
	}
	decoded, err := c.deps.Registry.Decode(id, body)
	if err != nil {
		return protoerr.Wrap(protoerr.Protocol, fmt.Errorf("decode packet id %d (%s): %w", id, name, err))
	}

	phase := c.Phase()

	switch name {
	case "Connect":
		if phase != PhaseInitial {
			c.logDropped(name)
			return nil
		}
		return c.handleConnect(decoded.(*protocol.ConnectPacket))

	case "AuthToken":
		if phase != PhaseAwaitingAuth {
			c.logDropped(name)
			return nil
		}
		return c.handleAuthToken(ctx, decoded.(*protocol.TwoFieldPacket))

	case "RequestAssets":
		if phase != PhaseSetup {
			c.logDropped(name)
			return nil
		}
		return c.handleRequestAssets()

	case "PlayerOptions":
		if phase != PhaseLoading {
			c.logDropped(name)
			return nil
		}
		return c.handlePlayerOptions()

	case "ClientReady":
		if phase != PhasePlaying {
			c.logDropped(name)
			return nil
		}
		c.handleClientReady()
		return nil

	case "Disconnect":
		c.logf("peer disconnected: %s", decoded.(*protocol.DisconnectPacket).Message)
		return c.Close()

	case "ClientMovement", "Ping":
		if phase != PhasePlaying {
			c.logDropped(name)
			return nil
		}
		// Forwarded without gameplay semantics; movement physics and
		// entity simulation live outside this server.
		return nil

	default:
		// Every other id — the table's passthrough entries — is
		// recognized but not acted on.
		c.logf("passthrough packet %s (id %d, %d bytes)", name, id, len(body))
		return nil
	}
}

func (c *Connection) handleConnect(p *protocol.ConnectPacket) error {
	if p.ProtocolCRC != ProtocolCRC || p.ProtocolBuild != ProtocolBuild {
		reason := versionMismatchReason(p.ProtocolBuild)
		c.logf("rejecting connect: %s (crc=%d build=%d)", reason, p.ProtocolCRC, p.ProtocolBuild)
		return c.disconnect(protocol.DisconnectGeneric, reason)
	}

	c.mu.Lock()
	c.username = p.Username
	c.playerUUID = p.UUID
	c.hasIdentity = p.HasIdentityTok
	c.mu.Unlock()

	if p.HasIdentityTok && c.deps.Config.RequireAuth {
		c.setPhase(PhaseAwaitingAuth)
		// AuthGrant's two optional VarString fields carry a grant type
		// and a nonce upstream; this server only needs
		// their presence to prompt the client's AuthToken reply, so A
		// is a fixed marker string and B is left absent.
		return c.sendPacket(protocol.IDAuthGrant, &protocol.TwoFieldPacket{A: "grant-requested", HasA: true})
	}

	c.setPhase(PhaseSetup)
	if err := c.sendPacket(protocol.IDConnectAccept, &protocol.ConnectAcceptPacket{}); err != nil {
		return err
	}
	return c.enterSetup()
}

func (c *Connection) handleAuthToken(ctx context.Context, p *protocol.TwoFieldPacket) error {
	if !p.HasA {
		return c.disconnect(protocol.DisconnectGeneric, "missing authorization grant")
	}
	accessToken, err := c.deps.SessionSvc.ExchangeGrant(ctx, p.A)
	if err != nil {
		c.logf("session service grant exchange failed: %v", protoerr.Wrap(protoerr.Authentication, err))
		return c.disconnect(protocol.DisconnectGeneric, "authentication failed")
	}

	c.setPhase(PhaseSetup)
	if err := c.sendPacket(protocol.IDServerAuthTok, &protocol.TwoFieldPacket{A: accessToken, HasA: true}); err != nil {
		return err
	}
	return c.enterSetup()
}

// enterSetup sends WorldSettings + ServerInfo on entry to the setup
// phase.
func (c *Connection) enterSetup() error {
	if err := c.sendPacket(protocol.IDWorldSettings, &protocol.WorldSettingsPacket{WorldHeight: world.WorldHeight}); err != nil {
		return err
	}
	return c.sendPacket(protocol.IDServerInfo, &protocol.ServerInfoPacket{
		MaxPlayers: c.deps.Config.MaxPlayers,
		ServerName: c.deps.Config.ServerName,
		MOTD:       c.deps.Config.MOTD,
	})
}

// handleRequestAssets emits every UpdateXxx family payload in Init
// mode, exhaustively, then WorldLoadProgress/WorldLoadFinished,
// and advances to the loading phase.
func (c *Connection) handleRequestAssets() error {
	payloads := c.deps.Assets.BuildUpdatePayloads()
	for _, f := range assetfamily.Table {
		body, ok := payloads[f.ID]
		if !ok {
			continue
		}
		body = c.deps.Compress.EncodeIfFlagged(f.Compressed, body)
		if err := c.stream.SendAsync(f.ID, body); err != nil {
			return protoerr.Wrap(protoerr.Transport, fmt.Errorf("send update family %s: %w", f.Name, err))
		}
	}

	total := int32(len(assetfamily.Table))
	if err := c.sendPacket(protocol.IDWorldLoadProg, &protocol.WorldLoadProgressPacket{ChunksSent: total, TotalChunks: total}); err != nil {
		return err
	}
	if err := c.sendPacket(protocol.IDWorldLoadFin, &protocol.WorldLoadFinishedPacket{}); err != nil {
		return err
	}
	c.setPhase(PhaseLoading)
	return nil
}

func (c *Connection) handlePlayerOptions() error {
	if err := c.runJoinSequence(); err != nil {
		return err
	}
	c.mu.Lock()
	c.awaitingReady = true
	c.mu.Unlock()
	c.setPhase(PhasePlaying)
	return nil
}

func (c *Connection) handleClientReady() {
	c.mu.Lock()
	wasAwaiting := c.awaitingReady
	c.awaitingReady = false
	c.mu.Unlock()
	if wasAwaiting {
		c.logf("join sequence complete")
	}
}

// disconnect sends a Disconnect packet with reason/message, then tears
// down the stream.
func (c *Connection) disconnect(reason protocol.DisconnectReason, message string) error {
	c.setPhase(PhaseDisconnecting)
	_ = c.sendPacket(protocol.IDDisconnect, &protocol.DisconnectPacket{Reason: reason, Message: message, HasMessage: message != ""})
	return c.Close()
}

// Close releases the connection's stream resources. Safe to call more
// than once.
func (c *Connection) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	c.setPhase(PhaseDisconnecting)
	return c.stream.Close()
}

// versionMismatchReason distinguishes "client older" from "server
// older" by build-number comparison.
func versionMismatchReason(clientBuild int32) string {
	switch {
	case clientBuild < ProtocolBuild:
		return "client is outdated, please update to continue"
	case clientBuild > ProtocolBuild:
		return "server is outdated, please wait for a server update"
	default:
		return "protocol mismatch"
	}
}

// entitySeed returns a random u32 for SetEntitySeed.
func entitySeed() uint32 { return rand.Uint32() }
