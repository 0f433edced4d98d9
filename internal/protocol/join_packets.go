package protocol

import (
	"fmt"

	"github.com/zytale/zytale-server/internal/wire"
)

// SetClientIdPacket (outbound) assigns the connection's integer client
// id, the first packet of the join sequence after ConnectAccept.
type SetClientIdPacket struct {
	ClientID int32
}

type setClientIdCodec struct{}

func (setClientIdCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*SetClientIdPacket)
	if !ok {
		return nil, fmt.Errorf("set_client_id codec: want *SetClientIdPacket, got %T", v)
	}
	w := NewFixedWriter(0)
	var id [4]byte
	wire.PutInt32(id[:], p.ClientID)
	w.PutFixed(id[:]...)
	return w.Bytes(), nil
}

func (setClientIdCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 0)
	if err != nil {
		return nil, fmt.Errorf("set_client_id: %w", err)
	}
	fixed, err := r.ReadFixed(4)
	if err != nil {
		return nil, fmt.Errorf("set_client_id: %w", err)
	}
	return &SetClientIdPacket{ClientID: wire.Int32(fixed)}, nil
}

// ViewRadiusPacket (outbound) sets the client's chunk view radius.
type ViewRadiusPacket struct {
	Radius int32
}

type viewRadiusCodec struct{}

func (viewRadiusCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*ViewRadiusPacket)
	if !ok {
		return nil, fmt.Errorf("view_radius codec: want *ViewRadiusPacket, got %T", v)
	}
	w := NewFixedWriter(0)
	var r [4]byte
	wire.PutInt32(r[:], p.Radius)
	w.PutFixed(r[:]...)
	return w.Bytes(), nil
}

func (viewRadiusCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 0)
	if err != nil {
		return nil, fmt.Errorf("view_radius: %w", err)
	}
	fixed, err := r.ReadFixed(4)
	if err != nil {
		return nil, fmt.Errorf("view_radius: %w", err)
	}
	return &ViewRadiusPacket{Radius: wire.Int32(fixed)}, nil
}

// JoinWorldPacket (outbound): clear/fade flags in null-bits plus the
// world UUID.
type JoinWorldPacket struct {
	Clear     bool
	Fade      bool
	WorldUUID [16]byte
}

const (
	joinWorldBitClear = 0
	joinWorldBitFade  = 1
)

type joinWorldCodec struct{}

func (joinWorldCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*JoinWorldPacket)
	if !ok {
		return nil, fmt.Errorf("join_world codec: want *JoinWorldPacket, got %T", v)
	}
	w := NewFixedWriter(0)
	w.SetBit(joinWorldBitClear, p.Clear)
	w.SetBit(joinWorldBitFade, p.Fade)
	w.PutFixed(p.WorldUUID[:]...)
	return w.Bytes(), nil
}

func (joinWorldCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 0)
	if err != nil {
		return nil, fmt.Errorf("join_world: %w", err)
	}
	fixed, err := r.ReadFixed(16)
	if err != nil {
		return nil, fmt.Errorf("join_world: %w", err)
	}
	p := &JoinWorldPacket{Clear: r.Has(joinWorldBitClear), Fade: r.Has(joinWorldBitFade)}
	copy(p.WorldUUID[:], fixed)
	return p, nil
}

// SetGameModePacket (outbound). GameMode 1 = creative, the mode the
// join sequence assigns.
type SetGameModePacket struct {
	GameMode byte
}

type setGameModeCodec struct{}

func (setGameModeCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*SetGameModePacket)
	if !ok {
		return nil, fmt.Errorf("set_game_mode codec: want *SetGameModePacket, got %T", v)
	}
	w := NewFixedWriter(0)
	w.PutFixed(p.GameMode)
	return w.Bytes(), nil
}

func (setGameModeCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 0)
	if err != nil {
		return nil, fmt.Errorf("set_game_mode: %w", err)
	}
	fixed, err := r.ReadFixed(1)
	if err != nil {
		return nil, fmt.Errorf("set_game_mode: %w", err)
	}
	return &SetGameModePacket{GameMode: fixed[0]}, nil
}

// SetEntitySeedPacket (outbound) seeds the client's per-entity
// randomness (e.g. idle animation variance).
type SetEntitySeedPacket struct {
	Seed uint32
}

type setEntitySeedCodec struct{}

func (setEntitySeedCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*SetEntitySeedPacket)
	if !ok {
		return nil, fmt.Errorf("set_entity_seed codec: want *SetEntitySeedPacket, got %T", v)
	}
	w := NewFixedWriter(0)
	var s [4]byte
	wire.PutUint32(s[:], p.Seed)
	w.PutFixed(s[:]...)
	return w.Bytes(), nil
}

func (setEntitySeedCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 0)
	if err != nil {
		return nil, fmt.Errorf("set_entity_seed: %w", err)
	}
	fixed, err := r.ReadFixed(4)
	if err != nil {
		return nil, fmt.Errorf("set_entity_seed: %w", err)
	}
	return &SetEntitySeedPacket{Seed: wire.Uint32(fixed)}, nil
}

// EntityUpdateAction mirrors the UpdateType enum shared by the
// Update-packet family: Init/AddOrUpdate/Remove reused here for
// entity lifecycle events.
type EntityUpdateAction byte

const (
	EntityAdd    EntityUpdateAction = 0
	EntityUpdate EntityUpdateAction = 1
	EntityRemove EntityUpdateAction = 2
)

// EntityState is one entity's position/orientation/velocity as carried
// in an EntityUpdates packet.
type EntityState struct {
	Action   EntityUpdateAction
	EntityID [16]byte
	X, Y, Z  float32
	QX, QY, QZ, QW float32
	VX, VY, VZ     float32
}

// EntityUpdatesPacket (outbound, id 40): null-bits + VarInt count of
// fixed-size entity records. The join sequence emits exactly one
// EntityAdd for the player at spawn with an identity quaternion and
// zero velocity.
type EntityUpdatesPacket struct {
	Entities []EntityState
}

const entityRecordSize = 1 + 16 + 4*3 + 4*4 + 4*3

type entityUpdatesCodec struct{}

func (entityUpdatesCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*EntityUpdatesPacket)
	if !ok {
		return nil, fmt.Errorf("entity_updates codec: want *EntityUpdatesPacket, got %T", v)
	}
	w := NewFixedWriter(0)
	w.SetBit(0, true)
	var buf []byte
	buf = wire.AppendVarInt(buf, uint32(len(p.Entities)))
	for _, e := range p.Entities {
		buf = append(buf, byte(e.Action))
		buf = append(buf, e.EntityID[:]...)
		var f [4]byte
		for _, val := range []float32{e.X, e.Y, e.Z, e.QX, e.QY, e.QZ, e.QW, e.VX, e.VY, e.VZ} {
			wire.PutFloat32(f[:], val)
			buf = append(buf, f[:]...)
		}
	}
	w.AppendRawVariable(buf)
	return w.Bytes(), nil
}

func (entityUpdatesCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 0)
	if err != nil {
		return nil, fmt.Errorf("entity_updates: %w", err)
	}
	if err := r.ReadOffsetTable(); err != nil {
		return nil, fmt.Errorf("entity_updates: %w", err)
	}
	raw := r.Raw()[r.VariableOrigin():]
	count, n, err := wire.DecodeVarInt(raw)
	if err != nil {
		return nil, fmt.Errorf("entity_updates: count: %w", err)
	}
	raw = raw[n:]
	out := make([]EntityState, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(raw) < entityRecordSize {
			return nil, fmt.Errorf("entity_updates: truncated entity record %d", i)
		}
		var e EntityState
		e.Action = EntityUpdateAction(raw[0])
		copy(e.EntityID[:], raw[1:17])
		fields := raw[17:entityRecordSize]
		vals := [10]*float32{&e.X, &e.Y, &e.Z, &e.QX, &e.QY, &e.QZ, &e.QW, &e.VX, &e.VY, &e.VZ}
		for i, p := range vals {
			*p = wire.Float32(fields[i*4 : i*4+4])
		}
		out = append(out, e)
		raw = raw[entityRecordSize:]
	}
	return &EntityUpdatesPacket{Entities: out}, nil
}

// PlayerOptionsPacket (inbound) completes the loading phase; this
// core only needs its arrival, not its content, so the body is read as
// a bare null-bits envelope.
type PlayerOptionsPacket struct{}

type playerOptionsCodec struct{}

func (playerOptionsCodec) Encode(v any) ([]byte, error) { return []byte{0}, nil }

func (playerOptionsCodec) Decode(body []byte) (any, error) {
	if len(body) < 1 {
		return nil, fmt.Errorf("player_options: empty body")
	}
	return &PlayerOptionsPacket{}, nil
}

// RequestAssetsPacket (inbound) triggers the asset/UpdateXxx burst;
// no payload needed beyond the envelope.
type RequestAssetsPacket struct{}

type requestAssetsCodec struct{}

func (requestAssetsCodec) Encode(v any) ([]byte, error) { return []byte{0}, nil }

func (requestAssetsCodec) Decode(body []byte) (any, error) {
	if len(body) < 1 {
		return nil, fmt.Errorf("request_assets: empty body")
	}
	return &RequestAssetsPacket{}, nil
}

// ClientMovementPacket (inbound): position + yaw/pitch, the one
// gameplay packet this core decodes; the connection accepts it in the
// playing phase and does not otherwise interpret it.
type ClientMovementPacket struct {
	X, Y, Z    float32
	Yaw, Pitch float32
}

type clientMovementCodec struct{}

func (clientMovementCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*ClientMovementPacket)
	if !ok {
		return nil, fmt.Errorf("client_movement codec: want *ClientMovementPacket, got %T", v)
	}
	w := NewFixedWriter(0)
	var f [4]byte
	for _, val := range []float32{p.X, p.Y, p.Z, p.Yaw, p.Pitch} {
		wire.PutFloat32(f[:], val)
		w.PutFixed(f[:]...)
	}
	return w.Bytes(), nil
}

func (clientMovementCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 0)
	if err != nil {
		return nil, fmt.Errorf("client_movement: %w", err)
	}
	fixed, err := r.ReadFixed(20)
	if err != nil {
		return nil, fmt.Errorf("client_movement: %w", err)
	}
	return &ClientMovementPacket{
		X:     wire.Float32(fixed[0:4]),
		Y:     wire.Float32(fixed[4:8]),
		Z:     wire.Float32(fixed[8:12]),
		Yaw:   wire.Float32(fixed[12:16]),
		Pitch: wire.Float32(fixed[16:20]),
	}, nil
}

// PingPacket round-trips a client-chosen timestamp for latency
// measurement.
type PingPacket struct {
	Timestamp int64
}

type pingCodec struct{}

func (pingCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*PingPacket)
	if !ok {
		return nil, fmt.Errorf("ping codec: want *PingPacket, got %T", v)
	}
	w := NewFixedWriter(0)
	var t [8]byte
	wire.PutUint64(t[:], uint64(p.Timestamp))
	w.PutFixed(t[:]...)
	return w.Bytes(), nil
}

func (pingCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 0)
	if err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	fixed, err := r.ReadFixed(8)
	if err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &PingPacket{Timestamp: int64(wire.Uint64(fixed))}, nil
}

// ClientReadyPacket (inbound) completes the join sequence's
// waiting_for_ready step.
type ClientReadyPacket struct{}

type clientReadyCodec struct{}

func (clientReadyCodec) Encode(v any) ([]byte, error) { return []byte{0}, nil }

func (clientReadyCodec) Decode(body []byte) (any, error) {
	if len(body) < 1 {
		return nil, fmt.Errorf("client_ready: empty body")
	}
	return &ClientReadyPacket{}, nil
}
