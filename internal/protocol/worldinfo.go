package protocol

import (
	"fmt"

	"github.com/zytale/zytale-server/internal/wire"
)

// WorldSettingsPacket (id 20): null-bits + i32 world height + optional
// required-assets blob. The blob is the only variable field and
// always last, so it is written inline with no offset word — a
// WorldSettings with no blob is exactly five bytes. This core has no
// asset-requirement negotiation, so RequiredAssets is always written
// absent.
type WorldSettingsPacket struct {
	WorldHeight int32

	RequiredAssets    []byte
	HasRequiredAssets bool
}

const worldSettingsBitRequiredAssets = 0

type worldSettingsCodec struct{}

func (worldSettingsCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*WorldSettingsPacket)
	if !ok {
		return nil, fmt.Errorf("world_settings codec: want *WorldSettingsPacket, got %T", v)
	}
	var null NullBits
	null.Set(worldSettingsBitRequiredAssets, p.HasRequiredAssets)
	out := make([]byte, 5, 5+len(p.RequiredAssets))
	out[0] = byte(null)
	wire.PutInt32(out[1:5], p.WorldHeight)
	if p.HasRequiredAssets {
		out = append(out, p.RequiredAssets...)
	}
	return out, nil
}

func (worldSettingsCodec) Decode(body []byte) (any, error) {
	if len(body) < 5 {
		return nil, fmt.Errorf("world_settings: body truncated: need 5 bytes, have %d", len(body))
	}
	p := &WorldSettingsPacket{WorldHeight: wire.Int32(body[1:5])}
	if NullBits(body[0]).Has(worldSettingsBitRequiredAssets) {
		p.RequiredAssets = append([]byte(nil), body[5:]...)
		p.HasRequiredAssets = true
	}
	return p, nil
}

// ServerInfoPacket (id 223): null-bits + i32 max_players + two offsets
// -> serverName, motd VarStrings.
type ServerInfoPacket struct {
	MaxPlayers int32
	ServerName string
	MOTD       string
}

const (
	serverInfoBitServerName = 0
	serverInfoBitMOTD       = 1
)

type serverInfoCodec struct{}

func (serverInfoCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*ServerInfoPacket)
	if !ok {
		return nil, fmt.Errorf("server_info codec: want *ServerInfoPacket, got %T", v)
	}
	w := NewFixedWriter(2)
	var maxPlayers [4]byte
	wire.PutInt32(maxPlayers[:], p.MaxPlayers)
	w.PutFixed(maxPlayers[:]...)
	w.WriteVariable(0, serverInfoBitServerName, encodeVarString(p.ServerName))
	w.WriteVariable(1, serverInfoBitMOTD, encodeVarString(p.MOTD))
	return w.Bytes(), nil
}

func (serverInfoCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 2)
	if err != nil {
		return nil, fmt.Errorf("server_info: %w", err)
	}
	fixed, err := r.ReadFixed(4)
	if err != nil {
		return nil, fmt.Errorf("server_info: %w", err)
	}
	if err := r.ReadOffsetTable(); err != nil {
		return nil, fmt.Errorf("server_info: %w", err)
	}
	p := &ServerInfoPacket{MaxPlayers: wire.Int32(fixed)}
	nameSlice, present := r.VariableSlice(serverInfoBitServerName)
	if !present {
		return nil, fmt.Errorf("server_info: server_name absent")
	}
	name, _, err := wire.DecodeVarString(nameSlice)
	if err != nil {
		return nil, fmt.Errorf("server_info: server_name: %w", err)
	}
	p.ServerName = name
	motdSlice, present := r.VariableSlice(serverInfoBitMOTD)
	if !present {
		return nil, fmt.Errorf("server_info: motd absent")
	}
	motd, _, err := wire.DecodeVarString(motdSlice)
	if err != nil {
		return nil, fmt.Errorf("server_info: motd: %w", err)
	}
	p.MOTD = motd
	return p, nil
}

// WorldLoadProgressPacket (id 21): null-bits + a chunks_sent/total_chunks
// pair. The connection sends it once, when the asset burst finishes;
// terrain streaming sends no progress packets.
type WorldLoadProgressPacket struct {
	ChunksSent   int32
	TotalChunks  int32
}

type worldLoadProgressCodec struct{}

func (worldLoadProgressCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*WorldLoadProgressPacket)
	if !ok {
		return nil, fmt.Errorf("world_load_progress codec: want *WorldLoadProgressPacket, got %T", v)
	}
	w := NewFixedWriter(0)
	var sent, total [4]byte
	wire.PutInt32(sent[:], p.ChunksSent)
	wire.PutInt32(total[:], p.TotalChunks)
	w.PutFixed(sent[:]...)
	w.PutFixed(total[:]...)
	return w.Bytes(), nil
}

func (worldLoadProgressCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 0)
	if err != nil {
		return nil, fmt.Errorf("world_load_progress: %w", err)
	}
	fixed, err := r.ReadFixed(8)
	if err != nil {
		return nil, fmt.Errorf("world_load_progress: %w", err)
	}
	return &WorldLoadProgressPacket{
		ChunksSent:  wire.Int32(fixed[0:4]),
		TotalChunks: wire.Int32(fixed[4:8]),
	}, nil
}

// WorldLoadFinishedPacket (id 22) carries no payload beyond the
// null-bits envelope.
type WorldLoadFinishedPacket struct{}

type worldLoadFinishedCodec struct{}

func (worldLoadFinishedCodec) Encode(v any) ([]byte, error) {
	return []byte{0}, nil
}

func (worldLoadFinishedCodec) Decode(body []byte) (any, error) {
	if len(body) < 1 {
		return nil, fmt.Errorf("world_load_finished: empty body")
	}
	return &WorldLoadFinishedPacket{}, nil
}
