package protocol

import (
	"fmt"

	"github.com/zytale/zytale-server/internal/wire"
)

// DisconnectReason enumerates why a connection is ending.
type DisconnectReason byte

const (
	DisconnectGeneric        DisconnectReason = 0
	DisconnectKick           DisconnectReason = 1
	DisconnectBan            DisconnectReason = 2
	DisconnectLeave          DisconnectReason = 3
	DisconnectCrash          DisconnectReason = 4
	DisconnectTimeout        DisconnectReason = 5
	DisconnectServerShutdown DisconnectReason = 6
)

func (d DisconnectReason) String() string {
	switch d {
	case DisconnectGeneric:
		return "disconnect"
	case DisconnectKick:
		return "kick"
	case DisconnectBan:
		return "ban"
	case DisconnectLeave:
		return "leave"
	case DisconnectCrash:
		return "crash"
	case DisconnectTimeout:
		return "timeout"
	case DisconnectServerShutdown:
		return "server_shutdown"
	default:
		return fmt.Sprintf("disconnect_reason(%d)", byte(d))
	}
}

// DisconnectPacket (id 1): null-bits + 1-byte reason enum + optional
// reason-text VarString, written inline with no offset word since it is
// the packet's only variable field and always last.
type DisconnectPacket struct {
	Reason     DisconnectReason
	Message    string
	HasMessage bool
}

const disconnectBitMessage = 0

type disconnectCodec struct{}

func (disconnectCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*DisconnectPacket)
	if !ok {
		return nil, fmt.Errorf("disconnect codec: want *DisconnectPacket, got %T", v)
	}
	var null NullBits
	null.Set(disconnectBitMessage, p.HasMessage)
	out := []byte{byte(null), byte(p.Reason)}
	if p.HasMessage {
		out = wire.AppendVarString(out, p.Message)
	}
	return out, nil
}

func (disconnectCodec) Decode(body []byte) (any, error) {
	if len(body) < 2 {
		return nil, fmt.Errorf("disconnect: body truncated: need 2 bytes, have %d", len(body))
	}
	p := &DisconnectPacket{Reason: DisconnectReason(body[1])}
	if NullBits(body[0]).Has(disconnectBitMessage) {
		s, _, err := wire.DecodeVarString(body[2:])
		if err != nil {
			return nil, fmt.Errorf("disconnect: message: %w", err)
		}
		p.Message, p.HasMessage = s, true
	}
	return p, nil
}
