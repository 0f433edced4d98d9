package protocol

import (
	"fmt"

	"github.com/zytale/zytale-server/internal/wire"
)

// ConnectAcceptPacket (outbound, id 14): null-bits + optional VarString
// password-challenge bytes. The challenge is the packet's only variable
// field and always last, so it is written inline with no offset word —
// null-bits alone signals presence. A ConnectAccept with no
// challenge is exactly one byte on the wire.
type ConnectAcceptPacket struct {
	PasswordChallenge    string
	HasPasswordChallenge bool
}

const connectAcceptBitChallenge = 0

type connectAcceptCodec struct{}

func (connectAcceptCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*ConnectAcceptPacket)
	if !ok {
		return nil, fmt.Errorf("connect_accept codec: want *ConnectAcceptPacket, got %T", v)
	}
	var null NullBits
	null.Set(connectAcceptBitChallenge, p.HasPasswordChallenge)
	out := []byte{byte(null)}
	if p.HasPasswordChallenge {
		out = wire.AppendVarString(out, p.PasswordChallenge)
	}
	return out, nil
}

func (connectAcceptCodec) Decode(body []byte) (any, error) {
	if len(body) < 1 {
		return nil, fmt.Errorf("connect_accept: empty body")
	}
	p := &ConnectAcceptPacket{}
	if NullBits(body[0]).Has(connectAcceptBitChallenge) {
		s, _, err := wire.DecodeVarString(body[1:])
		if err != nil {
			return nil, fmt.Errorf("connect_accept: password_challenge: %w", err)
		}
		p.PasswordChallenge, p.HasPasswordChallenge = s, true
	}
	return p, nil
}

// twoVarStringCodec implements the shared shape of AuthGrant (11),
// ServerAuthToken (13), and AuthToken (12): null-bits + two optional
// VarString fields in the variable block driven by a two-entry offset
// table.
type twoVarStringCodec struct {
	name string
}

type TwoFieldPacket struct {
	A, B       string
	HasA, HasB bool
}

func (c twoVarStringCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*TwoFieldPacket)
	if !ok {
		return nil, fmt.Errorf("%s codec: want *TwoFieldPacket, got %T", c.name, v)
	}
	w := NewFixedWriter(2)
	if p.HasA {
		w.WriteVariable(0, 0, encodeVarString(p.A))
	} else {
		w.SkipVariable(0, 0)
	}
	if p.HasB {
		w.WriteVariable(1, 1, encodeVarString(p.B))
	} else {
		w.SkipVariable(1, 1)
	}
	return w.Bytes(), nil
}

func (c twoVarStringCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 2)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	if err := r.ReadOffsetTable(); err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	p := &TwoFieldPacket{}
	if slice, present := r.VariableSlice(0); present && r.Has(0) {
		s, _, err := wire.DecodeVarString(slice)
		if err != nil {
			return nil, fmt.Errorf("%s: field a: %w", c.name, err)
		}
		p.A, p.HasA = s, true
	}
	if slice, present := r.VariableSlice(1); present && r.Has(1) {
		s, _, err := wire.DecodeVarString(slice)
		if err != nil {
			return nil, fmt.Errorf("%s: field b: %w", c.name, err)
		}
		p.B, p.HasB = s, true
	}
	return p, nil
}

// PasswordAcceptedPacket (id 16) carries no payload beyond the shared
// envelope; it is a null-bits byte with no optional fields.
type PasswordAcceptedPacket struct{}

type passwordAcceptedCodec struct{}

func (passwordAcceptedCodec) Encode(v any) ([]byte, error) {
	return []byte{0}, nil
}

func (passwordAcceptedCodec) Decode(body []byte) (any, error) {
	if len(body) < 1 {
		return nil, fmt.Errorf("password_accepted: empty body")
	}
	return &PasswordAcceptedPacket{}, nil
}
