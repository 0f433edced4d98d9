package protocol

import (
	"fmt"

	"github.com/zytale/zytale-server/internal/wire"
)

// ConnectPacket is the inbound hello (id 0). This implementation
// targets the CRC+build wire form (the format the build-2 client
// actually sends) rather than the legacy 64-byte ASCII protocol-hash
// variant.
type ConnectPacket struct {
	ProtocolCRC   int32
	ProtocolBuild int32
	ClientType    byte
	UUID          [16]byte

	Language       string
	HasLanguage    bool
	IdentityToken  string
	HasIdentityTok bool
	Username       string // required: offset table entry is always present
	ReferralData   string
	HasReferral    bool
	ReferralSource string
	HasRefSource   bool
}

const (
	connectBitLanguage = iota
	connectBitIdentity
	connectBitUsername
	connectBitReferralData
	connectBitReferralSource
)

type connectCodec struct{}

func (connectCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*ConnectPacket)
	if !ok {
		return nil, fmt.Errorf("connect codec: want *ConnectPacket, got %T", v)
	}
	w := NewFixedWriter(5)
	var crc, build [4]byte
	wire.PutInt32(crc[:], p.ProtocolCRC)
	wire.PutInt32(build[:], p.ProtocolBuild)
	w.PutFixed(crc[:]...)
	w.PutFixed(build[:]...)
	w.PutFixed(p.ClientType)
	w.PutFixed(p.UUID[:]...)

	if p.HasLanguage {
		w.WriteVariable(connectBitLanguage, connectBitLanguage, encodeVarString(p.Language))
	} else {
		w.SkipVariable(connectBitLanguage, connectBitLanguage)
	}
	if p.HasIdentityTok {
		w.WriteVariable(connectBitIdentity, connectBitIdentity, encodeVarString(p.IdentityToken))
	} else {
		w.SkipVariable(connectBitIdentity, connectBitIdentity)
	}
	w.WriteVariable(connectBitUsername, connectBitUsername, encodeVarString(p.Username))
	if p.HasReferral {
		w.WriteVariable(connectBitReferralData, connectBitReferralData, encodeVarString(p.ReferralData))
	} else {
		w.SkipVariable(connectBitReferralData, connectBitReferralData)
	}
	if p.HasRefSource {
		w.WriteVariable(connectBitReferralSource, connectBitReferralSource, encodeVarString(p.ReferralSource))
	} else {
		w.SkipVariable(connectBitReferralSource, connectBitReferralSource)
	}
	return w.Bytes(), nil
}

func (connectCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 5)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	fixed, err := r.ReadFixed(4 + 4 + 1 + 16)
	if err != nil {
		return nil, fmt.Errorf("connect: fixed block: %w", err)
	}
	if err := r.ReadOffsetTable(); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	p := &ConnectPacket{
		ProtocolCRC:   wire.Int32(fixed[0:4]),
		ProtocolBuild: wire.Int32(fixed[4:8]),
		ClientType:    fixed[8],
	}
	copy(p.UUID[:], fixed[9:25])

	if slice, present := r.VariableSlice(connectBitLanguage); present && r.Has(connectBitLanguage) {
		s, _, err := wire.DecodeVarString(slice)
		if err != nil {
			return nil, fmt.Errorf("connect: language: %w", err)
		}
		p.Language, p.HasLanguage = s, true
	}
	if slice, present := r.VariableSlice(connectBitIdentity); present && r.Has(connectBitIdentity) {
		s, _, err := wire.DecodeVarString(slice)
		if err != nil {
			return nil, fmt.Errorf("connect: identity_token: %w", err)
		}
		p.IdentityToken, p.HasIdentityTok = s, true
	}
	slice, present := r.VariableSlice(connectBitUsername)
	if !present {
		return nil, fmt.Errorf("connect: username is required but absent")
	}
	username, _, err := wire.DecodeVarString(slice)
	if err != nil {
		return nil, fmt.Errorf("connect: username: %w", err)
	}
	p.Username = username

	if slice, present := r.VariableSlice(connectBitReferralData); present && r.Has(connectBitReferralData) {
		s, _, err := wire.DecodeVarString(slice)
		if err != nil {
			return nil, fmt.Errorf("connect: referral_data: %w", err)
		}
		p.ReferralData, p.HasReferral = s, true
	}
	if slice, present := r.VariableSlice(connectBitReferralSource); present && r.Has(connectBitReferralSource) {
		s, _, err := wire.DecodeVarString(slice)
		if err != nil {
			return nil, fmt.Errorf("connect: referral_source: %w", err)
		}
		p.ReferralSource, p.HasRefSource = s, true
	}

	return p, nil
}

func encodeVarString(s string) []byte {
	return wire.AppendVarString(nil, s)
}
