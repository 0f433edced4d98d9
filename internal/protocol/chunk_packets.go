package protocol

import (
	"fmt"

	"github.com/zytale/zytale-server/internal/wire"
)

// SetChunkPacket (id 131): null-bits (bit 0 localLight, bit 1
// globalLight, bit 2 section data) + i32 chunk_x + i32 section_y (0-9) +
// i32 chunk_z, three offsets, then three optional VarInt-prefixed blobs
//.
type SetChunkPacket struct {
	ChunkX, SectionY, ChunkZ int32

	LocalLight     []byte
	HasLocalLight  bool
	GlobalLight    []byte
	HasGlobalLight bool
	SectionData    []byte
	HasSectionData bool
}

const (
	setChunkBitLocalLight  = 0
	setChunkBitGlobalLight = 1
	setChunkBitSectionData = 2
)

type setChunkCodec struct{}

func (setChunkCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*SetChunkPacket)
	if !ok {
		return nil, fmt.Errorf("set_chunk codec: want *SetChunkPacket, got %T", v)
	}
	w := NewFixedWriter(3)
	var x, y, z [4]byte
	wire.PutInt32(x[:], p.ChunkX)
	wire.PutInt32(y[:], p.SectionY)
	wire.PutInt32(z[:], p.ChunkZ)
	w.PutFixed(x[:]...)
	w.PutFixed(y[:]...)
	w.PutFixed(z[:]...)

	writeBlob := func(i int, bit uint, present bool, data []byte) {
		if !present {
			w.SkipVariable(i, bit)
			return
		}
		w.WriteVariable(i, bit, append(wire.AppendVarInt(nil, uint32(len(data))), data...))
	}
	writeBlob(0, setChunkBitLocalLight, p.HasLocalLight, p.LocalLight)
	writeBlob(1, setChunkBitGlobalLight, p.HasGlobalLight, p.GlobalLight)
	writeBlob(2, setChunkBitSectionData, p.HasSectionData, p.SectionData)
	return w.Bytes(), nil
}

func (setChunkCodec) Decode(body []byte) (any, error) {
	r, err := NewFixedReader(body, 3)
	if err != nil {
		return nil, fmt.Errorf("set_chunk: %w", err)
	}
	fixed, err := r.ReadFixed(12)
	if err != nil {
		return nil, fmt.Errorf("set_chunk: %w", err)
	}
	if err := r.ReadOffsetTable(); err != nil {
		return nil, fmt.Errorf("set_chunk: %w", err)
	}
	p := &SetChunkPacket{
		ChunkX:   wire.Int32(fixed[0:4]),
		SectionY: wire.Int32(fixed[4:8]),
		ChunkZ:   wire.Int32(fixed[8:12]),
	}
	readBlob := func(i int, bit uint) ([]byte, bool, error) {
		slice, present := r.VariableSlice(i)
		if !present || !r.Has(bit) {
			return nil, false, nil
		}
		length, n, err := wire.DecodeVarInt(slice)
		if err != nil {
			return nil, false, fmt.Errorf("blob %d length: %w", i, err)
		}
		if n+int(length) > len(slice) {
			return nil, false, fmt.Errorf("blob %d truncated: need %d bytes, have %d", i, length, len(slice)-n)
		}
		return append([]byte(nil), slice[n:n+int(length)]...), true, nil
	}
	if b, ok, err := readBlob(0, setChunkBitLocalLight); err != nil {
		return nil, fmt.Errorf("set_chunk: local_light: %w", err)
	} else if ok {
		p.LocalLight, p.HasLocalLight = b, true
	}
	if b, ok, err := readBlob(1, setChunkBitGlobalLight); err != nil {
		return nil, fmt.Errorf("set_chunk: global_light: %w", err)
	} else if ok {
		p.GlobalLight, p.HasGlobalLight = b, true
	}
	if b, ok, err := readBlob(2, setChunkBitSectionData); err != nil {
		return nil, fmt.Errorf("set_chunk: section_data: %w", err)
	} else if ok {
		p.SectionData, p.HasSectionData = b, true
	}
	return p, nil
}

// columnBlobCodec implements the shared shape of SetChunkHeightmap
// (132, 2048 bytes), SetChunkTintmap (133, 4096 bytes), and
// SetChunkEnvironments (134, 1024 bytes): null-bits + i32 chunk_x + i32
// chunk_z, then one optional raw fixed-size blob. The blob is the only
// variable field and always last, so it is written inline with no
// offset word.
type columnBlobCodec struct {
	name     string
	blobSize int
}

type ColumnBlobPacket struct {
	ChunkX, ChunkZ int32
	Blob           []byte
	HasBlob        bool
}

const columnBlobBit = 0

func (c columnBlobCodec) Encode(v any) ([]byte, error) {
	p, ok := v.(*ColumnBlobPacket)
	if !ok {
		return nil, fmt.Errorf("%s codec: want *ColumnBlobPacket, got %T", c.name, v)
	}
	if p.HasBlob && len(p.Blob) != c.blobSize {
		return nil, fmt.Errorf("%s: blob must be %d bytes, got %d", c.name, c.blobSize, len(p.Blob))
	}
	var null NullBits
	null.Set(columnBlobBit, p.HasBlob)
	out := make([]byte, 9, 9+len(p.Blob))
	out[0] = byte(null)
	wire.PutInt32(out[1:5], p.ChunkX)
	wire.PutInt32(out[5:9], p.ChunkZ)
	if p.HasBlob {
		out = append(out, p.Blob...)
	}
	return out, nil
}

func (c columnBlobCodec) Decode(body []byte) (any, error) {
	if len(body) < 9 {
		return nil, fmt.Errorf("%s: body truncated: need 9 bytes, have %d", c.name, len(body))
	}
	p := &ColumnBlobPacket{ChunkX: wire.Int32(body[1:5]), ChunkZ: wire.Int32(body[5:9])}
	if NullBits(body[0]).Has(columnBlobBit) {
		if len(body) < 9+c.blobSize {
			return nil, fmt.Errorf("%s: blob truncated: need %d bytes, have %d", c.name, c.blobSize, len(body)-9)
		}
		p.Blob = append([]byte(nil), body[9:9+c.blobSize]...)
		p.HasBlob = true
	}
	return p, nil
}
