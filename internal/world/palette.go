// Package world implements the voxel section/chunk/world store:
// palette-compressed 32x32x32 sections, ten-section
// chunks, and a lazily populated chunk map keyed by packed coordinate.
package world

import "fmt"

// PaletteType is chosen by unique-value cardinality.
type PaletteType byte

const (
	PaletteEmpty    PaletteType = 0
	PaletteHalfByte PaletteType = 1
	PaletteByte     PaletteType = 2
	PaletteShort    PaletteType = 3
)

const sectionVolume = 32 * 32 * 32

// blockIndex is the packed (y,z,x) -> linear index formula.
func blockIndex(x, y, z int) int {
	return (y&31)<<10 | (z&31)<<5 | (x & 31)
}

// palette is one of a section's three parallel palette/data pairs
// (block, filler, or rotation). Internal indices are assigned in
// insertion order and never reused; once a section holds a non-air
// (non-zero) block it stays non-empty — that implicit air entry
// at internal index 0 is created the first time a non-air value is written,
// and setBlock never removes it.
type palette struct {
	kind PaletteType

	// toExternal[i] is the external block id for internal index i.
	toExternal []uint32
	// refCount[i] counts live cells referencing internal index i.
	refCount []uint16
	// fromExternal maps an external block id back to its internal index.
	fromExternal map[uint32]uint8

	// data holds one packed entry per block cell once the palette is
	// non-empty; its width depends on kind.
	data []byte
}

func newPalette() *palette {
	return &palette{fromExternal: make(map[uint32]uint8)}
}

func (p *palette) isEmpty() bool { return p.kind == PaletteEmpty }

// get returns the external block id at linear index idx (0 = air for
// an empty palette).
func (p *palette) get(idx int) uint32 {
	if p.isEmpty() {
		return 0
	}
	internal := p.readInternal(idx)
	return p.toExternal[internal]
}

func (p *palette) readInternal(idx int) uint8 {
	switch p.kind {
	case PaletteHalfByte:
		b := p.data[idx/2]
		if idx%2 == 0 {
			return b & 0x0F
		}
		return b >> 4
	case PaletteByte:
		return p.data[idx]
	case PaletteShort:
		// The wire format's per-entry internal_index field is a single
		// byte even for the short palette type, so the low byte
		// of this 16-bit cell always carries the real value; the high
		// byte is reserved and always zero.
		return p.data[idx*2]
	}
	return 0
}

// ensureExternal returns the internal index for external, assigning a
// fresh one and growing the palette type if needed.
func (p *palette) ensureExternal(external uint32) uint8 {
	if internal, ok := p.fromExternal[external]; ok {
		return internal
	}
	internal := uint8(len(p.toExternal))
	p.toExternal = append(p.toExternal, external)
	p.refCount = append(p.refCount, 0)
	p.fromExternal[external] = internal

	wasEmpty := p.kind == PaletteEmpty && len(p.toExternal) == 1
	newKind := p.kindFor(len(p.toExternal))
	if wasEmpty {
		// First value (the implicit air entry): one unique value still
		// maps to the empty type, so no data array exists yet; the next
		// new value widens from empty, every cell starting at internal 0.
		p.kind = newKind
		p.allocate()
	} else if newKind != p.kind {
		p.widen(newKind)
	}
	return internal
}

func (p *palette) kindFor(uniqueCount int) PaletteType {
	switch {
	case uniqueCount <= 1:
		return PaletteEmpty
	case uniqueCount <= 16:
		return PaletteHalfByte
	case uniqueCount <= 256:
		return PaletteByte
	default:
		return PaletteShort
	}
}

func (p *palette) allocate() {
	switch p.kind {
	case PaletteHalfByte:
		p.data = make([]byte, sectionVolume/2)
	case PaletteByte:
		p.data = make([]byte, sectionVolume)
	case PaletteShort:
		p.data = make([]byte, sectionVolume*2)
	}
}

// widen reallocates the data array to a wider encoding, copying every
// cell through the old accessor before the old buffer is released
//.
func (p *palette) widen(newKind PaletteType) {
	old := p.data
	oldKind := p.kind
	p.kind = newKind
	p.allocate()
	readOld := func(idx int) uint8 {
		switch oldKind {
		case PaletteHalfByte:
			b := old[idx/2]
			if idx%2 == 0 {
				return b & 0x0F
			}
			return b >> 4
		case PaletteByte:
			return old[idx]
		case PaletteShort:
			return old[idx*2]
		}
		return 0
	}
	for idx := 0; idx < sectionVolume; idx++ {
		p.writeInternal(idx, readOld(idx))
	}
}

func (p *palette) writeInternal(idx int, internal uint8) {
	switch p.kind {
	case PaletteHalfByte:
		b := p.data[idx/2]
		if idx%2 == 0 {
			p.data[idx/2] = (b & 0xF0) | (internal & 0x0F)
		} else {
			p.data[idx/2] = (b & 0x0F) | (internal << 4)
		}
	case PaletteByte:
		p.data[idx] = internal
	case PaletteShort:
		p.data[idx*2] = byte(internal)
		p.data[idx*2+1] = 0
	}
}

// set writes external at linear index idx. Reference counts are not
// tracked by this implementation — the
// wire format reserves the field for implementations that do.
func (p *palette) set(idx int, external uint32) {
	if p.isEmpty() && external == 0 {
		return
	}
	if p.isEmpty() {
		p.ensureExternal(0) // implicit air baseline, internal index 0
	}
	newInternal := p.ensureExternal(external)
	p.writeInternal(idx, newInternal)
}

// fillLayer sets 1024 consecutive cells (one y-plane) to external in
// one pass — the hot path for terrain generation.
func (p *palette) fillLayer(y int, external uint32) {
	if external == 0 && p.isEmpty() {
		return
	}
	if p.isEmpty() {
		p.ensureExternal(0)
	}
	internal := p.ensureExternal(external)
	for z := 0; z < 32; z++ {
		for x := 0; x < 32; x++ {
			p.writeInternal(blockIndex(x, y, z), internal)
		}
	}
}

// encode serializes this palette/data pair: type byte, non-empty
// palette body (u16 count, per-entry u8 internal/u32 external/u16
// refcount), then the packed data array.
func (p *palette) encode() []byte {
	if p.isEmpty() {
		return []byte{byte(PaletteEmpty)}
	}
	out := make([]byte, 0, 1+2+7*len(p.toExternal)+len(p.data))
	out = append(out, byte(p.kind))
	var count [2]byte
	putUint16(count[:], uint16(len(p.toExternal)))
	out = append(out, count[:]...)
	for i, external := range p.toExternal {
		out = append(out, byte(i))
		var ext [4]byte
		putUint32(ext[:], external)
		out = append(out, ext[:]...)
		var ref [2]byte
		putUint16(ref[:], p.refCount[i])
		out = append(out, ref[:]...)
	}
	out = append(out, p.data...)
	return out
}

func decodePalette(buf []byte) (*palette, int, error) {
	if len(buf) < 1 {
		return nil, 0, fmt.Errorf("world: palette body empty")
	}
	kind := PaletteType(buf[0])
	p := newPalette()
	p.kind = kind
	if kind == PaletteEmpty {
		return p, 1, nil
	}
	if len(buf) < 3 {
		return nil, 0, fmt.Errorf("world: palette header truncated")
	}
	count := getUint16(buf[1:3])
	pos := 3
	p.toExternal = make([]uint32, count)
	p.refCount = make([]uint16, count)
	for i := uint16(0); i < count; i++ {
		if pos+7 > len(buf) {
			return nil, 0, fmt.Errorf("world: palette entry %d truncated", i)
		}
		internal := buf[pos]
		external := getUint32(buf[pos+1 : pos+5])
		ref := getUint16(buf[pos+5 : pos+7])
		if int(internal) >= len(p.toExternal) {
			return nil, 0, fmt.Errorf("world: palette entry internal index %d out of range", internal)
		}
		p.toExternal[internal] = external
		p.refCount[internal] = ref
		p.fromExternal[external] = internal
		pos += 7
	}
	p.allocate()
	if pos+len(p.data) > len(buf) {
		return nil, 0, fmt.Errorf("world: palette data array truncated")
	}
	copy(p.data, buf[pos:pos+len(p.data)])
	pos += len(p.data)
	return p, pos, nil
}

func putUint16(b []byte, v uint16) { b[0], b[1] = byte(v), byte(v>>8) }
func getUint16(b []byte) uint16    { return uint16(b[0]) | uint16(b[1])<<8 }
func putUint32(b []byte, v uint32) { b[0], b[1], b[2], b[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24) }
func getUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
