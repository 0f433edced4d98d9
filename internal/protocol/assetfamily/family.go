// Package assetfamily expresses the ~60-entry UpdateXxx packet family as
// data rather than hand-written code, per the "packet-body-generator as
// data" design note: one row per family (id, name, key kind, extra
// fixed scalars, entry schema, compressed flag), a single generator
// that builds a well-formed payload — populated or empty — from that
// row.
package assetfamily

import (
	"fmt"

	"github.com/zytale/zytale-server/internal/wire"
)

// KeyKind selects whether a family's dictionary entries are keyed by a
// 4-byte index or a VarString name.
type KeyKind int

const (
	KeyInt KeyKind = iota
	KeyString
)

// UpdateType is the shared enum every UpdateXxx packet carries:
// 0 = Init, 1 = AddOrUpdate, 2 = Remove.
type UpdateType byte

const (
	UpdateInit        UpdateType = 0
	UpdateAddOrUpdate UpdateType = 1
	UpdateRemove      UpdateType = 2
)

// Family is one declarative row of the UpdateXxx table.
type Family struct {
	ID         uint32
	Name       string // e.g. "AudioCategories" — also the ZIP directory leaf name
	KeyKind    KeyKind
	HasMaxID   bool // true for int-keyed families (maxId follows the type byte)
	ExtraFixed []ExtraFixedField
	Compressed bool

	// OffsetPrologue is the number of i32 offset words emitted between
	// the extra fixed fields and the dictionary, for families whose
	// dictionary lives in a variable region (Items). Offset word 0
	// addresses the dictionary; the rest are reserved and written as -1.
	// With a prologue, an empty dictionary is a zero-length variable
	// region — the count VarInt is only written when entries exist — so
	// an empty Items payload is exactly the 14-byte fixed block.
	OffsetPrologue int
}

// ExtraFixedField is one of the family-specific fixed scalars that sit
// between maxId (if present) and the entry count — e.g. the four
// booleans `block_types` carries, or the single boolean `environments`
// carries.
type ExtraFixedField struct {
	Name string
	Bool bool // value for this generation; every currently modeled extra field is boolean
}

// Entry is one already-encoded dictionary member: either an int32 index
// (KeyInt families) or a string key (KeyString families), paired with
// its pre-serialized asset body.
type Entry struct {
	IntKey    int32
	StringKey string
	Body      []byte
}

// BuildPayload assembles one UpdateXxx packet payload in the given
// UpdateType mode. maxID is ignored for KeyString families. entries may
// be empty — the dictionary-present bit and a VarInt 0 count are still
// emitted, so the family set on the wire stays exhaustive. Families with
// an OffsetPrologue are the exception: an empty dictionary ends the
// payload after the prologue, with no count.
func (f Family) BuildPayload(mode UpdateType, maxID int32, entries []Entry) []byte {
	var null byte = 1 // bit 0: dictionary present, always set
	buf := make([]byte, 0, 16+16*len(entries))
	buf = append(buf, null, byte(mode))
	if f.HasMaxID {
		var id [4]byte
		wire.PutInt32(id[:], maxID)
		buf = append(buf, id[:]...)
	}
	for _, ef := range f.ExtraFixed {
		if ef.Bool {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	if f.OffsetPrologue > 0 {
		var word [4]byte
		wire.PutInt32(word[:], 0) // dictionary at the variable region's start
		buf = append(buf, word[:]...)
		for i := 1; i < f.OffsetPrologue; i++ {
			wire.PutInt32(word[:], -1)
			buf = append(buf, word[:]...)
		}
		if len(entries) == 0 {
			return buf
		}
	}
	buf = wire.AppendVarInt(buf, uint32(len(entries)))
	for _, e := range entries {
		switch f.KeyKind {
		case KeyInt:
			var idx [4]byte
			wire.PutInt32(idx[:], e.IntKey)
			buf = append(buf, idx[:]...)
		case KeyString:
			buf = wire.AppendVarString(buf, e.StringKey)
		}
		buf = append(buf, e.Body...)
	}
	return buf
}

// ParseEnvelope reads the dictionary envelope (presence bit, mode,
// optional maxId, extra fixed fields, and the entry count) without
// attempting to slice individual entry bodies — each asset type's
// per-entry length depends on its own schema, which lives outside this
// package. UpdateXxx is server-to-client only in this core, so
// full entry decoding is never exercised; ParseEnvelope exists for
// tests asserting the per-family baseline byte counts.
func (f Family) ParseEnvelope(body []byte) (mode UpdateType, maxID int32, count uint32, headerLen int, err error) {
	if len(body) < 2 {
		return 0, 0, 0, 0, fmt.Errorf("assetfamily %s: body too short", f.Name)
	}
	if body[0]&1 == 0 {
		return 0, 0, 0, 0, fmt.Errorf("assetfamily %s: dictionary-present bit clear", f.Name)
	}
	mode = UpdateType(body[1])
	pos := 2
	if f.HasMaxID {
		if pos+4 > len(body) {
			return 0, 0, 0, 0, fmt.Errorf("assetfamily %s: truncated maxId", f.Name)
		}
		maxID = wire.Int32(body[pos : pos+4])
		pos += 4
	}
	pos += len(f.ExtraFixed)
	if pos > len(body) {
		return 0, 0, 0, 0, fmt.Errorf("assetfamily %s: truncated extra fixed fields", f.Name)
	}
	if f.OffsetPrologue > 0 {
		pos += 4 * f.OffsetPrologue
		if pos > len(body) {
			return 0, 0, 0, 0, fmt.Errorf("assetfamily %s: truncated offset prologue", f.Name)
		}
		if pos == len(body) {
			return mode, maxID, 0, pos, nil
		}
	}
	n, width, err := wire.DecodeVarInt(body[pos:])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("assetfamily %s: count: %w", f.Name, err)
	}
	return mode, maxID, n, pos + width, nil
}
