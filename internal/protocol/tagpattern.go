package protocol

import (
	"fmt"

	"github.com/zytale/zytale-server/internal/wire"
)

// TagPattern is a recursive asset record: a type byte, a
// tag index, and two optional pointers (an operand list and a negated
// child pattern). Trees are arbitrary depth.
//
// TagPattern's own offset table is relative to
// the OUTER packet's variable-block origin, not its own — callers
// serializing a TagPattern nested inside another packet must pass that
// outer origin explicitly.
type TagPattern struct {
	Type     byte
	TagIndex int32

	Operands    []TagPattern
	HasOperands bool

	Negated    *TagPattern
	HasNegated bool
}

const (
	tagPatternBitOperands = 0
	tagPatternBitNegated  = 1
	tagPatternHeaderSize  = 1 + 1 + 4 + 4 + 4 // null-bits + type + tag_index + 2 offsets
)

// EncodeTagPattern appends pat's encoding to dst and returns the
// updated slice. outerOrigin is the byte offset of the enclosing
// packet's variable block within dst; offsets written into pat's own
// offset table are measured from there, not from pat's own header.
func EncodeTagPattern(dst []byte, pat *TagPattern, outerOrigin int) []byte {
	var null NullBits
	null.Set(tagPatternBitOperands, pat.HasOperands)
	null.Set(tagPatternBitNegated, pat.HasNegated)

	dst = append(dst, byte(null), pat.Type)
	var idx [4]byte
	wire.PutInt32(idx[:], pat.TagIndex)
	dst = append(dst, idx[:]...)
	offsetTableStart := len(dst)
	dst = append(dst, 0, 0, 0, 0, 0, 0, 0, 0) // reserved for 2 int32 offsets, patched below

	operandsOff := int32(offsetAbsent)
	if pat.HasOperands {
		operandsOff = int32(len(dst) - outerOrigin)
		var count [4]byte
		wire.PutInt32(count[:], int32(len(pat.Operands)))
		dst = append(dst, count[:]...)
		for i := range pat.Operands {
			dst = EncodeTagPattern(dst, &pat.Operands[i], outerOrigin)
		}
	}
	negatedOff := int32(offsetAbsent)
	if pat.HasNegated {
		negatedOff = int32(len(dst) - outerOrigin)
		dst = EncodeTagPattern(dst, pat.Negated, outerOrigin)
	}

	wire.PutInt32(dst[offsetTableStart:offsetTableStart+4], operandsOff)
	wire.PutInt32(dst[offsetTableStart+4:offsetTableStart+8], negatedOff)
	return dst
}

// DecodeTagPattern reads a TagPattern whose offset table is relative to
// outerOrigin within buf, starting at byte offset pos, and returns the
// decoded pattern. Operand siblings are laid out back to back, so the
// operand loop steps to the next sibling by tagPatternEncodedSize of the
// one just decoded (its header plus all of its nested bodies).
func DecodeTagPattern(buf []byte, pos int, outerOrigin int) (*TagPattern, error) {
	if pos+tagPatternHeaderSize > len(buf) {
		return nil, fmt.Errorf("tag_pattern: truncated header at %d", pos)
	}
	null := NullBits(buf[pos])
	pat := &TagPattern{Type: buf[pos+1], TagIndex: wire.Int32(buf[pos+2 : pos+6])}
	operandsOff := wire.Int32(buf[pos+6 : pos+10])
	negatedOff := wire.Int32(buf[pos+10 : pos+14])

	if null.Has(tagPatternBitOperands) && operandsOff != offsetAbsent {
		start := outerOrigin + int(operandsOff)
		if start+4 > len(buf) {
			return nil, fmt.Errorf("tag_pattern: truncated operand count at %d", start)
		}
		count := wire.Int32(buf[start : start+4])
		pat.HasOperands = true
		pat.Operands = make([]TagPattern, 0, count)
		cursor := start + 4
		for i := int32(0); i < count; i++ {
			child, err := DecodeTagPattern(buf, cursor, outerOrigin)
			if err != nil {
				return nil, fmt.Errorf("tag_pattern: operand %d: %w", i, err)
			}
			pat.Operands = append(pat.Operands, *child)
			cursor += tagPatternEncodedSize(child)
		}
	}
	if null.Has(tagPatternBitNegated) && negatedOff != offsetAbsent {
		start := outerOrigin + int(negatedOff)
		child, err := DecodeTagPattern(buf, start, outerOrigin)
		if err != nil {
			return nil, fmt.Errorf("tag_pattern: negated: %w", err)
		}
		pat.HasNegated = true
		pat.Negated = child
	}
	return pat, nil
}

// tagPatternEncodedSize returns the total byte length (header plus all
// nested bodies) of pat's encoding, needed to step over a sibling in an
// operand list during decode.
func tagPatternEncodedSize(pat *TagPattern) int {
	n := tagPatternHeaderSize
	if pat.HasOperands {
		n += 4
		for i := range pat.Operands {
			n += tagPatternEncodedSize(&pat.Operands[i])
		}
	}
	if pat.HasNegated {
		n += tagPatternEncodedSize(pat.Negated)
	}
	return n
}
