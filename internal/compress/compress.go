// Package compress implements the outbound send pipeline's compression
// adapter: a generic block compressor applied to a packet's
// payload when its descriptor sets the Compressed flag, skippable via
// the ZYTALE_NO_COMPRESS debug override.
package compress

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// NoCompressEnv disables outbound compression for every packet
// regardless of its descriptor's Compressed flag — a debug escape
// hatch for inspecting raw payloads on the wire.
const NoCompressEnv = "ZYTALE_NO_COMPRESS"

// Codec wraps a zstd encoder/decoder pair. The encoder and decoder are
// each safe for concurrent use by multiple goroutines (per
// klauspost/compress/zstd's own contract), so one Codec is shared by
// every connection rather than allocated per packet.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder

	disabled bool
}

// New builds a Codec at the default compression level. Disabled
// reports the ZYTALE_NO_COMPRESS override at construction time so
// callers don't re-read the environment on every packet.
func New() (*Codec, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("compress: new encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("compress: new decoder: %w", err)
	}
	return &Codec{enc: enc, dec: dec, disabled: os.Getenv(NoCompressEnv) == "1"}, nil
}

// Disabled reports whether ZYTALE_NO_COMPRESS=1 was set when this Codec
// was constructed.
func (c *Codec) Disabled() bool { return c.disabled }

// EncodeIfFlagged compresses payload when both shouldCompress (the
// packet descriptor's Compressed flag) is true and compression has not
// been disabled by the debug override; otherwise it returns payload
// unchanged: when compression is off the original bytes go out
// verbatim.
func (c *Codec) EncodeIfFlagged(shouldCompress bool, payload []byte) []byte {
	if !shouldCompress || c.disabled {
		return payload
	}
	return c.enc.EncodeAll(payload, make([]byte, 0, len(payload)))
}

// DecodeIfFlagged reverses EncodeIfFlagged for an inbound payload whose
// descriptor is marked Compressed.
func (c *Codec) DecodeIfFlagged(wasCompressed bool, payload []byte) ([]byte, error) {
	if !wasCompressed || c.disabled {
		return payload, nil
	}
	out, err := c.dec.DecodeAll(payload, make([]byte, 0, len(payload)*2))
	if err != nil {
		return nil, fmt.Errorf("compress: decode: %w", err)
	}
	return out, nil
}

// Close releases the codec's encoder/decoder resources.
func (c *Codec) Close() {
	c.enc.Close()
	c.dec.Close()
}
