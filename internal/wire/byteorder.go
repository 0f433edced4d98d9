package wire

import (
	"encoding/binary"
	"math"
)

// Every multi-byte scalar on the wire is little-endian, with one
// exception (a peer port field inside an address structure used by
// the external Session Service exchange) which is network-byte-order.
// Centralizing both here keeps endianness regressions out of the
// packet codecs.

func PutUint16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func Uint16(b []byte) uint16       { return binary.LittleEndian.Uint16(b) }

func PutUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func Uint32(b []byte) uint32       { return binary.LittleEndian.Uint32(b) }

func PutInt32(b []byte, v int32) { binary.LittleEndian.PutUint32(b, uint32(v)) }
func Int32(b []byte) int32       { return int32(binary.LittleEndian.Uint32(b)) }

func PutUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func Uint64(b []byte) uint64       { return binary.LittleEndian.Uint64(b) }

func PutFloat32(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) }
func Float32(b []byte) float32       { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }

// PutPortBE and PortBE are the one big-endian exception: a peer's UDP/TCP
// port inside an address structure exchanged with the (out-of-scope)
// Session Service collaborator.
func PutPortBE(b []byte, port uint16) { binary.BigEndian.PutUint16(b, port) }
func PortBE(b []byte) uint16          { return binary.BigEndian.Uint16(b) }
