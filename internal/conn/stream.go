package conn

import (
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"github.com/zytale/zytale-server/internal/wire"
)

// HexDumpEnv, when set to "1", logs the first 128 bytes of every
// outbound payload at warn level — a manual-debugging collaborator env
// var for when the join sequence's byte layout needs inspecting.
const HexDumpEnv = "ZYTALE_HEX_DUMP"

const hexDumpLimit = 128

// sendQueueDepth bounds how many encoded frames may be queued for the
// send loop before SendAsync starts reporting a full queue back to the
// caller — a connection that can't keep up with its own backlog is a
// transport error, not something to buffer without limit. The bound
// must clear the join sequence's worst-case burst (view radius 6:
// 169 chunks x 13 chunk packets plus progress and preamble, ~2400
// frames) even against a transport that hasn't drained a single one.
const sendQueueDepth = 4096

type sendJob struct {
	handle uint64
	buf    []byte
}

// Stream is the framing buffer and pending-send list for one
// connection's primary bidirectional stream. Writes
// to the underlying transport are serialized by a single internal
// goroutine reading off a queue, which is what lets SendAsync return
// immediately while still
// preserving "frames on a single stream are delivered in send order"
// — something a pool of per-send goroutines racing on Write
// cannot guarantee.
type Stream struct {
	transport io.Writer
	parser    wire.Parser
	pending   *PendingSends

	queue chan *sendJob
	done  chan struct{}

	// OnSendComplete, if set, is invoked from the send loop after each
	// frame's Write returns. It is
	// never called concurrently with itself, matching the transport's
	// own per-stream serialization guarantee.
	OnSendComplete func(handle uint64, err error)

	hexDump bool
	closed  int32
}

// NewStream wraps transport (the stream's underlying io.Writer — a
// *quic.Stream in production, anything else in tests).
func NewStream(transport io.Writer) *Stream {
	s := &Stream{
		transport: transport,
		pending:   NewPendingSends(),
		queue:     make(chan *sendJob, sendQueueDepth),
		done:      make(chan struct{}),
		hexDump:   os.Getenv(HexDumpEnv) == "1",
	}
	go s.runSendLoop()
	return s
}

func (s *Stream) runSendLoop() {
	defer close(s.done)
	for job := range s.queue {
		_, err := s.transport.Write(job.buf)
		s.pending.Complete(job.handle)
		if s.OnSendComplete != nil {
			s.OnSendComplete(job.handle, err)
		}
	}
}

// Feed appends newly received bytes to the framing parser.
func (s *Stream) Feed(b []byte) { s.parser.Feed(b) }

// NextFrame returns the next complete frame, or ok=false if more bytes
// are needed.
func (s *Stream) NextFrame() (wire.Frame, bool, error) { return s.parser.Next() }

// SendAsync encodes (id, payload) as a frame, registers its buffer with
// the pending-send tracker, and enqueues it for the send loop. It
// returns as soon as the frame is queued, not once it is written —
// completion (success or transport error) arrives via OnSendComplete.
func (s *Stream) SendAsync(id uint32, payload []byte) error {
	if atomic.LoadInt32(&s.closed) != 0 {
		return fmt.Errorf("conn: stream closed")
	}
	if s.hexDump {
		dump := payload
		if len(dump) > hexDumpLimit {
			dump = dump[:hexDumpLimit]
		}
		log.Printf("warn: conn: send id=%d len=%d payload=%s", id, len(payload), hex.EncodeToString(dump))
	}
	frame := wire.EncodeFrame(id, payload)
	handle := s.pending.Add(frame)
	select {
	case s.queue <- &sendJob{handle: handle, buf: frame}:
		return nil
	default:
		s.pending.Complete(handle)
		return fmt.Errorf("conn: send queue full (%d frames pending)", sendQueueDepth)
	}
}

// PendingCount reports how many sends are currently in flight, for
// tests asserting the pending-send lifetime property.
func (s *Stream) PendingCount() int { return s.pending.Len() }

// Close stops accepting new sends, drains the queue, and synchronously
// releases any buffers that never got a completion callback. Shutdown
// is the only point at which still-pending send buffers are released.
func (s *Stream) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}
	close(s.queue)
	<-s.done
	s.pending.ReleaseAll()
	if closer, ok := s.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
