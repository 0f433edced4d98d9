package conn

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zytale/zytale-server/internal/wire"
)

// syncBuffer is a concurrency-safe io.Writer/io.Closer double standing
// in for a *quic.Stream in these tests.
type syncBuffer struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

func (b *syncBuffer) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func TestStreamSendAsyncPreservesOrder(t *testing.T) {
	transport := &syncBuffer{}
	s := NewStream(transport)
	defer s.Close()

	var completions []uint64
	var mu sync.Mutex
	done := make(chan struct{})
	var count int
	s.OnSendComplete = func(handle uint64, err error) {
		require.NoError(t, err)
		mu.Lock()
		completions = append(completions, handle)
		count++
		if count == 20 {
			close(done)
		}
		mu.Unlock()
	}

	for i := uint32(0); i < 20; i++ {
		require.NoError(t, s.SendAsync(i, []byte{byte(i)}))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sends to complete")
	}

	// Frames must appear on the wire in send order even though
	// completions are delivered from a single background goroutine.
	var parser wire.Parser
	parser.Feed(transport.Bytes())
	for i := uint32(0); i < 20; i++ {
		frame, ok, err := parser.Next()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, i, frame.ID)
	}
}

func TestStreamCloseReleasesPending(t *testing.T) {
	transport := &syncBuffer{}
	s := NewStream(transport)

	require.NoError(t, s.Close())
	require.Equal(t, 0, s.PendingCount())
	require.True(t, transport.Closed())

	err := s.SendAsync(0, []byte("x"))
	require.Error(t, err)
}

func TestStreamCloseIsIdempotent(t *testing.T) {
	s := NewStream(&syncBuffer{})
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
