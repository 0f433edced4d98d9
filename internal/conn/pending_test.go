package conn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPendingSendsLifecycleInOrder(t *testing.T) {
	p := NewPendingSends()
	var handles []uint64
	for i := 0; i < 5; i++ {
		handles = append(handles, p.Add([]byte{byte(i)}))
	}
	require.Equal(t, 5, p.Len())

	for _, h := range handles {
		require.True(t, p.Complete(h))
	}
	require.Equal(t, 0, p.Len())
}

// TestPendingSendsLifecycleOutOfOrder exercises completion in an order
// unrelated to Add order — the map-by-identity design is specifically
// meant not to care.
func TestPendingSendsLifecycleOutOfOrder(t *testing.T) {
	p := NewPendingSends()
	const n = 50
	handles := make([]uint64, n)
	for i := range handles {
		handles[i] = p.Add([]byte{byte(i)})
	}
	require.Equal(t, n, p.Len())

	order := rand.Perm(n)
	for _, i := range order {
		require.True(t, p.Complete(handles[i]))
	}
	require.Equal(t, 0, p.Len())
}

func TestPendingSendsCompleteUnknownHandle(t *testing.T) {
	p := NewPendingSends()
	require.False(t, p.Complete(999))
}

func TestPendingSendsReleaseAll(t *testing.T) {
	p := NewPendingSends()
	for i := 0; i < 10; i++ {
		p.Add([]byte{byte(i)})
	}
	require.Equal(t, 10, p.Len())
	p.ReleaseAll()
	require.Equal(t, 0, p.Len())
}
