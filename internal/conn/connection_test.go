package conn

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/zytale/zytale-server/internal/assets"
	"github.com/zytale/zytale-server/internal/compress"
	"github.com/zytale/zytale-server/internal/config"
	"github.com/zytale/zytale-server/internal/protocol"
	"github.com/zytale/zytale-server/internal/world"
)

func newTestConnection(t *testing.T, sessionSvc SessionServiceClient) (*Connection, *syncBuffer) {
	t.Helper()
	codec, err := compress.New()
	require.NoError(t, err)
	t.Cleanup(codec.Close)

	transport := &syncBuffer{}
	stream := NewStream(transport)
	t.Cleanup(func() { _ = stream.Close() })

	deps := Deps{
		Registry:   protocol.NewRegistry(),
		Assets:     assets.NewRegistry(),
		World:      world.New(nil),
		Config:     config.DefaultConfig(),
		Compress:   codec,
		SessionSvc: sessionSvc,
	}
	return New(1, stream, nil, deps), transport
}

func TestHandshakeSucceedsWithoutIdentityToken(t *testing.T) {
	c, _ := newTestConnection(t, nil)

	body, err := c.deps.Registry.Encode(protocol.IDConnect, &protocol.ConnectPacket{
		ProtocolCRC:   ProtocolCRC,
		ProtocolBuild: ProtocolBuild,
		Username:      "steve",
	})
	require.NoError(t, err)

	require.NoError(t, c.HandlePacket(context.Background(), protocol.IDConnect, body))
	require.Equal(t, PhaseSetup, c.Phase())
}

func TestHandshakeRejectsProtocolVersionMismatch(t *testing.T) {
	c, transport := newTestConnection(t, nil)

	body, err := c.deps.Registry.Encode(protocol.IDConnect, &protocol.ConnectPacket{
		ProtocolCRC:   ProtocolCRC,
		ProtocolBuild: ProtocolBuild - 1,
		Username:      "steve",
	})
	require.NoError(t, err)

	require.NoError(t, c.HandlePacket(context.Background(), protocol.IDConnect, body))
	require.Equal(t, PhaseDisconnecting, c.Phase())
	require.True(t, transport.Closed())
}

func TestHandshakeWithIdentityTokenExchangesGrant(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := NewMockSessionServiceClient(ctrl)
	mockSvc.EXPECT().
		ExchangeGrant(gomock.Any(), "grant-requested").
		Return("access-token-123", nil)

	c, _ := newTestConnection(t, mockSvc)
	c.deps.Config.RequireAuth = true

	connectBody, err := c.deps.Registry.Encode(protocol.IDConnect, &protocol.ConnectPacket{
		ProtocolCRC:    ProtocolCRC,
		ProtocolBuild:  ProtocolBuild,
		Username:       "steve",
		HasIdentityTok: true,
		IdentityToken:  "client-identity-token",
	})
	require.NoError(t, err)
	require.NoError(t, c.HandlePacket(context.Background(), protocol.IDConnect, connectBody))
	require.Equal(t, PhaseAwaitingAuth, c.Phase())

	authBody, err := c.deps.Registry.Encode(protocol.IDAuthToken, &protocol.TwoFieldPacket{A: "grant-requested", HasA: true})
	require.NoError(t, err)
	require.NoError(t, c.HandlePacket(context.Background(), protocol.IDAuthToken, authBody))
	require.Equal(t, PhaseSetup, c.Phase())
}

func TestPacketsDroppedOutsideExpectedPhase(t *testing.T) {
	c, _ := newTestConnection(t, nil)
	require.Equal(t, PhaseInitial, c.Phase())

	body, err := c.deps.Registry.Encode(protocol.IDRequestAsset, &protocol.RequestAssetsPacket{})
	require.NoError(t, err)

	// RequestAssets only applies in the setup phase; arriving in
	// initial is logged and dropped, not an error.
	require.NoError(t, c.HandlePacket(context.Background(), protocol.IDRequestAsset, body))
	require.Equal(t, PhaseInitial, c.Phase())
}
