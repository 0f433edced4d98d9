package conn

import "context"

// SessionServiceClient is the collaborator seam for the external
// Session Service HTTPS client. The awaiting_auth phase exchanges
// an inbound identity/authorization grant token for a server access
// token through this interface; production wires it to the real HTTPS
// client, tests substitute a double (see mocks_test.go).
type SessionServiceClient interface {
	// ExchangeGrant trades a client-presented grant token for a server
	// access token so the connection can send ServerAuthToken.
	ExchangeGrant(ctx context.Context, grantToken string) (accessToken string, err error)
}
