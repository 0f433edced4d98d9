package conn

// Hand-written in the shape mockgen would generate for
// SessionServiceClient (no go:generate directive is run per this
// project's no-toolchain build constraint, so the mock is maintained by
// hand instead of regenerated) — a gomock.Call-recording double used
// only by this package's own tests to simulate the Session Service
// grant exchange without a real HTTPS round trip.

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockSessionServiceClient is a mock of the SessionServiceClient interface.
type MockSessionServiceClient struct {
	ctrl     *gomock.Controller
	recorder *MockSessionServiceClientMockRecorder
}

// MockSessionServiceClientMockRecorder records expected calls on MockSessionServiceClient.
type MockSessionServiceClientMockRecorder struct {
	mock *MockSessionServiceClient
}

// NewMockSessionServiceClient returns a new mock controlled by ctrl.
func NewMockSessionServiceClient(ctrl *gomock.Controller) *MockSessionServiceClient {
	mock := &MockSessionServiceClient{ctrl: ctrl}
	mock.recorder = &MockSessionServiceClientMockRecorder{mock: mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSessionServiceClient) EXPECT() *MockSessionServiceClientMockRecorder {
	return m.recorder
}

// ExchangeGrant mocks base method.
func (m *MockSessionServiceClient) ExchangeGrant(ctx context.Context, grantToken string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExchangeGrant", ctx, grantToken)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ExchangeGrant indicates an expected call of ExchangeGrant.
func (mr *MockSessionServiceClientMockRecorder) ExchangeGrant(ctx, grantToken interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExchangeGrant",
		reflect.TypeOf((*MockSessionServiceClient)(nil).ExchangeGrant), ctx, grantToken)
}
