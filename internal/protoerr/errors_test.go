package protoerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapClassifiesWithErrorsIs(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Protocol, cause)

	require.ErrorIs(t, err, Protocol)
	require.NotErrorIs(t, err, Transport)
	require.ErrorIs(t, err, cause)
}

func TestWrapSurvivesFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("outer context: %w", Wrap(Content, errors.New("bad json")))
	require.ErrorIs(t, err, Content)
}

func TestWrapNilIsNil(t *testing.T) {
	require.NoError(t, Wrap(Resource, nil))
}
