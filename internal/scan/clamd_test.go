package scan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyAddrDisablesScanning(t *testing.T) {
	s := New("")

	require.IsType(t, Nop{}, s)
	assert.NoError(t, s.Scan(context.Background(), []byte("anything")))
}

func TestClamdScanner_UnreachableIsNotInfected(t *testing.T) {
	s := New("tcp://127.0.0.1:1")
	require.IsType(t, &ClamdScanner{}, s)

	err := s.Scan(context.Background(), []byte("hello"))

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInfected)
}
