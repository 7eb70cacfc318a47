package plugins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/statesmith/corestate/context"
)

func TestChainIDPluginInstallsAndTearsDownContext(t *testing.T) {
	var sawChainID context.ChainID
	var sawOK bool
	inner := &chainIDCapturingApp{onCall: func() {
		sawChainID, sawOK = context.CurrentChainID()
	}}

	p := NewChainIDPlugin("my-chain", inner)
	require.NoError(t, p.Call([]byte("anything")))

	require.True(t, sawOK)
	require.Equal(t, context.ChainID("my-chain"), sawChainID)

	_, ok := context.CurrentChainID()
	require.False(t, ok)
}

func TestChainIDPluginTearsDownOnInnerError(t *testing.T) {
	inner := &chainIDCapturingApp{err: ErrSignerInvalid}
	p := NewChainIDPlugin("my-chain", inner)

	err := p.Call([]byte("x"))
	require.ErrorIs(t, err, ErrSignerInvalid)

	_, ok := context.CurrentChainID()
	require.False(t, ok)
}

type chainIDCapturingApp struct {
	recordingApp
	onCall func()
	err    error
}

func (a *chainIDCapturingApp) Call(raw []byte) error {
	if a.onCall != nil {
		a.onCall()
	}
	if a.err != nil {
		return a.err
	}
	return a.recordingApp.Call(raw)
}
