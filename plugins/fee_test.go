package plugins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/context"
)

func TestFeePluginBurnsMinFeeAndForwards(t *testing.T) {
	app := &recordingApp{}
	p := NewFeePlugin(coins.Symbol("ucore"), app)

	paid := &context.Paid{Symbol: "ucore", Amount: MinFee + 500}
	pop := context.PaidStack.Push(paid)
	defer pop()

	require.NoError(t, p.Call([]byte("call")))
	require.Len(t, app.calls, 1)
	require.Equal(t, uint64(500), paid.Amount)
}

func TestFeePluginRejectsInsufficientFee(t *testing.T) {
	app := &recordingApp{}
	p := NewFeePlugin(coins.Symbol("ucore"), app)

	pop := context.PaidStack.Push(&context.Paid{Symbol: "ucore", Amount: MinFee - 1})
	defer pop()

	err := p.Call([]byte("call"))
	require.ErrorIs(t, err, ErrFeeInsufficient)
	require.Empty(t, app.calls)
}

func TestFeePluginRejectsWrongSymbol(t *testing.T) {
	app := &recordingApp{}
	p := NewFeePlugin(coins.Symbol("ucore"), app)

	pop := context.PaidStack.Push(&context.Paid{Symbol: "other", Amount: MinFee})
	defer pop()

	err := p.Call([]byte("call"))
	require.ErrorIs(t, err, ErrFeeSymbolMismatch)
	require.Empty(t, app.calls)
}

func TestFeePluginForwardsUnburnedWhenNoPaidContext(t *testing.T) {
	app := &recordingApp{}
	p := NewFeePlugin(coins.Symbol("ucore"), app)

	require.NoError(t, p.Call([]byte("call")))
	require.Len(t, app.calls, 1)
	require.Equal(t, []byte("call"), app.calls[0])
}
