package plugins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/store"
)

func TestQueryPluginForwardsCallsAndRoutesQueries(t *testing.T) {
	app := &recordingApp{}
	base := store.NewMapStore()
	require.NoError(t, base.Put([]byte("k"), []byte("v")))
	view := store.NewView(base)
	responder := query.NewResponder(view)

	p := NewQueryPlugin(responder, app)

	require.NoError(t, p.Call([]byte("anything")))
	require.Len(t, app.calls, 1)

	got, err := p.Query(query.RawKey([]byte("k")))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}
