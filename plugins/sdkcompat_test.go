package plugins

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/statesmith/corestate/context"
)

func TestSdkCompatPassesThroughNativeFrames(t *testing.T) {
	app := &recordingApp{}
	p := NewSdkCompatPlugin(app)

	nativeFrame := SignedTx{SigType: SigTypeNative, CallBytes: []byte("native")}.Bytes()
	require.NoError(t, p.Call(nativeFrame))
	require.Len(t, app.calls, 1)
	require.Equal(t, nativeFrame, app.calls[0])
}

func TestSdkCompatNormalizesAminoTx(t *testing.T) {
	app := &recordingApp{}
	p := NewSdkCompatPlugin(app)

	aminoTx := AminoTx{
		Msgs: []AminoMsg{{Type: "cosmos-sdk/MsgSend", Value: []byte("send 5 to bob")}},
		Fee: AminoFee{
			Amount: []AminoCoin{{Denom: "ucore", Amount: "15000"}},
			Gas:    "200000",
		},
		Signatures: []AminoSignature{
			{PubKey: []byte("pubkey-bytes"), Signature: []byte("sig-bytes"), SigType: "sdk"},
		},
	}
	raw, err := json.Marshal(aminoTx)
	require.NoError(t, err)

	require.NoError(t, p.Call(raw))
	require.Len(t, app.calls, 1)

	tx, err := DecodeSignedTx(app.calls[0])
	require.NoError(t, err)
	require.Equal(t, SigTypeSDKAmino, tx.SigType)
	require.Equal(t, []byte("send 5 to bob"), tx.CallBytes)
	require.Equal(t, []byte("pubkey-bytes"), tx.PubKey)
}

func TestSdkCompatInstallsPaidFromFee(t *testing.T) {
	capturingApp := &paidCapturingApp{}
	p := NewSdkCompatPlugin(capturingApp)

	aminoTx := AminoTx{
		Msgs: []AminoMsg{{Type: "x", Value: []byte("call")}},
		Fee: AminoFee{
			Amount: []AminoCoin{{Denom: "ucore", Amount: "10000"}},
		},
		Signatures: []AminoSignature{
			{PubKey: []byte("pk"), Signature: []byte("sig"), SigType: "eth"},
		},
	}
	raw, err := json.Marshal(aminoTx)
	require.NoError(t, err)

	require.NoError(t, p.Call(raw))
	require.NotNil(t, capturingApp.paid)
	require.Equal(t, "ucore", capturingApp.paid.Symbol)
	require.Equal(t, uint64(10000), capturingApp.paid.Amount)

	// The Paid context must not leak past the call that installed it.
	_, ok := context.CurrentPaid()
	require.False(t, ok)
}

func TestSdkCompatRejectsMissingSignatures(t *testing.T) {
	app := &recordingApp{}
	p := NewSdkCompatPlugin(app)

	aminoTx := AminoTx{Msgs: []AminoMsg{{Type: "x", Value: []byte("call")}}}
	raw, err := json.Marshal(aminoTx)
	require.NoError(t, err)

	err = p.Call(raw)
	require.ErrorIs(t, err, ErrSdkCompatDecode)
	require.Empty(t, app.calls)
}

type paidCapturingApp struct {
	recordingApp
	paid *context.Paid
}

func (a *paidCapturingApp) Call(raw []byte) error {
	if paid, ok := context.CurrentPaid(); ok {
		captured := *paid
		a.paid = &captured
	}
	return a.recordingApp.Call(raw)
}
