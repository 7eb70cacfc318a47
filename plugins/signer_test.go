package plugins

import (
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/context"
)

func genSecp256k1(t *testing.T) *secp256k1.PrivateKey {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return priv
}

// withChainID installs id as the ambient chain id for the duration of fn,
// mirroring what ChainIDPlugin does in the real stack.
func withChainID(t *testing.T, id string, fn func() error) error {
	t.Helper()
	pop := context.ChainIDStack.Push(context.ChainID(id))
	defer pop()
	return fn()
}

func currentSignerForTest() (coins.Address, bool) {
	signer, ok := context.CurrentSigner()
	if !ok {
		return coins.Address{}, false
	}
	return signer.Address, true
}

func TestSignerPluginNativeSecp256k1(t *testing.T) {
	app := &recordingApp{}
	priv := genSecp256k1(t)

	callBytes := []byte("call-payload")
	digest := signedDigest("chain-a", callBytes)
	sig := ecdsa.Sign(priv, digest[:])

	tx := SignedTx{
		SigType:   SigTypeNative,
		PubKey:    priv.PubKey().SerializeCompressed(),
		Signature: sig.Serialize(),
		CallBytes: callBytes,
	}

	inner := &signerCapturingApp{recordingApp: app}
	p := NewSignerPlugin(inner)
	err := withChainID(t, "chain-a", func() error { return p.Call(tx.Bytes()) })
	require.NoError(t, err)
	require.Equal(t, coins.NativeAddress(priv.PubKey().SerializeCompressed()), inner.addr)
}

func TestSignerPluginRejectsTamperedPayload(t *testing.T) {
	app := &recordingApp{}
	p := NewSignerPlugin(app)
	priv := genSecp256k1(t)

	digest := signedDigest("chain-a", []byte("original"))
	sig := ecdsa.Sign(priv, digest[:])

	tx := SignedTx{
		SigType:   SigTypeNative,
		PubKey:    priv.PubKey().SerializeCompressed(),
		Signature: sig.Serialize(),
		CallBytes: []byte("tampered"),
	}

	err := withChainID(t, "chain-a", func() error { return p.Call(tx.Bytes()) })
	require.ErrorIs(t, err, ErrSignerInvalid)
}

func TestSignerPluginADR36(t *testing.T) {
	app := &recordingApp{}
	inner := &signerCapturingApp{recordingApp: app}
	p := NewSignerPlugin(inner)
	priv := genSecp256k1(t)

	callBytes := []byte("sign-this-arbitrary-data")
	envelope := adr36Envelope{ChainID: "chain-a", Data: callBytes}
	payload, err := marshalCanonicalJSON(envelope)
	require.NoError(t, err)
	digest := sha256.Sum256(payload)
	sig := ecdsa.Sign(priv, digest[:])

	tx := SignedTx{
		SigType:   SigTypeADR36,
		PubKey:    priv.PubKey().SerializeCompressed(),
		Signature: sig.Serialize(),
		CallBytes: callBytes,
	}

	err = withChainID(t, "chain-a", func() error { return p.Call(tx.Bytes()) })
	require.NoError(t, err)
	require.Equal(t, coins.NativeAddress(priv.PubKey().SerializeCompressed()), inner.addr)
}

func TestSignerPluginEthereum(t *testing.T) {
	app := &recordingApp{}
	inner := &signerCapturingApp{recordingApp: app}
	p := NewSignerPlugin(inner)
	priv := genSecp256k1(t)

	callBytes := []byte("eth-call-payload")
	payload := ethPrefixedPayload("chain-a", callBytes)
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(payload)
	hash := hasher.Sum(nil)
	sig := ecdsa.Sign(priv, hash)

	tx := SignedTx{
		SigType:   SigTypeEthereum,
		PubKey:    priv.PubKey().SerializeCompressed(),
		Signature: sig.Serialize(),
		CallBytes: callBytes,
	}

	err := withChainID(t, "chain-a", func() error { return p.Call(tx.Bytes()) })
	require.NoError(t, err)
	require.Equal(t, coins.EthereumAddress(priv.PubKey().SerializeUncompressed()), inner.addr)
}

func TestSignerPluginUnsignedPassesThrough(t *testing.T) {
	app := &recordingApp{}
	p := NewSignerPlugin(app)

	tx := SignedTx{CallBytes: []byte("no-sig")}
	require.NoError(t, p.Call(tx.Bytes()))
	require.Len(t, app.calls, 1)
}

func TestSignerPluginSignatureWithoutPubKeyIsMissing(t *testing.T) {
	app := &recordingApp{}
	p := NewSignerPlugin(app)

	tx := SignedTx{CallBytes: []byte("x"), Signature: []byte("sig-no-key")}
	err := p.Call(tx.Bytes())
	require.ErrorIs(t, err, ErrSignerMissing)
}

type signerCapturingApp struct {
	*recordingApp
	addr coins.Address
}

func (a *signerCapturingApp) Call(raw []byte) error {
	if signer, ok := currentSignerForTest(); ok {
		a.addr = signer
	}
	return a.recordingApp.Call(raw)
}
