package plugins

import (
	"crypto/sha256"
	"strconv"

	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/query"
)

// SignerPlugin verifies a SignedTx's signature against one of the four
// accepted schemes, derives the signer's address, and installs it as the
// ambient Signer context for the inner layers (§4.3 item 4). Unsigned
// calls (an empty Signature) pass through with no Signer context installed.
type SignerPlugin struct {
	inner App
}

// NewSignerPlugin wraps inner.
func NewSignerPlugin(inner App) *SignerPlugin {
	return &SignerPlugin{inner: inner}
}

// Call verifies tx and, on success, installs the Signer context before
// forwarding the inner nonce envelope bytes.
func (p *SignerPlugin) Call(raw []byte) error {
	tx, err := DecodeSignedTx(raw)
	if err != nil {
		return err
	}

	if len(tx.Signature) == 0 && len(tx.PubKey) == 0 {
		return p.inner.Call(tx.CallBytes)
	}
	if len(tx.Signature) == 0 {
		return ErrSignerMissing
	}

	chainID, _ := context.CurrentChainID()
	addr, err := verifySignature(tx, string(chainID))
	if err != nil {
		return err
	}

	pop := context.SignerStack.Push(context.Signer{Address: addr})
	defer pop()
	return p.inner.Call(tx.CallBytes)
}

// Query delegates unchanged.
func (p *SignerPlugin) Query(q query.Query) ([]byte, error) {
	return p.inner.Query(q)
}

// Inner returns the wrapped layer.
func (p *SignerPlugin) Inner() App { return p.inner }

var _ InnerApp = (*SignerPlugin)(nil)

// signedDigest returns the bytes the signature is computed over for the
// native scheme (secp256k1 and its ed25519 fallback): sha256(chain_id ||
// call_bytes). Binding the
// chain id into the digest is what makes the chain-id plugin's context
// meaningful to verification (§4.3 items 2 and 4).
func signedDigest(chainID string, callBytes []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte(chainID))
	h.Write(callBytes)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func verifySignature(tx SignedTx, chainID string) (coins.Address, error) {
	switch tx.SigType {
	case SigTypeNative:
		return verifyNative(tx, chainID)
	case SigTypeADR36:
		return verifyADR36(tx, chainID)
	case SigTypeSDKAmino:
		return verifySDKAmino(tx, chainID)
	case SigTypeEthereum:
		return verifyEthereum(tx, chainID)
	default:
		return coins.Address{}, ErrSignerInvalid
	}
}

func verifyNative(tx SignedTx, chainID string) (coins.Address, error) {
	digest := signedDigest(chainID, tx.CallBytes)
	pub, err := secp256k1.ParsePubKey(tx.PubKey)
	if err != nil {
		return ed25519Fallback(tx, chainID)
	}
	sig, err := ecdsa.ParseDERSignature(tx.Signature)
	if err != nil {
		return coins.Address{}, ErrSignerInvalid
	}
	if !sig.Verify(digest[:], pub) {
		return coins.Address{}, ErrSignerInvalid
	}
	return coins.NativeAddress(tx.PubKey), nil
}

// ed25519Fallback handles validator-key-signed calls (e.g. operator
// transactions), which use cometbft's ed25519 rather than secp256k1.
func ed25519Fallback(tx SignedTx, chainID string) (coins.Address, error) {
	if len(tx.PubKey) != ed25519.PubKeySize {
		return coins.Address{}, ErrSignerInvalid
	}
	digest := signedDigest(chainID, tx.CallBytes)
	pub := ed25519.PubKey(tx.PubKey)
	if !pub.VerifySignature(digest[:], tx.Signature) {
		return coins.Address{}, ErrSignerInvalid
	}
	return coins.NativeAddress(tx.PubKey), nil
}

// adr36Envelope is the canonical JSON structure an ADR-36 "sign arbitrary
// data" signature is computed over.
type adr36Envelope struct {
	ChainID string `json:"chain_id"`
	Data    []byte `json:"data"`
}

func verifyADR36(tx SignedTx, chainID string) (coins.Address, error) {
	envelope := adr36Envelope{ChainID: chainID, Data: tx.CallBytes}
	payload, err := marshalCanonicalJSON(envelope)
	if err != nil {
		return coins.Address{}, ErrSignerInvalid
	}
	digest := sha256.Sum256(payload)
	pub, err := secp256k1.ParsePubKey(tx.PubKey)
	if err != nil {
		return coins.Address{}, ErrSignerInvalid
	}
	sig, err := ecdsa.ParseDERSignature(tx.Signature)
	if err != nil {
		return coins.Address{}, ErrSignerInvalid
	}
	if !sig.Verify(digest[:], pub) {
		return coins.Address{}, ErrSignerInvalid
	}
	return coins.NativeAddress(tx.PubKey), nil
}

// sdkSignDoc mirrors the Cosmos-SDK's legacy amino StdSignDoc, the
// canonical bytes an "sdk"-tagged signature is computed over.
type sdkSignDoc struct {
	ChainID string `json:"chain_id"`
	Msgs    []byte `json:"msgs"`
}

func verifySDKAmino(tx SignedTx, chainID string) (coins.Address, error) {
	doc := sdkSignDoc{ChainID: chainID, Msgs: tx.CallBytes}
	payload, err := marshalCanonicalJSON(doc)
	if err != nil {
		return coins.Address{}, ErrSignerInvalid
	}
	digest := sha256.Sum256(payload)
	pub, err := secp256k1.ParsePubKey(tx.PubKey)
	if err != nil {
		return coins.Address{}, ErrSignerInvalid
	}
	sig, err := ecdsa.ParseDERSignature(tx.Signature)
	if err != nil {
		return coins.Address{}, ErrSignerInvalid
	}
	if !sig.Verify(digest[:], pub) {
		return coins.Address{}, ErrSignerInvalid
	}
	return coins.NativeAddress(tx.PubKey), nil
}

// ethPersonalSignPrefix is Ethereum's standard personal_sign envelope
// prefix, applied before hashing so a signed call can never collide with a
// signed plain-Ethereum-transaction digest.
const ethPersonalSignPrefix = "\x19Ethereum Signed Message:\n"

func verifyEthereum(tx SignedTx, chainID string) (coins.Address, error) {
	payload := ethPrefixedPayload(chainID, tx.CallBytes)
	digest := sha3.NewLegacyKeccak256()
	digest.Write(payload)
	hash := digest.Sum(nil)

	pub, err := secp256k1.ParsePubKey(tx.PubKey)
	if err != nil {
		return coins.Address{}, ErrSignerInvalid
	}
	sig, err := ecdsa.ParseDERSignature(tx.Signature)
	if err != nil {
		return coins.Address{}, ErrSignerInvalid
	}
	if !sig.Verify(hash, pub) {
		return coins.Address{}, ErrSignerInvalid
	}
	return coins.EthereumAddress(pub.SerializeUncompressed()), nil
}

func ethPrefixedPayload(chainID string, callBytes []byte) []byte {
	body := append([]byte(chainID), callBytes...)
	prefix := []byte(ethPersonalSignPrefix + strconv.Itoa(len(body)))
	return append(prefix, body...)
}
