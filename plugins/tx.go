package plugins

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/encoding"
)

// SigType tags which signature scheme a SignedTx was produced with,
// matching §4.3 item 4's four accepted schemes.
type SigType uint8

const (
	SigTypeNative    SigType = iota // secp256k1 (or ed25519) over sha256(chain_id || call_bytes)
	SigTypeADR36                    // sign-arbitrary canonical JSON envelope
	SigTypeSDKAmino                 // Cosmos-SDK amino sign-bytes
	SigTypeEthereum                 // personal_sign over keccak256(eth-prefixed payload)
)

// SignedTx is the uniform native wire frame every transaction is reduced to
// by the time it reaches the signer plugin (§6's "native bincode-style
// binary blob"): `{ sigtype, pubkey?, signature?, call_bytes }`.
type SignedTx struct {
	SigType   SigType
	PubKey    []byte
	Signature []byte
	CallBytes []byte // a NonceEnvelope, wire-encoded
}

// Bytes encodes a SignedTx to its wire form: a one-byte sigtype tag
// followed by three length-prefixed fields, in the varint-length-prefix
// style used throughout the wire format.
func (tx SignedTx) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(tx.SigType))
	encoding.WriteBytes(&buf, tx.PubKey)
	encoding.WriteBytes(&buf, tx.Signature)
	encoding.WriteBytes(&buf, tx.CallBytes)
	return buf.Bytes()
}

// DecodeSignedTx parses a SignedTx from its wire form.
func DecodeSignedTx(b []byte) (SignedTx, error) {
	sigType, b, err := encoding.ReadU8(b)
	if err != nil {
		return SignedTx{}, err
	}
	pubkey, b, err := encoding.ReadBytes(b)
	if err != nil {
		return SignedTx{}, err
	}
	sig, b, err := encoding.ReadBytes(b)
	if err != nil {
		return SignedTx{}, err
	}
	callBytes, _, err := encoding.ReadBytes(b)
	if err != nil {
		return SignedTx{}, err
	}
	return SignedTx{SigType: SigType(sigType), PubKey: pubkey, Signature: sig, CallBytes: callBytes}, nil
}

// AminoFee mirrors the `fee` object in a Cosmos-SDK amino JSON transaction.
type AminoFee struct {
	Amount []AminoCoin `json:"amount"`
	Gas    string      `json:"gas"`
}

// AminoCoin mirrors one entry of an amino fee's coin list.
type AminoCoin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// AminoMsg is one entry of an amino transaction's msg list; Value carries
// the application call bytes, which encoding/json renders as a base64
// string like any other []byte field.
type AminoMsg struct {
	Type  string `json:"type"`
	Value []byte `json:"value"`
}

// AminoSignature is one entry of an amino transaction's signatures list.
type AminoSignature struct {
	PubKey    []byte `json:"pub_key"`
	Signature []byte `json:"signature"`
	SigType   string `json:"sig_type"` // "sdk" or "eth"
}

// AminoTx is the Cosmos-SDK-compatible wire shape accepted by the
// sdk-compat layer (§6's "Cosmos-SDK amino JSON transactions").
type AminoTx struct {
	Msgs       []AminoMsg       `json:"msg"`
	Fee        AminoFee         `json:"fee"`
	Memo       string           `json:"memo"`
	Signatures []AminoSignature `json:"signatures"`
}

// ParseAminoTx attempts to decode raw as an amino JSON transaction. It
// returns ok=false (not an error) when raw does not look like JSON at all,
// so the sdk-compat layer can fall through to the native frame path.
func ParseAminoTx(raw []byte) (tx AminoTx, ok bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return AminoTx{}, false, nil
	}
	if err := json.Unmarshal(trimmed, &tx); err != nil {
		return AminoTx{}, false, ErrSdkCompatDecode
	}
	return tx, true, nil
}

// totalFee sums an amino fee's coin list into a single coins.Coin, requiring
// every entry share the same denom (a mixed-denom fee fails with
// ErrFeeSymbolMismatch, which the sdk-compat layer returns as the call's
// error).
func (tx AminoTx) totalFee() (coins.Coin, error) {
	var total coins.Coin
	for i, c := range tx.Fee.Amount {
		amt, err := parseAminoAmount(c.Amount)
		if err != nil {
			return coins.Coin{}, err
		}
		if i == 0 {
			total.Symbol = coins.Symbol(c.Denom)
			total.Amount = amt
			continue
		}
		if coins.Symbol(c.Denom) != total.Symbol {
			return coins.Coin{}, ErrFeeSymbolMismatch
		}
		sum, err := total.Amount.Add(amt)
		if err != nil {
			return coins.Coin{}, err
		}
		total.Amount = sum
	}
	return total, nil
}

func parseAminoAmount(s string) (coins.Amount, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrSdkCompatDecode
	}
	return coins.NewAmount(n), nil
}
