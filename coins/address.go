package coins

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // matches the native address scheme
	"golang.org/x/crypto/sha3"
)

// AddressSize is the length in bytes of every corestate address, regardless
// of which signature scheme derived it.
const AddressSize = 20

// Address identifies an account. Two derivations are in use, matching the
// two signature schemes the signer plugin accepts: native (ripemd160 over
// sha256 of the compressed pubkey) and Ethereum (last 20 bytes of keccak256
// over the uncompressed pubkey, dropping its leading format byte).
type Address [AddressSize]byte

// String renders the address as lowercase hex.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the zero value.
func (a Address) IsZero() bool {
	return a == Address{}
}

// NativeAddress derives an address from a compressed secp256k1 or ed25519
// public key using ripemd160(sha256(pubkey)), the scheme used by native
// (non-Ethereum) signed calls.
func NativeAddress(pubkey []byte) Address {
	shaSum := sha256.Sum256(pubkey)
	hasher := ripemd160.New()
	hasher.Write(shaSum[:])
	digest := hasher.Sum(nil)

	var out Address
	copy(out[:], digest[:AddressSize])
	return out
}

// EthereumAddress derives an address the way an Ethereum wallet would: the
// last 20 bytes of keccak256 over the uncompressed public key with its
// leading 0x04 format byte stripped.
func EthereumAddress(uncompressedPubkey []byte) Address {
	body := uncompressedPubkey
	if len(body) == 65 && body[0] == 0x04 {
		body = body[1:]
	}
	digest := sha3.NewLegacyKeccak256()
	digest.Write(body)
	sum := digest.Sum(nil)

	var out Address
	copy(out[:], sum[len(sum)-AddressSize:])
	return out
}

// AddressFromHex parses a hex-encoded address.
func AddressFromHex(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != AddressSize {
		return Address{}, ErrInvalidAddress
	}
	var out Address
	copy(out[:], b)
	return out, nil
}
