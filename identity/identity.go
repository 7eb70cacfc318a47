// Package identity manages the operator's local signing key: an ed25519
// keypair persisted to disk as an AES-256-GCM-encrypted file, decrypted on
// demand with an operator-supplied password. It backs the CLI's tx-signing
// surface and the driver's validator key.
package identity

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/cometbft/cometbft/crypto/tmhash"

	"github.com/statesmith/corestate/coins"
)

// SecretProvider describes a provider that returns an AES-256 secret used
// to encrypt an ed25519 private key.
type SecretProvider interface {
	// Bytes returns the raw (still-encrypted, base64-decoded) bytes backing
	// this provider.
	Bytes() ([]byte, error)

	// Open decrypts and returns the private key (64 bytes).
	Open() ([]byte, error)

	// Secret returns the 32-byte AES secret derived from the password and
	// this file's stored salt.
	Secret() ([]byte, error)

	// PrivKey returns the ed25519 private key.
	PrivKey() (ed25519.PrivKey, error)

	// PubKey returns the ed25519 public key.
	PubKey() (crypto.PubKey, error)
}

// File is a password-protected identity file: a base64-encoded AES-256-GCM
// ciphertext prefixed with an 8-byte salt. The file must already exist to
// construct one; use MustGenerate to create a new one.
type File struct {
	Path string
	pw   []byte
}

var _ SecretProvider = (*File)(nil)

// New binds a File to an existing path and password.
func New(path string, pw []byte) *File {
	if len(pw) == 0 {
		panic("password must not be empty")
	}
	if _, err := os.Stat(path); err != nil {
		panic(fmt.Sprintf("could not open identity file: %v", err))
	}
	return &File{Path: path, pw: pw}
}

// Bytes reads the file and base64-decodes its content.
func (f File) Bytes() ([]byte, error) {
	if _, err := os.Stat(f.Path); err != nil {
		return nil, fmt.Errorf("could not open identity file: %w", err)
	}
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(string(raw))
}

// Open decrypts the stored private key using the salt prefixed to the
// ciphertext (its first 8 bytes) and this File's password.
func (f File) Open() ([]byte, error) {
	if len(f.pw) == 0 {
		return nil, errors.New("password must not be empty")
	}
	ctbz, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	if len(ctbz) < 8 {
		return nil, errors.New("identity file is truncated")
	}
	salt, ct := ctbz[:8], ctbz[8:]
	secret, _ := MustGenerateSecret(f.pw, salt)
	return Decrypt(secret, ct)
}

// Secret returns the AES secret this File's password and stored salt
// derive to.
func (f File) Secret() ([]byte, error) {
	ctbz, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	if len(ctbz) < 8 {
		return nil, errors.New("identity file is truncated")
	}
	secret, _, err := GenerateSecret(f.pw, ctbz[:8])
	return secret, err
}

// PrivKey decrypts and returns the ed25519 private key. Callers should
// discard it as soon as they're done signing.
func (f File) PrivKey() (ed25519.PrivKey, error) {
	bz, err := f.Open()
	if err != nil {
		return ed25519.PrivKey{}, err
	}
	return ed25519.PrivKey(bz), nil
}

// PubKey derives the public key from the decrypted private key.
func (f File) PubKey() (crypto.PubKey, error) {
	priv, err := f.PrivKey()
	if err != nil {
		return nil, err
	}
	return priv.PubKey(), nil
}

// Address derives this identity's corestate address from its public key.
func (f File) Address() (coins.Address, error) {
	pub, err := f.PubKey()
	if err != nil {
		return coins.Address{}, err
	}
	return coins.NativeAddress(pub.Bytes()), nil
}

// GenerateSecret derives a 32-byte AES secret as sha256(salt || password)
// using tmhash. If salt is empty a random 8-byte salt is generated;
// otherwise it must be exactly 8 bytes.
func GenerateSecret(pw, salt []byte) ([]byte, []byte, error) {
	if len(pw) == 0 {
		return nil, nil, errors.New("password must not be empty")
	}
	if len(salt) == 0 {
		salt = make([]byte, 8)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, nil, err
		}
	} else if len(salt) != 8 {
		return nil, nil, fmt.Errorf("invalid salt size, want %d, got %d", 8, len(salt))
	}

	var buf bytes.Buffer
	buf.Grow(8 + len(pw))
	buf.Write(salt)
	buf.Write(pw)
	return tmhash.Sum(buf.Bytes()), salt, nil
}

// MustGenerateSecret is GenerateSecret, panicking on error.
func MustGenerateSecret(pw, salt []byte) ([]byte, []byte) {
	secret, salt, err := GenerateSecret(pw, salt)
	if err != nil {
		panic(err.Error())
	}
	return secret, salt
}

// Encrypt seals data under secret with AES-256-GCM, prefixing the random
// nonce used.
func Encrypt(secret, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

// Decrypt opens a ciphertext produced by Encrypt.
func Decrypt(secret, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext is shorter than the nonce")
	}
	nonce, ct := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ct, nil)
}

// MustGenerate creates a new ed25519 keypair, encrypts the private key
// under pw, and writes it to idFile (and a cleartext idFile+".pub"
// alongside it). Panics on any filesystem or crypto error, matching the
// CLI's own fail-fast startup behavior.
func MustGenerate(idFile string, pw []byte) (privFile, pubFile string) {
	if len(pw) == 0 {
		panic("password must not be empty")
	}

	if dir := filepath.Dir(idFile); dir != "" {
		if _, err := os.Stat(dir); err != nil {
			_ = os.MkdirAll(dir, 0700)
		}
	}

	priv := ed25519.GenPrivKey()
	secret, salt := MustGenerateSecret(pw, nil)

	ctbz, err := Encrypt(secret, priv.Bytes())
	if err != nil {
		panic(err.Error())
	}
	ctbz = append(salt, ctbz...)

	b64 := base64.StdEncoding.EncodeToString(ctbz)
	if err := os.WriteFile(idFile, []byte(b64), 0600); err != nil {
		panic(err.Error())
	}

	pubFile = idFile + ".pub"
	pubB64 := base64.StdEncoding.EncodeToString(priv.PubKey().Bytes())
	if err := os.WriteFile(pubFile, []byte(pubB64), 0644); err != nil {
		panic(err.Error())
	}

	return idFile, pubFile
}
