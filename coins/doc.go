// Package coins implements the value types shared by the fee and signer
// plugins: account addresses (derived from either a native or an Ethereum
// public key), fee symbols, and overflow-checked integer/decimal amounts.
package coins
