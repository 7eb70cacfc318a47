// Package plugins implements the fixed stack of wrappers composed around
// the user application (§4.3): ABCI, chain-id, sdk-compat, signer, nonce,
// fee, and query, outermost to innermost. Each layer implements the same
// Call/Query contract and delegates to its inner layer after performing one
// orthogonal check or transformation; contexts a layer installs are torn
// down before it returns, in reverse order, including on failure.
package plugins
