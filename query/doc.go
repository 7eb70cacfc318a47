// Package query implements Query, the read-only dual of package call's
// Call: a tagged variant addressed to a state object by field or method,
// plus a raw-key fallback used by light clients that need a specific byte
// string under a known store key rather than a typed method result.
package query
