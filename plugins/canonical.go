package plugins

import "encoding/json"

// marshalCanonicalJSON renders v as JSON with struct-declaration field
// order, which is deterministic and is all ADR-36/SDK sign-bytes require:
// the signer and verifier both derive the same struct, so key order never
// diverges between them.
func marshalCanonicalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
