package client

import (
	"context"
	"fmt"

	rpcclient "github.com/cometbft/cometbft/rpc/client"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"

	"github.com/statesmith/corestate/merkle"
	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/store"
)

// codeTypeOK mirrors abci.CodeTypeOK without importing package abci, which
// itself sits above client in the dependency graph.
const codeTypeOK = 0

// RPCTransport is the Transport the CLI and any other off-chain corestate
// client use against a live node. Every query is issued with Prove set; the
// returned CombinedProof is replayed against the app hash the chain itself
// committed for that height before any of its contents are trusted, so a
// malicious or buggy RPC endpoint can at worst withhold data, never forge
// it (§6, P5/S4).
type RPCTransport struct {
	cli rpcclient.Client
}

// NewRPCTransport wraps an already-dialed CometBFT RPC client.
func NewRPCTransport(cli rpcclient.Client) *RPCTransport {
	return &RPCTransport{cli: cli}
}

// DialRPCTransport dials addr (e.g. "http://localhost:26657") and wraps the
// resulting client.
func DialRPCTransport(addr string) (*RPCTransport, error) {
	cli, err := rpchttp.New(addr, "/websocket")
	if err != nil {
		return nil, err
	}
	return NewRPCTransport(cli), nil
}

// Query issues q against the node with proofs enabled, verifies the result,
// and returns a PartialMapStore populated with every key the proof covered.
func (t *RPCTransport) Query(q query.Query) (store.Store, error) {
	ctx := context.Background()
	data := query.Encode(q)

	resp, err := t.cli.ABCIQueryWithOptions(ctx, "", data, rpcclient.ABCIQueryOptions{Prove: true})
	if err != nil {
		return nil, err
	}
	if resp.Response.Code != codeTypeOK {
		return nil, fmt.Errorf("query failed: (%d) %s", resp.Response.Code, resp.Response.Log)
	}
	if resp.Response.ProofOps == nil || len(resp.Response.ProofOps.Ops) == 0 {
		// Nothing proven for this query; contribute nothing, leaving the
		// caller's next Step to report the key missing again.
		return store.NullStore{}, nil
	}

	root, err := t.trustedRoot(ctx, resp.Response.Height)
	if err != nil {
		return nil, err
	}

	proof, err := merkle.DecodeProof(resp.Response.ProofOps.Ops[0].Data)
	if err != nil {
		return nil, err
	}

	// An ICS-23 existence proof carries its own leaf value, so the value a
	// present key proves to is recovered from the proof itself rather than
	// needing a separate channel from the node.
	values := make(map[string][]byte, len(proof.Proofs))
	for key, cp := range proof.Proofs {
		if exist := cp.GetExist(); exist != nil {
			values[key] = exist.Value
		}
	}

	dest := store.NewPartialMapStore()
	if err := merkle.LoadProof(proof, root, values, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

// trustedRoot returns the app hash the chain committed for height: CometBFT
// stamps a block's header.AppHash with the result of applying the
// *previous* block, so the root a proof for data read at height is rooted
// at appears in the header at height+1.
func (t *RPCTransport) trustedRoot(ctx context.Context, height int64) ([]byte, error) {
	next := height + 1
	block, err := t.cli.Block(ctx, &next)
	if err != nil {
		return nil, err
	}
	return block.Block.Header.AppHash, nil
}

// Call broadcasts a signed transaction and blocks until it commits.
func (t *RPCTransport) Call(raw []byte) error {
	resp, err := t.cli.BroadcastTxCommit(context.Background(), raw)
	if err != nil {
		return err
	}
	if resp.CheckTx.Code != codeTypeOK {
		return fmt.Errorf("transaction rejected by mempool: (%d) %s", resp.CheckTx.Code, resp.CheckTx.Log)
	}
	if resp.TxResult.Code != codeTypeOK {
		return fmt.Errorf("transaction failed: (%d) %s", resp.TxResult.Code, resp.TxResult.Log)
	}
	return nil
}

var _ Transport = (*RPCTransport)(nil)
