package abci

import (
	corectx "github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/store"
)

// OperatorMap persists the association between a validator's operator
// address and its consensus public key, so application call handlers can
// manage voting power by the address an operator controls while the ABCI
// layer still emits validator updates keyed by the raw consensus pubkey
// the consensus engine expects.
type OperatorMap struct {
	view store.View
}

// NewOperatorMap binds an OperatorMap to view, typically a reserved
// sub-view the Application owns alongside the application's own state.
func NewOperatorMap(view store.View) *OperatorMap {
	return &OperatorMap{view: view}
}

// SetOperator associates operatorAddr with consensusKey, overwriting any
// prior association.
func (m *OperatorMap) SetOperator(operatorAddr [20]byte, consensusKey [32]byte) error {
	return m.view.Put(operatorAddr[:], consensusKey[:])
}

// ConsensusKey looks up the consensus key registered for operatorAddr.
func (m *OperatorMap) ConsensusKey(operatorAddr [20]byte) (key [32]byte, ok bool, err error) {
	val, err := m.view.Get(operatorAddr[:])
	if err != nil {
		return key, false, err
	}
	if val == nil {
		return key, false, nil
	}
	copy(key[:], val)
	return key, true, nil
}

// SetVotingPowerByOperator resolves operatorAddr to its consensus key and
// records a voting-power update against the ambient Validators collector
// for the call currently in flight, letting application call handlers
// reference validators by operator address without ever holding the raw
// consensus key themselves.
func (m *OperatorMap) SetVotingPowerByOperator(operatorAddr [20]byte, power int64) error {
	key, ok, err := m.ConsensusKey(operatorAddr)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownOperator
	}
	validators, ok := corectx.CurrentValidators()
	if !ok {
		return ErrNoValidatorsContext
	}
	validators.SetVotingPower(key, power)
	return nil
}
