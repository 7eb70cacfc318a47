package context

import (
	"time"

	"github.com/statesmith/corestate/coins"
)

// Signer is the ambient identity installed by the signer plugin after a
// signature has been verified.
type Signer struct {
	Address coins.Address
}

// ValidatorUpdate is a single (pubkey, voting_power) assignment collected by
// the Validators context during one call.
type ValidatorUpdate struct {
	PubKey      [32]byte
	VotingPower int64
}

// Validators accumulates validator updates emitted during the execution of
// one top-level call. The ABCI plugin drains it at the end of each call and
// the abci package's FinalizeBlock returns the drained updates in that same
// block's response; no pending-update set is kept between blocks.
type Validators struct {
	updates map[[32]byte]int64
}

// NewValidators creates an empty update collector.
func NewValidators() *Validators {
	return &Validators{updates: make(map[[32]byte]int64)}
}

// SetVotingPower records an update; a later call for the same pubkey within
// the same context overwrites the earlier one.
func (v *Validators) SetVotingPower(pubkey [32]byte, power int64) {
	v.updates[pubkey] = power
}

// Drain returns the accumulated updates and clears the collector.
func (v *Validators) Drain() []ValidatorUpdate {
	out := make([]ValidatorUpdate, 0, len(v.updates))
	for pk, power := range v.updates {
		out = append(out, ValidatorUpdate{PubKey: pk, VotingPower: power})
	}
	v.updates = make(map[[32]byte]int64)
	return out
}

// Events accumulates ABCI events emitted during one call.
type Events struct {
	events []Event
}

// Event mirrors the ABCI event shape: a type plus ordered key/value
// attributes.
type Event struct {
	Type       string
	Attributes []EventAttribute
}

// EventAttribute is a single key/value pair on an Event.
type EventAttribute struct {
	Key, Value string
}

// NewEvents creates an empty event collector.
func NewEvents() *Events { return &Events{} }

// Add appends one event.
func (e *Events) Add(evt Event) { e.events = append(e.events, evt) }

// All returns the accumulated events in emission order.
func (e *Events) All() []Event { return append([]Event(nil), e.events...) }

// Logs accumulates human-readable diagnostic lines for the current call.
// The abci package's FinalizeBlock reports them in the log field of a
// successful transaction's result; a failed transaction's log field carries
// only the error text.
type Logs struct {
	lines []string
}

// NewLogs creates an empty log collector.
func NewLogs() *Logs { return &Logs{} }

// Add appends one log line.
func (l *Logs) Add(line string) { l.lines = append(l.lines, line) }

// All returns the accumulated lines.
func (l *Logs) All() []string { return append([]string(nil), l.lines...) }

// Paid tracks the amount of a fee symbol debited out-of-band by the
// sdk-compat layer and available for the fee plugin to collect against.
type Paid struct {
	Symbol string
	Amount uint64
}

// ChainID is the ambient chain identifier installed by the chain-id plugin.
type ChainID string

// Package-level ambient stacks, one per kind, mirroring the source
// framework's per-type thread-local registries.
var (
	SignerStack     = NewStack[Signer]()
	ValidatorsStack = NewStack[*Validators]()
	TimeStack       = NewStack[time.Time]()
	EventsStack     = NewStack[*Events]()
	LogsStack       = NewStack[*Logs]()
	PaidStack       = NewStack[*Paid]()
	ChainIDStack    = NewStack[ChainID]()
)

// CurrentSigner returns the installed signer, if any.
func CurrentSigner() (Signer, bool) { return SignerStack.Peek() }

// CurrentValidators returns the installed validator-update collector.
func CurrentValidators() (*Validators, bool) { return ValidatorsStack.Peek() }

// CurrentTime returns the ambient block time.
func CurrentTime() (time.Time, bool) { return TimeStack.Peek() }

// CurrentEvents returns the installed event collector.
func CurrentEvents() (*Events, bool) { return EventsStack.Peek() }

// CurrentLogs returns the installed log collector.
func CurrentLogs() (*Logs, bool) { return LogsStack.Peek() }

// CurrentPaid returns the installed fee-payment tracker.
func CurrentPaid() (*Paid, bool) { return PaidStack.Peek() }

// CurrentChainID returns the installed chain id.
func CurrentChainID() (ChainID, bool) { return ChainIDStack.Peek() }
