package app

import (
	"bytes"
	"strconv"

	"github.com/statesmith/corestate/call"
	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/encoding"
	"github.com/statesmith/corestate/plugins"
	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/store"
)

// Method indices for Accounts.Call.
const (
	methodTransfer byte = 0
	methodMint     byte = 1
	methodGenesis  byte = 2
)

// Method index for Accounts.Query.
const methodBalance byte = 0

var (
	balancesPrefix = []byte{0x00}
	adminKey       = []byte{0x01}
)

// Accounts is the balances-map reference application: a single field
// (balances, keyed by address) plus an admin address set once at genesis
// and checked by Mint.
type Accounts struct {
	view store.View
}

// NewAccounts binds an Accounts instance to view.
func NewAccounts(view store.View) *Accounts {
	return &Accounts{view: view}
}

// Factory adapts NewAccounts to abci.Factory's shape, pairing the call
// dispatcher with a Responder that answers Balance queries plus the
// inherited raw-key fallback.
func Factory(root store.View) (plugins.App, *query.Responder) {
	accounts := NewAccounts(root)
	responder := query.NewResponder(root).Method(methodBalance, accounts.handleBalanceQuery)
	return accounts, responder
}

func balanceKey(addr coins.Address) []byte {
	return append(append([]byte(nil), balancesPrefix...), addr[:]...)
}

func (a *Accounts) balanceOf(addr coins.Address) (coins.Amount, error) {
	val, err := a.view.Get(balanceKey(addr))
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, nil
	}
	n, _, err := encoding.ReadU64(val)
	if err != nil {
		return 0, err
	}
	return coins.Amount(n), nil
}

func (a *Accounts) setBalance(addr coins.Address, amount coins.Amount) error {
	var buf bytes.Buffer
	encoding.WriteU64(&buf, uint64(amount))
	return a.view.Put(balanceKey(addr), buf.Bytes())
}

func (a *Accounts) admin() (coins.Address, bool, error) {
	val, err := a.view.Get(adminKey)
	if err != nil {
		return coins.Address{}, false, err
	}
	if val == nil {
		return coins.Address{}, false, nil
	}
	var addr coins.Address
	copy(addr[:], val)
	return addr, true, nil
}

// Call decodes raw as a call.Call and dispatches it to Transfer, Mint, or
// Genesis by method index.
func (a *Accounts) Call(raw []byte) error {
	c, err := call.Decode(raw)
	if err != nil {
		return err
	}
	return a.dispatcher().Dispatch(c)
}

func (a *Accounts) dispatcher() *call.Dispatcher {
	d := call.NewDispatcher()
	d.Method(methodTransfer, a.handleTransfer)
	d.Method(methodMint, a.handleMint)
	d.Method(methodGenesis, a.handleGenesis)
	return d
}

func decodeAddrAmount(args []byte) (coins.Address, coins.Amount, error) {
	if len(args) != coins.AddressSize+8 {
		return coins.Address{}, 0, ErrBadArguments
	}
	var addr coins.Address
	copy(addr[:], args[:coins.AddressSize])
	amount, _, err := encoding.ReadU64(args[coins.AddressSize:])
	if err != nil {
		return coins.Address{}, 0, ErrBadArguments
	}
	return addr, coins.Amount(amount), nil
}

func (a *Accounts) emitTransfer(from, to coins.Address, amount coins.Amount) {
	events, ok := context.CurrentEvents()
	if !ok {
		return
	}
	events.Add(context.Event{
		Type: "transfer",
		Attributes: []context.EventAttribute{
			{Key: "from", Value: from.String()},
			{Key: "to", Value: to.String()},
			{Key: "amount", Value: strconv.FormatUint(uint64(amount), 10)},
		},
	})
}

// handleTransfer moves amount from the ambient signer's balance to to,
// failing with ErrUnsigned if the call carries no signer (§4.3.4 signed
// calls only) and with coins.ErrInsufficientFunds if the sender's balance
// is too low.
func (a *Accounts) handleTransfer(args []byte) error {
	signer, ok := context.CurrentSigner()
	if !ok {
		return ErrUnsigned
	}
	to, amount, err := decodeAddrAmount(args)
	if err != nil {
		return err
	}

	fromBal, err := a.balanceOf(signer.Address)
	if err != nil {
		return err
	}
	newFrom, err := fromBal.Sub(amount)
	if err != nil {
		return err
	}
	toBal, err := a.balanceOf(to)
	if err != nil {
		return err
	}
	newTo, err := toBal.Add(amount)
	if err != nil {
		return err
	}

	if err := a.setBalance(signer.Address, newFrom); err != nil {
		return err
	}
	if err := a.setBalance(to, newTo); err != nil {
		return err
	}
	a.emitTransfer(signer.Address, to, amount)
	return nil
}

// handleMint credits to with amount, but only when the ambient signer is
// the registered admin address.
func (a *Accounts) handleMint(args []byte) error {
	signer, ok := context.CurrentSigner()
	if !ok {
		return ErrUnsigned
	}
	admin, set, err := a.admin()
	if err != nil {
		return err
	}
	if !set || signer.Address != admin {
		return ErrUnauthorized
	}

	to, amount, err := decodeAddrAmount(args)
	if err != nil {
		return err
	}
	bal, err := a.balanceOf(to)
	if err != nil {
		return err
	}
	newBal, err := bal.Add(amount)
	if err != nil {
		return err
	}
	return a.setBalance(to, newBal)
}

// handleGenesis sets the admin address and an initial balance set. It is
// only ever dispatched by Application.InitChain against app_state bytes,
// never reachable from a signed transaction.
func (a *Accounts) handleGenesis(args []byte) error {
	if len(args) < coins.AddressSize {
		return ErrBadArguments
	}
	var admin coins.Address
	copy(admin[:], args[:coins.AddressSize])
	if err := a.view.Put(adminKey, admin[:]); err != nil {
		return err
	}

	rest := args[coins.AddressSize:]
	for len(rest) > 0 {
		if len(rest) < coins.AddressSize+8 {
			return ErrBadArguments
		}
		var addr coins.Address
		copy(addr[:], rest[:coins.AddressSize])
		amount, tail, err := encoding.ReadU64(rest[coins.AddressSize:])
		if err != nil {
			return ErrBadArguments
		}
		if err := a.setBalance(addr, coins.Amount(amount)); err != nil {
			return err
		}
		rest = tail
	}
	return nil
}

func (a *Accounts) handleBalanceQuery(args []byte) ([]byte, error) {
	if len(args) != coins.AddressSize {
		return nil, ErrBadArguments
	}
	var addr coins.Address
	copy(addr[:], args)
	amount, err := a.balanceOf(addr)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	encoding.WriteU64(&buf, uint64(amount))
	return buf.Bytes(), nil
}

// Query answers Balance (method 0) directly; any other query variant is
// the raw-key fallback the Responder itself already serves, so this is
// never reached through Factory's wiring but is required to satisfy
// plugins.App.
func (a *Accounts) Query(q query.Query) ([]byte, error) {
	if q.Kind == query.KindMethod && q.Index == methodBalance {
		return a.handleBalanceQuery(q.Args)
	}
	return nil, query.ErrUnknownKind
}

// TransferCall builds the call.Call-encoded bytes for a Transfer to to of
// amount, suitable as the inner call of a plugins.NonceEnvelope. Exposed so
// a CLI or client can construct a Transfer without reaching into this
// package's unexported method indices.
func TransferCall(to coins.Address, amount coins.Amount) []byte {
	return call.Encode(call.Method(methodTransfer, addrAmountBytes(to, amount)))
}

// BalanceQuery builds the query.Query-encoded bytes for a Balance read on
// addr.
func BalanceQuery(addr coins.Address) query.Query {
	return query.Method(methodBalance, addr[:])
}

// DecodeBalance parses the raw response bytes BalanceQuery's handler
// returns.
func DecodeBalance(value []byte) (coins.Amount, error) {
	n, _, err := encoding.ReadU64(value)
	if err != nil {
		return 0, ErrBadArguments
	}
	return coins.Amount(n), nil
}

func addrAmountBytes(addr coins.Address, amount coins.Amount) []byte {
	var buf bytes.Buffer
	buf.Write(addr[:])
	encoding.WriteU64(&buf, uint64(amount))
	return buf.Bytes()
}
