// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package precompiles

import (
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

// Ledger is the balance capability a host EVM lends to a precompile for one
// call. Implementations own the returned values; callers must not mutate them.
type Ledger interface {
	Balance(account addr) (*uint256.Int, error)
	SetBalance(account addr, balance *uint256.Int) error
}

// StateDBLedger exposes a go-ethereum StateDB as a Ledger. Balance changes are
// applied as deltas so the journal and any tracer see a normal add or sub.
type StateDBLedger struct {
	state vm.StateDB
}

func NewStateDBLedger(state vm.StateDB) *StateDBLedger {
	return &StateDBLedger{state: state}
}

func (l *StateDBLedger) Balance(account addr) (*uint256.Int, error) {
	if l.state == nil {
		return nil, ErrNoLedger
	}
	return new(uint256.Int).Set(l.state.GetBalance(account)), nil
}

func (l *StateDBLedger) SetBalance(account addr, balance *uint256.Int) error {
	if l.state == nil {
		return ErrNoLedger
	}
	current := l.state.GetBalance(account)
	switch current.Cmp(balance) {
	case -1:
		l.state.AddBalance(account, new(uint256.Int).Sub(balance, current), tracing.BalanceChangeUnspecified)
	case 1:
		l.state.SubBalance(account, new(uint256.Int).Sub(current, balance), tracing.BalanceChangeUnspecified)
	}
	return nil
}

// MemoryLedger is a map-backed Ledger for simulations and tests. It is not
// safe for concurrent use.
type MemoryLedger struct {
	balances map[addr]*uint256.Int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[addr]*uint256.Int)}
}

func (l *MemoryLedger) Balance(account addr) (*uint256.Int, error) {
	if balance, ok := l.balances[account]; ok {
		return new(uint256.Int).Set(balance), nil
	}
	return new(uint256.Int), nil
}

func (l *MemoryLedger) SetBalance(account addr, balance *uint256.Int) error {
	l.balances[account] = new(uint256.Int).Set(balance)
	return nil
}
