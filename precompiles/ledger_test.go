// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package precompiles

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/rkbchain/rkb/util/testhelpers"
)

func newTestStateDB(t *testing.T) *state.StateDB {
	t.Helper()
	statedb, err := state.New(types.EmptyRootHash, state.NewDatabaseForTesting())
	Require(t, err)
	return statedb
}

func TestStateDBLedgerBalances(t *testing.T) {
	statedb := newTestStateDB(t)
	ledger := NewStateDBLedger(statedb)
	account := common.HexToAddress("0xacc0")

	balance, err := ledger.Balance(account)
	Require(t, err)
	if !balance.IsZero() {
		Fail(t, "fresh account should be empty", balance)
	}

	Require(t, ledger.SetBalance(account, uint256.NewInt(700)))
	if got := statedb.GetBalance(account); !got.Eq(uint256.NewInt(700)) {
		Fail(t, "unexpected state balance", got)
	}
	Require(t, ledger.SetBalance(account, uint256.NewInt(300)))
	if got := statedb.GetBalance(account); !got.Eq(uint256.NewInt(300)) {
		Fail(t, "unexpected state balance", got)
	}
	Require(t, ledger.SetBalance(account, uint256.NewInt(300)))

	// the ledger hands out copies
	balance, err = ledger.Balance(account)
	Require(t, err)
	balance.SetUint64(1)
	if got := statedb.GetBalance(account); !got.Eq(uint256.NewInt(300)) {
		Fail(t, "state balance changed through a returned value", got)
	}
}

func TestNativeMinterOnStateDB(t *testing.T) {
	statedb := newTestStateDB(t)
	statedb.AddBalance(accountB, uint256.NewInt(50), tracing.BalanceChangeUnspecified)
	ledger := NewStateDBLedger(statedb)
	con := NewNativeMinter(NativeMinterAddress, bridgeA)

	_, gasLeft, err := minterCall{input: mintInput(t, accountB, 1000), caller: bridgeA, gas: 10000}.run(con, ledger)
	Require(t, err)
	if gasLeft != 4000 {
		Fail(t, "unexpected gas left", gasLeft)
	}
	if got := statedb.GetBalance(accountB); !got.Eq(uint256.NewInt(1050)) {
		Fail(t, "unexpected balance after mint", got)
	}

	_, _, err = minterCall{input: burnInput(t, accountB, 1051), caller: bridgeA, gas: 10000}.run(con, ledger)
	expectRejection(t, err, InsufficientBalance)

	_, _, err = minterCall{input: burnInput(t, accountB, 1050), caller: bridgeA, gas: 10000}.run(con, ledger)
	Require(t, err)
	if got := statedb.GetBalance(accountB); !got.IsZero() {
		Fail(t, "unexpected balance after burn", got)
	}

	// a reverted snapshot undoes the mint like any other balance change
	snapshot := statedb.Snapshot()
	_, _, err = minterCall{input: mintInput(t, accountB, 9), caller: bridgeA, gas: 10000}.run(con, ledger)
	Require(t, err)
	statedb.RevertToSnapshot(snapshot)
	if got := statedb.GetBalance(accountB); !got.IsZero() {
		Fail(t, "revert did not undo the mint", got)
	}
}

func TestStateDBLedgerWithoutState(t *testing.T) {
	ledger := NewStateDBLedger(nil)
	if _, err := ledger.Balance(accountB); !errors.Is(err, ErrNoLedger) {
		Fail(t, "expected ErrNoLedger, got", err)
	}
	if err := ledger.SetBalance(accountB, uint256.NewInt(1)); !errors.Is(err, ErrNoLedger) {
		Fail(t, "expected ErrNoLedger, got", err)
	}
}

func TestStateDBLedgerRandomBalances(t *testing.T) {
	statedb := newTestStateDB(t)
	ledger := NewStateDBLedger(statedb)
	for i := 0; i < 32; i++ {
		account := testhelpers.RandomAddress()
		value := testhelpers.RandomUint256()
		Require(t, ledger.SetBalance(account, value))
		if got := statedb.GetBalance(account); !got.Eq(value) {
			Fail(t, "state holds", got, "want", value)
		}
		Require(t, ledger.SetBalance(account, new(uint256.Int)))
		if got := statedb.GetBalance(account); !got.IsZero() {
			Fail(t, "state holds", got, "after clearing")
		}
	}
}

func TestMemoryLedgerCopies(t *testing.T) {
	ledger := NewMemoryLedger()
	value := uint256.NewInt(10)
	Require(t, ledger.SetBalance(accountB, value))
	value.SetUint64(11)

	balance, err := ledger.Balance(accountB)
	Require(t, err)
	if !balance.Eq(uint256.NewInt(10)) {
		Fail(t, "ledger kept a reference to the caller's value", balance)
	}
	balance.SetUint64(12)
	balance, err = ledger.Balance(accountB)
	Require(t, err)
	if !balance.Eq(uint256.NewInt(10)) {
		Fail(t, "ledger handed out its own value", balance)
	}
}
