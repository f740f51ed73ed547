// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package precompiles

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
)

type addr = common.Address
type huge = *big.Int
type bytes4 = [4]byte
type ctx = *Context

// Context is the per-call state of a precompile invocation. It lives only for
// the duration of a single Call and must not be retained afterwards.
type Context struct {
	caller   addr
	gasLeft  uint64
	readOnly bool
	ledger   Ledger
}

func newContext(caller addr, gasSupplied uint64, readOnly bool, ledger Ledger) *Context {
	return &Context{
		caller:   caller,
		gasLeft:  gasSupplied,
		readOnly: readOnly,
		ledger:   ledger,
	}
}

func (c *Context) Burn(amount uint64) error {
	if c.gasLeft < amount {
		return c.BurnOut()
	}
	c.gasLeft -= amount
	return nil
}

func (c *Context) BurnOut() error {
	c.gasLeft = 0
	return vm.ErrOutOfGas
}

func (c *Context) GasLeft() uint64 {
	return c.gasLeft
}

func (c *Context) Caller() addr {
	return c.caller
}

func (c *Context) ReadOnly() bool {
	return c.readOnly
}
