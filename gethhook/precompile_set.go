// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package gethhook

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/rkbchain/rkb/precompiles"
)

var ErrNoPrecompile = errors.New("no precompile at address")

// GethPrecompileWrapper runs one of go-ethereum's stock precompiles behind the
// native Precompile interface. Stock precompiles are pure, so the call context
// and ledger are ignored.
type GethPrecompileWrapper struct {
	address common.Address
	inner   vm.PrecompiledContract
}

func (p GethPrecompileWrapper) Call(
	input []byte,
	precompileAddress common.Address,
	actingAsAddress common.Address,
	caller common.Address,
	value *big.Int,
	readOnly bool,
	gasSupplied uint64,
	ledger precompiles.Ledger,
) ([]byte, uint64, error) {
	return vm.RunPrecompiledContract(p.inner, input, gasSupplied, nil)
}

func (p GethPrecompileWrapper) Name() string {
	return fmt.Sprintf("geth precompile %v", p.address)
}

// Inner returns the stock precompile being wrapped.
func (p GethPrecompileWrapper) Inner() vm.PrecompiledContract {
	return p.inner
}

// PrecompileSet is the full set of precompiles active for one EVM, keyed by
// address.
type PrecompileSet map[common.Address]precompiles.Precompile

// Addresses lists the set's addresses in ascending order.
func (s PrecompileSet) Addresses() []common.Address {
	addresses := make([]common.Address, 0, len(s))
	for address := range s {
		addresses = append(addresses, address)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return bytes.Compare(addresses[i][:], addresses[j][:]) < 0
	})
	return addresses
}

// Call routes a message call to the precompile at address, which is both the
// precompile address and, for a direct call, the acting-as address.
func (s PrecompileSet) Call(
	address common.Address,
	input []byte,
	actingAsAddress common.Address,
	caller common.Address,
	value *big.Int,
	readOnly bool,
	gasSupplied uint64,
	ledger precompiles.Ledger,
) ([]byte, uint64, error) {
	precompile, ok := s[address]
	if !ok {
		return nil, gasSupplied, fmt.Errorf("%w %v", ErrNoPrecompile, address)
	}
	return precompile.Call(input, address, actingAsAddress, caller, value, readOnly, gasSupplied, ledger)
}

// ExtendPrecompiles copies base and registers a NativeMinter bound to
// authorizedCaller at address, replacing any precompile already there. The
// minter is passed through wrappers in order. base is left untouched.
func ExtendPrecompiles(
	base vm.PrecompiledContracts,
	address common.Address,
	authorizedCaller common.Address,
	wrappers ...precompiles.Wrapper,
) PrecompileSet {
	var minter precompiles.Precompile = precompiles.NewNativeMinter(address, authorizedCaller)
	for _, wrap := range wrappers {
		address, minter = wrap(address, minter)
	}
	return extend(base, map[common.Address]precompiles.Precompile{
		address: minter,
	})
}

func extend(base vm.PrecompiledContracts, native map[common.Address]precompiles.Precompile) PrecompileSet {
	set := make(PrecompileSet, len(base)+len(native))
	for address, contract := range base {
		set[address] = GethPrecompileWrapper{address: address, inner: contract}
	}
	for address, precompile := range native {
		set[address] = precompile
	}
	return set
}
