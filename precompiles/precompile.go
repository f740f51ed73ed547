// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package precompiles

type Precompile interface {
	// NOTE: if precompileAddress != actingAsAddress, watch out!
	// This is a delegatecall or callcode, so caller might be wrong.
	// In that case, unless this precompile is pure, it should probably revert.
	//
	// The ledger is only valid for the duration of the call.
	Call(
		input []byte,
		precompileAddress addr,
		actingAsAddress addr,
		caller addr,
		value huge,
		readOnly bool,
		gasSupplied uint64,
		ledger Ledger,
	) (output []byte, gasLeft uint64, err error)

	Name() string
}

// Wrapper decorates a native precompile before it is registered at address.
type Wrapper func(address addr, impl Precompile) (addr, Precompile)

// NativeMinterWrapper returns the wrapper the minter is registered behind:
// metered when enabled, refusing every call when not. A disabled minter stays
// registered so calls to its address keep failing instead of falling through
// to an empty account.
func NativeMinterWrapper(nativeMinterEnabled bool) Wrapper {
	if nativeMinterEnabled {
		return metered
	}
	return disabled
}
