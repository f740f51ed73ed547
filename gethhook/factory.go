// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package gethhook

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"

	"github.com/rkbchain/rkb/precompiles"
)

// EvmFactory builds the precompile set of each EVM the node creates. It holds
// only the authorized caller and whether the minter is enabled, so it is safe
// to share between goroutines.
type EvmFactory struct {
	authorizedCaller common.Address
	enabled          bool
}

func NewEvmFactory(authorizedCaller common.Address, nativeMinterEnabled bool) *EvmFactory {
	if authorizedCaller == (common.Address{}) && nativeMinterEnabled {
		log.Warn("NativeMinter authorized caller is the zero address, this is insecure outside of testing")
	}
	log.Info("Native precompiles configured",
		"nativeMinter", precompiles.NativeMinterAddress,
		"authorizedCaller", authorizedCaller,
		"enabled", nativeMinterEnabled,
	)
	return &EvmFactory{
		authorizedCaller: authorizedCaller,
		enabled:          nativeMinterEnabled,
	}
}

func (f *EvmFactory) AuthorizedCaller() common.Address {
	return f.authorizedCaller
}

// Precompiles returns the standard precompiles active for the given block on
// chainConfig, with the native precompiles registered on top.
func (f *EvmFactory) Precompiles(chainConfig *params.ChainConfig, blockNumber *big.Int, time uint64) PrecompileSet {
	isMerge := chainConfig.TerminalTotalDifficulty != nil
	rules := chainConfig.Rules(blockNumber, isMerge, time)
	return ExtendPrecompiles(
		vm.ActivePrecompiledContracts(rules),
		precompiles.NativeMinterAddress,
		f.authorizedCaller,
		precompiles.NativeMinterWrapper(f.enabled),
	)
}
