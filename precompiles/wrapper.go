// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package precompiles

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/metrics"
)

// A precompile wrapper for those switched off by the operator
type DisabledPrecompile struct {
	precompile Precompile
}

func disabled(address addr, impl Precompile) (addr, Precompile) {
	return address, &DisabledPrecompile{impl}
}

func (wrapper *DisabledPrecompile) Call(
	input []byte,
	precompileAddress addr,
	actingAsAddress addr,
	caller addr,
	value huge,
	readOnly bool,
	gasSupplied uint64,
	ledger Ledger,
) ([]byte, uint64, error) {
	// take all gas
	return nil, 0, reject(Unauthorized, fmt.Errorf("%s: %w", wrapper.precompile.Name(), ErrPrecompileOff))
}

func (wrapper *DisabledPrecompile) Name() string {
	return wrapper.precompile.Name()
}

// A precompile wrapper that counts call outcomes for the operator
type MeteredPrecompile struct {
	precompile Precompile
	prefix     string
}

func metered(address addr, impl Precompile) (addr, Precompile) {
	return address, &MeteredPrecompile{
		precompile: impl,
		prefix:     "precompiles/" + strings.ToLower(impl.Name()),
	}
}

func (wrapper *MeteredPrecompile) Call(
	input []byte,
	precompileAddress addr,
	actingAsAddress addr,
	caller addr,
	value huge,
	readOnly bool,
	gasSupplied uint64,
	ledger Ledger,
) ([]byte, uint64, error) {
	output, gasLeft, err := wrapper.precompile.Call(input, precompileAddress, actingAsAddress, caller, value, readOnly, gasSupplied, ledger)
	if err == nil {
		metrics.GetOrRegisterCounter(wrapper.prefix+"/success", nil).Inc(1)
		return output, gasLeft, nil
	}
	name := "other"
	if reason, ok := ReasonOf(err); ok {
		name = strings.ReplaceAll(reason.String(), " ", "_")
	}
	metrics.GetOrRegisterCounter(wrapper.prefix+"/rejected/"+name, nil).Inc(1)
	return output, gasLeft, err
}

func (wrapper *MeteredPrecompile) Name() string {
	return wrapper.precompile.Name()
}

// Unwrap returns the precompile this wrapper guards.
func (wrapper *MeteredPrecompile) Unwrap() Precompile {
	return wrapper.precompile
}
