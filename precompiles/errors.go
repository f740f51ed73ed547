// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package precompiles

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/vm"
)

// Rejection is the reason a precompile refused to complete a call.
type Rejection uint8

const (
	OutOfGas Rejection = iota + 1
	DelegationNotPermitted
	MutationInReadOnlyContext
	Unauthorized
	MalformedCall
	UnknownOperation
	InsufficientBalance
	LedgerError
)

var rejectionNames = map[Rejection]string{
	OutOfGas:                  "out of gas",
	DelegationNotPermitted:    "delegatecall not allowed",
	MutationInReadOnlyContext: "staticcall not allowed",
	Unauthorized:              "unauthorized caller",
	MalformedCall:             "malformed calldata",
	UnknownOperation:          "unknown function",
	InsufficientBalance:       "insufficient balance",
	LedgerError:               "ledger error",
}

func (r Rejection) String() string {
	if name, ok := rejectionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("unknown rejection %d", uint8(r))
}

// vmError is the go-ethereum error a host EVM keys its gas and revert
// handling on.
func (r Rejection) vmError() error {
	switch r {
	case OutOfGas:
		return vm.ErrOutOfGas
	case MutationInReadOnlyContext:
		return vm.ErrWriteProtection
	default:
		return vm.ErrExecutionReverted
	}
}

// Rejections lists every reason in declaration order.
func Rejections() []Rejection {
	return []Rejection{
		OutOfGas,
		DelegationNotPermitted,
		MutationInReadOnlyContext,
		Unauthorized,
		MalformedCall,
		UnknownOperation,
		InsufficientBalance,
		LedgerError,
	}
}

var (
	ErrBalanceOverflow   = errors.New("balance overflows uint256")
	ErrPrecompileOff     = errors.New("precompile is disabled")
	ErrNoLedger          = errors.New("no ledger available to this call")
	errShortCalldata     = errors.New("calldata shorter than a function selector")
	errShortArguments    = errors.New("arguments shorter than two words")
	errDirtyAddressWord  = errors.New("address word has non-zero padding")
	errUnexpectedArgType = errors.New("unexpected argument type")
)

// RejectionError is returned by a precompile for every call it does not
// complete. Err optionally carries the underlying cause.
type RejectionError struct {
	Reason Rejection
	Err    error
}

func reject(reason Rejection, err error) error {
	return &RejectionError{Reason: reason, Err: err}
}

func (e *RejectionError) Error() string {
	if e.Err == nil {
		return e.Reason.String()
	}
	return fmt.Sprintf("%v: %v", e.Reason, e.Err)
}

func (e *RejectionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason.vmError()}
	}
	return []error{e.Reason.vmError(), e.Err}
}

// ReasonOf extracts the rejection reason from err, if it carries one.
func ReasonOf(err error) (Rejection, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason, true
	}
	return 0, false
}
