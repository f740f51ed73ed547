// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package precompiles

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

var NativeMinterAddress = common.HexToAddress("0x0000000000000000000000000000000000000420")

// NativeMinterGasCost covers a warm balance read plus the write that follows it.
const NativeMinterGasCost uint64 = 6000

// NativeMinter lets a single authorized account, the bridge contract, mint
// and burn the chain's native token.
//
//	interface INativeMinter {
//	    function mint(address recipient, uint256 amount) external;
//	    function burn(address from, uint256 amount) external;
//	}
//
// The precompile enforces its own access control: it rejects delegated and
// static calls and any caller other than AuthorizedCaller.
type NativeMinter struct {
	Address          addr
	AuthorizedCaller addr
}

// NewNativeMinter binds the precompile at address to authorizedCaller. The
// zero address is accepted for testing, but no production chain should run
// with it.
func NewNativeMinter(address addr, authorizedCaller addr) *NativeMinter {
	return &NativeMinter{
		Address:          address,
		AuthorizedCaller: authorizedCaller,
	}
}

func (con *NativeMinter) Name() string {
	return "NativeMinter"
}

// Call authorizes, decodes and executes a single mint or burn. No ledger
// access happens until every check has passed, and at most one balance is
// written.
func (con *NativeMinter) Call(
	input []byte,
	precompileAddress addr,
	actingAsAddress addr,
	caller addr,
	value huge,
	readOnly bool,
	gasSupplied uint64,
	ledger Ledger,
) ([]byte, uint64, error) {
	c := newContext(caller, gasSupplied, readOnly, ledger)

	if err := c.Burn(NativeMinterGasCost); err != nil {
		return nil, 0, reject(OutOfGas, nil)
	}

	if actingAsAddress != precompileAddress {
		// a delegatecall or callcode runs us as the calling contract, so the
		// caller check below would be about the wrong account
		log.Warn("NativeMinter: DELEGATECALL not allowed", "caller", caller, "target", precompileAddress, "actingAs", actingAsAddress)
		return nil, 0, reject(DelegationNotPermitted, nil)
	}

	if c.ReadOnly() {
		log.Warn("NativeMinter: STATICCALL not allowed", "caller", caller)
		return nil, 0, reject(MutationInReadOnlyContext, nil)
	}

	if c.Caller() != con.AuthorizedCaller {
		log.Warn("NativeMinter: unauthorized caller", "caller", caller, "authorized", con.AuthorizedCaller)
		return nil, 0, reject(Unauthorized, nil)
	}

	call, err := decodeCall(input)
	if err != nil {
		log.Warn("NativeMinter: rejected calldata", "caller", caller, "len", len(input), "err", err)
		return nil, 0, err
	}

	switch call.op {
	case opMint:
		err = con.mint(c, call.target, call.amount)
	case opBurn:
		err = con.burn(c, call.target, call.amount)
	default:
		err = reject(UnknownOperation, nil)
	}
	if err != nil {
		return nil, 0, err
	}
	return []byte{}, c.GasLeft(), nil
}

// Credits value to recipient
func (con *NativeMinter) mint(c ctx, recipient addr, value *uint256.Int) error {
	log.Debug("Minting native tokens", "recipient", recipient, "amount", value)

	if c.ledger == nil {
		return reject(LedgerError, ErrNoLedger)
	}
	balance, err := c.ledger.Balance(recipient)
	if err != nil {
		return reject(LedgerError, err)
	}
	updated, overflow := new(uint256.Int).AddOverflow(balance, value)
	if overflow {
		return reject(LedgerError, ErrBalanceOverflow)
	}
	if err := c.ledger.SetBalance(recipient, updated); err != nil {
		return reject(LedgerError, err)
	}
	return nil
}

// Debits value from an account that must already hold at least that much
func (con *NativeMinter) burn(c ctx, from addr, value *uint256.Int) error {
	log.Debug("Burning native tokens", "from", from, "amount", value)

	if c.ledger == nil {
		return reject(LedgerError, ErrNoLedger)
	}
	balance, err := c.ledger.Balance(from)
	if err != nil {
		return reject(LedgerError, err)
	}
	if balance.Lt(value) {
		log.Warn("NativeMinter: insufficient balance for burn", "from", from, "amount", value, "balance", balance)
		return reject(InsufficientBalance, nil)
	}
	updated := new(uint256.Int).Sub(balance, value)
	if err := c.ledger.SetBalance(from, updated); err != nil {
		return reject(LedgerError, err)
	}
	return nil
}
