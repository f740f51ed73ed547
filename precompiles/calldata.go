// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package precompiles

import (
	_ "embed"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	//go:embed NativeMinter.abi
	nativeMinterRawABI string

	NativeMinterABI = parseABI(nativeMinterRawABI)

	// MintSelector is keccak256("mint(address,uint256)")[:4], 0x40c10f19
	MintSelector = selectorOf(NativeMinterABI, "mint")
	// BurnSelector is keccak256("burn(address,uint256)")[:4], 0x9dc29fac
	BurnSelector = selectorOf(NativeMinterABI, "burn")
)

func parseABI(rawABI string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(rawABI))
	if err != nil {
		panic(err)
	}
	return parsed
}

func selectorOf(source abi.ABI, name string) bytes4 {
	method, ok := source.Methods[name]
	if !ok {
		panic(fmt.Errorf("given method (%s) does not exist in the ABI", name))
	}
	if len(method.ID) != 4 {
		panic("Method ID isn't 4 bytes")
	}
	return bytes4(method.ID)
}

type operation uint8

const (
	opUnknown operation = iota
	opMint
	opBurn
)

func (op operation) String() string {
	switch op {
	case opMint:
		return "mint"
	case opBurn:
		return "burn"
	default:
		return "unknown"
	}
}

// mintBurnCall is a decoded call to either mint or burn. Target is the
// recipient for a mint and the account debited for a burn.
type mintBurnCall struct {
	op     operation
	target addr
	amount *uint256.Int
}

// decodeCall resolves the selector and then the arguments of input. Selector
// failures are reported before any argument is looked at.
func decodeCall(input []byte) (mintBurnCall, error) {
	if len(input) < 4 {
		return mintBurnCall{}, reject(MalformedCall, errShortCalldata)
	}
	selector := bytes4(input[:4])

	var op operation
	switch selector {
	case MintSelector:
		op = opMint
	case BurnSelector:
		op = opBurn
	default:
		return mintBurnCall{}, reject(UnknownOperation, fmt.Errorf("selector %#x", selector[:]))
	}
	method := NativeMinterABI.Methods[op.String()]

	args := input[4:]
	if len(args) < 2*common.HashLength {
		return mintBurnCall{}, reject(MalformedCall, fmt.Errorf("%w: %d bytes", errShortArguments, len(args)))
	}
	// Stricter than a lenient ABI decoder, which would keep the low 20 bytes.
	for _, b := range args[:common.HashLength-common.AddressLength] {
		if b != 0 {
			return mintBurnCall{}, reject(MalformedCall, errDirtyAddressWord)
		}
	}

	values, err := method.Inputs.Unpack(args)
	if err != nil {
		return mintBurnCall{}, reject(MalformedCall, err)
	}
	if len(values) != 2 {
		return mintBurnCall{}, reject(MalformedCall, fmt.Errorf("%w: %d values", errUnexpectedArgType, len(values)))
	}
	target, ok := values[0].(common.Address)
	if !ok {
		return mintBurnCall{}, reject(MalformedCall, fmt.Errorf("%w: %T", errUnexpectedArgType, values[0]))
	}
	bigAmount, ok := values[1].(*big.Int)
	if !ok {
		return mintBurnCall{}, reject(MalformedCall, fmt.Errorf("%w: %T", errUnexpectedArgType, values[1]))
	}
	value, overflow := uint256.FromBig(bigAmount)
	if overflow {
		return mintBurnCall{}, reject(MalformedCall, fmt.Errorf("amount %v overflows uint256", bigAmount))
	}
	return mintBurnCall{op: op, target: target, amount: value}, nil
}

// PackMint packs calldata for mint(recipient, value), selector included.
func PackMint(recipient addr, value *uint256.Int) ([]byte, error) {
	return NativeMinterABI.Pack("mint", recipient, value.ToBig())
}

// PackBurn packs calldata for burn(from, value), selector included.
func PackBurn(from addr, value *uint256.Int) ([]byte, error) {
	return NativeMinterABI.Pack("burn", from, value.ToBig())
}
