// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package gethhook

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	flag "github.com/spf13/pflag"
)

type Config struct {
	Enable           bool   `koanf:"enable"`
	AuthorizedBridge string `koanf:"authorized-bridge"`
}

var ConfigDefault = Config{
	Enable:           true,
	AuthorizedBridge: common.Address{}.Hex(),
}

func ConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".enable", ConfigDefault.Enable, "register the native minter precompile (when false every call to its address is rejected)")
	f.String(prefix+".authorized-bridge", ConfigDefault.AuthorizedBridge, "the only account allowed to call the native minter (the zero address is for testing only)")
}

func (c *Config) Validate() error {
	if !common.IsHexAddress(c.AuthorizedBridge) {
		return fmt.Errorf("invalid authorized bridge address %q", c.AuthorizedBridge)
	}
	return nil
}

func (c *Config) AuthorizedCaller() common.Address {
	return common.HexToAddress(c.AuthorizedBridge)
}

// NewEvmFactory builds the factory this config describes.
func (c *Config) NewEvmFactory() (*EvmFactory, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return NewEvmFactory(c.AuthorizedCaller(), c.Enable), nil
}
