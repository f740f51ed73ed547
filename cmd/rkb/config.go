// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/rkbchain/rkb/cmd/genericconf"
	"github.com/rkbchain/rkb/gethhook"
	"github.com/rkbchain/rkb/precompiles"
	"github.com/rkbchain/rkb/util/confighelpers"
)

const authorizedBridgeEnv = "RKB_AUTHORIZED_BRIDGE"

type RkbConfig struct {
	Conf          genericconf.ConfConfig          `koanf:"conf"`
	LogLevel      string                          `koanf:"log-level"`
	LogType       string                          `koanf:"log-type"`
	FileLogging   genericconf.FileLoggingConfig   `koanf:"file-logging"`
	Metrics       bool                            `koanf:"metrics"`
	MetricsServer genericconf.MetricsServerConfig `koanf:"metrics-server"`
	NativeMinter  gethhook.Config                 `koanf:"native-minter"`
	Chain         ChainConfig                     `koanf:"chain"`
	Simulate      SimulateConfig                  `koanf:"simulate"`
}

var RkbConfigDefault = RkbConfig{
	Conf:          genericconf.ConfConfigDefault,
	LogLevel:      "INFO",
	LogType:       "plaintext",
	FileLogging:   genericconf.DefaultFileLoggingConfig,
	Metrics:       false,
	MetricsServer: genericconf.MetricsServerConfigDefault,
	NativeMinter:  gethhook.ConfigDefault,
	Chain:         ChainConfigDefault,
	Simulate:      SimulateConfigDefault,
}

func RkbConfigAddOptions(f *flag.FlagSet) {
	genericconf.ConfConfigAddOptions("conf", f)
	f.String("log-level", RkbConfigDefault.LogLevel, "log level, valid values are CRIT, ERROR, WARN, INFO, DEBUG, TRACE")
	f.String("log-type", RkbConfigDefault.LogType, "log type (plaintext or json)")
	genericconf.FileLoggingConfigAddOptions("file-logging", f)
	f.Bool("metrics", RkbConfigDefault.Metrics, "enable metrics")
	genericconf.MetricsServerAddOptions("metrics-server", f)
	gethhook.ConfigAddOptions("native-minter", f)
	ChainConfigAddOptions("chain", f)
	SimulateConfigAddOptions("simulate", f)
}

func (c *RkbConfig) Validate() error {
	if err := c.NativeMinter.Validate(); err != nil {
		return err
	}
	if err := c.Chain.Validate(); err != nil {
		return err
	}
	return c.Simulate.Validate()
}

type ChainConfig struct {
	Name        string `koanf:"name"`
	BlockNumber uint64 `koanf:"block-number"`
	Time        uint64 `koanf:"time"`
}

var ChainConfigDefault = ChainConfig{
	Name:        "dev",
	BlockNumber: 0,
	Time:        0,
}

func ChainConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.String(prefix+".name", ChainConfigDefault.Name, "chain whose fork schedule selects the standard precompiles (mainnet, sepolia, holesky or dev)")
	f.Uint64(prefix+".block-number", ChainConfigDefault.BlockNumber, "block number used to select the active fork")
	f.Uint64(prefix+".time", ChainConfigDefault.Time, "block timestamp used to select the active fork")
}

var knownChains = map[string]*params.ChainConfig{
	"mainnet": params.MainnetChainConfig,
	"sepolia": params.SepoliaChainConfig,
	"holesky": params.HoleskyChainConfig,
	"dev":     params.AllDevChainProtocolChanges,
}

func (c *ChainConfig) Validate() error {
	if _, ok := knownChains[strings.ToLower(c.Name)]; !ok {
		return fmt.Errorf("unknown chain %q", c.Name)
	}
	return nil
}

func (c *ChainConfig) ChainConfig() *params.ChainConfig {
	return knownChains[strings.ToLower(c.Name)]
}

// SimulateConfig describes a single call routed through the precompile set
// against an in-memory ledger.
type SimulateConfig struct {
	Enable   bool     `koanf:"enable"`
	To       string   `koanf:"to"`
	Caller   string   `koanf:"caller"`
	Calldata string   `koanf:"calldata"`
	Op       string   `koanf:"op"`
	Target   string   `koanf:"target"`
	Amount   string   `koanf:"amount"`
	Gas      uint64   `koanf:"gas"`
	Static   bool     `koanf:"static"`
	ActingAs string   `koanf:"acting-as"`
	Balances []string `koanf:"balances"`
}

var SimulateConfigDefault = SimulateConfig{
	Enable:   false,
	To:       precompiles.NativeMinterAddress.Hex(),
	Caller:   "",
	Calldata: "",
	Op:       "",
	Target:   "",
	Amount:   "0",
	Gas:      100_000,
	Static:   false,
	ActingAs: "",
	Balances: []string{},
}

func SimulateConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".enable", SimulateConfigDefault.Enable, "run one call through the precompile set against an in-memory ledger and exit")
	f.String(prefix+".to", SimulateConfigDefault.To, "precompile address to call")
	f.String(prefix+".caller", SimulateConfigDefault.Caller, "caller of the simulated call (defaults to the authorized bridge)")
	f.String(prefix+".calldata", SimulateConfigDefault.Calldata, "hex calldata, overrides op, target and amount")
	f.String(prefix+".op", SimulateConfigDefault.Op, "mint or burn, used to build calldata when none is given")
	f.String(prefix+".target", SimulateConfigDefault.Target, "recipient of a mint or account debited by a burn")
	f.String(prefix+".amount", SimulateConfigDefault.Amount, "decimal amount to mint or burn")
	f.Uint64(prefix+".gas", SimulateConfigDefault.Gas, "gas supplied to the call")
	f.Bool(prefix+".static", SimulateConfigDefault.Static, "simulate a STATICCALL")
	f.String(prefix+".acting-as", SimulateConfigDefault.ActingAs, "account the code runs as, set it to simulate a DELEGATECALL or CALLCODE")
	f.StringSlice(prefix+".balances", SimulateConfigDefault.Balances, "starting balances as address=amount")
}

func (c *SimulateConfig) Validate() error {
	if !c.Enable {
		return nil
	}
	for _, address := range []string{c.To, c.Caller, c.Target, c.ActingAs} {
		if address != "" && !common.IsHexAddress(address) {
			return fmt.Errorf("invalid simulate address %q", address)
		}
	}
	if c.Calldata != "" {
		if _, err := hexutil.Decode(c.Calldata); err != nil {
			return fmt.Errorf("invalid simulate calldata: %w", err)
		}
	} else if c.Op != "mint" && c.Op != "burn" {
		return fmt.Errorf("simulate needs calldata or an op of mint or burn, got %q", c.Op)
	}
	if _, err := uint256.FromDecimal(c.Amount); err != nil {
		return fmt.Errorf("invalid simulate amount %q: %w", c.Amount, err)
	}
	_, err := c.StartingBalances()
	return err
}

// Input returns the configured calldata, or packs it from op, target and
// amount.
func (c *SimulateConfig) Input() ([]byte, error) {
	if c.Calldata != "" {
		return hexutil.Decode(c.Calldata)
	}
	amount, err := uint256.FromDecimal(c.Amount)
	if err != nil {
		return nil, err
	}
	target := common.HexToAddress(c.Target)
	switch c.Op {
	case "mint":
		return precompiles.PackMint(target, amount)
	case "burn":
		return precompiles.PackBurn(target, amount)
	default:
		return nil, fmt.Errorf("unknown op %q", c.Op)
	}
}

func (c *SimulateConfig) StartingBalances() (map[common.Address]*uint256.Int, error) {
	balances := make(map[common.Address]*uint256.Int, len(c.Balances))
	for _, entry := range c.Balances {
		address, amount, found := strings.Cut(entry, "=")
		if !found || !common.IsHexAddress(address) {
			return nil, fmt.Errorf("invalid balance entry %q, want address=amount", entry)
		}
		value, err := uint256.FromDecimal(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid balance entry %q: %w", entry, err)
		}
		balances[common.HexToAddress(address)] = value
	}
	return balances, nil
}

func printSampleUsage(name string) {
	fmt.Printf("Sample usage: %s --native-minter.authorized-bridge 0x... --chain.name mainnet \n", name)
	fmt.Printf("              %s --simulate.enable --simulate.op mint --simulate.target 0x... --simulate.amount 1000 \n", name)
}

func ParseRkb(_ context.Context, args []string) (*RkbConfig, error) {
	f := flag.NewFlagSet("", flag.ContinueOnError)

	RkbConfigAddOptions(f)

	k, err := confighelpers.BeginCommonParse(f, args, confighelpers.EnvAlias{
		Name: authorizedBridgeEnv,
		Key:  "native-minter.authorized-bridge",
	})
	if err != nil {
		return nil, err
	}

	var config RkbConfig
	if err := confighelpers.EndCommonParse(k, &config); err != nil {
		return nil, err
	}

	if config.Conf.Dump {
		c, err := confighelpers.DumpConfig(k, map[string]interface{}{
			"conf.dump": false,
		})
		if err != nil {
			return nil, errors.Wrap(err, "unable to dump config")
		}
		fmt.Println(string(c))
		return nil, errDumped
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &config, nil
}

var errDumped = errors.New("configuration dumped")
