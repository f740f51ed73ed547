// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/metrics/exp"

	"github.com/rkbchain/rkb/cmd/genericconf"
	"github.com/rkbchain/rkb/gethhook"
	"github.com/rkbchain/rkb/precompiles"
	"github.com/rkbchain/rkb/util/confighelpers"
)

func main() {
	os.Exit(mainImpl())
}

func mainImpl() int {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	config, err := ParseRkb(ctx, os.Args[1:])
	if errors.Is(err, errDumped) {
		return 0
	}
	if err != nil {
		confighelpers.PrintErrorAndExit(err, printSampleUsage)
	}

	err = genericconf.InitLog(config.LogType, config.LogLevel, &config.FileLogging, genericconf.DefaultPathResolver(""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		return 1
	}
	defer func() {
		if err := genericconf.CloseLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
		}
	}()

	startMetrics(config)

	factory, err := config.NativeMinter.NewEvmFactory()
	if err != nil {
		log.Error("Error creating EVM factory", "err", err)
		return 1
	}
	chainConfig := config.Chain.ChainConfig()
	blockNumber := new(big.Int).SetUint64(config.Chain.BlockNumber)
	set := factory.Precompiles(chainConfig, blockNumber, config.Chain.Time)
	log.Info("Precompile set built", "chain", config.Chain.Name, "block", blockNumber, "time", config.Chain.Time, "count", len(set), "addresses", set.Addresses())

	if !config.Simulate.Enable {
		return 0
	}
	if err := simulate(os.Stdout, set, factory.AuthorizedCaller(), &config.Simulate); err != nil {
		log.Error("Simulation failed", "err", err)
		return 1
	}
	return 0
}

// startMetrics enables the metrics registry the precompile counters are
// recorded in and, when an address is configured, serves it.
func startMetrics(config *RkbConfig) {
	if !config.Metrics {
		return
	}
	metrics.Enabled = true
	go metrics.CollectProcessMetrics(config.MetricsServer.UpdateInterval)
	if config.MetricsServer.Addr != "" {
		address := fmt.Sprintf("%v:%v", config.MetricsServer.Addr, config.MetricsServer.Port)
		exp.Setup(address)
	}
}

// simulate routes the configured call through set and reports the outcome and
// every balance it knows about to out. A rejected call is an outcome, not a
// failure.
func simulate(out io.Writer, set gethhook.PrecompileSet, authorizedCaller common.Address, config *SimulateConfig) error {
	input, err := config.Input()
	if err != nil {
		return err
	}
	balances, err := config.StartingBalances()
	if err != nil {
		return err
	}
	ledger := precompiles.NewMemoryLedger()
	for account, balance := range balances {
		if err := ledger.SetBalance(account, balance); err != nil {
			return err
		}
	}

	to := common.HexToAddress(config.To)
	caller := authorizedCaller
	if config.Caller != "" {
		caller = common.HexToAddress(config.Caller)
	}
	actingAs := to
	if config.ActingAs != "" {
		actingAs = common.HexToAddress(config.ActingAs)
	}
	if config.Target != "" {
		balances[common.HexToAddress(config.Target)] = nil
	}

	output, gasLeft, callErr := set.Call(to, input, actingAs, caller, common.Big0, config.Static, config.Gas, ledger)
	if errors.Is(callErr, gethhook.ErrNoPrecompile) {
		return callErr
	}
	log.Info("Simulated call", "to", to, "caller", caller, "actingAs", actingAs, "static", config.Static, "gas", config.Gas, "gasLeft", gasLeft, "err", callErr)

	if callErr != nil {
		fmt.Fprintf(out, "status: rejected (%v)\n", callErr)
	} else {
		fmt.Fprintf(out, "status: success\n")
	}
	fmt.Fprintf(out, "gas used: %d\n", config.Gas-gasLeft)
	if len(output) > 0 {
		fmt.Fprintf(out, "output: %#x\n", output)
	}
	accounts := make([]common.Address, 0, len(balances))
	for account := range balances {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return bytes.Compare(accounts[i][:], accounts[j][:]) < 0
	})
	for _, account := range accounts {
		balance, err := ledger.Balance(account)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "balance %v: %v\n", account, balance.Dec())
	}
	return nil
}
