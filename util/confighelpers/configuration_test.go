// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package confighelpers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"

	"github.com/rkbchain/rkb/util/testhelpers"
)

type testMinterConfig struct {
	Enable           bool   `koanf:"enable"`
	AuthorizedBridge string `koanf:"authorized-bridge"`
}

type testConfig struct {
	Conf struct {
		Dump      bool     `koanf:"dump"`
		EnvPrefix string   `koanf:"env-prefix"`
		File      []string `koanf:"file"`
		String    string   `koanf:"string"`
	} `koanf:"conf"`
	LogLevel     string           `koanf:"log-level"`
	NativeMinter testMinterConfig `koanf:"native-minter"`
}

var bridgeAlias = EnvAlias{Name: "TESTRKB_AUTHORIZED_BRIDGE", Key: "native-minter.authorized-bridge"}

func parse(t *testing.T, args ...string) (*testConfig, error) {
	t.Helper()
	f := flag.NewFlagSet("", flag.ContinueOnError)
	f.Bool("conf.dump", false, "")
	f.String("conf.env-prefix", "TESTRKB", "")
	f.StringSlice("conf.file", nil, "")
	f.String("conf.string", "", "")
	f.String("log-level", "INFO", "")
	f.Bool("native-minter.enable", true, "")
	f.String("native-minter.authorized-bridge", "0x0000000000000000000000000000000000000000", "")

	k, err := BeginCommonParse(f, args, bridgeAlias)
	if err != nil {
		return nil, err
	}
	var config testConfig
	if err := EndCommonParse(k, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func TestDefaultsAndFlags(t *testing.T) {
	config, err := parse(t, "--native-minter.enable=false", "--log-level", "debug")
	testhelpers.RequireImpl(t, err)
	want := testMinterConfig{Enable: false, AuthorizedBridge: "0x0000000000000000000000000000000000000000"}
	if diff := cmp.Diff(want, config.NativeMinter); diff != "" {
		testhelpers.FailImpl(t, "unexpected config (-want +got):\n", diff)
	}
	if config.LogLevel != "debug" {
		testhelpers.FailImpl(t, "unexpected log level", config.LogLevel)
	}
}

func TestConfigSourcesLayer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rkb.json")
	contents, err := json.Marshal(map[string]interface{}{
		"log-level":     "warn",
		"native-minter": map[string]interface{}{"authorized-bridge": "0x00000000000000000000000000000000000000f1"},
	})
	testhelpers.RequireImpl(t, err)
	testhelpers.RequireImpl(t, os.WriteFile(path, contents, 0o600))

	config, err := parse(t, "--conf.file", path)
	testhelpers.RequireImpl(t, err)
	if config.LogLevel != "warn" || config.NativeMinter.AuthorizedBridge != "0x00000000000000000000000000000000000000f1" {
		testhelpers.FailImpl(t, "file not applied", config)
	}

	// config string beats the file
	config, err = parse(t, "--conf.file", path, "--conf.string", `{"log-level":"error"}`)
	testhelpers.RequireImpl(t, err)
	if config.LogLevel != "error" {
		testhelpers.FailImpl(t, "config string not applied", config.LogLevel)
	}

	// environment beats both
	t.Setenv("TESTRKB_LOG__LEVEL", "trace")
	config, err = parse(t, "--conf.file", path, "--conf.string", `{"log-level":"error"}`)
	testhelpers.RequireImpl(t, err)
	if config.LogLevel != "trace" {
		testhelpers.FailImpl(t, "environment not applied", config.LogLevel)
	}

	// an explicit flag beats everything
	config, err = parse(t, "--conf.file", path, "--log-level", "crit")
	testhelpers.RequireImpl(t, err)
	if config.LogLevel != "crit" {
		testhelpers.FailImpl(t, "flag did not win", config.LogLevel)
	}
}

func TestEnvironmentAlias(t *testing.T) {
	t.Setenv("TESTRKB_AUTHORIZED_BRIDGE", "0x00000000000000000000000000000000000000a1")
	config, err := parse(t)
	testhelpers.RequireImpl(t, err)
	if config.NativeMinter.AuthorizedBridge != "0x00000000000000000000000000000000000000a1" {
		testhelpers.FailImpl(t, "alias not applied", config.NativeMinter.AuthorizedBridge)
	}

	t.Setenv("TESTRKB_NATIVE__MINTER_AUTHORIZED__BRIDGE", "0x00000000000000000000000000000000000000a2")
	config, err = parse(t)
	testhelpers.RequireImpl(t, err)
	if config.NativeMinter.AuthorizedBridge != "0x00000000000000000000000000000000000000a2" {
		testhelpers.FailImpl(t, "prefixed variable should win over the alias", config.NativeMinter.AuthorizedBridge)
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	if _, err := parse(t, "--conf.string", `{"native-minter":{"owner":"0x01"}}`); err == nil {
		testhelpers.FailImpl(t, "unknown key accepted")
	}
	t.Setenv("TESTRKB_NOT_A_KEY", "1")
	if _, err := parse(t); err == nil {
		testhelpers.FailImpl(t, "unknown environment key accepted")
	}
}

func TestUnexpectedArguments(t *testing.T) {
	if _, err := parse(t, "stray"); err == nil {
		testhelpers.FailImpl(t, "positional argument accepted")
	}
	if _, err := parse(t, "--help"); err != ErrHelp {
		testhelpers.FailImpl(t, "expected ErrHelp, got", err)
	}
}

func TestDumpConfig(t *testing.T) {
	f := flag.NewFlagSet("", flag.ContinueOnError)
	f.Bool("conf.dump", false, "")
	f.String("conf.env-prefix", "", "")
	f.StringSlice("conf.file", nil, "")
	f.String("conf.string", "", "")
	f.String("native-minter.authorized-bridge", "", "")
	k, err := BeginCommonParse(f, []string{"--conf.dump", "--native-minter.authorized-bridge", "0xb1"})
	testhelpers.RequireImpl(t, err)

	dump, err := DumpConfig(k, map[string]interface{}{"conf.dump": false})
	testhelpers.RequireImpl(t, err)
	if !strings.Contains(string(dump), `"authorized-bridge":"0xb1"`) || !strings.Contains(string(dump), `"dump":false`) {
		testhelpers.FailImpl(t, "unexpected dump", string(dump))
	}
}
