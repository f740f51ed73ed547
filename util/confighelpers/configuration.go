// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package confighelpers

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/mitchellh/mapstructure"
	flag "github.com/spf13/pflag"
)

var ErrHelp = errors.New("help requested")

// EnvAlias binds an environment variable outside the prefix scheme to a
// config key, e.g. RKB_AUTHORIZED_BRIDGE to native-minter.authorized-bridge.
type EnvAlias struct {
	Name string
	Key  string
}

func BeginCommonParse(f *flag.FlagSet, args []string, aliases ...EnvAlias) (*koanf.Koanf, error) {
	if err := f.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, err
	}

	if f.NArg() != 0 {
		// Unexpected number of parameters
		return nil, errors.New("unexpected number of parameters")
	}

	var k = koanf.New(".")

	// Load defaults from command line defaults, which will be overridden by config file
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults from command line: %w", err)
	}

	// Initial application of command line parameters and environment variables
	if err := applyOverrides(f, k, aliases); err != nil {
		return nil, err
	}

	configFiles := k.Strings("conf.file")
	if len(configFiles) > 0 {
		for _, configFile := range configFiles {
			if err := k.Load(file.Provider(configFile), json.Parser()); err != nil {
				return nil, fmt.Errorf("error loading local config file %s: %w", configFile, err)
			}
		}

		// Command line, config string and environment override config files
		if err := applyOverrides(f, k, aliases); err != nil {
			return nil, err
		}
	}

	return k, nil
}

func applyOverrides(f *flag.FlagSet, k *koanf.Koanf, aliases []EnvAlias) error {
	// Command line overrides config file or config string
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return fmt.Errorf("error loading command line config: %w", err)
	}

	// Config string overrides any config file
	configString := k.String("conf.string")
	if len(configString) > 0 {
		if err := k.Load(rawbytes.Provider([]byte(configString)), json.Parser()); err != nil {
			return fmt.Errorf("error loading config string config: %w", err)
		}
	}

	// Environment variables override config files and the config string
	if err := loadEnvironmentVariables(k, aliases); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	// Flags given explicitly win over everything, defaults never override a
	// key that is already set
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return fmt.Errorf("error loading command line config: %w", err)
	}
	return nil
}

func loadEnvironmentVariables(k *koanf.Koanf, aliases []EnvAlias) error {
	if len(aliases) > 0 {
		keys := make(map[string]string, len(aliases))
		for _, alias := range aliases {
			keys[alias.Name] = alias.Key
		}
		err := k.Load(env.Provider("", ".", func(s string) string {
			return keys[s]
		}), nil)
		if err != nil {
			return err
		}
	}

	envPrefix := k.String("conf.env-prefix")
	if len(envPrefix) == 0 {
		return nil
	}
	return k.Load(env.Provider(envPrefix+"_", ".", func(s string) string {
		for _, alias := range aliases {
			if s == alias.Name {
				return ""
			}
		}
		// FOO__BAR -> foo-bar to handle dash in config names
		s = strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, envPrefix+"_")), "__", "-")
		return strings.ReplaceAll(s, "_", ".")
	}), nil)
}

func EndCommonParse(k *koanf.Koanf, config interface{}) error {
	decoderConfig := mapstructure.DecoderConfig{
		ErrorUnused: true,

		// Default values
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(",")),
		Metadata:         nil,
		Result:           config,
		WeaklyTypedInput: true,
	}
	return k.UnmarshalWithConf("", config, koanf.UnmarshalConf{DecoderConfig: &decoderConfig})
}

// DumpConfig renders the active configuration as JSON after applying
// extraOverrideFields, which is how secrets and the dump flag itself are kept
// out of the output.
func DumpConfig(k *koanf.Koanf, extraOverrideFields map[string]interface{}) ([]byte, error) {
	if err := k.Load(confmap.Provider(extraOverrideFields, "."), nil); err != nil {
		return nil, fmt.Errorf("error removing extra parameters before dump: %w", err)
	}
	c, err := k.Marshal(json.Parser())
	if err != nil {
		return nil, fmt.Errorf("unable to marshal config file to JSON: %w", err)
	}
	return c, nil
}

func PrintErrorAndExit(err error, usage func(string)) {
	if err == nil {
		return
	}
	usage(os.Args[0])
	if !errors.Is(err, ErrHelp) {
		fmt.Fprintf(os.Stderr, "\nFatal configuration error: %s\n", err.Error())
		os.Exit(1)
	}
	os.Exit(0)
}
