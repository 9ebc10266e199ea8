package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-lineitems/pkg/config"
)

const (
	configFileName = "lineitems"
	envPrefix      = "LINEITEMS"

	cfgKeyLocale    = "locale"
	cfgKeyStrategy  = "strategy"
	cfgKeyBlankRows = "blank-rows"
	cfgKeyTheme     = "theme"
	cfgKeyVariant   = "theme-variant"
	cfgKeyTimeout   = "http-timeout"
	cfgKeyAction    = "action"
)

// newSettings binds the persistent flags and LINEITEMS_* variables. Flags
// win over the environment, which wins over the settings file.
func newSettings(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{cfgKeyLocale, cfgKeyStrategy, cfgKeyBlankRows, cfgKeyTheme, cfgKeyVariant} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return v, nil
}

// loadConfig reads the settings file, then applies overrides from v. An
// explicit path must exist; the default ./lineitems.{yaml,json,toml} is
// optional.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	cfg := config.Default()
	if path == "" {
		finder := viper.New()
		finder.SetConfigName(configFileName)
		finder.AddConfigPath(".")
		if err := finder.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else {
			path = finder.ConfigFileUsed()
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if v == nil {
		return cfg, cfg.Validate()
	}

	if v.IsSet(cfgKeyLocale) {
		cfg.Locale = v.GetString(cfgKeyLocale)
	}
	if v.IsSet(cfgKeyStrategy) {
		cfg.Strategy = v.GetString(cfgKeyStrategy)
	}
	if v.IsSet(cfgKeyBlankRows) {
		cfg.BlankRows = v.GetInt(cfgKeyBlankRows)
	}
	if v.IsSet(cfgKeyTheme) {
		cfg.Theme.Name = v.GetString(cfgKeyTheme)
	}
	if v.IsSet(cfgKeyVariant) {
		cfg.Theme.Variant = v.GetString(cfgKeyVariant)
	}
	if v.IsSet(cfgKeyTimeout) {
		cfg.HTTPTimeout = v.GetString(cfgKeyTimeout)
	}
	if v.IsSet(cfgKeyAction) {
		cfg.Action = v.GetString(cfgKeyAction)
	}
	return cfg, cfg.Validate()
}
