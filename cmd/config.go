package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName    = "config"
	configType    = "toml"
	configDirName = ".pbx"
	envPrefix     = "PBX"

	localeKey    = "locale"
	timezoneKey  = "timezone"
	logLevelKey  = "log.level"
	logFormatKey = "log.format"

	metricsTextfileKey = "metrics.textfile"

	defaultLocale    = "en"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

func registerGlobalFlags(flags *pflag.FlagSet, cfg *viper.Viper) error {
	flags.String("locale", defaultLocale, "Language for status text and notices (en, pt-BR)")
	flags.String("timezone", "", "IANA timezone used for day boundaries (default: local)")
	flags.String("log-level", defaultLogLevel, "Log level: debug, info, warn, error")
	flags.String("log-format", defaultLogFormat, "Log format: text or json")

	bindings := map[string]string{
		localeKey:    "locale",
		timezoneKey:  "timezone",
		logLevelKey:  "log-level",
		logFormatKey: "log-format",
	}
	for key, flag := range bindings {
		if err := cfg.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	return nil
}

// loadConfig reads ~/.pbx/config.toml (or configPath) and PBX_* environment variables into cfg.
// A missing default config file is not an error.
func loadConfig(cfg *viper.Viper, configPath string) error {
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(localeKey, defaultLocale)
	cfg.SetDefault(logLevelKey, defaultLogLevel)
	cfg.SetDefault(logFormatKey, defaultLogFormat)

	if configPath != "" {
		cfg.SetConfigFile(configPath)
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}

func resolveLocation(cfg *viper.Viper) (*time.Location, error) {
	name := strings.TrimSpace(cfg.GetString(timezoneKey))
	if name == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}

	return loc, nil
}

func resolveLocale(cfg *viper.Viper) domain.Locale {
	return domain.LocaleFor(cfg.GetString(localeKey))
}
