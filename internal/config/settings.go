package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings holds the user-tunable runtime configuration.
// Values are merged from defaults, an optional config file, ADDRESSBOOK_* environment
// variables and command line flags (highest precedence).
type Settings struct {
	StorePath  string `mapstructure:"store_path"`
	Language   string `mapstructure:"language"`
	NoColor    bool   `mapstructure:"no_color"`
	Debug      bool   `mapstructure:"debug"`
	ImportUser string `mapstructure:"import_user"`

	// ShowVersion is a one-shot flag and is never read from files or env.
	ShowVersion bool `mapstructure:"-"`
}

// Load parses the command line arguments (without the program name) and
// resolves the final Settings.
func Load(args []string) (*Settings, error) {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	showVersion := fs.Bool(FlagVersion, false, FlagDescVersion)
	fs.Bool(FlagDebug, false, FlagDescDebug)
	fs.String(FlagStore, "", FlagDescStore)
	fs.String(FlagLanguage, DefaultLanguage, FlagDescLanguage)
	fs.Bool(FlagNoColor, false, FlagDescNoColor)
	configPath := fs.String(FlagConfig, "", FlagDescConfig)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFlagParse, err)
	}

	v := viper.New()
	v.SetDefault(KeyStorePath, DefaultStorePath())
	v.SetDefault(KeyLanguage, DefaultLanguage)
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyImportUser, "")

	v.SetConfigType(ConfigFileType)
	if *configPath != "" {
		v.SetConfigFile(*configPath)
	} else {
		v.SetConfigName(ConfigFileName)
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppID))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
		slog.Debug(MsgConfigMissing, LogKeyComponent, CompConfig)
	} else {
		slog.Debug(MsgConfigLoaded,
			LogKeyComponent, CompConfig,
			LogKeyFile, v.ConfigFileUsed(),
		)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		KeyStorePath: FlagStore,
		KeyLanguage:  FlagLanguage,
		KeyNoColor:   FlagNoColor,
		KeyDebug:     FlagDebug,
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrFlagParse, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}
	s.ShowVersion = *showVersion

	// An empty --store flag must not erase the default location.
	if s.StorePath == "" {
		s.StorePath = DefaultStorePath()
	}

	s.Language = strings.ToLower(s.Language)
	if !slices.Contains(SupportedLanguages, s.Language) {
		slog.Warn(MsgLangUnsupport,
			LogKeyComponent, CompConfig,
			LogKeyLang, s.Language,
		)
		s.Language = DefaultLanguage
	}

	return &s, nil
}

// DefaultStorePath returns the platform-specific location of the address book,
// or a file in the working directory when no config dir is available.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return StoreFileName
	}
	return filepath.Join(dir, AppID, StoreFileName)
}
