package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigDataPath           = "data-path"
	ConfigCorpusFile         = "corpus-file"
	ConfigCorpusEncoding     = "corpus-encoding"
	ConfigLetterDistribution = "letter-distribution"
	ConfigFunFactor          = "fun-factor"
	ConfigTimeLimit          = "time-limit"
	ConfigHandSize           = "hand-size"
	ConfigMaxHandAttempts    = "max-hand-attempts"
	ConfigBuildThreads       = "build-threads"
	ConfigStatsExportPath    = "stats-export-path"
	ConfigCPUProfile         = "cpu-profile"
	ConfigMemProfile         = "mem-profile"
)

// pathKeys are settings holding filesystem paths that may be relative to
// the executable directory.
var pathKeys = []string{ConfigDataPath, ConfigCorpusFile, ConfigStatsExportPath}

type kind int

const (
	kindBool kind = iota + 1
	kindInt
	kindUint
	kindDuration
)

// typedKeys are settings whose values are parsed when they are set, so that
// a bad value is an error rather than a silent zero.
var typedKeys = map[string]kind{
	ConfigDebug:           kindBool,
	ConfigFunFactor:       kindInt,
	ConfigHandSize:        kindInt,
	ConfigBuildThreads:    kindInt,
	ConfigMaxHandAttempts: kindUint,
	ConfigTimeLimit:       kindDuration,
}

// ParseDuration parses a Go duration string. A bare integer is a number of
// seconds, so "60" and "60s" are the same.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

func parseValue(key string, val any) (any, error) {
	k, ok := typedKeys[key]
	if !ok {
		return val, nil
	}
	var out any
	var err error
	switch k {
	case kindDuration:
		if d, ok := val.(time.Duration); ok {
			return d, nil
		}
		out, err = ParseDuration(fmt.Sprint(val))
	default:
		s, ok := val.(string)
		if !ok {
			return val, nil
		}
		switch k {
		case kindBool:
			out, err = strconv.ParseBool(strings.TrimSpace(s))
		case kindInt:
			out, err = strconv.Atoi(strings.TrimSpace(s))
		case kindUint:
			var u uint64
			u, err = strconv.ParseUint(strings.TrimSpace(s), 10, 0)
			out = uint(u)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("bad value %q for %v: %w", fmt.Sprint(val), key, err)
	}
	return out, nil
}

// set parses val for key and stores it in the override layer.
func (c *Config) set(key string, val any) error {
	v, err := parseValue(key, val)
	if err != nil {
		return err
	}
	c.Set(key, v)
	return nil
}

// coerceTyped parses the values of the typed keys that came in as text
// from the config file or the environment. With lenient set, a bad value
// is logged and replaced by the default instead of failing.
func (c *Config) coerceTyped(lenient bool) error {
	var errs []error
	for key := range typedKeys {
		err := c.set(key, c.Get(key))
		if err != nil && lenient {
			log.Warn().Err(err).Str("key", key).Msg("bad setting; using default")
			c.Set(key, defaults[key])
			continue
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

type Config struct {
	*viper.Viper
	sync.Mutex
}

// DefaultConfig returns a config with defaults and environment overrides
// only; no config file or command-line args are consulted.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	c.bindEnv()
	// Lenient coercion never fails.
	_ = c.coerceTyped(true)
	return c
}

var defaults = map[string]any{
	ConfigDebug:    false,
	ConfigDataPath: "./data",
	// An empty corpus file means the embedded default word list.
	ConfigCorpusFile:         "",
	ConfigCorpusEncoding:     "utf8",
	ConfigLetterDistribution: "scrabble",
	ConfigFunFactor:          10,
	ConfigTimeLimit:          60 * time.Second,
	ConfigHandSize:           7,
	ConfigMaxHandAttempts:    uint(100000),
	ConfigBuildThreads:       0,
	ConfigStatsExportPath:    "",
	ConfigCPUProfile:         "",
	ConfigMemProfile:         "",
}

func (c *Config) setDefaults() {
	for key, val := range defaults {
		c.SetDefault(key, val)
	}
}

func (c *Config) bindEnv() {
	c.SetEnvPrefix("anagame")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
}

// Load loads the config, in increasing order of priority, from defaults,
// an optional anagame.yaml file, ANAGAME_* environment variables, and
// --key=value arguments. The config file is looked for in the data path,
// then in $HOME/.anagame.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()
	c.bindEnv()

	c.SetConfigName("anagame")
	c.SetConfigType("yaml")
	c.AddConfigPath(c.GetString(ConfigDataPath))
	c.AddConfigPath("$HOME/.anagame")
	if err := c.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return fmt.Errorf("reading config file: %w", err)
		}
		log.Debug().Msg("no config file found; using defaults")
	} else {
		log.Debug().Str("file", c.ConfigFileUsed()).Msg("loaded config file")
	}
	if err := c.coerceTyped(false); err != nil {
		return err
	}

	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		key, val, found := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if !found {
			// bare flags are booleans, e.g. --debug
			val = "true"
		}
		if !c.Known(key) {
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := c.set(key, val); err != nil {
			return err
		}
	}
	return nil
}

// Args returns the non-flag arguments from args; these are passed to the
// shell as a single command to execute.
func Args(args []string) []string {
	var rest []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			rest = append(rest, arg)
		}
	}
	return rest
}

func (c *Config) Known(key string) bool {
	for _, k := range c.AllKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Update sets a single value at runtime, e.g. from the shell.
func (c *Config) Update(key, val string) error {
	c.Lock()
	defer c.Unlock()
	if !c.Known(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	return c.set(key, val)
}

// AdjustRelativePaths makes relative path settings relative to basepath
// (normally the directory of the executable).
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range pathKeys {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(key, filepath.Join(basepath, p))
	}
}

// SanitizedSettings returns all settings as a map, suitable for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
