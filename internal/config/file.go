package config

import (
	"flag"
	"strconv"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// fileConfig mirrors the TOML configuration file:
//
//	timeout     = "45s"
//	concurrency = 4
//	max_digits  = 50000
//	port        = 9090
//	log_level   = "debug"
//	json        = false
//	quiet       = false
//	verbose     = true
//	no_color    = false
type fileConfig struct {
	Timeout     string `toml:"timeout"`
	Concurrency int64  `toml:"concurrency"`
	MaxDigits   int64  `toml:"max_digits"`
	Port        int64  `toml:"port"`
	LogLevel    string `toml:"log_level"`
	JSON        bool   `toml:"json"`
	Quiet       bool   `toml:"quiet"`
	Verbose     bool   `toml:"verbose"`
	NoColor     bool   `toml:"no_color"`
}

// applyFileConfig loads path and copies every key it defines into config,
// unless the matching flag was given on the command line.
func applyFileConfig(config *AppConfig, fs *flag.FlagSet, path string) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return apperrors.NewConfigError("%s: failed to parse TOML: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return apperrors.NewConfigError("%s: unknown key %q", path, undecoded[0].String())
	}

	set := func(key string, flags ...string) bool {
		return meta.IsDefined(key) && !isFlagSet(fs, flags...)
	}

	if set("timeout", "timeout") {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("%s: invalid timeout %q", path, fc.Timeout)
		}
		config.Timeout = d
	}
	if set("concurrency", "concurrency") {
		n, err := safecast.Conv[int](fc.Concurrency)
		if err != nil {
			return apperrors.NewConfigError("%s: concurrency out of range: %d", path, fc.Concurrency)
		}
		config.Concurrency = n
	}
	if set("max_digits", "max-digits") {
		n, err := safecast.Conv[int](fc.MaxDigits)
		if err != nil {
			return apperrors.NewConfigError("%s: max_digits out of range: %d", path, fc.MaxDigits)
		}
		config.MaxDigits = n
	}
	if set("port", "port") {
		p, err := safecast.Conv[uint16](fc.Port)
		if err != nil {
			return apperrors.NewConfigError("%s: port out of range: %d", path, fc.Port)
		}
		config.Port = strconv.Itoa(int(p))
	}
	if set("log_level", "log-level") {
		config.LogLevel = fc.LogLevel
	}
	if set("json", "json") {
		config.JSONOutput = fc.JSON
	}
	if set("quiet", "quiet", "q") {
		config.Quiet = fc.Quiet
	}
	if set("verbose", "v") {
		config.Verbose = fc.Verbose
	}
	if set("no_color", "no-color") {
		config.NoColor = fc.NoColor
	}
	return nil
}
