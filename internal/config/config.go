// Package config collects the command line settings of lexmeta from
// LEXMETA_* environment variables and flags.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	lexmeta "github.com/spraakbanken/lexmeta"
	"github.com/spraakbanken/lexmeta/source"
)

const (
	dfltGlob     = "*yaml"
	dfltUnknown  = "strict"
	dfltLang     = "en"
	dfltFormat   = "yaml"
	dfltLogLevel = "info"
)

type Config struct {
	// Glob selects the files validated in a directory.
	Glob string
	// KeepGoing reports every failing file instead of stopping at the first.
	KeepGoing bool
	// Unknown is the unknown-key policy name: strict, strip or passthrough.
	Unknown string
	// FailFast stops validating a document at its first issue.
	FailFast bool
	// Lang selects the language of issue messages (BCP 47).
	Lang string
	// Format is the output format of normalize, create and schema.
	Format string

	LogFile  string
	LogLevel logging.LogLevel

	// MetricsFile, when set, receives the batch metrics in the Prometheus
	// text format.
	MetricsFile string
}

// Load reads the environment, falling back to defaults.
func Load() *Config {
	return &Config{
		Glob:        envOrDefault("LEXMETA_GLOB", dfltGlob),
		KeepGoing:   envBool("LEXMETA_KEEP_GOING", false),
		Unknown:     envOrDefault("LEXMETA_UNKNOWN", dfltUnknown),
		FailFast:    envBool("LEXMETA_FAIL_FAST", false),
		Lang:        envOrDefault("LEXMETA_LANG", dfltLang),
		Format:      envOrDefault("LEXMETA_FORMAT", dfltFormat),
		LogFile:     os.Getenv("LEXMETA_LOG_FILE"),
		LogLevel:    logging.LogLevel(envOrDefault("LEXMETA_LOG_LEVEL", dfltLogLevel)),
		MetricsFile: os.Getenv("LEXMETA_METRICS_FILE"),
	}
}

// RegisterFlags binds the settings to fs. Current values become the flag
// defaults, so flags override the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Glob, "glob", c.Glob, "file pattern matched inside the directory")
	fs.BoolVar(&c.KeepGoing, "keep-going", c.KeepGoing, "validate every file instead of stopping at the first failure")
	fs.StringVar(&c.Unknown, "unknown", c.Unknown, "unknown key policy: strict|strip|passthrough")
	fs.BoolVar(&c.FailFast, "fail-fast", c.FailFast, "stop at the first issue within a document")
	fs.StringVar(&c.Lang, "lang", c.Lang, "language of issue messages (en, sv)")
	fs.StringVar(&c.Format, "format", c.Format, "output format: yaml|json")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "log file path (stderr when empty)")
	fs.Func("log-level", "log level: debug|info|warn|error (default "+string(c.LogLevel)+")", func(s string) error {
		c.LogLevel = logging.LogLevel(s)
		return nil
	})
	fs.StringVar(&c.MetricsFile, "metrics-file", c.MetricsFile, "write batch metrics to this file (Prometheus text format)")
}

// UnknownPolicy returns the parsed policy; invalid names were already
// replaced by ValidateAndDefaults.
func (c *Config) UnknownPolicy() lexmeta.UnknownPolicy {
	p, _ := lexmeta.ParseUnknownPolicy(c.Unknown)
	return p
}

// ParseOpt projects the settings onto document parse options.
func (c *Config) ParseOpt() lexmeta.ParseOpt {
	return lexmeta.ParseOpt{Unknown: c.UnknownPolicy(), FailFast: c.FailFast}
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() source.Format {
	f, err := source.ParseFormat(c.Format)
	if err != nil {
		return source.FormatYAML
	}
	return f
}

// ValidateAndDefaults replaces invalid or missing values with defaults and
// logs a warning for each replacement.
func ValidateAndDefaults(conf *Config) {
	if conf.Glob == "" {
		conf.Glob = dfltGlob
		log.Warn().Msgf("glob not specified, using default: %s", dfltGlob)
	}
	if _, err := lexmeta.ParseUnknownPolicy(conf.Unknown); err != nil {
		log.Warn().Err(err).Msgf("using default unknown key policy: %s", dfltUnknown)
		conf.Unknown = dfltUnknown
	}
	if _, err := source.ParseFormat(conf.Format); err != nil {
		log.Warn().Err(err).Msgf("using default format: %s", dfltFormat)
		conf.Format = dfltFormat
	}
	if strings.TrimSpace(conf.Lang) == "" {
		conf.Lang = dfltLang
		log.Warn().Msgf("lang not specified, using default: %s", dfltLang)
	}
	if _, err := zerolog.ParseLevel(string(conf.LogLevel)); err != nil || conf.LogLevel == "" {
		log.Warn().Str("logLevel", string(conf.LogLevel)).Msgf("invalid log level, using default: %s", dfltLogLevel)
		conf.LogLevel = dfltLogLevel
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("variable", key).Str("value", v).Msg("not a boolean, ignoring")
		return def
	}
	return b
}
