package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/sway-titlebar/internal/app"
	"github.com/atomicstack/sway-titlebar/internal/state"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	File     string
	Warnings []string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSocketPath      = "SWAY_TITLEBAR_SOCKET"
	envConfigFile      = "SWAY_TITLEBAR_CONFIG"
	envMaxShown        = "SWAY_TITLEBAR_MAX_SHOWN"
	envCharBudget      = "SWAY_TITLEBAR_CHAR_BUDGET"
	envPenalty         = "SWAY_TITLEBAR_PENALTY_PER_ENTRY"
	envTooltip         = "SWAY_TITLEBAR_TOOLTIP"
	envRefreshInterval = "SWAY_TITLEBAR_REFRESH_INTERVAL"
	envTrace           = "SWAY_TITLEBAR_TRACE"
	envLogFile         = "SWAY_TITLEBAR_LOG_FILE"
)

const defaultLogFile = "sway-titlebar.log"

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values are
// layered as defaults, then the config file, then the environment, then
// flags given on the command line.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	defaults := state.DefaultLayout()

	fs := pflag.NewFlagSet("sway-titlebar", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", "", "path to the sway ipc socket (defaults to $SWAYSOCK)")
	configFile := fs.String("config", "", "path to a JSONC or YAML module config")
	maxShown := fs.Int("max-shown", defaults.MaxShown, "maximum number of window buttons")
	charBudget := fs.Int("char-budget", defaults.CharBudget, "total label width shared by all buttons")
	penalty := fs.Int("penalty-per-entry", defaults.PenaltyPerEntry, "width reserved per button for padding")
	tooltip := fs.Bool("tooltip", true, "show the full window name when hovering a button")
	refresh := fs.Duration("refresh-interval", 0, "minimum spacing between tree fetches (0 disables)")
	trace := fs.Bool("trace", false, "enable verbose JSON trace logging")
	logFile := fs.String("log-file", defaultLogFile, "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	path := pick(fs, "config", *configFile, envOrDefault(env, envConfigFile, ""))
	file := fileSettings{}
	if path != "" {
		loaded, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	layout := state.Layout{
		MaxShown:        pickInt(fs, "max-shown", *maxShown, envOrInt(env, envMaxShown, intOr(file.MaxShown, defaults.MaxShown))),
		CharBudget:      pickInt(fs, "char-budget", *charBudget, envOrInt(env, envCharBudget, intOr(file.CharBudget, defaults.CharBudget))),
		PenaltyPerEntry: pickInt(fs, "penalty-per-entry", *penalty, envOrInt(env, envPenalty, intOr(file.PenaltyPerEntry, defaults.PenaltyPerEntry))),
	}
	tooltips := pickBool(fs, "tooltip", *tooltip, envOrBool(env, envTooltip, boolOr(file.Tooltip, true)))
	interval := pickDuration(fs, "refresh-interval", *refresh, envOrDuration(env, envRefreshInterval, durationOr(file.RefreshInterval, 0)))
	tracing := pickBool(fs, "trace", *trace, envOrBool(env, envTrace, false))
	logPath := pick(fs, "log-file", *logFile, envOrDefault(env, envLogFile, defaultLogFile))
	socketPath := pick(fs, "socket", *socket, envOrDefault(env, envSocketPath, ""))

	cfg := Config{
		App: app.Config{
			SocketPath:      socketPath,
			Layout:          layout,
			Tooltips:        tooltips,
			RefreshInterval: interval,
		},
		Logging: Logging{
			FilePath: logPath,
			Trace:    tracing,
		},
		File:     path,
		Warnings: file.Warnings,
		Flags: map[string]string{
			"socket":          socketPath,
			"config":          path,
			"maxShown":        strconv.Itoa(layout.MaxShown),
			"charBudget":      strconv.Itoa(layout.CharBudget),
			"penaltyPerEntry": strconv.Itoa(layout.PenaltyPerEntry),
			"tooltip":         strconv.FormatBool(tooltips),
			"refreshInterval": interval.String(),
			"trace":           strconv.FormatBool(tracing),
			"logFile":         logPath,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func pick(fs *pflag.FlagSet, name, flagValue, fallback string) string {
	if fs.Changed(name) {
		return flagValue
	}
	return fallback
}

func pickInt(fs *pflag.FlagSet, name string, flagValue, fallback int) int {
	if fs.Changed(name) {
		return flagValue
	}
	return fallback
}

func pickBool(fs *pflag.FlagSet, name string, flagValue, fallback bool) bool {
	if fs.Changed(name) {
		return flagValue
	}
	return fallback
}

func pickDuration(fs *pflag.FlagSet, name string, flagValue, fallback time.Duration) time.Duration {
	if fs.Changed(name) {
		return flagValue
	}
	return fallback
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects layouts that cannot show a button and negative
// intervals.
func Validate(cfg Config) error {
	if cfg.App.Layout.MaxShown < 1 {
		return fmt.Errorf("max-shown must be >= 1 (got %d)", cfg.App.Layout.MaxShown)
	}
	if cfg.App.Layout.CharBudget < 0 {
		return fmt.Errorf("char-budget must be >= 0 (got %d)", cfg.App.Layout.CharBudget)
	}
	if cfg.App.Layout.PenaltyPerEntry < 0 {
		return fmt.Errorf("penalty-per-entry must be >= 0 (got %d)", cfg.App.Layout.PenaltyPerEntry)
	}
	if cfg.App.RefreshInterval < 0 {
		return fmt.Errorf("refresh-interval must be >= 0 (got %s)", cfg.App.RefreshInterval)
	}
	return nil
}
