package dynlib

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	envStrictNames = "DYNLIB_STRICT_NAMES"
	envSearchPath  = "DYNLIB_PATH"
	envPlatform    = "DYNLIB_PLATFORM"
)

// Option configures name construction, search and loading.
type Option func(*config) error

type config struct {
	platform        Platform
	strictNames     bool
	capacity        int
	flags           int
	caseInsensitive bool
}

// WithPlatform selects the naming convention used to build library file names.
func WithPlatform(p Platform) Option {
	return func(cfg *config) error {
		if strings.TrimSpace(p.Extension) == "" {
			return fmt.Errorf("platform extension cannot be empty")
		}
		if p.Separator == 0 {
			return fmt.Errorf("platform separator cannot be zero")
		}
		cfg.platform = p
		return nil
	}
}

// WithStrictNames reports ErrNameTooLong instead of quietly producing an empty
// name when a library name does not fit its capacity.
func WithStrictNames(strict bool) Option {
	return func(cfg *config) error {
		cfg.strictNames = strict
		return nil
	}
}

// WithNameCapacity sets the capacity, in bytes, that constructed names must fit.
func WithNameCapacity(capacity int) Option {
	return func(cfg *config) error {
		if capacity <= 0 {
			return fmt.Errorf("name capacity must be positive, got %d", capacity)
		}
		cfg.capacity = capacity
		return nil
	}
}

// WithFlags sets the dlopen mode on Unix. It is ignored on Windows.
func WithFlags(flags int) Option {
	return func(cfg *config) error {
		if flags == 0 {
			return fmt.Errorf("load flags cannot be zero")
		}
		cfg.flags = flags
		return nil
	}
}

// WithCaseInsensitiveNames controls whether a Registry folds library name case.
func WithCaseInsensitiveNames(fold bool) Option {
	return func(cfg *config) error {
		cfg.caseInsensitive = fold
		return nil
	}
}

func defaultConfig() config {
	return config{
		platform:        HostPlatform(),
		capacity:        DefaultNameCapacity,
		flags:           defaultLoadFlags,
		caseInsensitive: runtime.GOOS == "windows",
	}
}

func applyOptions(cfg config, opts ...Option) (config, error) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// resolveLoadConfig applies opts without reading the naming environment,
// which has no bearing on how a library is loaded.
func resolveLoadConfig(opts ...Option) (config, error) {
	return applyOptions(defaultConfig(), opts...)
}

func resolveConfig(opts ...Option) (config, error) {
	strict, err := envSwitch(envStrictNames)
	if err != nil {
		return config{}, err
	}

	platform := HostPlatform()
	if goos := strings.TrimSpace(os.Getenv(envPlatform)); goos != "" {
		p, ok := PlatformFor(goos)
		if !ok {
			return config{}, fmt.Errorf("dynlib: %s=%q names no known platform", envPlatform, goos)
		}
		platform = p
	}

	cfg := defaultConfig()
	cfg.platform = platform
	cfg.strictNames = strict
	return applyOptions(cfg, opts...)
}

// SearchPathFromEnv returns the directories listed in DYNLIB_PATH.
func SearchPathFromEnv() []string {
	value := strings.TrimSpace(os.Getenv(envSearchPath))
	if value == "" {
		return nil
	}

	var paths []string
	for _, dir := range filepath.SplitList(value) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		paths = append(paths, dir)
	}
	if len(paths) == 0 {
		log.Printf("WARNING: %s is set but lists no directories; falling back to the system loader search order.", envSearchPath)
	}
	return paths
}

var switchValues = map[string]bool{
	"1": true, "t": true, "true": true, "y": true, "yes": true, "on": true,
	"0": false, "f": false, "false": false, "n": false, "no": false, "off": false,
}

// envSwitch reads a DYNLIB_* on/off variable. Unset or blank means off.
func envSwitch(name string) (bool, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return false, nil
	}
	on, ok := switchValues[strings.ToLower(value)]
	if !ok {
		return false, fmt.Errorf("dynlib: %s=%q is not an on/off switch (use 1/0, true/false, yes/no or on/off)", name, value)
	}
	return on, nil
}
