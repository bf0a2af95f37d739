package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// Environment variable names
	EnvSurface      = "EIZO_SURFACE"
	EnvMPVPath      = "EIZO_MPV_PATH"
	EnvMPVArgs      = "EIZO_MPV_ARGS"
	EnvCatalog      = "EIZO_CATALOG"
	EnvLogLevel     = "EIZO_LOG_LEVEL"
	EnvPollInterval = "EIZO_POLL_INTERVAL"
	EnvLoadAttempts = "EIZO_LOAD_ATTEMPTS"
	EnvResolver     = "EIZO_RESOLVER"
	EnvStreamFormat = "EIZO_STREAM_FORMAT"

	// Surface kinds
	SurfaceAuto  = "auto"
	SurfaceMPV   = "mpv"
	SurfaceClock = "sim"

	// Stream resolvers
	ResolverYTDLP = "ytdlp"
	ResolverNone  = "none"

	// Default values
	DefaultSurface      = SurfaceAuto
	DefaultMPVPath      = "mpv"
	DefaultLogLevel     = "info"
	DefaultPollInterval = 100 * time.Millisecond
	DefaultLoadAttempts = 2
	DefaultResolver     = ResolverYTDLP
)

// Env is the runtime configuration read from the environment
type Env struct {
	Surface      string
	MPVPath      string
	MPVArgs      []string
	CatalogPath  string
	LogLevel     string
	PollInterval time.Duration
	LoadAttempts int
	Resolver     string
	StreamFormat string
}

// LoadEnv reads an optional .env file and then the process environment.
// Missing .env files are not an error.
func LoadEnv(files ...string) (*Env, error) {
	_ = godotenv.Load(files...)
	return ParseEnv(os.Getenv)
}

// ParseEnv builds an Env from a variable lookup function
func ParseEnv(getenv func(string) string) (*Env, error) {
	env := &Env{
		Surface:      DefaultSurface,
		MPVPath:      DefaultMPVPath,
		LogLevel:     DefaultLogLevel,
		PollInterval: DefaultPollInterval,
		LoadAttempts: DefaultLoadAttempts,
		Resolver:     DefaultResolver,
	}

	if v := strings.ToLower(strings.TrimSpace(getenv(EnvSurface))); v != "" {
		switch v {
		case SurfaceAuto, SurfaceMPV, SurfaceClock:
			env.Surface = v
		default:
			return nil, fmt.Errorf("invalid %s %q: want %s, %s or %s", EnvSurface, v, SurfaceAuto, SurfaceMPV, SurfaceClock)
		}
	}

	if v := getenv(EnvMPVPath); v != "" {
		env.MPVPath = v
	}

	if v := getenv(EnvMPVArgs); v != "" {
		env.MPVArgs = strings.Fields(v)
	}

	if v := strings.ToLower(strings.TrimSpace(getenv(EnvResolver))); v != "" {
		switch v {
		case ResolverYTDLP, ResolverNone:
			env.Resolver = v
		default:
			return nil, fmt.Errorf("invalid %s %q: want %s or %s", EnvResolver, v, ResolverYTDLP, ResolverNone)
		}
	}

	env.StreamFormat = strings.TrimSpace(getenv(EnvStreamFormat))

	env.CatalogPath = getenv(EnvCatalog)

	if v := getenv(EnvLogLevel); v != "" {
		env.LogLevel = v
	}

	if v := getenv(EnvPollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPollInterval, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid %s: must be positive", EnvPollInterval)
		}
		env.PollInterval = d
	}

	if v := getenv(EnvLoadAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvLoadAttempts, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("invalid %s: must be at least 1", EnvLoadAttempts)
		}
		env.LoadAttempts = n
	}

	return env, nil
}
