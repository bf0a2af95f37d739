package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookup(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestParseEnv_Defaults(t *testing.T) {
	env, err := ParseEnv(lookup(nil))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if env.Surface != DefaultSurface {
		t.Errorf("Expected surface %s, got %s", DefaultSurface, env.Surface)
	}
	if env.MPVPath != DefaultMPVPath {
		t.Errorf("Expected mpv path %s, got %s", DefaultMPVPath, env.MPVPath)
	}
	if env.PollInterval != DefaultPollInterval {
		t.Errorf("Expected poll interval %v, got %v", DefaultPollInterval, env.PollInterval)
	}
	if env.LoadAttempts != DefaultLoadAttempts {
		t.Errorf("Expected load attempts %d, got %d", DefaultLoadAttempts, env.LoadAttempts)
	}
	if env.CatalogPath != "" {
		t.Errorf("Expected empty catalog path, got %s", env.CatalogPath)
	}
	if env.Resolver != ResolverYTDLP {
		t.Errorf("Expected resolver %s, got %s", ResolverYTDLP, env.Resolver)
	}
}

func TestParseEnv_Overrides(t *testing.T) {
	env, err := ParseEnv(lookup(map[string]string{
		EnvSurface:      "SIM",
		EnvMPVPath:      "/opt/mpv/bin/mpv",
		EnvMPVArgs:      "--mute=yes  --hwdec=auto",
		EnvCatalog:      "clips.yaml",
		EnvLogLevel:     "debug",
		EnvPollInterval: "250ms",
		EnvLoadAttempts: "4",
		EnvResolver:     "None",
		EnvStreamFormat: "height<=720",
	}))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if env.Surface != SurfaceClock {
		t.Errorf("Expected surface %s, got %s", SurfaceClock, env.Surface)
	}
	if env.MPVPath != "/opt/mpv/bin/mpv" {
		t.Errorf("Unexpected mpv path %s", env.MPVPath)
	}
	if len(env.MPVArgs) != 2 || env.MPVArgs[1] != "--hwdec=auto" {
		t.Errorf("Unexpected mpv args %v", env.MPVArgs)
	}
	if env.CatalogPath != "clips.yaml" {
		t.Errorf("Unexpected catalog path %s", env.CatalogPath)
	}
	if env.LogLevel != "debug" {
		t.Errorf("Unexpected log level %s", env.LogLevel)
	}
	if env.PollInterval != 250*time.Millisecond {
		t.Errorf("Unexpected poll interval %v", env.PollInterval)
	}
	if env.LoadAttempts != 4 {
		t.Errorf("Unexpected load attempts %d", env.LoadAttempts)
	}
	if env.Resolver != ResolverNone {
		t.Errorf("Unexpected resolver %s", env.Resolver)
	}
	if env.StreamFormat != "height<=720" {
		t.Errorf("Unexpected stream format %s", env.StreamFormat)
	}
}

func TestParseEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"unknown surface", map[string]string{EnvSurface: "vlc"}},
		{"bad interval", map[string]string{EnvPollInterval: "soon"}},
		{"zero interval", map[string]string{EnvPollInterval: "0s"}},
		{"bad attempts", map[string]string{EnvLoadAttempts: "many"}},
		{"zero attempts", map[string]string{EnvLoadAttempts: "0"}},
		{"unknown resolver", map[string]string{EnvResolver: "youtube-dl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEnv(lookup(tt.vars)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadEnv_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("EIZO_CATALOG=from-dotenv.yaml\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv(EnvCatalog, "")
	os.Unsetenv(EnvCatalog)

	env, err := LoadEnv(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if env.CatalogPath != "from-dotenv.yaml" {
		t.Errorf("Expected catalog from .env, got %q", env.CatalogPath)
	}
}

func TestLoadEnv_MissingFile(t *testing.T) {
	if _, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Missing .env should not be an error, got %v", err)
	}
}
