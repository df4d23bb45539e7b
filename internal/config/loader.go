// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one `Config` struct from three layers (highest precedence
last):

  1. Optional `<root>/conf/.env`, exported into the process environment.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `LINKPAGE_`, where `__` maps to “.”
     (e.g., `LINKPAGE_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into typed structs, defaulted,
validated, and enriched with the runtime root path.  Secret references are
left untouched; the caller runs ResolveSecrets once a Vault client exists.

Instrumentation
---------------
  • DEBUG  root discovery, YAML read.
  • ERROR  YAML parse, env overlay, unmarshal, validation failures.
  • INFO   final “config loaded” with key highlights.
  • Logs use the global sugared logger (`zap.S()`) so early boot issues
    surface before the file logger is installed.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const envPrefix = "LINKPAGE_"

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves LINKPAGE_ROOT or climbs directories until
// conf/global.yaml is found.  Falls back to the executable's parent when
// the binary lives in <root>/bin.
func rootDir() string {
	if r := os.Getenv(envPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	for dir := wd; ; {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, and env overrides, then validates the result.
func Load() (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env is optional; existing env vars win.
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, fmt.Errorf("config: load %s: %w", yamlPath, err)
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("config: env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.applyDefaults()
	cfg.Paths.Root = root
	if !filepath.IsAbs(cfg.Log.Dir) {
		cfg.Log.Dir = filepath.Join(root, cfg.Log.Dir)
	}

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, fmt.Errorf("config: %w", err)
	}

	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"sink_configured", cfg.Sink.URL != "",
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// envKey maps LINKPAGE_HTTP__LISTEN_ADDR to http.listen_addr.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

/*─────────────────────────────── secrets ──────────────────────────────────*/

// SecretPrefix marks a value to be fetched from Vault.
const SecretPrefix = "vault:"

// SecretResolver turns a `vault:<path>#<key>` reference into its value.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// NeedsSecrets reports whether any field holds a Vault reference.
func (c *Config) NeedsSecrets() bool {
	needs := false
	c.eachSecret(func(p *string) {
		if strings.HasPrefix(*p, SecretPrefix) {
			needs = true
		}
	})
	return needs
}

// ResolveSecrets replaces every Vault reference in c.  A nil resolver is an
// error only when a reference is present.  The tree is revalidated after.
func ResolveSecrets(ctx context.Context, c *Config, r SecretResolver) error {
	var firstErr error
	c.eachSecret(func(p *string) {
		if firstErr != nil || !strings.HasPrefix(*p, SecretPrefix) {
			return
		}
		if r == nil {
			firstErr = fmt.Errorf("config: %q needs vault but no client is configured", *p)
			return
		}
		val, err := r.Resolve(ctx, *p)
		if err != nil {
			firstErr = fmt.Errorf("config: resolve %q: %w", *p, err)
			return
		}
		*p = val
	})
	if firstErr != nil {
		return firstErr
	}
	if err := validateStruct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// eachSecret visits the secret-bearing string fields.
func (c *Config) eachSecret(fn func(*string)) {
	fn(&c.Sink.URL)
	fn(&c.Security.CSRFKey)
	for k, val := range c.Sink.Headers {
		fn(&val)
		c.Sink.Headers[k] = val
	}
}
