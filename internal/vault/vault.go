// internal/vault/vault.go
//
// Vault client wrapper.
//
// Context
// -------
//   - Resolves `vault:<mount>/<path>#<key>` references found in config (sink
//     URL, sink headers, CSRF key) against a KV-v2 engine.
//   - Keeps the login token alive in the background for as long as the
//     process runs, so a later config reload can still read secrets.
//   - Values are cached per reference for the configured TTL.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx, zap.S().Infof)     // during boot, if needed.
//  2. val, err := cli.Resolve(ctx, "vault:secret/linkpage#sink_url")
//
// Environment: VAULT_ADDR, VAULT_TOKEN (read by the SDK).
package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Prefix marks a config value as a Vault reference.
const Prefix = "vault:"

// ErrBadRef is returned for references that do not parse.
var ErrBadRef = errors.New("vault: reference must look like vault:<mount>/<path>#<key>")

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	api   *vault.Client
	logFn func(string, ...any)
	ttl   time.Duration

	mu    sync.RWMutex
	cache map[string]cached
}

type cached struct {
	val string
	exp time.Time
}

// New builds a client from the SDK's environment defaults and starts token
// renewal bound to ctx.
func New(ctx context.Context, logFn func(string, ...any)) (*Client, error) {
	if logFn == nil {
		logFn = func(string, ...any) {}
	}

	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}
	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	c := &Client{api: api, logFn: logFn, ttl: 5 * time.Minute, cache: map[string]cached{}}
	go c.keepAlive(ctx)
	return c, nil
}

// Resolve fetches the value behind ref.
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	path, key, err := ParseRef(ref)
	if err != nil {
		return "", err
	}
	return c.GetKV(ctx, path, key)
}

// GetKV reads one key of a KV-v2 secret, serving from cache within the TTL.
func (c *Client) GetKV(ctx context.Context, secretPath, key string) (string, error) {
	canonical := secretPath + "#" + key

	c.mu.RLock()
	cv, ok := c.cache[canonical]
	c.mu.RUnlock()
	if ok && time.Now().Before(cv.exp) {
		return cv.val, nil
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}
	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s is not a string", canonical)
	}

	c.mu.Lock()
	c.cache[canonical] = cached{val: val, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	c.logFn("vault: resolved %s", canonical)
	return val, nil
}

// ParseRef splits "vault:secret/app#key" into ("secret/app", "key").
func ParseRef(ref string) (path, key string, err error) {
	rest, ok := strings.CutPrefix(ref, Prefix)
	if !ok {
		return "", "", ErrBadRef
	}
	path, key, ok = strings.Cut(rest, "#")
	if !ok || key == "" || !strings.Contains(strings.Trim(path, "/"), "/") {
		return "", "", ErrBadRef
	}
	return strings.Trim(path, "/"), key, nil
}

// keepAlive renews the token until ctx ends.  Non-renewable tokens (root,
// dev) are left alone.
func (c *Client) keepAlive(ctx context.Context) {
	for ctx.Err() == nil {
		sec, err := c.api.Auth().Token().RenewSelfWithContext(ctx, 0)
		if err != nil {
			c.logFn("vault: token renew failed: %v", err)
			sleep(ctx, 30*time.Second)
			continue
		}
		if sec == nil || sec.Auth == nil || !sec.Auth.Renewable {
			return
		}

		w, err := c.api.NewLifetimeWatcher(&vault.LifetimeWatcherInput{Secret: sec})
		if err != nil {
			c.logFn("vault: watcher init: %v", err)
			sleep(ctx, 30*time.Second)
			continue
		}
		go w.Start()

		select {
		case <-ctx.Done():
			w.Stop()
			return
		case err := <-w.DoneCh():
			w.Stop()
			if err != nil {
				c.logFn("vault: token renewal stopped: %v", err)
			}
			sleep(ctx, 15*time.Second)
		}
	}
}

func splitMount(p string) (mount, rel string) {
	mount, rel, _ = strings.Cut(p, "/")
	return
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
