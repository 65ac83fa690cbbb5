// internal/vault/vault.go
//
// Small Vault KV-v2 client.
//
// Context
// -------
// The only secret the site pulls from Vault is the database password.  Config
// values of the form `vault:<mount>/<path>#<key>` are resolved at boot
// through Resolve; plain values pass through untouched, so a dev box without
// Vault keeps working with a literal password in `.env`.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR  – scheme and host of the Vault server.
// • VAULT_TOKEN – token for the site's read-only policy.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Prefix marks a config value as a Vault reference.
const Prefix = "vault:"

// Client wraps the Vault SDK with per-key TTL caching.  Safe for concurrent
// use; the zero value is invalid, construct with New.
type Client struct {
	api *vault.Client

	mu    sync.RWMutex
	cache map[string]cached
}

type cached struct {
	val string
	exp time.Time
}

// New builds a client from the environment.
func New() (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		api.SetToken(tok)
	}

	return &Client{api: api, cache: make(map[string]cached)}, nil
}

// Resolve returns value unchanged unless it carries the vault: prefix, in
// which case the referenced KV-v2 key is fetched.  The reference format is
// `vault:<mount>/<path>#<key>`.
func (c *Client) Resolve(ctx context.Context, value string, ttl time.Duration) (string, error) {
	if !strings.HasPrefix(value, Prefix) {
		return value, nil
	}

	ref := strings.TrimPrefix(value, Prefix)
	path, key, ok := strings.Cut(ref, "#")
	if !ok || path == "" || key == "" {
		return "", fmt.Errorf("malformed vault reference %q", value)
	}
	return c.GetKV(ctx, path, key, ttl)
}

// GetKV fetches one key from a KV-v2 secret, caching the result for ttl when
// ttl > 0.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key
	if ttl > 0 {
		c.mu.RLock()
		if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
			c.mu.RUnlock()
			return cv.val, nil
		}
		c.mu.RUnlock()
	}

	mount, rel, _ := strings.Cut(secretPath, "/")
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	if ttl > 0 {
		c.mu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.mu.Unlock()
	}
	return sval, nil
}
