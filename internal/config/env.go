package config

import (
	"os"
	"strings"
)

// Conf is a namespaced view over environment variables (e.g. "CUTOFFX_").
// It has no logger dependency so the logger can read its own settings
// through it.
type Conf struct{ prefix string }

// Env returns a root Conf (no prefix).
func Env() Conf { return Conf{} }

// Prefix returns a child Conf with an additional prefix.
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key composes the fully-qualified env var name.
func (c Conf) Key(k string) string { return c.prefix + k }

// Lookup returns the trimmed value and whether it is set and non-empty.
func (c Conf) Lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Key(key)))
	return v, v != ""
}

// Get returns the trimmed env var or def if empty.
func (c Conf) Get(key, def string) string {
	if v, ok := c.Lookup(key); ok {
		return v
	}
	return def
}

// GetBool parses "1|true|yes" with default fallback.
func (c Conf) GetBool(key string, def bool) bool {
	v, ok := c.Lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}
