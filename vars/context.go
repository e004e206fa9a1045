package vars

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Context maps variable names to the values substituted for them.
type Context map[string]string

// Default returns the demonstration context.
func Default() Context {
	return Context{
		"name": "Ujjawal",
		"city": "NewDelhi",
	}
}

// Get returns the value for name and whether it was present.
func (c Context) Get(name string) (string, bool) {
	v, ok := c[name]
	return v, ok
}

// Merge returns a new Context holding c and then each of others in turn.
// Later contexts override earlier ones. c itself is not modified.
func (c Context) Merge(others ...Context) Context {
	size := len(c)
	for _, o := range others {
		size += len(o)
	}

	merged := make(Context, size)
	for k, v := range c {
		merged[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			merged[k] = v
		}
	}
	return merged
}

// Keys returns the variable names in sorted order.
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParsePairs builds a Context from "key=value" strings. The value may be
// empty and may itself contain '='.
func ParsePairs(pairs []string) (Context, error) {
	c := make(Context, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPair, pair)
		}
		c[key] = value
	}
	return c, nil
}

// FromEnv builds a Context from environment variables named PREFIX_NAME.
// The prefix and underscore are removed and the rest is lowercased, so
// with prefix "LINETMPL_VAR" the variable LINETMPL_VAR_CITY becomes "city".
func FromEnv(prefix string) Context {
	return fromEnviron(prefix, os.Environ())
}

func fromEnviron(prefix string, environ []string) Context {
	c := make(Context)
	if prefix == "" {
		return c
	}
	prefix = strings.TrimSuffix(prefix, "_") + "_"

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, prefix))
		if name == "" {
			continue
		}
		c[name] = value
	}
	return c
}
