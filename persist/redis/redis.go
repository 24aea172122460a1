// Package redis provides catalog persisters backed by a Redis server.
// Definitions and grants are stored in sets, and changes are streamed to
// watchers over pub/sub channels, so several engine instances stay
// coordinated through one Redis deployment.
package redis

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/supremind/olp/types"
)

const defaultPrefix = "olp"

type config struct {
	prefix string
	log    logr.Logger
}

func newConfig(opts ...Option) *config {
	cfg := &config{prefix: defaultPrefix}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.log.GetSink() == nil {
		cfg.log = stdr.New(log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile))
	}
	return cfg
}

// Option controls how to init a persister
type Option func(*config)

// WithKeyPrefix sets the prefix of all keys and channels used in Redis,
// "olp" by default
func WithKeyPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.prefix = prefix
	}
}

// WithLogger sets logger for the persisters
func WithLogger(l logr.Logger) Option {
	return func(cfg *config) {
		cfg.log = l
	}
}

// change messages are published as "method|field..." strings
func marshalChange(method types.PersistMethod, fields ...string) string {
	return strings.Join(append([]string{string(method)}, fields...), "|")
}

func unmarshalChange(payload string, fields int) (types.PersistMethod, []string, error) {
	parts := strings.SplitN(payload, "|", fields+1)
	if len(parts) != fields+1 {
		return "", nil, fmt.Errorf("%w: malformed change message %q", types.ErrUnsupportedChange, payload)
	}
	return types.PersistMethod(parts[0]), parts[1:], nil
}
