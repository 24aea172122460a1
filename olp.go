// Package olp is an object-level authorization engine: given a principal,
// a permission, and a target entity instance, it decides whether the
// principal is granted the permission on that specific instance, layering
// instance-level gates on top of the model-level permission catalog.
package olp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/supremind/olp/internal/catalog"
	"github.com/supremind/olp/internal/engine"
	"github.com/supremind/olp/types"
)

// New creates an object-level Authorizer
func New(ctx context.Context, opts ...AuthorizerOption) (types.Authorizer, error) {
	cfg := &AuthorizerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.log.GetSink() == nil {
		cfg.log = stdr.New(log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile))
	}

	cat := cfg.catalog
	if cat == nil {
		switch {
		case cfg.dp != nil && cfg.gp != nil:
			var e error
			cat, e = catalog.New(ctx, cfg.dp, cfg.gp, cfg.log.WithName("catalog"))
			if e != nil {
				return nil, fmt.Errorf("init catalog failed: %w", e)
			}
		case cfg.dp == nil && cfg.gp == nil:
			cat = catalog.NewInMemory()
		default:
			return nil, errors.New("definition and grant persisters must be configured together")
		}
	}

	authz := engine.New(cat, cfg.universal, cfg.log.WithName("engine"), cfg.presets...)

	return authz, nil
}

// WithCatalog sets a caller-supplied model-level catalog,
// persister options are ignored when it is set
func WithCatalog(c types.Catalog) AuthorizerOption {
	return func(cfg *AuthorizerConfig) {
		cfg.catalog = c
	}
}

// WithDefinitionPersister sets Persister for the permission universe
func WithDefinitionPersister(p types.DefinitionPersister) AuthorizerOption {
	return func(cfg *AuthorizerConfig) {
		cfg.dp = p
	}
}

// WithGrantPersister sets Persister for model-level grants
func WithGrantPersister(p types.GrantPersister) AuthorizerOption {
	return func(cfg *AuthorizerConfig) {
		cfg.gp = p
	}
}

// WithUniversalPolicy makes superusers subject to the same object-level
// resolution as everyone else, instead of bypassing it
func WithUniversalPolicy(universal bool) AuthorizerOption {
	return func(cfg *AuthorizerConfig) {
		cfg.universal = universal
	}
}

// WithPresetPolicies adds preset polices consulted before resolution
func WithPresetPolicies(presets ...types.PresetPolicy) AuthorizerOption {
	return func(cfg *AuthorizerConfig) {
		cfg.presets = append(cfg.presets, presets...)
	}
}

// WithLogger sets logger for engine components
func WithLogger(l logr.Logger) AuthorizerOption {
	return func(cfg *AuthorizerConfig) {
		cfg.log = l
	}
}

// WithConfig applies a loaded deployment configuration
func WithConfig(c *Config) AuthorizerOption {
	return func(cfg *AuthorizerConfig) {
		cfg.universal = c.UniversalPolicy
	}
}

// AuthorizerConfig works together with AuthorizerOption to control the
// initialization of the authorizer
type AuthorizerConfig struct {
	catalog   types.Catalog
	dp        types.DefinitionPersister
	gp        types.GrantPersister
	universal bool
	presets   []types.PresetPolicy
	log       logr.Logger
}

// AuthorizerOption controls how to init an authorizer
type AuthorizerOption func(*AuthorizerConfig)
