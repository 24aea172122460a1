package olp

import "github.com/kelseyhightower/envconfig"

// Config is the deployment-wide engine configuration.
// It is read once at construction and passed explicitly, never consulted
// as ambient state afterwards.
type Config struct {
	// UniversalPolicy subjects superusers to object-level resolution
	UniversalPolicy bool `envconfig:"UNIVERSAL_POLICY"`
}

// LoadConfig reads the configuration from OLP_* environment variables
func LoadConfig() (*Config, error) {
	var c Config
	if e := envconfig.Process("olp", &c); e != nil {
		return nil, e
	}
	return &c, nil
}
