// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, []string, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider backed by config files and
// the environment.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load returns the effective configuration without flag overrides, and the
// config files it was read from.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, []string, error) {
	v, files, err := NewViper(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, files, nil
}
