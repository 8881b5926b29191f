// Package models defines data structures for configuration and the composed
// dashboard view model.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Role declares what the caller expects an endpoint to yield. Routing is
// decided by this declaration only, never inferred from the payload shape.
type Role string

const (
	RoleMetric     Role = "metric"     // a single number
	RoleCollection Role = "collection" // a list of rows
	RoleContent    Role = "content"    // a list of generated-content rows
	RoleUsers      Role = "users"      // a list of user-like rows
	RoleActivity   Role = "activity"   // activity-history rows
)

// Endpoint is one backend URL the aggregator polls during a refresh cycle.
type Endpoint struct {
	Key  string `yaml:"key"`
	URL  string `yaml:"url"`
	Role Role   `yaml:"role"`
}

// Config holds the endpoint set and runtime knobs for a refresh.
type Config struct {
	Endpoints   []Endpoint `yaml:"endpoints"`
	WorkerCount int        `yaml:"workers,omitempty"`
	ResultsDir  string     `yaml:"results_dir,omitempty"`
	// TokenEnv names the environment variable holding the bearer token, if any.
	TokenEnv string `yaml:"token_env,omitempty"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(config.Endpoints) == 0 {
		return nil, fmt.Errorf("config has no endpoints")
	}
	seen := make(map[string]struct{}, len(config.Endpoints))
	for _, ep := range config.Endpoints {
		if ep.Key == "" || ep.URL == "" {
			return nil, fmt.Errorf("endpoint missing key or url: %+v", ep)
		}
		if _, dup := seen[ep.Key]; dup {
			return nil, fmt.Errorf("duplicate endpoint key: %s", ep.Key)
		}
		seen[ep.Key] = struct{}{}
		switch ep.Role {
		case RoleMetric, RoleCollection, RoleContent, RoleUsers, RoleActivity:
		default:
			return nil, fmt.Errorf("endpoint %s has unknown role %q", ep.Key, ep.Role)
		}
	}

	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	return &config, nil
}

// Token resolves the bearer token from the configured environment variable.
// Returns "" when no token is configured or set.
func (c *Config) Token() string {
	if c.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.TokenEnv)
}
