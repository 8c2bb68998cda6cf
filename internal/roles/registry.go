// Package roles maps department roles to their capabilities. The mapping
// ships with the binary as embedded YAML.
package roles

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry resolves role names to their capability definitions.
type Registry struct {
	roles map[string]Role
	mu    sync.RWMutex
}

// NewRegistry loads the embedded role configuration.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/roles.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read roles config: %w", err)
	}

	var file rolesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roles config: %w", err)
	}
	if len(file.Roles) == 0 {
		return nil, fmt.Errorf("roles config defines no roles")
	}

	return &Registry{roles: file.Roles}, nil
}

// Get returns the definition for a role name. Unknown roles resolve to an
// empty role with no capabilities rather than an error, so an unconfigured
// account can still read.
func (r *Registry) Get(name string) Role {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[name]
	if !ok {
		return Role{DisplayName: name}
	}
	return role
}
