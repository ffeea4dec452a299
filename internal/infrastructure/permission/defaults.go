package permission

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// AllPermissions in a role definition grants every known permission.
const AllPermissions = "*"

type Defaults struct {
	Permissions []PermissionDefinition `yaml:"permissions"`
	Roles       []RoleDefinition       `yaml:"roles"`
}

type PermissionDefinition struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

type RoleDefinition struct {
	Slug        string   `yaml:"slug"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	System      bool     `yaml:"system"`
	Permissions []string `yaml:"permissions"`
}

// GrantsAll reports whether the role is declared with the wildcard.
func (r RoleDefinition) GrantsAll() bool {
	for _, p := range r.Permissions {
		if p == AllPermissions {
			return true
		}
	}
	return false
}

// LoadDefaults parses the built-in role and permission catalogue.
func LoadDefaults() (*Defaults, error) {
	return ParseDefaults(defaultsYAML)
}

func ParseDefaults(data []byte) (*Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse permission defaults: %w", err)
	}
	if len(d.Roles) == 0 {
		return nil, fmt.Errorf("permission defaults declare no roles")
	}
	return &d, nil
}
