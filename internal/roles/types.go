package roles

// Role describes what a department role may do.
type Role struct {
	DisplayName string   `yaml:"display_name" json:"display_name"`
	Leadership  bool     `yaml:"leadership" json:"leadership"`
	Permissions []string `yaml:"permissions" json:"permissions"`
}

// HasPermission reports whether the role carries the named permission.
func (r *Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// rolesFile is the shape of the embedded YAML configuration.
type rolesFile struct {
	Roles map[string]Role `yaml:"roles"`
}
