// Package auth decides which callers may perform destructive cabinet
// operations.
package auth

import (
	"context"
	"fmt"

	"registratur/internal/domain"
	"registratur/internal/domain/models"
	"registratur/internal/roles"
)

// Permission names checked by the cabinet services.
const (
	PermDeleteFolder = "cabinet.folder.delete"
	PermDeleteFile   = "cabinet.file.delete"
)

// RoleBasedAuthorizer implements the cabinet's delete gate from the role
// registry: leadership may delete anything, everyone else needs the specific
// permission on their role.
type RoleBasedAuthorizer struct {
	registry *roles.Registry
}

// NewRoleBasedAuthorizer creates an authorizer backed by the role registry.
func NewRoleBasedAuthorizer(registry *roles.Registry) *RoleBasedAuthorizer {
	return &RoleBasedAuthorizer{registry: registry}
}

// CanDelete checks whether the identity may perform the named delete
// operation. Returns ErrForbidden when it may not.
func (a *RoleBasedAuthorizer) CanDelete(ctx context.Context, identity *models.Identity, permission string) error {
	role := a.registry.Get(identity.Role)
	if role.Leadership || role.HasPermission(permission) {
		return nil
	}
	return fmt.Errorf("role %s lacks %s: %w", identity.Role, permission, domain.ErrForbidden)
}
