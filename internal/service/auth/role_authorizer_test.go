package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registratur/internal/domain"
	"registratur/internal/domain/models"
	"registratur/internal/roles"
)

func TestCanDelete(t *testing.T) {
	registry, err := roles.NewRegistry()
	require.NoError(t, err)
	authorizer := NewRoleBasedAuthorizer(registry)
	ctx := context.Background()

	tests := []struct {
		name       string
		role       string
		permission string
		allowed    bool
	}{
		{"leadership deletes folders", "attorney_general", PermDeleteFolder, true},
		{"leadership deletes files", "deputy_attorney_general", PermDeleteFile, true},
		{"explicit permission", "prosecutor", PermDeleteFile, true},
		{"missing permission", "prosecutor", PermDeleteFolder, false},
		{"no capabilities", "paralegal", PermDeleteFile, false},
		{"unknown role", "intern", PermDeleteFile, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &models.Identity{UserID: "u1", Role: tt.role}
			err := authorizer.CanDelete(ctx, identity, tt.permission)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}
