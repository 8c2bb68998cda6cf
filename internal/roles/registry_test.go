package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_LoadsEmbeddedConfig(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	ag := registry.Get("attorney_general")
	assert.True(t, ag.Leadership)
	assert.Equal(t, "Attorney General", ag.DisplayName)

	prosecutor := registry.Get("prosecutor")
	assert.False(t, prosecutor.Leadership)
	assert.True(t, prosecutor.HasPermission("cabinet.file.delete"))
	assert.False(t, prosecutor.HasPermission("cabinet.folder.delete"))
}

func TestGet_UnknownRoleHasNoCapabilities(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	unknown := registry.Get("intern")
	assert.False(t, unknown.Leadership)
	assert.Empty(t, unknown.Permissions)
	assert.False(t, unknown.HasPermission("cabinet.file.delete"))
}
