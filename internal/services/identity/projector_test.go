package identity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	user := &models.User{
		ID:           "11111111-1111-1111-1111-111111111111",
		Name:         "test",
		PasswordHash: "$2a$12$secret",
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}

	p := Project(user, true)
	require.NotNil(t, p)
	assert.Equal(t, "test", p.Name)
	assert.Equal(t, models.RoleUser, p.Role)
	assert.True(t, p.UsedSharingKey)
	assert.NotEmpty(t, p.ProjectionKey)
}

func TestProject_NilUser(t *testing.T) {
	assert.Nil(t, Project(nil, true))
	assert.Nil(t, Project(nil, false))
}

func TestProject_KeyIsFreshPerCall(t *testing.T) {
	user := &models.User{Name: "test", Role: models.RoleUser}

	a := Project(user, true)
	b := Project(user, true)

	// Same public fields, different request-scoped tokens
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.Role, b.Role)
	assert.Equal(t, a.UsedSharingKey, b.UsedSharingKey)
	assert.NotEqual(t, a.ProjectionKey, b.ProjectionKey)
}

func TestProject_SerializesOnlyPublicFields(t *testing.T) {
	user := &models.User{
		ID:           "22222222-2222-2222-2222-222222222222",
		Name:         "test",
		PasswordHash: "$2a$12$secret",
		Role:         models.RoleAdmin,
	}

	raw, err := json.Marshal(Project(user, true))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Len(t, decoded, 4)
	assert.Contains(t, decoded, "name")
	assert.Contains(t, decoded, "role")
	assert.Contains(t, decoded, "usedSharingKey")
	assert.Contains(t, decoded, "projectionKey")
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), user.ID)
}
