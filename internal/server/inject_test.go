package server

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/pixfolio/pixfolio/internal/services/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderToString(t *testing.T, user *identity.ProjectedIdentity) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, RenderBootstrap(&sb, user, ClientConfig{SharingEnabled: true}))
	return sb.String()
}

func TestRenderBootstrap_RoundTrip(t *testing.T) {
	user := &identity.ProjectedIdentity{
		Name:           "test",
		Role:           models.RoleUser,
		UsedSharingKey: true,
		ProjectionKey:  "abc123",
	}

	doc := renderToString(t, user)

	raw, err := ExtractInjectedUser(doc)
	require.NoError(t, err)

	var decoded identity.ProjectedIdentity
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *user, decoded)
}

func TestRenderBootstrap_NilUserIsLiteralNull(t *testing.T) {
	doc := renderToString(t, nil)

	raw, err := ExtractInjectedUser(doc)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	// Literal null, not the string "null" and not omitted
	var decoded *identity.ProjectedIdentity
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded)
}

func TestRenderBootstrap_MarkersAppearOnce(t *testing.T) {
	doc := renderToString(t, nil)

	assert.Equal(t, 1, strings.Count(doc, UserInjectStart))
	assert.Equal(t, 1, strings.Count(doc, UserInjectEnd))
}

func TestRenderBootstrap_EscapesScriptBreakout(t *testing.T) {
	user := &identity.ProjectedIdentity{
		Name:          "</script><script>alert(1)</script>",
		Role:          models.RoleUser,
		ProjectionKey: "k",
	}

	doc := renderToString(t, user)
	assert.NotContains(t, doc, "</script><script>alert(1)")

	raw, err := ExtractInjectedUser(doc)
	require.NoError(t, err)

	var decoded identity.ProjectedIdentity
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, user.Name, decoded.Name)
}

func TestExtractInjectedUser_RejectsMalformedDocuments(t *testing.T) {
	_, err := ExtractInjectedUser("<html></html>")
	assert.Error(t, err)

	_, err = ExtractInjectedUser(UserInjectStart + " null " + UserInjectEnd + UserInjectEnd)
	assert.Error(t, err)

	_, err = ExtractInjectedUser(UserInjectEnd + " null " + UserInjectStart)
	assert.Error(t, err)
}
