// Package identity builds the minimal projection of a user that may be
// exposed to an anonymous viewer. Everything else about the user (id,
// credentials, timestamps) stays server-side.
package identity

import (
	"github.com/google/uuid"
	"github.com/pixfolio/pixfolio/internal/db/models"
)

// ProjectedIdentity is the privacy-safe subset of a user handed to the
// client bootstrap. It contains exactly these four fields; equality is
// structural, not tied to the backing user row.
type ProjectedIdentity struct {
	Name           string      `json:"name"`
	Role           models.Role `json:"role"`
	UsedSharingKey bool        `json:"usedSharingKey"`
	ProjectionKey  string      `json:"projectionKey"`
}

// Project derives a ProjectedIdentity from a resolved user. A nil user
// projects to nil, never to an empty value.
//
// ProjectionKey is a fresh request-scoped token on every call. It is not
// stored, not stable across resolutions and never correlates separate
// sessions.
func Project(user *models.User, usedSharingKey bool) *ProjectedIdentity {
	if user == nil {
		return nil
	}
	return &ProjectedIdentity{
		Name:           user.Name,
		Role:           user.Role,
		UsedSharingKey: usedSharingKey,
		ProjectionKey:  uuid.NewString(),
	}
}
