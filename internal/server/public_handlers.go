package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pixfolio/pixfolio/internal/auth"
	"github.com/pixfolio/pixfolio/internal/config"
	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/pixfolio/pixfolio/internal/repository"
	"github.com/pixfolio/pixfolio/internal/services/identity"
	"github.com/pixfolio/pixfolio/internal/services/sharing"
)

// PublicHandlers serves the anonymous sharing route. Per request:
// parse the sharing key, resolve it, project the owner identity (denials
// project to null), inject the projection into the bootstrap document.
//
// Every access-control outcome answers HTTP 200 with the same document shape;
// only the injected value differs. Probing status codes or response layout
// reveals nothing about whether a key exists, is expired, or wants a
// password. Storage faults are the one exception and answer 500.
type PublicHandlers struct {
	resolver *sharing.Resolver
	sessions repository.SessionRepository
	cfg      *config.Config
}

// NewPublicHandlers creates the handler set for the public sharing routes
func NewPublicHandlers(resolver *sharing.Resolver, sessions repository.SessionRepository, cfg *config.Config) *PublicHandlers {
	return &PublicHandlers{
		resolver: resolver,
		sessions: sessions,
		cfg:      cfg,
	}
}

// HandleShare handles GET /share/{sharingKey}[?password=...]
func (h *PublicHandlers) HandleShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sharingKey := chi.URLParam(r, "sharingKey")
	password := r.URL.Query().Get("password")

	var res *sharing.Resolution
	var err error

	switch {
	case password != "":
		res, err = h.resolver.Resolve(ctx, sharingKey, password)
		if err == nil {
			// The password checked out: remember that in a share session so
			// the next load does not ask again.
			h.mintShareSession(ctx, w, r, sharingKey)
		}
	case h.hasShareSession(ctx, r, sharingKey):
		res, err = h.resolver.ResolvePreverified(ctx, sharingKey)
	default:
		res, err = h.resolver.Resolve(ctx, sharingKey, "")
	}

	if err != nil {
		if !sharing.IsDenial(err) {
			log.Printf("ERROR: share resolution failed: %v", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		// Denial taxonomy is for the log only; the client sees null.
		if h.cfg.Debug {
			log.Printf("share %q denied: %v", sharingKey, err)
		}
		h.renderPage(w, nil)
		return
	}

	h.renderPage(w, identity.Project(res.User, res.UsedSharingKey))
}

// renderPage writes the bootstrap document with the given projection (nil for
// denied access) and the public configuration
func (h *PublicHandlers) renderPage(w http.ResponseWriter, user *identity.ProjectedIdentity) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := RenderBootstrap(w, user, ClientConfig{
		SharingEnabled:          h.cfg.Sharing.Enabled,
		SharingPasswordRequired: h.cfg.Sharing.PasswordRequired,
		AuthenticationRequired:  h.cfg.Users.AuthenticationRequired,
	}); err != nil {
		log.Printf("ERROR: write bootstrap document: %v", err)
	}
}

// hasShareSession reports whether the request carries a session that already
// verified the password for this sharing key
func (h *PublicHandlers) hasShareSession(ctx context.Context, r *http.Request, sharingKey string) bool {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	session, err := h.sessions.GetByTokenHash(ctx, auth.HashSessionToken(cookie.Value))
	if err != nil {
		return false
	}
	if !session.Valid(time.Now()) {
		return false
	}
	if session.SharingKey == nil || *session.SharingKey != sharingKey {
		return false
	}

	if err := h.sessions.Touch(ctx, session.ID); err != nil {
		log.Printf("WARNING: touch share session: %v", err)
	}
	return true
}

// mintShareSession issues a session bound to the sharing key. Failure to mint
// is not fatal: the visitor just re-enters the password next time.
func (h *PublicHandlers) mintShareSession(ctx context.Context, w http.ResponseWriter, r *http.Request, sharingKey string) {
	token, tokenHash, err := auth.GenerateSessionToken()
	if err != nil {
		log.Printf("WARNING: generate share session token: %v", err)
		return
	}

	expiresAt := time.Now().Add(h.cfg.SessionDuration)
	userAgent := r.UserAgent()
	ipAddress := r.RemoteAddr
	session := &models.Session{
		ID:         uuid.NewString(),
		SharingKey: &sharingKey,
		TokenHash:  tokenHash,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
		LastUsedAt: time.Now(),
		UserAgent:  &userAgent,
		IPAddress:  &ipAddress,
	}
	if err := h.sessions.Create(ctx, session); err != nil {
		log.Printf("WARNING: persist share session: %v", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
