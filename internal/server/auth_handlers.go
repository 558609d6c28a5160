package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pixfolio/pixfolio/internal/auth"
	"github.com/pixfolio/pixfolio/internal/config"
	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/pixfolio/pixfolio/internal/repository"
	"github.com/pixfolio/pixfolio/internal/services/identity"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandlers serves the minimal login surface the gallery needs: local
// name/password login issuing an opaque session cookie, logout, and a
// whoami endpoint the client bootstrap polls.
type AuthHandlers struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      *config.Config
}

// NewAuthHandlers creates the handler set for login and session routes
func NewAuthHandlers(users repository.UserRepository, sessions repository.SessionRepository, cfg *config.Config) *AuthHandlers {
	return &AuthHandlers{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
	}
}

// LoginRequest is the POST /api/user/login payload
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	User      *identity.ProjectedIdentity `json:"user"`
	ExpiresAt int64                       `json:"expiresAt"`
}

// HandleLogin authenticates a user by name and password and issues a session
// cookie. Unknown name and wrong password are indistinguishable to the caller.
func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Password == "" {
		http.Error(w, "missing name or password", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByName(ctx, req.Name)
	if err != nil {
		http.Error(w, ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	if user.DisabledAt != nil {
		http.Error(w, "account disabled", http.StatusForbidden)
		return
	}

	token, tokenHash, err := auth.GenerateSessionToken()
	if err != nil {
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	expiresAt := time.Now().Add(h.cfg.SessionDuration)
	userAgent := r.UserAgent()
	ipAddress := r.RemoteAddr
	session := &models.Session{
		ID:         uuid.NewString(),
		UserID:     &user.ID,
		TokenHash:  tokenHash,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
		LastUsedAt: time.Now(),
		UserAgent:  &userAgent,
		IPAddress:  &ipAddress,
	}
	if err := h.sessions.Create(ctx, session); err != nil {
		http.Error(w, "failed to create session", http.StatusInternalServerError)
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

	w.Header().Set("Content-Type", "application/json")
	resp := LoginResponse{
		User:      identity.Project(user, false),
		ExpiresAt: expiresAt.UnixMilli(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("ERROR: encode login response: %v", err)
	}
}

// HandleLogout revokes the current session and clears the cookie
func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		session, err := h.sessions.GetByTokenHash(ctx, auth.HashSessionToken(cookie.Value))
		if err == nil {
			if err := h.sessions.Revoke(ctx, session.ID); err != nil {
				log.Printf("WARNING: revoke session: %v", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusOK)
}

// HandleWhoAmI returns the projection of the current viewer.
//
// When authentication is switched off the deployment is a single-user
// gallery: anonymous visitors act as a synthetic admin.
func (h *AuthHandlers) HandleWhoAmI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.cfg.Users.AuthenticationRequired {
		writeJSON(w, identity.Project(&models.User{Name: "Admin", Role: models.RoleAdmin}, false))
		return
	}

	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		http.Error(w, ErrNoSession.Error(), http.StatusUnauthorized)
		return
	}

	session, err := h.sessions.GetByTokenHash(ctx, auth.HashSessionToken(cookie.Value))
	if err != nil || !session.Valid(time.Now()) || session.UserID == nil {
		http.Error(w, ErrNoSession.Error(), http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetByID(ctx, *session.UserID)
	if err != nil || user.DisabledAt != nil {
		http.Error(w, ErrNoSession.Error(), http.StatusUnauthorized)
		return
	}

	writeJSON(w, identity.Project(user, false))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encode response: %v", err)
	}
}
