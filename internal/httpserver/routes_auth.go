// internal/httpserver/routes_auth.go
//
// Authentication routes and identity middleware.
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me (requires auth)
// JWTs travel in an HttpOnly cookie or an Authorization: Bearer header.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dejny/wordle/internal/auth"
	"github.com/dejny/wordle/internal/session"
)

const anonCookieName = "wordle_anon"

// ctxCallerKey is the context key for the request's session.Caller.
type ctxCallerKey struct{}

// ctxUserKey is the context key for the signed-in *auth.User.
type ctxUserKey struct{}

type credentialsReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) mountAuth(r chi.Router) {
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)
	r.With(s.requireAuth).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		u, _ := r.Context().Value(ctxUserKey{}).(*auth.User)
		writeJSON(w, http.StatusOK, u)
	})
}

// handleSignup creates a user, sets the auth cookie and returns the profile.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := s.users.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.issueToken(w, u); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// handleLogin authenticates a user and sets the auth cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.issueToken(w, u); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, s.cfg.CookieName, "", time.Time{}, -1)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) issueToken(w http.ResponseWriter, u *auth.User) error {
	tok, exp, err := s.users.Sign(u)
	if err != nil {
		return err
	}
	s.setCookie(w, s.cfg.CookieName, tok, exp, 0)
	return nil
}

// --------------------------- identity ---------------------------------------

// withIdentity attaches a session.Caller to every request: the anonymous
// cookie ID always, plus the user when a valid token is present. It never
// rejects a request.
func (s *Server) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := session.Caller{AnonID: s.ensureAnonID(w, r)}
		ctx := r.Context()
		if tok := s.bearerOrCookie(r); tok != "" {
			if u, err := s.users.Verify(ctx, tok); err == nil {
				c.UserID = u.ID
				ctx = context.WithValue(ctx, ctxUserKey{}, u)
			}
		}
		zerolog.Ctx(ctx).UpdateContext(func(zc zerolog.Context) zerolog.Context {
			return zc.Str("owner", c.Owner())
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxCallerKey{}, c)))
	})
}

// requireAuth rejects requests without a valid token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := s.bearerOrCookie(r)
		if tok == "" {
			writeError(w, r, auth.ErrInvalidToken)
			return
		}
		u, err := s.users.Verify(r.Context(), tok)
		if err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
	})
}

func callerFrom(r *http.Request) session.Caller {
	c, _ := r.Context().Value(ctxCallerKey{}).(session.Caller)
	return c
}

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	s.setCookie(w, anonCookieName, id, time.Now().Add(180*24*time.Hour), 0)
	return id
}

// bearerOrCookie extracts a bearer token from the Authorization header or the auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// setCookie writes an HttpOnly cookie; production cookies are Secure and
// SameSite=None so a separately hosted client can send them.
func (s *Server) setCookie(w http.ResponseWriter, name, value string, exp time.Time, maxAge int) {
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
		MaxAge:   maxAge,
	})
}
