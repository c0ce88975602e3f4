package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/accountdesk/internal/server/auth"
	"github.com/dmitrijs2005/accountdesk/internal/server/models"
)

// sessionCookieName carries the signed session token.
const sessionCookieName = "accountdesk_session"

// issueSession signs a session token for user and sets the cookie. The
// remember flag selects the longer lifetime and is recorded in the claims so
// renewal keeps it.
func (s *Server) issueSession(w http.ResponseWriter, user *models.User, remember bool) error {
	validity := s.sessionValidity
	if remember {
		validity = s.rememberValidity
	}

	token, err := auth.GenerateToken(user, remember, s.secretKey, validity)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(validity),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// renewSession reissues the cookie for a still-valid session, restarting its
// window (sliding expiration).
func (s *Server) renewSession(w http.ResponseWriter, claims *auth.Claims) error {
	user := &models.User{ID: claims.UserID, Email: claims.Email, DisplayName: claims.Name}
	return s.issueSession(w, user, claims.Remember)
}

// clearSession invalidates the session cookie.
func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionClaims extracts and verifies the session from the request cookie.
// Missing or invalid cookies return nil.
func (s *Server) sessionClaims(r *http.Request) *auth.Claims {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	claims, err := auth.GetClaimsFromToken(cookie.Value, s.secretKey)
	if err != nil {
		return nil
	}

	return claims
}
