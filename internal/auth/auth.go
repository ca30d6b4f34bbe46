package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dudafacio/rsvp-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookieName = "admin_session"
	TokenDuration     = 12 * time.Hour
)

// AuthHandler guards the admin surface. Callers present either the shared
// admin token in X-Admin-Token or a session cookie obtained from HandleLogin.
type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// AdminInput carries the credentials of an admin request. Embed it in huma
// inputs for protected operations and pass it to Authorize.
type AdminInput struct {
	AdminToken string `header:"X-Admin-Token" doc:"Shared admin token" required:"false"`
	Cookie     string `header:"Cookie" required:"false"`
}

// Authorize checks the admin token header first, then the session cookie.
// An unset ADMIN_TOKEN is a server misconfiguration, not an auth failure.
func (h *AuthHandler) Authorize(input AdminInput) error {
	if h.cfg.AdminToken == "" {
		return huma.Error500InternalServerError("ADMIN_TOKEN not configured on the server")
	}

	if input.AdminToken != "" {
		if subtle.ConstantTimeCompare([]byte(input.AdminToken), []byte(h.cfg.AdminToken)) == 1 {
			return nil
		}
		return huma.Error401Unauthorized("Invalid token")
	}

	if session := sessionFromCookieHeader(input.Cookie); session != "" {
		if h.verifySession(session) {
			return nil
		}
	}

	return huma.Error401Unauthorized("Invalid token")
}

// LoginInput exchanges the shared admin token for a session cookie so the
// admin frontend never has to keep the raw secret around.
type LoginInput struct {
	Body struct {
		Token string `json:"token" doc:"Shared admin token" required:"true"`
	}
}

type LoginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message   string    `json:"message"`
		ExpiresAt time.Time `json:"expires_at"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if err := h.Authorize(AdminInput{AdminToken: input.Body.Token}); err != nil {
		return nil, err
	}

	token, err := h.GenerateToken()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate session token")
	}

	expires := time.Now().Add(TokenDuration)
	res := &LoginOutput{
		SetCookie: http.Cookie{
			Name:     SessionCookieName,
			Value:    token,
			Expires:  expires,
			HttpOnly: true,
			Path:     "/",
		},
	}
	res.Body.Message = "Logged in"
	res.Body.ExpiresAt = expires
	return res, nil
}

func (h *AuthHandler) GenerateToken() (string, error) {
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.sessionSecret())
}

func (h *AuthHandler) verifySession(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return h.sessionSecret(), nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return ok && claims["role"] == "admin"
}

// Sessions are signed with SESSION_SECRET when present, falling back to the
// admin token so a minimal deployment needs a single secret.
func (h *AuthHandler) sessionSecret() []byte {
	if h.cfg.SessionSecret != "" {
		return []byte(h.cfg.SessionSecret)
	}
	return []byte(h.cfg.AdminToken)
}

func sessionFromCookieHeader(header string) string {
	req := http.Request{Header: http.Header{"Cookie": []string{header}}}
	c, err := req.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
