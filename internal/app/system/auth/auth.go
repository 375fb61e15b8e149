// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/vslopes/doahub/internal/app/system/webutil"
)

// Token verification failures. RequireToken maps all three to 403 with
// the user-facing messages the original service used.
var (
	ErrMissingHeader = errors.New("authorization header missing")
	ErrMissingToken  = errors.New("authorization header has no token")
	ErrInvalidToken  = errors.New("invalid token")
)

// Manager issues and verifies HS256 bearer tokens. The only claim the
// service relies on is the user id; tokens carry no expiry and stay valid
// until the signing secret rotates.
type Manager struct {
	secret []byte
	log    *zap.Logger
}

// NewManager creates a token Manager. An empty secret is refused: an
// unset secret must never silently allow forged tokens.
func NewManager(secret string, logger *zap.Logger) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret is empty")
	}
	return &Manager{secret: []byte(secret), log: logger}, nil
}

// Claims is the JWT payload: the owning user's id, nothing else.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Issue signs a token carrying the given user id.
func (m *Manager) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: userID})
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string and returns the user id it
// carries.
func (m *Manager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

type ctxKey string

const currentUserIDKey ctxKey = "currentUserID"

// CurrentUserID returns the authenticated user's id placed in the request
// context by RequireToken, and a "found?" flag.
func CurrentUserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(currentUserIDKey).(string)
	return id, ok
}

// WithUserID returns a request whose context carries the given user id.
// It exists so handler tests can bypass RequireToken.
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserIDKey, userID))
}

// RequireToken guards a route with bearer-token authentication. The
// credential must arrive as "Authorization: Bearer <token>"; any failure
// answers 403 without touching the wrapped handler.
func (m *Manager) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.authenticate(r)
		if err != nil {
			m.log.Info("request rejected by token check",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			webutil.Error(w, http.StatusForbidden, messageFor(err))
			return
		}
		next.ServeHTTP(w, WithUserID(r, userID))
	})
}

func (m *Manager) authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", ErrMissingToken
	}
	return m.Verify(parts[1])
}

// messageFor keeps the original user-facing wording for each failure.
func messageFor(err error) string {
	if errors.Is(err, ErrMissingHeader) {
		return "Token não fornecido"
	}
	return "Token inválido"
}
