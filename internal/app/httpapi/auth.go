package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/LaunchLens/analysis_layer/pkg/logger"
)

type contextKey int

const subjectKey contextKey = iota

// SubjectFrom returns the authenticated caller id, empty when unauthenticated.
func SubjectFrom(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey).(string)
	return subject
}

// Authenticator resolves the caller identity from a Supabase-issued bearer
// token. Only the subject claim is used; there is no session state here.
type Authenticator struct {
	secret []byte
	log    *logger.Logger
}

// NewAuthenticator creates an authenticator over the project JWT secret.
func NewAuthenticator(secret string, log *logger.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), log: log}
}

// Middleware rejects requests without a valid bearer token and stores the
// subject in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}

		subject, err := a.subject(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.log.WithError(err).Debug("token rejected")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) subject(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return subject, nil
}
