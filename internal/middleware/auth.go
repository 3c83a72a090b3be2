package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"taskPlanner/internal/logger"
	"taskPlanner/internal/models/user"
	rep "taskPlanner/internal/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const PrincipalKey contextKey = "principal"

type UserLookup interface {
	GetUserByID(context.Context, int64) (*user.User, error)
}

// Authenticate resolves the principal from an HS256 bearer token whose subject
// is the user id. Requests without a valid token or with an unknown subject
// are rejected with 401.
func Authenticate(secret []byte, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := parseBearer(r.Header.Get("Authorization"), secret)
			if err != nil {
				logger.Warn("HTTP: Authentication failed",
					zap.Error(err),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("client_ip", r.RemoteAddr))
				unauthorized(w)
				return
			}

			principal, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, rep.ErrNotFound) {
					logger.Warn("HTTP: Unknown token subject",
						zap.Int64("user_id", userID),
						zap.String("client_ip", r.RemoteAddr))
					unauthorized(w)
					return
				}
				logger.Error("HTTP: User lookup failed", err, zap.Int64("user_id", userID))
				writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"Could not authenticate the request. Please contact the administrator.")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func WithPrincipal(ctx context.Context, principal *user.User) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

func PrincipalFromContext(ctx context.Context) *user.User {
	if principal, ok := ctx.Value(PrincipalKey).(*user.User); ok {
		return principal
	}
	return nil
}

// IssueToken signs a token for userID. A zero ttl issues a token that never
// expires.
func IssueToken(secret []byte, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  strconv.FormatInt(userID, 10),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseBearer(header string, secret []byte) (int64, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return 0, errors.New("missing bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subject %q", claims.Subject)
	}
	return id, nil
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided or are invalid.")
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   errCode,
		"message": message,
	})
}
