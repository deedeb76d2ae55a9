package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"rollcall/internal/apperror"
)

// ClaimsKey is the gin context key holding verified Claims.
const ClaimsKey = "claims"

type ctxKey struct{}

// Verifier checks bearer tokens.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// RequireToken rejects requests without a valid bearer token. It never looks up the account,
// so a token stays usable for its whole lifetime.
func RequireToken(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			abort(c, apperror.New(apperror.Unauthenticated, "Access denied. No token provided.", nil))
			return
		}
		claims, err := v.Verify(tokenStr)
		if err != nil {
			abort(c, apperror.New(apperror.InvalidToken, "Invalid token.", err))
			return
		}
		c.Set(ClaimsKey, claims)
		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func abort(c *gin.Context, err *apperror.Error) {
	c.AbortWithStatusJSON(err.StatusCode(), gin.H{"error": err.Message})
}

// bearerToken returns the credential part of an Authorization header value.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(rest)
}

// WithClaims returns a context carrying claims.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// ClaimsFromContext returns the claims stored by RequireToken.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(Claims)
	return claims, ok
}
