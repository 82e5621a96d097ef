package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "finapp/internal/errors"
)

const (
	userIDKey    = "userID"
	bearerPrefix = "Bearer "
)

// IdentityResolver maps an Authorization header to a user id.
//
// With a non-empty default user id, requests without a bearer token act as
// that user. Otherwise they are anonymous. A bearer token that fails
// verification is never replaced by the default.
type IdentityResolver struct {
	tokens        *TokenService
	defaultUserID string
}

// NewIdentityResolver creates an IdentityResolver. Pass an empty
// defaultUserID for strict authentication.
func NewIdentityResolver(tokens *TokenService, defaultUserID string) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, defaultUserID: defaultUserID}
}

// Resolve applies the default-identity policy to header.
func (r *IdentityResolver) Resolve(header string) (string, bool) {
	token, ok := bearerToken(header)
	if !ok {
		if r.defaultUserID != "" {
			return r.defaultUserID, true
		}
		return "", false
	}
	return r.tokens.Verify(token)
}

// ResolveBearer accepts only a valid bearer token.
func (r *IdentityResolver) ResolveBearer(header string) (string, bool) {
	token, ok := bearerToken(header)
	if !ok {
		return "", false
	}
	return r.tokens.Verify(token)
}

func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// AuthMiddleware resolves the caller and stores the id in the context.
// Unresolvable callers get 401.
func AuthMiddleware(resolver *IdentityResolver) gin.HandlerFunc {
	return identityMiddleware(resolver.Resolve)
}

// RequireBearer is AuthMiddleware without the default-identity fallback.
func RequireBearer(resolver *IdentityResolver) gin.HandlerFunc {
	return identityMiddleware(resolver.ResolveBearer)
}

func identityMiddleware(resolve func(string) (string, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolve(c.GetHeader("Authorization"))
		if !ok {
			abortWithAppError(c, apperrors.ErrUnauthorized)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{"error": appErr.Message})
}
