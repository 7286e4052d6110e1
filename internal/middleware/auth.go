package middleware

import (
	"context"
	"net/http"
	"strings"
	"vidshare/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	CurrentUserKey = "user"
	TokenCookie    = "token"

	authRequiredMessage = "You must be logged in to access this endpoint"
)

// UserLoader resolves a token subject to a user with their videos.
type UserLoader interface {
	GetUserWithVideos(ctx context.Context, id uint) (*models.User, error)
}

// TokenVerifier returns the user id carried by a valid token.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// ExtractToken reads the raw Authorization header, tolerating a "Bearer " prefix,
// and falls back to the login cookie.
func ExtractToken(c *gin.Context) string {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return header
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func resolveUser(c *gin.Context, users UserLoader, tokens TokenVerifier, token string) (*models.User, bool) {
	userID, err := tokens.Verify(token)
	if err != nil {
		return nil, false
	}
	user, err := users.GetUserWithVideos(c.Request.Context(), userID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// GetAuthUser attaches the user when a token is present and lets anonymous
// requests through. A token that is present but does not resolve is rejected.
func GetAuthUser(users UserLoader, tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.Next()
			return
		}

		user, ok := resolveUser(c, users, tokens, token)
		if !ok {
			Fail(c, NewError(http.StatusUnauthorized, authRequiredMessage))
			return
		}
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// Protect requires a token resolving to an existing user. Every failure looks the same to the client.
func Protect(users UserLoader, tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			Fail(c, NewError(http.StatusUnauthorized, authRequiredMessage))
			return
		}

		user, ok := resolveUser(c, users, tokens, token)
		if !ok {
			Fail(c, NewError(http.StatusUnauthorized, authRequiredMessage))
			return
		}
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CurrentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
