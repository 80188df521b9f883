package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"petspotter/internal/app"
	"petspotter/internal/logging"
	"petspotter/internal/model"
	"petspotter/internal/transport/http/response"
)

const (
	AuthorizationHeader = "Authorization"
	ContextUserKey      = "user"
)

// TokenAuthenticator resolves an access token to a user.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// RequireAccessToken admits requests whose Authorization header carries a
// known access token. Unknown or missing tokens get 401; a failing store
// gets 400 so clients can tell the two apart.
func RequireAccessToken(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.GetHeader(AuthorizationHeader))
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, app.ErrUnauthenticated) {
				response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Not authenticated")
				return
			}
			logging.With("auth").Error().Err(err).Msg("resolve access token failed")
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid request")
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func extractToken(header string) string {
	token := strings.TrimSpace(header)
	const prefix = "Bearer "
	if len(token) > len(prefix) && strings.EqualFold(token[:len(prefix)], prefix) {
		token = strings.TrimSpace(token[len(prefix):])
	}
	return token
}

// CurrentUser returns the user attached by RequireAccessToken.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}
