package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/plantify/pkg/apperror"
	"github.com/oksasatya/plantify/pkg/helpers"
	"github.com/oksasatya/plantify/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// AccessVerifier checks a bearer access token.
type AccessVerifier interface {
	VerifyAccess(token string) (*helpers.Claims, error)
}

// Auth validates the Bearer access token and sets userID and userEmail in
// the Gin context on success. Refresh tokens are refused.
func Auth(jwt AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "No token provided", nil)
			return
		}
		// net/http strips trailing spaces, so "Bearer " arrives as "Bearer".
		if strings.EqualFold(strings.TrimSpace(header), "Bearer") {
			response.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token is empty", nil)
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid authorization format", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token is empty", nil)
			return
		}

		claims, err := jwt.VerifyAccess(token)
		if err != nil {
			code := apperror.CodeOf(err)
			response.Abort(c, http.StatusUnauthorized, code, apperror.MessageOf(err), nil)
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}
