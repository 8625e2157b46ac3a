package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/service-center/internal/config"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

var knownRoles = map[string]bool{
	models.RoleCustomer: true,
	models.RoleMechanic: true,
	models.RoleManager:  true,
}

// AuthMiddleware trusts an HS256 token whose sub is the user id and whose
// role is one of the service roles. Issuing tokens is not done here.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthenticated(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthenticated(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthenticated(c, "invalid_token_claims")
			return
		}

		userID, ok := claims["sub"].(float64)
		role, _ := claims["role"].(string)
		if !ok || userID <= 0 || !knownRoles[role] {
			abortUnauthenticated(c, "invalid_token_payload")
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: "Authentication required.",
	})
}

// RequireRole rejects callers whose role is not listed.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		if !allowed[c.GetString(ContextUserRole)] {
			httperr.Respond(c, httperr.UnauthorizedErr("role_forbidden", "Your role cannot perform this action."))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom returns the identity set by AuthMiddleware.
func CallerFrom(c *gin.Context) domain.Caller {
	return domain.Caller{
		UserID: c.GetUint(ContextUserID),
		Role:   c.GetString(ContextUserRole),
	}
}
