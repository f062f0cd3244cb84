package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rahulpatel51/hostel-management/internal/authz"
	"github.com/rahulpatel51/hostel-management/internal/entity"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/pkg/response"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	secret   string
}

// NewAuthMiddleware verifies tokens with the same secret the auth service
// signs them with; both receive it from the loaded config.
func NewAuthMiddleware(userRepo userRepo.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

// RequireAuth validates the bearer token, loads the account and stores
// user_id, role and the user record on the request context. Deactivated
// accounts are rejected even with a valid token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Cookie fallback (set at login) and query parameter (WebSocket feed).
		if tokenString == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			response.ErrorMessage(c, http.StatusUnauthorized, "authorization required")
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			response.ErrorMessage(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			response.ErrorMessage(c, http.StatusUnauthorized, "invalid token claims")
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), claims.Subject)
		if err != nil {
			response.ErrorMessage(c, http.StatusUnauthorized, "user not found")
			c.Abort()
			return
		}

		if !user.Active {
			response.ErrorMessage(c, http.StatusForbidden, "account is deactivated")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("role", user.Role)
		c.Set("user", user)
		c.Next()
	}
}

// RequireRoles gates a route group to an explicit role allow-list.
func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok {
			response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		response.ErrorMessage(c, http.StatusForbidden, "insufficient role for this route")
		c.Abort()
	}
}

// RequirePermission checks the caller's role against the policy table for a
// (resource, action) pair.
func (m *AuthMiddleware) RequirePermission(resource authz.Resource, action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok {
			response.ErrorMessage(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		if !authz.Allowed(role, resource, action) {
			response.ErrorMessage(c, http.StatusForbidden,
				fmt.Sprintf("role %q may not %s %s", role, action, resource))
			c.Abort()
			return
		}

		c.Next()
	}
}

func roleFromContext(c *gin.Context) (entity.Role, bool) {
	v, exists := c.Get("role")
	if !exists {
		return "", false
	}
	role, ok := v.(entity.Role)
	return role, ok
}

// CurrentUser returns the loaded account set by RequireAuth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
