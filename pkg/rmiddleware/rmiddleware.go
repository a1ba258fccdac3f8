package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pitchside/pitchside/internal/middleware"
	"github.com/pitchside/pitchside/internal/user"
)

// RoleMiddleware allows the request through when the user holds any of the
// required roles. Roles are read from the database, not the token, so a role
// change takes effect on the next request.
func RoleMiddleware(db *gorm.DB, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		var userRoles []string
		err = db.Model(&user.UserRole{}).
			Joins("JOIN roles ON user_roles.role_id = roles.id").
			Where("user_roles.user_id = ?", userID).
			Pluck("roles.name", &userRoles).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user roles"})
			return
		}

		hasRequiredRole := false
		for _, userRole := range userRoles {
			for _, requiredRole := range requiredRoles {
				if strings.EqualFold(userRole, requiredRole) {
					hasRequiredRole = true
					break
				}
			}
			if hasRequiredRole {
				break
			}
		}

		if !hasRequiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Forbidden",
				"message":  "You don't have permission to access this resource",
				"required": requiredRoles,
			})
			return
		}

		c.Set("user_roles", userRoles)
		c.Next()
	}
}

// AdminMiddleware is a convenience middleware for admin-only access.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return RoleMiddleware(db, user.RoleAdmin)
}

// ScorerOrAdminMiddleware guards the live-scoring endpoints.
func ScorerOrAdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return RoleMiddleware(db, user.RoleScorer, user.RoleAdmin)
}
