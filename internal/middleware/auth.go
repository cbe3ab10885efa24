package middleware

import (
	"net/http"
	"strings"

	"kidhub_backend/internal/auth"
	"kidhub_backend/internal/logger"
	"kidhub_backend/internal/models"
	"kidhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware проверяет JWT и кладет userID и роль в контекст.
// Роль берется не из claims, а из базы: смена роли или удаление
// аккаунта действует немедленно, а не после истечения токена.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		db := dbFromContext(c)
		if db == nil {
			logger.CtxError(c.Request.Context(), "auth middleware: db not found in context")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("role", user.Role)

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleMiddleware - ограничение по одной роли
func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return RequireRoles(requiredRole)
}

// RequireRoles - проверка нескольких возможных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

func dbFromContext(c *gin.Context) *gorm.DB {
	val, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		return nil
	}
	db, ok := val.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}
