package middleware

import (
	"net/http"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
)

// VisitorCookie carries the visitor token for browser clients.
const VisitorCookie = "visitor_token"

// VisitorAuth validates the visitor token from cookie or Authorization header
// and stores its session and cart ids in the context.
func VisitorAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		// Try to get token from cookie first
		cookieToken, err := c.Cookie(VisitorCookie)
		if err == nil && cookieToken != "" {
			token = cookieToken
		} else {
			// Fallback to Authorization header
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authorization header required"))
				c.Abort()
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid authorization header format"))
				c.Abort()
				return
			}

			token = parts[1]
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set("sessionID", claims.SessionID)
		c.Set("cartID", claims.CartID)

		c.Next()
	}
}

func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	id, exists := c.Get("sessionID")
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}

func GetCartIDFromContext(c *gin.Context) (string, bool) {
	id, exists := c.Get("cartID")
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
