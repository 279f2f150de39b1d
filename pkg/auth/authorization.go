package auth

import (
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Firebase ID token on incoming requests and
// attaches it to the context as "token".
func AuthMiddleware(firebaseApp *firebase.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || idToken == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing or malformed"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize Firebase Auth"})
			c.Abort()
			return
		}

		token, err := authClient.VerifyIDToken(ctx, idToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ID token"})
			c.Abort()
			return
		}

		c.Set("token", token)

		c.Next()
	}
}
