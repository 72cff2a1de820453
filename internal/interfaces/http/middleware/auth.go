package middleware

import (
	"net/http"
	"strings"

	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys for authenticated request state
const (
	ActorKey      = "actor"
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// RequireAuth validates the bearer token and stores the resulting actor in
// the context. Requests without a valid access token are rejected.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtService)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		setActor(c, claims)
		c.Next()
	}
}

// OptionalAuth extracts the actor when a valid bearer token is present and
// leaves the request anonymous otherwise. Used on public read routes where
// staff get a wider view.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.Next()
			return
		}
		claims, err := jwtService.ValidateAccessToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			c.Next()
			return
		}
		setActor(c, claims)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after RequireAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil {
			abortUnauthorized(c, auth.ErrInvalidToken)
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient role for this operation",
			},
		})
	}
}

// GetActor returns the authenticated actor, or nil for anonymous requests
func GetActor(c *gin.Context) *identity.Actor {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(*identity.Actor); ok {
			return actor
		}
	}
	return nil
}

// GetClaims returns the validated JWT claims, or nil
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(JWTClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func claimsFromHeader(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		return nil, auth.ErrInvalidToken
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}
	return jwtService.ValidateAccessToken(tokenString)
}

func setActor(c *gin.Context, claims *auth.Claims) {
	userID, err := claims.GetUserUUID()
	if err != nil {
		userID = uuid.Nil
	}
	c.Set(JWTClaimsKey, claims)
	c.Set(ActorKey, &identity.Actor{
		UserID: userID,
		Role:   claims.GetRole(),
	})
}

func abortUnauthorized(c *gin.Context, err error) {
	code := "UNAUTHORIZED"
	message := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code = "TOKEN_EXPIRED"
		message = "Token has expired"
	case auth.ErrInvalidToken, auth.ErrInvalidClaims, auth.ErrInvalidTokenType:
		code = "TOKEN_INVALID"
		message = "Invalid token"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
