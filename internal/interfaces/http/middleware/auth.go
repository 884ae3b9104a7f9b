package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendora/backend/internal/infrastructure/auth"
	"github.com/vendora/backend/internal/infrastructure/logger"
	"github.com/vendora/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	ClaimsKey     = "auth_claims"
	SubjectIDKey  = "auth_subject_id"
	RoleKey       = "auth_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticate validates the bearer token and stores its claims in the
// request context. Requests without a valid token are rejected.
func Authenticate(jwtService *auth.JWTService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			rejectUnauthenticated(c, log, auth.ErrInvalidToken, "missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			rejectUnauthenticated(c, log, auth.ErrInvalidToken, "malformed authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			rejectUnauthenticated(c, log, auth.ErrInvalidToken, "missing token")
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			rejectUnauthenticated(c, log, err, "token validation failed")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(SubjectIDKey, claims.SubjectID)
		c.Set(RoleKey, claims.Role)

		if claims.Role == auth.RoleVendor {
			ctx := c.Request.Context()
			ctx, _ = logger.WithVendorID(ctx, logger.FromContext(ctx), claims.SubjectID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// RequireAdmin rejects requests whose token was not issued for an
// operator. Place it after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

// RequireVendor rejects requests whose token does not identify a vendor
func RequireVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.Role != auth.RoleVendor {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Vendor access required"))
			return
		}
		c.Next()
	}
}

func rejectUnauthenticated(c *gin.Context, log *zap.Logger, err error, reason string) {
	if log != nil {
		log.Warn("authentication failed",
			zap.Error(err),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	message := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	case auth.ErrInvalidToken, auth.ErrInvalidClaims, auth.ErrMissingSubject, auth.ErrMissingRole:
		code = dto.ErrCodeTokenInvalid
		message = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetClaims retrieves validated claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(ClaimsKey); exists {
		if authClaims, ok := claims.(*auth.Claims); ok {
			return authClaims
		}
	}
	return nil
}

// GetSubjectID retrieves the authenticated subject id from the context
func GetSubjectID(c *gin.Context) string {
	if subjectID, exists := c.Get(SubjectIDKey); exists {
		if id, ok := subjectID.(string); ok {
			return id
		}
	}
	return ""
}

// GetRole retrieves the authenticated role from the context
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(RoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetVendorID parses the authenticated subject as a vendor id. The
// second return is false for admin tokens and unparseable ids.
func GetVendorID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetClaims(c)
	if claims == nil || claims.Role != auth.RoleVendor {
		return uuid.Nil, false
	}
	id, err := claims.SubjectUUID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
