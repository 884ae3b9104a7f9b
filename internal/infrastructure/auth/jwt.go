package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vendora/backend/internal/infrastructure/config"
)

// Role names carried in token claims
const (
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSubject   = errors.New("missing subject in claims")
	ErrMissingRole      = errors.New("missing role in claims")
)

// Claims represents the custom JWT claims for the admin/vendor API.
// SubjectID is the vendor's aggregate id for vendor tokens and an
// operator id for admin tokens.
type Claims struct {
	jwt.RegisteredClaims
	SubjectID string `json:"subject_id"`
	Role      string `json:"role"`
	Name      string `json:"name,omitempty"`
}

// IsAdmin reports whether the token was issued for an operator
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// SubjectUUID parses the subject id as a UUID
func (c *Claims) SubjectUUID() (uuid.UUID, error) {
	return uuid.Parse(c.SubjectID)
}

// JWTService signs and validates API tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateTokenInput contains input for token generation
type GenerateTokenInput struct {
	SubjectID uuid.UUID
	Role      string
	Name      string
}

// GenerateToken issues a signed token for the given subject
func (s *JWTService) GenerateToken(input GenerateTokenInput) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.SubjectID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SubjectID: input.SubjectID.String(),
		Role:      input.Role,
		Name:      input.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken validates a token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.SubjectID == "" {
		return nil, ErrMissingSubject
	}
	if claims.Role != RoleAdmin && claims.Role != RoleVendor {
		return nil, ErrMissingRole
	}

	return claims, nil
}

// Expiration returns the configured token lifetime
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}
