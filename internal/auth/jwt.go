package auth

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Resolved lazily on first use, not at package init, so values that main
// loads into the environment from .env are picked up.
var (
	configOnce  sync.Once
	jwtSecret   []byte
	jwtIssuer   string
	jwtAudience string
)

func loadConfig() {
	configOnce.Do(func() {
		jwtSecret = []byte(getEnv("JWT_SECRET", "development-insecure-secret-change-me"))
		jwtIssuer = getEnv("JWT_ISSUER", "ops-pilot")
		jwtAudience = getEnv("JWT_AUDIENCE", "ops-pilot-clients")
	})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Identity is the verified actor behind a request.
type Identity struct {
	ID             string
	Role           models.Role
	OrganizationID uint
}

// Claims represents the JWT claims
type Claims struct {
	UserID         string      `json:"user_id"`
	Role           models.Role `json:"role"`
	OrganizationID uint        `json:"organization_id"`
	jwt.RegisteredClaims
}

// Identity converts validated claims into an Identity.
func (c *Claims) Identity() Identity {
	return Identity{
		ID:             c.UserID,
		Role:           c.Role,
		OrganizationID: c.OrganizationID,
	}
}

// GenerateToken generates a JWT token for the given user
func GenerateToken(userID string, role models.Role, organizationID uint) (string, error) {
	loadConfig()
	claims := Claims{
		UserID:         userID,
		Role:           role,
		OrganizationID: organizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string) (*Claims, error) {
	loadConfig()
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.Issuer != jwtIssuer {
			return nil, errors.New("invalid token issuer")
		}
		// Manually check audience for compatibility with jwt v5 types
		audValid := false
		for _, aud := range claims.Audience {
			if aud == jwtAudience {
				audValid = true
				break
			}
		}
		if !audValid {
			return nil, errors.New("invalid token audience")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
