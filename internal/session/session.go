package session

import (
	"errors"
	"time"

	"matchup/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// Identity is who the caller says they are. Sessions are issued without a
// credential check; they only give requests a typed role.
type Identity struct {
	UserID  string      `json:"user_id"`
	Name    string      `json:"name"`
	Role    models.Role `json:"role"`
	FieldID string      `json:"field_id,omitempty"`
}

type Claims struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	FieldID string `json:"field_id,omitempty"`
	jwt.RegisteredClaims
}

// Generate signs an HS256 token for identity. An empty UserID gets a fresh one.
func Generate(secret string, identity Identity, ttl time.Duration, now time.Time) (string, Identity, error) {
	if identity.UserID == "" {
		identity.UserID = uuid.NewString()
	}
	claims := Claims{
		Name:    identity.Name,
		Role:    string(identity.Role),
		FieldID: identity.FieldID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", Identity{}, err
	}
	return token, identity, nil
}

func Parse(secret, raw string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	role, ok := models.ParseRole(claims.Role)
	if !ok || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		UserID:  claims.Subject,
		Name:    claims.Name,
		Role:    role,
		FieldID: claims.FieldID,
	}, nil
}
