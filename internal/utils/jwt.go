package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID      string `json:"uid"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	CommunityID string `json:"community_id,omitempty"`
	jwt.RegisteredClaims
}

var (
	jwtSecret          []byte
	jwtExpirationHours int
)

// ConfigureJWT sets the signing secret and token lifetime. Must be
// called once at startup before any token is issued or validated.
func ConfigureJWT(secret string, expirationHours int) {
	jwtSecret = []byte(secret)
	jwtExpirationHours = expirationHours
	if jwtExpirationHours <= 0 {
		jwtExpirationHours = 24
	}
}

func GenerateToken(userID, role, name, communityID string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("jwt secret not configured")
	}

	now := time.Now()
	claims := Claims{
		UserID:      userID,
		Role:        role,
		Name:        name,
		CommunityID: communityID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(jwtExpirationHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
