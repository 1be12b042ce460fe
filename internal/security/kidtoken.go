package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"learnloop/internal/models"
)

// ErrInvalidKidToken is returned when a kid session token fails to parse
// or verify.
var ErrInvalidKidToken = errors.New("invalid kid session token")

// kidClaims is the JWT payload for a kid session. Kid sessions are
// client-asserted: the token only proves which child logged in with a
// family code and PIN, never parent-level authority.
type kidClaims struct {
	ChildID     int64  `json:"child_id"`
	ChildName   string `json:"child_name"`
	AvatarEmoji string `json:"avatar_emoji"`
	ParentID    int64  `json:"parent_id"`
	jwt.RegisteredClaims
}

// KidTokenIssuer signs and verifies kid session tokens
type KidTokenIssuer struct {
	secret   []byte
	lifetime time.Duration
}

// NewKidTokenIssuer creates a kid token issuer with an HS256 secret
func NewKidTokenIssuer(secret string, lifetime time.Duration) *KidTokenIssuer {
	return &KidTokenIssuer{secret: []byte(secret), lifetime: lifetime}
}

// Issue signs a token for a kid session
func (i *KidTokenIssuer) Issue(session models.KidSession) (string, error) {
	now := time.Now()
	claims := kidClaims{
		ChildID:     session.ChildID,
		ChildName:   session.ChildName,
		AvatarEmoji: session.AvatarEmoji,
		ParentID:    session.ParentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a kid session token
func (i *KidTokenIssuer) Verify(tokenString string) (*models.KidSession, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	claims := &kidClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidKidToken
	}

	session := &models.KidSession{
		ChildID:     claims.ChildID,
		ChildName:   claims.ChildName,
		AvatarEmoji: claims.AvatarEmoji,
		ParentID:    claims.ParentID,
	}
	if claims.IssuedAt != nil {
		session.LoggedInAt = claims.IssuedAt.Time
	}
	return session, nil
}
