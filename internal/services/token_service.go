package services

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is fixed; there are no refresh tokens.
const TokenTTL = 7 * 24 * time.Hour

type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens carrying the user id
// (sub) and role.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

func (s *TokenService) Issue(userID uuid.UUID, role models.Role) (string, error) {
	if userID == uuid.Nil || !role.Valid() {
		return "", fmt.Errorf("issue token: invalid subject %q role %q", userID, role)
	}
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify resolves a raw token to the identity it was issued for. Any parse,
// signature, algorithm or expiry problem yields ErrInvalidToken.
func (s *TokenService) Verify(raw string) (identity.Identity, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, s.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return identity.Identity{}, ErrInvalidToken
	}
	return s.IdentityFromToken(tok)
}

// Keyfunc rejects anything but HS256 before handing out the secret. The
// bearer guard relies on it alone for the algorithm check.
func (s *TokenService) Keyfunc(t *jwt.Token) (interface{}, error) {
	if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return s.secret, nil
}

// IdentityFromToken extracts the identity from an already verified token.
func (s *TokenService) IdentityFromToken(tok *jwt.Token) (identity.Identity, error) {
	if tok == nil || !tok.Valid {
		return identity.Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil || !claims.Role.Valid() {
		return identity.Identity{}, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return identity.Identity{}, ErrInvalidToken
	}
	return identity.Identity{UserID: userID, Role: claims.Role}, nil
}
