package services

import (
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret)
	userID := uuid.New()

	for _, role := range []models.Role{models.RolePatient, models.RolePractitioner} {
		tok, err := svc.Issue(userID, role)
		require.NoError(t, err)

		id, err := svc.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, userID, id.UserID)
		assert.Equal(t, role, id.Role)
	}
}

func TestTokenExpiresAfterSevenDays(t *testing.T) {
	svc := NewTokenService(testSecret)
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	tok, err := svc.Issue(uuid.New(), models.RolePatient)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(TokenTTL - time.Minute) }
	_, err = svc.Verify(tok)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(TokenTTL + time.Minute) }
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsTampering(t *testing.T) {
	svc := NewTokenService(testSecret)
	userID := uuid.New()
	tok, err := svc.Issue(userID, models.RolePatient)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenService("other-secret").Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.Verify("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("modified signature", func(t *testing.T) {
		parts := strings.Split(tok, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		_, err := svc.Verify(parts[0] + "." + parts[1] + "." + string(sig))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("alg none", func(t *testing.T) {
		claims := Claims{
			Role: models.RolePractitioner,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Verify(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenRejectsBadClaims(t *testing.T) {
	svc := NewTokenService(testSecret)
	sign := func(c Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		claims Claims
	}{
		{"unknown role", Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString(), ExpiresAt: exp}}},
		{"non uuid subject", Claims{Role: models.RolePatient, RegisteredClaims: jwt.RegisteredClaims{Subject: "42", ExpiresAt: exp}}},
		{"no expiry", Claims{Role: models.RolePatient, RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(sign(tt.claims))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestIssueRejectsInvalidInput(t *testing.T) {
	svc := NewTokenService(testSecret)

	_, err := svc.Issue(uuid.Nil, models.RolePatient)
	assert.Error(t, err)

	_, err = svc.Issue(uuid.New(), "admin")
	assert.Error(t, err)
}

func TestKeyfuncOnlyAcceptsHS256(t *testing.T) {
	svc := NewTokenService(testSecret)

	key, err := svc.Keyfunc(jwt.New(jwt.SigningMethodHS256))
	require.NoError(t, err)
	assert.Equal(t, []byte(testSecret), key)

	for _, m := range []jwt.SigningMethod{jwt.SigningMethodHS384, jwt.SigningMethodHS512, jwt.SigningMethodNone} {
		_, err := svc.Keyfunc(jwt.New(m))
		assert.Error(t, err, m.Alg())
	}
}
