package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	s := New("test_secret_key_32_characters_min", time.Hour)

	token, err := s.GenerateToken(42, "host")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "host", claims.Role)
}

func TestValidateToken_RejectsForeignIssuer(t *testing.T) {
	secret := "test_secret_key_32_characters_min"
	s := New(secret, time.Hour)

	foreign := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID: 42,
		Role:   "admin",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = s.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateToken_RejectsUnsignedAlg(t *testing.T) {
	s := New("test_secret_key_32_characters_min", time.Hour)

	none := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{
		UserID: 42,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := none.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.ValidateToken(signed)
	assert.Error(t, err)
}
