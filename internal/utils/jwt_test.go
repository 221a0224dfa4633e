package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileToken_RoundTrip(t *testing.T) {
	tok, err := NewProfileToken("secret", time.Hour)
	require.NoError(t, err)
	_, err = uuid.Parse(tok.ProfileID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	id, err := ParseProfileToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, tok.ProfileID, id)
}

func TestParseProfileToken_Rejects(t *testing.T) {
	good, err := NewProfileToken("secret", time.Hour)
	require.NoError(t, err)
	expired, err := signProfile("secret", uuid.NewString(), time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	notUUID, err := signProfile("secret", "alice", time.Now(), time.Hour)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer: tokenIssuer, Subject: uuid.NewString(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{"wrong secret", "other", good.Token},
		{"expired", "secret", expired.Token},
		{"subject not a profile id", "secret", notUUID.Token},
		{"alg none", "secret", none},
		{"garbage", "secret", "not.a.jwt"},
		{"empty", "secret", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProfileToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
