package utils // package utils provides helpers for issuing and verifying profile tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenIssuer is the iss claim of every profile token.
const tokenIssuer = "cinema-seat-booking"

// ErrInvalidToken is returned for tokens that are malformed, expired, signed
// with another key or missing a profile subject.
var ErrInvalidToken = errors.New("invalid token")

// ProfileToken is a signed JWT naming one browser profile.  The profile id
// scopes the persisted booking state the way a browser profile scopes its
// local storage.
type ProfileToken struct {
	Token     string    // the serialized JWT string
	ProfileID string    // random UUID, also the sub claim
	Exp       time.Time // UTC expiration time
}

// NewProfileToken mints a profile id and signs an HS256 token for it.
func NewProfileToken(secret string, ttl time.Duration) (ProfileToken, error) {
	return signProfile(secret, uuid.NewString(), time.Now().UTC(), ttl)
}

func signProfile(secret, profileID string, now time.Time, ttl time.Duration) (ProfileToken, error) {
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   profileID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return ProfileToken{}, err
	}
	return ProfileToken{Token: signed, ProfileID: profileID, Exp: exp}, nil
}

// ParseProfileToken verifies raw and returns its profile id.
func ParseProfileToken(secret, raw string) (string, error) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
