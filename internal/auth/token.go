package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hongminglow/linkinbio-be/internal/models"
)

// TokenTTL is the fixed lifetime of a session token. Tokens cannot be revoked
// before they expire.
const TokenTTL = time.Hour

// Identity is the claim a verified token vouches for.
type Identity struct {
	UserID int64
	Email  string
}

// Claims is the JWT payload of a session token.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed JWTs for authenticated users.
type TokenManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenManager creates a manager with the provided secret and issuer.
func NewTokenManager(secret, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Generate issues a signed JWT string for the provided user.
func (t *TokenManager) Generate(user models.User) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies the signature, issuer and expiry of tokenString and returns
// the embedded identity. Any failure is reported as ErrTokenInvalid.
func (t *TokenManager) Parse(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// ErrTokenInvalid means a token was presented but failed verification.
var ErrTokenInvalid = errors.New("token invalid")

// ErrTokenMissing means no bearer token was presented.
var ErrTokenMissing = errors.New("token missing")
