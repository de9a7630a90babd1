package authenticator

import (
	"errors"
	"time"

	"github.com/go4it-sports/starpath/config"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Issuer is written into every token and required when verifying it.
const Issuer = "starpath"

var ErrInvalidIssuer = errors.New("token was not issued by starpath")

type standardClaims[T any] struct {
	jwt.RegisteredClaims
	Object T `json:"obj,omitempty"`
}

type jwtTokenEngine[T any] struct {
	secret     []byte
	expiration time.Duration
	parser     *jwt.Parser
	now        func() time.Time
}

func NewTokenEngine[T any](secret string, cfg config.TokenConfigs) TokenEngine[T] {
	return &jwtTokenEngine[T]{
		secret:     []byte(secret),
		expiration: cfg.Expiration,
		parser:     jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
		now:        time.Now,
	}
}

func (e *jwtTokenEngine[T]) Expiration() time.Duration {
	return e.expiration
}

// Generate signs obj for the subject sub. The token expires after the
// configured expiration.
func (e *jwtTokenEngine[T]) Generate(sub string, obj T) (string, error) {
	now := e.now()
	claims := standardClaims[T]{
		Object: obj,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   sub,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.expiration)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(e.secret)
}

func (e *jwtTokenEngine[T]) Verify(token string) (T, error) {
	var claims standardClaims[T]
	_, err := e.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return e.secret, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	if !claims.VerifyIssuer(Issuer, true) {
		var zero T
		return zero, ErrInvalidIssuer
	}

	return claims.Object, nil
}
