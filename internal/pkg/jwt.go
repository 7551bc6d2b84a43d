package pkg

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenUnknown   = errors.New("token validation failed")
)

var (
	jwtSecret []byte
	jwtMethod jwt.SigningMethod = jwt.SigningMethodHS256
	jwtTTL                      = 30 * time.Minute
)

type Claims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

// InitJWT configures the signing secret, symmetric algorithm and token TTL.
func InitJWT(secret, algorithm string, ttlMinutes int) error {
	if secret == "" {
		return errors.New("jwt secret required")
	}
	switch algorithm {
	case "", "HS256":
		jwtMethod = jwt.SigningMethodHS256
	case "HS384":
		jwtMethod = jwt.SigningMethodHS384
	case "HS512":
		jwtMethod = jwt.SigningMethodHS512
	default:
		return fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	jwtSecret = []byte(secret)
	if ttlMinutes != 0 {
		jwtTTL = time.Duration(ttlMinutes) * time.Minute
	}
	return nil
}

func GenerateToken(userID uint64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwtMethod, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtTTL)),
			Subject:   "access",
		},
	})
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwtMethod.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenUnknown
		}
	}
	if !token.Valid {
		return nil, ErrTokenUnknown
	}
	return token.Claims.(*Claims), nil
}
