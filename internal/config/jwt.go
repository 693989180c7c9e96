package config

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taekwondodev/ledger-auth/internal/models"
)

type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

type Token interface {
	GenerateJWT(user *models.User) (string, error)
	ValidateJWT(tokenString string) (*Claims, error)
}

type JWT struct {
	jwtSecret  []byte
	expiration time.Duration
	now        func() time.Time
}

func NewJWT(secret string, expiration time.Duration) *JWT {
	return &JWT{
		jwtSecret:  []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// WithClock swaps the time source used for both issuing and validating.
func (j *JWT) WithClock(now func() time.Time) *JWT {
	j.now = now
	return j
}

func (j *JWT) GenerateJWT(user *models.User) (string, error) {
	if user == nil {
		return "", errors.New("generate jwt: nil user")
	}

	now := j.now()
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return j.generateToken(claims)
}

func (j *JWT) ValidateJWT(tokenString string) (*Claims, error) {
	token, claims, err := j.parseJWT(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, jwt.ErrSignatureInvalid
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

func (j *JWT) generateToken(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(j.jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (j *JWT) parseJWT(tokenString string) (*jwt.Token, *Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)

	return token, claims, err
}
