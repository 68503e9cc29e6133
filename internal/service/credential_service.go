package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"blogapi/internal/apperror"
	"blogapi/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenClaims is the JWT payload. Subject mirrors UserID as a string.
type TokenClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

type CredentialService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(candidate, hashedPassword string) bool
	IssueToken(userID int64) (string, error)
	ParseToken(tokenString string) (*TokenClaims, error)
}

type credentialService struct {
	saltRounds int
	secret     []byte
	expiry     time.Duration
	now        func() time.Time
}

func NewCredentialService(cfg *config.Config) CredentialService {
	return &credentialService{
		saltRounds: cfg.SaltRounds,
		secret:     []byte(cfg.JWTSecretKey),
		expiry:     cfg.JWTExpiry,
		now:        time.Now,
	}
}

func (s *credentialService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.saltRounds)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperror.Validation("password", "password must be at most 72 bytes")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *credentialService) VerifyPassword(candidate, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(candidate)) == nil
}

func (s *credentialService) IssueToken(userID int64) (string, error) {
	now := s.now()

	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

func (s *credentialService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "Invalid or expired token", err)
	}

	if claims.UserID <= 0 {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}

	return claims, nil
}
