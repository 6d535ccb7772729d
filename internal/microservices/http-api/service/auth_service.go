package service

import (
	"errors"
	"time"

	"carhub/internal/config"
	"carhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrAdminDisabled      = errors.New("admin login is not configured")
)

// Claims carried by admin access tokens
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(username, password string) (accessToken string, expiresIn time.Duration, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	adminUsername     string
	adminPasswordHash string
	jwtSecret         string
	accessTokenTTL    time.Duration
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
		jwtSecret:         cfg.JWTSecret,
		accessTokenTTL:    cfg.AccessTokenTTL,
	}
}

// Login checks the configured admin credentials and issues a short-lived access token.
func (s *authService) Login(username, password string) (string, time.Duration, error) {
	if s.adminUsername == "" || s.adminPasswordHash == "" {
		return "", 0, ErrAdminDisabled
	}

	if username != s.adminUsername {
		auth.BurnPasswordCheck(password)
		return "", 0, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(s.adminPasswordHash, password); err != nil {
		return "", 0, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(username)
	if err != nil {
		return "", 0, err
	}
	return token, s.accessTokenTTL, nil
}

func (s *authService) generateAccessToken(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
