package jwt

import (
	"blood-portal/domain"
	"blood-portal/internal/utils"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	defaultIssuer = "BLOOD-PORTAL"
	tokenTTL      = 120 * time.Minute
)

type (
	JWTService interface {
		GenerateToken(userID, email, role string) (string, error)
		ValidateToken(token string) (*jwt.Token, error)
		GetCallerByToken(token string) (domain.Caller, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

var ErrMissingSecret = errors.New("JWT_SECRET is not configured")

// NewJWTService reads JWT_SECRET and refuses to build a service without it.
func NewJWTService() (JWTService, error) {
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return NewJWTServiceWithSecret(secret), nil
}

func NewJWTServiceWithSecret(secret string) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    defaultIssuer,
		now:       time.Now,
	}
}

// GenerateToken issues a session token. Login lives outside this service;
// the helper exists for operators and tests.
func (j *jwtService) GenerateToken(userID, email, role string) (string, error) {
	if j.secretKey == "" {
		return "", ErrMissingSecret
	}
	now := j.now()
	claims := jwtUserClaim{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	if j.secretKey == "" {
		return nil, ErrMissingSecret
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetCallerByToken(token string) (domain.Caller, error) {
	t_Token, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Caller{}, domain.ErrTokenExpired
		}
		return domain.Caller{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Caller{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.Email == "" {
		return domain.Caller{}, domain.ErrTokenInvalid
	}
	return domain.NewCaller(claims.UserID, claims.Email, claims.Role), nil
}
