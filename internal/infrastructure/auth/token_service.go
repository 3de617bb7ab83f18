package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// TokenServiceImpl implements domain.TokenService with HMAC-SHA256 signed
// tokens (header.claims.signature, base64url). Signature comparison inside
// the library is constant-time.
type TokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(secretKey string, ttl time.Duration) *TokenServiceImpl {
	return &TokenServiceImpl{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *TokenServiceImpl) WithClock(now func() time.Time) *TokenServiceImpl {
	s.now = now
	return s
}

// TTL implements domain.TokenService.
func (s *TokenServiceImpl) TTL() time.Duration {
	return s.ttl
}

// Sign implements domain.TokenService. IssuedAt and ExpiresAt on the input
// are ignored; expiry is always now+TTL.
func (s *TokenServiceImpl) Sign(claims *domain.TokenClaims) (string, error) {
	now := s.now()
	mapClaims := jwt.MapClaims{
		"user_id":    claims.UserID,
		"company_id": claims.CompanyID,
		"nome":       claims.Name,
		"cargo":      claims.JobTitle,
		"equipe":     claims.Team,
		"session_id": claims.SessionID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(s.secretKey)
}

// Verify implements domain.TokenService. Any structural defect maps to
// ErrTokenMalformed, a bad signature to ErrTokenInvalid and an elapsed exp
// to ErrTokenExpired.
func (s *TokenServiceImpl) Verify(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, domain.ErrTokenMalformed
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	claims := &domain.TokenClaims{}
	if claims.UserID, ok = mapClaims["user_id"].(string); !ok {
		return nil, domain.ErrTokenMalformed
	}
	if claims.CompanyID, ok = mapClaims["company_id"].(string); !ok {
		return nil, domain.ErrTokenMalformed
	}
	claims.Name, _ = mapClaims["nome"].(string)
	claims.JobTitle, _ = mapClaims["cargo"].(string)
	claims.Team, _ = mapClaims["equipe"].(string)
	claims.SessionID, _ = mapClaims["session_id"].(string)

	iat, ok := mapClaims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	claims.IssuedAt = int64(iat)
	claims.ExpiresAt = int64(exp)

	return claims, nil
}

var _ domain.TokenService = (*TokenServiceImpl)(nil)
