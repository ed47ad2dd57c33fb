package auth

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

// TokenService implements ports.TokenService with RS256.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	audience   string
}

type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID   string   `json:"sid"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

func NewTokenService(privateKey *rsa.PrivateKey, issuer, audience string) *TokenService {
	return &TokenService{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateToken signs the session's claims snapshot into a bearer token.
func (t *TokenService) GenerateToken(session *domain.Session) (domain.Token, error) {
	claims := session.TokenClaims()
	signed, err := t.sign(claims)
	if err != nil {
		return domain.Token{}, err
	}
	return domain.NewTokenWithClaims(signed, claims)
}

// ValidateToken verifies the signature and expiry and returns the claims.
func (t *TokenService) ValidateToken(token domain.Token) (domain.TokenClaims, error) {
	return t.parse(token.Value())
}

// RefreshToken re-issues a token for the same session with fresh
// issued-at and expiry. The incoming token must still verify.
func (t *TokenService) RefreshToken(token domain.Token) (domain.Token, error) {
	claims, err := t.parse(token.Value())
	if err != nil {
		return domain.Token{}, err
	}
	fresh := domain.NewTokenClaims(claims.UserID, claims.SessionID, claims.Email, claims.Permissions)
	signed, err := t.sign(fresh)
	if err != nil {
		return domain.Token{}, err
	}
	return domain.NewTokenWithClaims(signed, fresh)
}

func (t *TokenService) sign(claims domain.TokenClaims) (string, error) {
	jwtClaims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		SessionID:   claims.SessionID,
		Email:       claims.Email,
		Permissions: claims.Permissions,
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, jwtClaims).SignedString(t.privateKey)
}

func (t *TokenService) parse(tokenString string) (domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, domerrors.ErrInvalidToken
		}
		return t.publicKey, nil
	})
	if err != nil {
		return domain.TokenClaims{}, domerrors.ErrInvalidToken
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return domain.TokenClaims{}, domerrors.ErrInvalidToken
	}
	var issuedAt, expiresAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return domain.TokenClaims{
		UserID:      claims.Subject,
		SessionID:   claims.SessionID,
		Email:       claims.Email,
		Permissions: claims.Permissions,
		IssuedAt:    issuedAt,
		ExpiresAt:   expiresAt,
	}, nil
}

var _ ports.TokenService = (*TokenService)(nil)
