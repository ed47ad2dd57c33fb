package commands

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

// plainHasher stores the password verbatim so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(p domain.Password) (domain.PasswordHash, error) {
	return domain.NewPasswordHash("plain:" + p.Value())
}

func (plainHasher) Verify(p domain.Password, h domain.PasswordHash) bool {
	return h.Value() == "plain:"+p.Value()
}

// fakeTokenService issues opaque tokens and remembers their claims.
type fakeTokenService struct {
	mu     sync.Mutex
	issued map[string]domain.TokenClaims
	genErr error
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]domain.TokenClaims)}
}

func (f *fakeTokenService) GenerateToken(session *domain.Session) (domain.Token, error) {
	if f.genErr != nil {
		return domain.Token{}, f.genErr
	}
	claims := session.TokenClaims()
	value := "hdr." + uuid.NewString() + ".sig"
	f.mu.Lock()
	f.issued[value] = claims
	f.mu.Unlock()
	return domain.NewTokenWithClaims(value, claims)
}

func (f *fakeTokenService) ValidateToken(token domain.Token) (domain.TokenClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	claims, ok := f.issued[token.Value()]
	if !ok {
		return domain.TokenClaims{}, domerrors.ErrInvalidToken
	}
	return claims, nil
}

func (f *fakeTokenService) RefreshToken(token domain.Token) (domain.Token, error) {
	claims, err := f.ValidateToken(token)
	if err != nil {
		return domain.Token{}, err
	}
	fresh := domain.NewTokenClaims(claims.UserID, claims.SessionID, claims.Email, claims.Permissions)
	value := "hdr." + uuid.NewString() + ".sig"
	f.mu.Lock()
	f.issued[value] = fresh
	f.mu.Unlock()
	return domain.NewTokenWithClaims(value, fresh)
}

var errBroken = errors.New("broken")
