// Package memory provides in-memory implementations of the persistence
// ports. They back tests and the no-database dev mode.
package memory

import (
	"context"
	"sync"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

// UserRepository is a map-backed WriteUserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[domain.UserID]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[domain.UserID]domain.User)}
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.users {
		if existing.Email == user.Email && id != user.ID {
			return domerrors.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			c := cloneUser(&u)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	u, err := r.FindByEmail(ctx, email)
	return u != nil, err
}

func (r *UserRepository) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	c := cloneUser(&u)
	return &c, nil
}

// SessionRepository is a map-backed session store. It implements both
// the write and the read contracts; the read side applies the same
// active-and-unexpired filter the Postgres read repository applies in
// SQL.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]domain.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[domain.SessionID]domain.Session)}
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	c := cloneSession(&s)
	return &c, nil
}

// ReadView narrows the repository to the read contract with the hot-path
// filter applied.
func (r *SessionRepository) ReadView() ports.ReadSessionRepository {
	return readView{r}
}

type readView struct {
	repo *SessionRepository
}

func (v readView) FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	s, err := v.repo.FindByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	if !s.IsValid() {
		return nil, nil
	}
	return s, nil
}

// EventBus collects published events. Tests assert against Published().
type EventBus struct {
	mu     sync.Mutex
	events []domain.Event
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) Publish(ctx context.Context, event domain.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

// Published returns a copy of everything published so far.
func (b *EventBus) Published() []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Event, len(b.events))
	copy(out, b.events)
	return out
}

func cloneUser(u *domain.User) domain.User {
	c := *u
	c.Permissions = append([]string(nil), u.Permissions...)
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return c
}

func cloneSession(s *domain.Session) domain.Session {
	c := *s
	c.Permissions = append([]string(nil), s.Permissions...)
	return c
}

var (
	_ ports.WriteUserRepository    = (*UserRepository)(nil)
	_ ports.WriteSessionRepository = (*SessionRepository)(nil)
	_ ports.EventBus               = (*EventBus)(nil)
)
