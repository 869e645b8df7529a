package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/plantify/internal/domain/entity"
	repo "github.com/oksasatya/plantify/internal/domain/repository"
	"github.com/oksasatya/plantify/pkg/helpers"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
	// failWith makes every call return this error.
	failWith error
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*entity.User{}} }

func (m *memUsers) clone(u *entity.User) *entity.User {
	c := *u
	c.RefreshTokens = append([]string(nil), u.RefreshTokens...)
	return &c
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, ex := range m.users {
		if strings.EqualFold(ex.Email, u.Email) || (u.GoogleID != "" && ex.GoogleID == u.GoogleID) {
			return repo.ErrDuplicate
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = m.clone(u)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return m.clone(u), nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return m.clone(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.GoogleID != "" && u.GoogleID == googleID {
			return m.clone(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) LinkGoogleID(_ context.Context, userID, googleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.GoogleID != "" {
		return repo.ErrNotFound
	}
	u.GoogleID = googleID
	return nil
}

func (m *memUsers) AppendRefreshToken(_ context.Context, userID, token string, max int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.RefreshTokens = append(u.RefreshTokens, token)
	if max > 0 && len(u.RefreshTokens) > max {
		u.RefreshTokens = u.RefreshTokens[len(u.RefreshTokens)-max:]
	}
	return nil
}

func (m *memUsers) RemoveRefreshToken(_ context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil
	}
	out := u.RefreshTokens[:0]
	for _, t := range u.RefreshTokens {
		if t != token {
			out = append(out, t)
		}
	}
	u.RefreshTokens = out
	return nil
}

func (m *memUsers) tokens(userID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		return append([]string(nil), u.RefreshTokens...)
	}
	return nil
}

type fakeVerifier struct {
	ident helpers.ExternalIdentity
	err   error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (helpers.ExternalIdentity, error) {
	return f.ident, f.err
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

type memPlants struct {
	mu     sync.Mutex
	plants map[string]*entity.Plant
	seq    int
}

func newMemPlants() *memPlants { return &memPlants{plants: map[string]*entity.Plant{}} }

func (m *memPlants) ListByUser(_ context.Context, userID string) ([]entity.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Plant, 0)
	for _, p := range m.plants {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPlants) GetByID(_ context.Context, id, userID string) (*entity.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plants[id]
	if !ok || p.UserID != userID {
		return nil, repo.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (m *memPlants) Create(_ context.Context, p *entity.Plant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = "plant-" + string(rune('a'+m.seq-1))
	p.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	p.UpdatedAt = p.CreatedAt
	c := *p
	m.plants[p.ID] = &c
	return nil
}

func (m *memPlants) Update(_ context.Context, p *entity.Plant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, ok := m.plants[p.ID]
	if !ok || ex.UserID != p.UserID {
		return repo.ErrNotFound
	}
	c := *p
	m.plants[p.ID] = &c
	return nil
}

func (m *memPlants) Delete(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plants[id]
	if !ok || p.UserID != userID {
		return repo.ErrNotFound
	}
	delete(m.plants, id)
	return nil
}

var errStorageDown = errors.New("connection refused")
