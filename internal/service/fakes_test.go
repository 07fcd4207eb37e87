package service

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type fakeModel struct {
	calls  int32
	output string
	err    error
	prompt atomic.Value
}

func (m *fakeModel) Complete(_ context.Context, prompt string) (string, error) {
	atomic.AddInt32(&m.calls, 1)
	m.prompt.Store(prompt)
	return m.output, m.err
}

func (m *fakeModel) Calls() int { return int(atomic.LoadInt32(&m.calls)) }

type fakePlanRepo struct {
	mu     sync.Mutex
	seq    int
	plans  []domain.WorkoutPlan
	failOn map[string]error // by PlanName
	delay  func(name string) time.Duration
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{failOn: map[string]error{}}
}

func (r *fakePlanRepo) Create(_ context.Context, p *domain.WorkoutPlan) (string, error) {
	if r.delay != nil {
		time.Sleep(r.delay(p.PlanName))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn[p.PlanName]; err != nil {
		return "", err
	}
	r.seq++
	p.ID = fmt.Sprintf("plan-%d", r.seq)
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	r.plans = append(r.plans, *p)
	return p.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id, coachID string) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.ID == id && p.CoachID == coachID {
			cp := p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) ListByCoach(_ context.Context, coachID string, f repository.WorkoutPlanFilter) ([]domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WorkoutPlan
	for _, p := range r.plans {
		if p.CoachID == coachID && (f.ClientID == "" || p.ClientID == f.ClientID) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	return out, nil
}

func (r *fakePlanRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plans)
}

type fakeClientRepo struct {
	mu      sync.Mutex
	seq     int
	clients []domain.Client
}

func (r *fakeClientRepo) Create(_ context.Context, c *domain.Client) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("client-%d", r.seq)
	r.clients = append(r.clients, *c)
	return c.ID, nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id, coachID string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ID == id && c.CoachID == coachID {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeClientRepo) ListByCoach(_ context.Context, coachID string) ([]domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Client
	for _, c := range r.clients {
		if c.CoachID == coachID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User // by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return "", repository.ErrDuplicate
	}
	u.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users[u.Email] = *u
	return u.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (s *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, contentType string, expires time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("https://s3.test/put/%s?ct=%s&exp=%d", key, contentType, int(expires.Seconds())), nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("https://s3.test/get/%s?exp=%d", key, int(expires.Seconds())), nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, key)
	return nil
}

var errDiskFull = errors.New("disk full")
