package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"alcyxob/lifetrack/internal/domain"
	"alcyxob/lifetrack/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

// memEntries is an in-memory EntryRepository. Setting err makes every read fail;
// setting block makes reads wait for ctx to expire.
type memEntries[T domain.Entry] struct {
	mu    sync.Mutex
	items []T
	id    func(T) string
	err   error
	block bool
}

func (m *memEntries[T]) Create(_ context.Context, e *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *e)
	return nil
}

func (m *memEntries[T]) read(ctx context.Context, keep func(T) bool) ([]T, error) {
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []T{}
	for _, e := range m.items {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEntries[T]) ListByDate(ctx context.Context, userID, date string) ([]T, error) {
	return m.read(ctx, func(e T) bool { return e.EntryOwner() == userID && e.EntryDate() == date })
}

func (m *memEntries[T]) ListByRange(ctx context.Context, userID, from, to string) ([]T, error) {
	return m.read(ctx, func(e T) bool {
		return e.EntryOwner() == userID && e.EntryDate() >= from && e.EntryDate() <= to
	})
}

func (m *memEntries[T]) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.items {
		if m.id(e) == id && e.EntryOwner() == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memWork struct {
	memEntries[domain.WorkSession]
}

func (m *memWork) GetByID(_ context.Context, userID, id string) (*domain.WorkSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.items {
		if w.ID == id && w.UserID == userID {
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memWork) Finish(_ context.Context, userID, id string, end time.Time, minutes float64, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.items {
		if w.ID == id && w.UserID == userID && w.EndTime == nil {
			m.items[i].EndTime = &end
			m.items[i].Duration = minutes
			m.items[i].Completed = completed
			return nil
		}
	}
	return repository.ErrNotFound
}

type memProfiles struct {
	mu    sync.Mutex
	byID  map[string]domain.Profile
	err   error
	block bool
}

func (m *memProfiles) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memProfiles) Upsert(_ context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byID == nil {
		m.byID = map[string]domain.Profile{}
	}
	m.byID[p.UserID] = *p
	return nil
}

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byEmail == nil {
		m.byEmail = map[string]domain.User{}
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	m.byEmail[u.Email] = *u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memGoals struct {
	mu    sync.Mutex
	items []domain.Goal
	err   error
}

func (m *memGoals) Create(_ context.Context, g *domain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *g)
	return nil
}

func (m *memGoals) find(userID, id string) int {
	for i, g := range m.items {
		if g.ID == id && g.UserID == userID {
			return i
		}
	}
	return -1
}

func (m *memGoals) GetByID(_ context.Context, userID, id string) (*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	g := m.items[i]
	return &g, nil
}

func (m *memGoals) ListByUser(_ context.Context, userID string) ([]domain.Goal, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Goal{}
	for _, g := range m.items {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline < out[j].Deadline })
	return out, nil
}

func (m *memGoals) Update(_ context.Context, userID, id string, p domain.GoalPatch) (*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	m.items[i] = m.items[i].Apply(p)
	g := m.items[i]
	return &g, nil
}

func (m *memGoals) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(userID, id)
	if i < 0 {
		return repository.ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

type memReports struct {
	mu   sync.Mutex
	byID map[string]domain.Report
}

func (m *memReports) Create(_ context.Context, r *domain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byID == nil {
		m.byID = map[string]domain.Report{}
	}
	m.byID[r.ID] = *r
	return nil
}

func (m *memReports) GetByID(_ context.Context, userID, id string) (*domain.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok || r.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (m *memReports) SetAnalysis(_ context.Context, id string, status domain.ReportStatus, a *domain.HealthAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Status = status
	r.Analysis = a
	m.byID[id] = r
	return nil
}

func (m *memReports) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok || r.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// memFiles is a FileStorage that hands out fake URLs and tracks uploaded keys.
type memFiles struct {
	mu       sync.Mutex
	uploaded map[string]bool
}

func (m *memFiles) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://bucket.test/put/" + key, nil
}

func (m *memFiles) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.test/get/" + key, nil
}

func (m *memFiles) ObjectExists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploaded[key], nil
}

func (m *memFiles) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.uploaded, key)
	return nil
}

func (m *memFiles) markUploaded(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploaded == nil {
		m.uploaded = map[string]bool{}
	}
	m.uploaded[key] = true
}

type memStore struct {
	users     *memUsers
	profiles  *memProfiles
	foods     *memEntries[domain.FoodEntry]
	exercises *memEntries[domain.Exercise]
	work      *memWork
	goals     *memGoals
	reports   *memReports
}

func newMemStore() *memStore {
	return &memStore{
		users:     &memUsers{},
		profiles:  &memProfiles{},
		foods:     &memEntries[domain.FoodEntry]{id: func(f domain.FoodEntry) string { return f.ID }},
		exercises: &memEntries[domain.Exercise]{id: func(e domain.Exercise) string { return e.ID }},
		work:      &memWork{memEntries[domain.WorkSession]{id: func(w domain.WorkSession) string { return w.ID }}},
		goals:     &memGoals{},
		reports:   &memReports{},
	}
}

func (m *memStore) store() *repository.Store {
	return &repository.Store{
		Users:     m.users,
		Profiles:  m.profiles,
		Foods:     m.foods,
		Exercises: m.exercises,
		Work:      m.work,
		Goals:     m.goals,
		Reports:   m.reports,
		Close:     func(context.Context) error { return nil },
	}
}

func fixedClock(s string) func() time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}
