package patient

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// -- Mock Repository --

type mockRepo struct {
	mu       sync.Mutex
	patients map[int64]*Patient
	nextID   int64

	// skipEmailLookup makes GetByEmail miss so Create hits the unique
	// index, as in a concurrent insert.
	skipEmailLookup bool
	// err, when set, is returned by every call.
	err error
	txCalls int
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[int64]*Patient)}
}

func clonePatient(p *Patient) *Patient {
	cp := *p
	return &cp
}

func (m *mockRepo) emailTaken(email string, except int64) bool {
	for id, p := range m.patients {
		if id != except && p.Email == email {
			return true
		}
	}
	return false
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.emailTaken(p.Email, 0) {
		return ErrConflict
	}
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(p.ID) * time.Second)
	m.patients[p.ID] = clonePatient(p)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePatient(p), nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.skipEmailLookup {
		return nil, ErrNotFound
	}
	for _, p := range m.patients {
		if p.Email == email {
			return clonePatient(p), nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.patients[p.ID]; !ok {
		return ErrNotFound
	}
	if m.emailTaken(p.Email, p.ID) {
		return ErrConflict
	}
	m.patients[p.ID] = clonePatient(p)
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.patients[id]; !ok {
		return ErrNotFound
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.patients[id]
	return ok, nil
}

func (m *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}

	contains := func(s, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}

	var matched []*Patient
	for _, p := range m.patients {
		if contains(p.Name, f.Name) && contains(p.Phone, f.Phone) {
			matched = append(matched, clonePatient(p))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if offset >= total {
		return []*Patient{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *mockRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.txCalls++
	m.mu.Unlock()
	return fn(ctx)
}

func (m *mockRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.patients)
}
