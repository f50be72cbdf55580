package app

import (
	"context"
	"sync"

	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

type fakeSource struct {
	id   domain.DataSourceID
	lang domain.DataSourceLangID
}

func (f fakeSource) ID() domain.DataSourceID { return f.id }

func (f fakeSource) Lang() domain.DataSourceLangID { return f.lang }

func (f fakeSource) ItemInfo(_ context.Context, id int) (domain.Item, error) {
	return domain.Item{ID: id, Name: string(f.id)}, nil
}

func (f fakeSource) CraftTypes(context.Context) ([]domain.CraftType, error) {
	return nil, nil
}

// fakeRegistry compte les loaders réellement invoqués.
type fakeRegistry struct {
	mu    sync.Mutex
	calls map[domain.DataSourceID]int
	ids   map[domain.DataSourceID]bool
}

func newFakeRegistry(ids ...domain.DataSourceID) *fakeRegistry {
	r := &fakeRegistry{calls: map[domain.DataSourceID]int{}, ids: map[domain.DataSourceID]bool{}}
	for _, id := range ids {
		r.ids[id] = true
	}
	return r
}

func allSources() *fakeRegistry {
	return newFakeRegistry(domain.DataSourceLocal, domain.DataSourceYYYYGames, domain.DataSourceXivAPI)
}

func (r *fakeRegistry) Factory(id domain.DataSourceID) (ports.DataSourceFactory, bool) {
	if !r.ids[id] {
		return nil, false
	}
	return func(lang domain.DataSourceLangID) ports.DataSourceLoader {
		return func(context.Context) (ports.DataSource, error) {
			r.mu.Lock()
			r.calls[id]++
			r.mu.Unlock()
			return fakeSource{id: id, lang: lang}, nil
		}
	}, true
}

func (r *fakeRegistry) Calls(id domain.DataSourceID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[id]
}

type memoryRepo struct {
	mu      sync.Mutex
	blob    []byte
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryRepo) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.blob == nil {
		return nil, ports.ErrNotFound
	}
	return append([]byte(nil), m.blob...), nil
}

func (m *memoryRepo) Save(_ context.Context, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.blob = append([]byte(nil), blob...)
	m.saves++
	return nil
}

func (m *memoryRepo) Blob() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.blob)
}
