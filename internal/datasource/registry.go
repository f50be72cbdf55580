// Package datasource regroupe les sources de données d'artisanat disponibles dans le build.
package datasource

import (
	"sort"
	"sync"

	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

// Registry est rempli au démarrage; la source locale n'y est ajoutée
// que par le build natif.
type Registry struct {
	mu        sync.RWMutex
	factories map[domain.DataSourceID]ports.DataSourceFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[domain.DataSourceID]ports.DataSourceFactory{}}
}

func (r *Registry) Register(id domain.DataSourceID, f ports.DataSourceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = f
}

func (r *Registry) Factory(id domain.DataSourceID) (ports.DataSourceFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	return f, ok
}

func (r *Registry) IDs() []domain.DataSourceID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.DataSourceID, 0, len(r.factories))
	for id := range r.factories {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
