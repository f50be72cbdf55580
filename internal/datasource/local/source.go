// Package local lit la base de recettes hors ligne livrée avec l'application desktop.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

type Source struct {
	db *sql.DB
}

// Open ouvre la base en lecture seule.
func Open(ctx context.Context, path string) (*Source, error) {
	if path == "" {
		return nil, errors.New("local data source: empty database path")
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctxPing); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open local data source %s: %w", path, err)
	}
	return &Source{db: db}, nil
}

func (s *Source) Close() error { return s.db.Close() }

func (s *Source) ID() domain.DataSourceID { return domain.DataSourceLocal }

// Lang: la base locale n'a pas de langue sélectionnable.
func (s *Source) Lang() domain.DataSourceLangID { return "" }

func (s *Source) ItemInfo(ctx context.Context, id int) (domain.Item, error) {
	var it domain.Item
	err := s.db.QueryRowContext(ctx, `SELECT ID, Name FROM Items WHERE ID = ?`, id).Scan(&it.ID, &it.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Item{}, ports.ErrNotFound
		}
		return domain.Item{}, err
	}
	return it, nil
}

func (s *Source) CraftTypes(ctx context.Context) ([]domain.CraftType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ID, Name FROM CraftTypes ORDER BY ID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CraftType
	for rows.Next() {
		var ct domain.CraftType
		if err := rows.Scan(&ct.ID, &ct.Name); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// Provider ouvre la base au premier appel du loader puis la réutilise.
type Provider struct {
	path string

	mu  sync.Mutex
	src *Source
}

func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

func (p *Provider) Factory() ports.DataSourceFactory {
	return func(domain.DataSourceLangID) ports.DataSourceLoader {
		return p.load
	}
}

func (p *Provider) load(ctx context.Context) (ports.DataSource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.src != nil {
		return p.src, nil
	}
	src, err := Open(ctx, p.path)
	if err != nil {
		return nil, err
	}
	p.src = src
	return src, nil
}

func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.src == nil {
		return nil
	}
	err := p.src.Close()
	p.src = nil
	return err
}
