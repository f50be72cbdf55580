package ports

import (
	"context"

	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
)

// DataSource fournit les données d'artisanat (objets, métiers).
type DataSource interface {
	ID() domain.DataSourceID
	// Lang vaut "" pour une source sans langue.
	Lang() domain.DataSourceLangID
	ItemInfo(ctx context.Context, id int) (domain.Item, error)
	CraftTypes(ctx context.Context) ([]domain.CraftType, error)
}

// DataSourceLoader construit la source à la demande.
type DataSourceLoader func(ctx context.Context) (DataSource, error)

// DataSourceFactory crée un loader pour une langue effective donnée.
type DataSourceFactory func(lang domain.DataSourceLangID) DataSourceLoader

// DataSourceRegistry expose les sources disponibles dans ce build.
type DataSourceRegistry interface {
	Factory(id domain.DataSourceID) (DataSourceFactory, bool)
}
