//go:build native

package main

import (
	"github.com/souraizuni/ffxiv-best-craft/internal/datasource"
	"github.com/souraizuni/ffxiv-best-craft/internal/datasource/local"
	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
)

func registerLocalSource(sources *datasource.Registry, path string) func() {
	provider := local.NewProvider(path)
	sources.Register(domain.DataSourceLocal, provider.Factory())
	return func() { _ = provider.Close() }
}
