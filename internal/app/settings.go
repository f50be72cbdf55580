package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

// SettingsService relie le store au stockage et au bus d'événements.
// Le store n'est pas thread-safe: tout passe par mu.
type SettingsService struct {
	logger zerolog.Logger
	repo   ports.SettingsRepository
	bus    ports.EventBus

	mu    sync.Mutex
	store *SettingsStore
}

func NewSettingsService(logger zerolog.Logger, store *SettingsStore, repo ports.SettingsRepository, bus ports.EventBus) *SettingsService {
	return &SettingsService{logger: logger, store: store, repo: repo, bus: bus}
}

// Boot charge le blob persisté. Un blob absent ou corrompu laisse les valeurs par défaut.
func (s *SettingsService) Boot(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored domain.SettingsPatch
	blob, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		s.logger.Info().Msg("no stored settings, using defaults")
	case err != nil:
		return fmt.Errorf("load settings: %w", err)
	default:
		if err := s.store.FromJSON(blob); err != nil {
			// Si corrompu : on repart des valeurs par défaut.
			s.logger.Warn().Err(err).Msg("stored settings unreadable, using defaults")
			break
		}
		// Un dataSourceLang enregistré reste explicite: il n'est pas re-dérivé de language.
		if p, _ := domain.DecodeSettingsPatch(blob); p.DataSourceLang != nil {
			lang := s.store.Settings().DataSourceLang
			stored.DataSourceLang = &lang
		}
	}
	s.store.LoadSettings(stored)

	st := s.store.Settings()
	s.logger.Info().
		Str("language", st.Language).
		Str("dataSource", string(st.DataSource)).
		Str("dataSourceLang", string(st.DataSourceLang)).
		Msg("settings loaded")
	return nil
}

func (s *SettingsService) Get() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Settings()
}

func (s *SettingsService) Export() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ToJSON()
}

func (s *SettingsService) Catalog() []domain.CatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Catalog().Entries()
}

func (s *SettingsService) Platform() domain.Platform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Platform()
}

// Defaults calcule les réglages initiaux pour une locale cliente donnée.
func (s *SettingsService) Defaults(locale string) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.DefaultSettings(s.store.Catalog(), locale)
}

// Patch applique une mise à jour partielle puis persiste.
func (s *SettingsService) Patch(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.LoadSettings(patch)
	return s.persistLocked(ctx)
}

// Import remplace les réglages par un blob JSON (même normalisation qu'au chargement).
func (s *SettingsService) Import(ctx context.Context, blob []byte) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.FromJSON(blob); err != nil {
		return domain.Settings{}, err
	}
	return s.persistLocked(ctx)
}

// Reload relit un blob modifié hors du process, sans le réécrire.
func (s *SettingsService) Reload(blob []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.FromJSON(blob); err != nil {
		s.logger.Warn().Err(err).Msg("ignoring unreadable settings file")
		return
	}
	s.logger.Info().Msg("settings reloaded")
	s.publishLocked()
}

// DataSource construit la source active. Le loader tourne hors verrou.
func (s *SettingsService) DataSource(ctx context.Context) (ports.DataSource, error) {
	s.mu.Lock()
	loader := s.store.ResolveDataSourceLoader()
	s.mu.Unlock()

	src, err := loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("load data source: %w", err)
	}
	return src, nil
}

func (s *SettingsService) persistLocked(ctx context.Context) (domain.Settings, error) {
	if err := s.repo.Save(ctx, []byte(s.store.ToJSON())); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	s.publishLocked()
	return s.store.Settings(), nil
}

func (s *SettingsService) publishLocked() {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ports.TopicSettingsUpdated, []byte(s.store.ToJSON()))
}
