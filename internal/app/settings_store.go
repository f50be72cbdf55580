package app

import (
	"context"
	"encoding/json"

	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

// xivapiLangs: sous-ensemble réellement servi par XIVAPI.
var xivapiLangs = []domain.DataSourceLangID{domain.LangEN, domain.LangJA, domain.LangDE, domain.LangFR}

// SettingsStore garde les réglages courants et les valide contre le catalogue.
// Pas de verrou: l'appelant sérialise les accès (voir SettingsService).
type SettingsStore struct {
	platform domain.Platform
	catalog  domain.Catalog
	sources  ports.DataSourceRegistry

	state domain.Settings
	// Champs inconnus fusionnés mais jamais relus ni réécrits.
	extra map[string]json.RawMessage
}

// NewSettingsStore initialise le store avec les valeurs par défaut de la plateforme.
func NewSettingsStore(platform domain.Platform, hostLocale string, sources ports.DataSourceRegistry) *SettingsStore {
	catalog := domain.NewCatalog(platform)
	return &SettingsStore{
		platform: platform,
		catalog:  catalog,
		sources:  sources,
		state:    domain.DefaultSettings(catalog, hostLocale),
	}
}

func (s *SettingsStore) Settings() domain.Settings { return s.state }

func (s *SettingsStore) Catalog() domain.Catalog { return s.catalog }

func (s *SettingsStore) Platform() domain.Platform { return s.platform }

// ToJSON sérialise exactement language, dataSource et dataSourceLang.
func (s *SettingsStore) ToJSON() string {
	b, _ := json.Marshal(s.state)
	return string(b)
}

// FromJSON fusionne un blob persisté puis normalise la source.
// Renvoie *ParseError si le texte n'est pas du JSON; l'état reste alors intact.
func (s *SettingsStore) FromJSON(data []byte) error {
	patch, err := domain.DecodeSettingsPatch(data)
	if err != nil {
		return &ParseError{Err: err}
	}
	s.merge(patch)

	switch ds := s.state.DataSource; {
	case ds == domain.DataSourceXivAPI, ds == domain.DataSourceYYYYBeta:
	case ds == domain.DataSourceLocal && s.platform.IsNative():
	default:
		s.state.DataSource = domain.DataSourceYYYYGames
	}
	if s.state.DataSourceLang == "zh" {
		s.state.DataSourceLang = domain.LangZhCN
	}
	return nil
}

// LoadSettings fusionne des réglages déjà structurés puis les valide contre le catalogue.
// Un dataSourceLang explicite dans le patch gagne toujours, même non supporté.
func (s *SettingsStore) LoadSettings(patch domain.SettingsPatch) {
	s.merge(patch)

	langs, ok := s.catalog.Lookup(s.state.DataSource)
	if !ok {
		first := s.catalog.First()
		s.state.DataSource = first.ID
		langs = first.Langs
	}

	if !domain.IsListedLang(langs, s.state.DataSourceLang) {
		if lang, ok := domain.MatchLanguagePrefix(langs, s.state.Language); ok {
			s.state.DataSourceLang = lang
		} else if len(langs) > 0 {
			s.state.DataSourceLang = langs[0]
		} else {
			s.state.DataSourceLang = ""
		}
	}

	if patch.HasDataSourceLang() {
		s.state.DataSourceLang = *patch.DataSourceLang
		return
	}
	if lang, ok := domain.LangFromUILanguage(s.state.Language); ok {
		s.state.DataSourceLang = lang
	}
}

// EffectiveLang est la langue réellement envoyée à la source courante.
func (s *SettingsStore) EffectiveLang() domain.DataSourceLangID {
	langs, ok := s.catalog.Lookup(s.state.DataSource)
	if !ok {
		langs = s.catalog.First().Langs
	}
	if !domain.SupportsLang(langs, s.state.DataSourceLang) {
		return langs[0]
	}
	return s.state.DataSourceLang
}

// ResolveDataSourceLoader renvoie le constructeur de la source active.
// Rien n'est construit avant l'appel du loader.
func (s *SettingsStore) ResolveDataSourceLoader() ports.DataSourceLoader {
	lang := s.EffectiveLang()

	loaders := map[domain.DataSourceID]ports.DataSourceLoader{}
	if f, ok := s.factory(domain.DataSourceYYYYGames); ok {
		loaders[domain.DataSourceYYYYGames] = f(lang)
	}
	if f, ok := s.factory(domain.DataSourceXivAPI); ok {
		xivLang := lang
		if !domain.IsListedLang(xivapiLangs, xivLang) {
			xivLang = xivapiLangs[0]
		}
		loaders[domain.DataSourceXivAPI] = f(xivLang)
	}
	def := loaders[domain.DataSourceYYYYGames]

	if s.platform.IsNative() {
		if f, ok := s.factory(domain.DataSourceLocal); ok {
			local := f(lang)
			loaders[domain.DataSourceLocal] = local
			def = local
		}
	}

	if loader, ok := loaders[s.state.DataSource]; ok {
		return loader
	}
	if def == nil {
		return func(context.Context) (ports.DataSource, error) { return nil, ErrNoDataSource }
	}
	return def
}

func (s *SettingsStore) factory(id domain.DataSourceID) (ports.DataSourceFactory, bool) {
	if s.sources == nil {
		return nil, false
	}
	return s.sources.Factory(id)
}

func (s *SettingsStore) merge(patch domain.SettingsPatch) {
	patch.Apply(&s.state)
	for k, v := range patch.Extra {
		if s.extra == nil {
			s.extra = map[string]json.RawMessage{}
		}
		s.extra[k] = v
	}
}
