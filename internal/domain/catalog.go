package domain

import "strings"

type Platform string

const (
	PlatformNative Platform = "native"
	PlatformWeb    Platform = "web"
)

func (p Platform) IsNative() bool { return p == PlatformNative }

// CatalogEntry associe une source à ses langues supportées.
// Une liste vide = source sans langue (hors ligne).
type CatalogEntry struct {
	ID    DataSourceID       `json:"id"`
	Langs []DataSourceLangID `json:"langs"`
}

// Catalog est ordonné: le premier élément sert de valeur par défaut.
type Catalog struct {
	entries []CatalogEntry
}

// NewCatalog renvoie le catalogue de la plateforme.
// La source locale n'existe que dans le build natif.
func NewCatalog(platform Platform) Catalog {
	entries := []CatalogEntry{
		{ID: DataSourceLocal, Langs: []DataSourceLangID{}},
		{ID: DataSourceYYYYGames, Langs: []DataSourceLangID{LangZhCN, LangZhTW, LangEN, LangDE, LangFR, LangJA}},
		{ID: DataSourceXivAPI, Langs: []DataSourceLangID{LangEN, LangDE, LangFR, LangJA}},
	}
	if !platform.IsNative() {
		entries = entries[1:]
	}
	return Catalog{entries: entries}
}

func (c Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c Catalog) First() CatalogEntry {
	if len(c.entries) == 0 {
		return CatalogEntry{}
	}
	return c.entries[0]
}

func (c Catalog) Lookup(id DataSourceID) ([]DataSourceLangID, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e.Langs, true
		}
	}
	return nil, false
}

func containsLang(langs []DataSourceLangID, lang DataSourceLangID) bool {
	for _, l := range langs {
		if l == lang {
			return true
		}
	}
	return false
}

// SupportsLang: une source sans langue accepte n'importe quelle valeur.
func SupportsLang(langs []DataSourceLangID, lang DataSourceLangID) bool {
	return len(langs) == 0 || containsLang(langs, lang)
}

// IsListedLang ne fait que tester l'appartenance (liste vide = jamais).
func IsListedLang(langs []DataSourceLangID, lang DataSourceLangID) bool {
	return lang != "" && containsLang(langs, lang)
}

// MatchLanguagePrefix renvoie la première langue supportée dont le tag préfixe language.
func MatchLanguagePrefix(langs []DataSourceLangID, language string) (DataSourceLangID, bool) {
	for _, l := range langs {
		if l != "" && strings.HasPrefix(language, string(l)) {
			return l, true
		}
	}
	return "", false
}
