package domain

import "encoding/json"

type DataSourceID string

const (
	DataSourceLocal     DataSourceID = "local"
	DataSourceYYYYGames DataSourceID = "yyyy.games"
	DataSourceYYYYBeta  DataSourceID = "yyyy.games-beta"
	DataSourceCafe      DataSourceID = "cafe"
	DataSourceXivAPI    DataSourceID = "xivapi"
)

const defaultUILanguage = "system"

type DataSourceLangID string

const (
	LangZhCN DataSourceLangID = "zh-CN"
	LangZhTW DataSourceLangID = "zh-TW"
	LangEN   DataSourceLangID = "en"
	LangDE   DataSourceLangID = "de"
	LangFR   DataSourceLangID = "fr"
	LangJA   DataSourceLangID = "ja"
)

// Settings est l'état persisté des préférences utilisateur.
// DataSourceLang vide = non défini (omis du JSON).
type Settings struct {
	// Langue de l'interface ("system" ou un tag BCP 47).
	Language string `json:"language"`

	DataSource     DataSourceID     `json:"dataSource"`
	DataSourceLang DataSourceLangID `json:"dataSourceLang,omitempty"`
}

// DefaultSettings construit les valeurs de démarrage pour un catalogue donné.
// hostLocale est la locale rapportée par l'hôte (navigateur, OS).
func DefaultSettings(catalog Catalog, hostLocale string) Settings {
	return Settings{
		Language:       defaultUILanguage,
		DataSource:     catalog.First().ID,
		DataSourceLang: DefaultDataSourceLang(hostLocale),
	}
}

// SettingsPatch est une mise à jour partielle: seuls les champs non-nil sont appliqués.
type SettingsPatch struct {
	Language       *string           `json:"language,omitempty"`
	DataSource     *DataSourceID     `json:"dataSource,omitempty"`
	DataSourceLang *DataSourceLangID `json:"dataSourceLang,omitempty"`

	// Champs inconnus: conservés mais jamais lus.
	Extra map[string]json.RawMessage `json:"-"`
}

// Apply fusionne le patch champ par champ sur s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.DataSource != nil {
		s.DataSource = *p.DataSource
	}
	if p.DataSourceLang != nil {
		s.DataSourceLang = *p.DataSourceLang
	}
}

// HasDataSourceLang indique si l'appelant a fourni explicitement une langue de source.
// Une chaîne vide compte comme absente.
func (p SettingsPatch) HasDataSourceLang() bool {
	return p.DataSourceLang != nil && *p.DataSourceLang != ""
}

// DecodeSettingsPatch lit un objet JSON champ par champ.
// Un champ du mauvais type est ignoré; une valeur non-objet donne un patch vide.
// Seule une erreur de syntaxe JSON est renvoyée.
func DecodeSettingsPatch(data []byte) (SettingsPatch, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return SettingsPatch{}, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return SettingsPatch{}, nil
	}

	var p SettingsPatch
	for k, v := range obj {
		switch k {
		case "language":
			if s, ok := v.(string); ok {
				p.Language = &s
			}
		case "dataSource":
			if s, ok := v.(string); ok {
				id := DataSourceID(s)
				p.DataSource = &id
			}
		case "dataSourceLang":
			if s, ok := v.(string); ok {
				lang := DataSourceLangID(s)
				p.DataSourceLang = &lang
			}
		default:
			if p.Extra == nil {
				p.Extra = map[string]json.RawMessage{}
			}
			b, _ := json.Marshal(v)
			p.Extra[k] = b
		}
	}
	return p, nil
}

// UnmarshalJSON applique la même tolérance que DecodeSettingsPatch.
func (p *SettingsPatch) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeSettingsPatch(data)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

func StringPtr(s string) *string { return &s }

func DataSourcePtr(id DataSourceID) *DataSourceID { return &id }

func LangPtr(lang DataSourceLangID) *DataSourceLangID { return &lang }
