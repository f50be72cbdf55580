package domain

import "strings"

// fallbackDataSourceLang est volontairement zh-TW (et non zh-CN): les locales
// inconnues tombent sur le chinois traditionnel.
const fallbackDataSourceLang = LangZhTW

// DefaultDataSourceLang dérive la langue de source à partir de la locale de l'hôte.
// Une locale vide vaut zh-CN.
func DefaultDataSourceLang(hostLocale string) DataSourceLangID {
	if hostLocale == "" {
		hostLocale = string(LangZhCN)
	}
	switch {
	case strings.HasPrefix(hostLocale, "zh-TW"), strings.HasPrefix(hostLocale, "zh-Hant"):
		return LangZhTW
	case strings.HasPrefix(hostLocale, "zh"):
		return LangZhCN
	case strings.HasPrefix(hostLocale, "ja"):
		return LangJA
	case strings.HasPrefix(hostLocale, "en"):
		return LangEN
	case strings.HasPrefix(hostLocale, "de"):
		return LangDE
	case strings.HasPrefix(hostLocale, "fr"):
		return LangFR
	}
	return fallbackDataSourceLang
}

// LangFromUILanguage applique la table réduite utilisée après un chargement
// (en, ja, zh-TW/zh-Hant, zh). ok=false si rien ne correspond.
func LangFromUILanguage(language string) (DataSourceLangID, bool) {
	switch {
	case strings.HasPrefix(language, "en"):
		return LangEN, true
	case strings.HasPrefix(language, "ja"):
		return LangJA, true
	case strings.HasPrefix(language, "zh-TW"), strings.HasPrefix(language, "zh-Hant"):
		return LangZhTW, true
	case strings.HasPrefix(language, "zh"):
		return LangZhCN, true
	}
	return "", false
}
