// Package locale détecte la locale de l'hôte (variables POSIX) ou du client HTTP.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

var envKeys = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Host renvoie la locale du système au format BCP 47, ou "" si inconnue.
func Host() string {
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) string {
	for _, k := range envKeys {
		v := getenv(k)
		if v == "" {
			continue
		}
		// La première variable définie gagne, même si elle vaut C/POSIX.
		return Normalize(v)
	}
	return ""
}

// Normalize convertit "zh_TW.UTF-8" ou "zh-Hant-TW" en tag BCP 47.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", "-")
	tag, err := language.Parse(s)
	if err != nil {
		return ""
	}
	return tag.String()
}

// FromAcceptLanguage renvoie la langue préférée d'un en-tête Accept-Language.
func FromAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}
