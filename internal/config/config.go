package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/souraizuni/ffxiv-best-craft/internal/adapters/jsonfile"
	"github.com/souraizuni/ffxiv-best-craft/internal/datasource/web"
	"github.com/souraizuni/ffxiv-best-craft/internal/datasource/xivapi"
)

const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

type Config struct {
	Addr     string
	LogLevel string

	// Stockage des réglages: "sqlite" (serveur) ou "file" (desktop).
	Storage      string
	DBPath       string
	SettingsFile string

	// Base hors ligne (build natif uniquement).
	LocalDBPath string

	YYYYGamesBase string
	XivapiBase    string

	// Requêtes/s vers les API distantes (0 = illimité).
	UpstreamRPS float64

	CORSOrigins []string
}

func Default() Config {
	return Config{
		Addr:          envOr("BESTCRAFT_ADDR", "127.0.0.1:8080"),
		LogLevel:      envOr("BESTCRAFT_LOG_LEVEL", "info"),
		Storage:       envOr("BESTCRAFT_STORAGE", StorageSQLite),
		DBPath:        envOr("BESTCRAFT_DB_PATH", "bestcraft.db"),
		SettingsFile:  envOr("BESTCRAFT_SETTINGS_FILE", jsonfile.DefaultPath()),
		LocalDBPath:   envOr("BESTCRAFT_LOCAL_DB", "bestcraft-recipes.db"),
		YYYYGamesBase: envOr("BESTCRAFT_YYYY_BASE", web.YYYYGamesAPIBase),
		XivapiBase:    envOr("BESTCRAFT_XIVAPI_BASE", xivapi.BetaXivapiBase),
		UpstreamRPS:   envFloat("BESTCRAFT_UPSTREAM_RPS", 5),
		CORSOrigins:   SplitList(os.Getenv("BESTCRAFT_CORS_ORIGINS")),
	}
}

// SplitList découpe une liste séparée par des virgules (entrées vides ignorées).
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
