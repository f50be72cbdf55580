package buildinfo

// Ces variables sont typiquement injectées à la compilation via -ldflags.
// Exemple :
//
//	-X github.com/souraizuni/ffxiv-best-craft/internal/buildinfo.Version=v0.0.0
//	-X github.com/souraizuni/ffxiv-best-craft/internal/buildinfo.Commit=abcdef
//	-X github.com/souraizuni/ffxiv-best-craft/internal/buildinfo.Date=2026-01-18
//
// Le build desktop ajoute -tags native (source locale disponible).
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type Info struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Date     string `json:"date,omitempty"`
	Platform string `json:"platform,omitempty"`
}

func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}
