// Package web implémente la source yyyy.games.
package web

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/souraizuni/ffxiv-best-craft/internal/datasource"
	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

const YYYYGamesAPIBase = "https://api.yyyy.games/ffxiv"

type Source struct {
	base string
	lang domain.DataSourceLangID
	http *datasource.HTTPClient
}

func New(base string, lang domain.DataSourceLangID, client *datasource.HTTPClient) *Source {
	if strings.TrimSpace(base) == "" {
		base = YYYYGamesAPIBase
	}
	if client == nil {
		client = datasource.NewHTTPClient(0, 0)
	}
	return &Source{base: strings.TrimRight(base, "/"), lang: lang, http: client}
}

// Factory renvoie une factory à enregistrer dans le registre.
func Factory(base string, client *datasource.HTTPClient) ports.DataSourceFactory {
	return func(lang domain.DataSourceLangID) ports.DataSourceLoader {
		return func(context.Context) (ports.DataSource, error) {
			return New(base, lang, client), nil
		}
	}
}

func (s *Source) ID() domain.DataSourceID { return domain.DataSourceYYYYGames }

func (s *Source) Lang() domain.DataSourceLangID { return s.lang }

type itemInfoResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (s *Source) ItemInfo(ctx context.Context, id int) (domain.Item, error) {
	q := url.Values{}
	q.Set("item_id", strconv.Itoa(id))
	q.Set("lang", string(s.lang))

	var out itemInfoResponse
	if err := s.http.GetJSON(ctx, s.base+"/item_info?"+q.Encode(), &out); err != nil {
		return domain.Item{}, fmt.Errorf("yyyy.games item %d: %w", id, err)
	}
	return domain.Item{ID: out.ID, Name: out.Name}, nil
}

func (s *Source) CraftTypes(ctx context.Context) ([]domain.CraftType, error) {
	q := url.Values{}
	q.Set("lang", string(s.lang))

	var out []domain.CraftType
	if err := s.http.GetJSON(ctx, s.base+"/craft_types?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("yyyy.games craft types: %w", err)
	}
	return out, nil
}
