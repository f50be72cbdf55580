// Package xivapi implémente la source XIVAPI (API v2 "beta").
package xivapi

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

const BetaXivapiBase = "https://v2.xivapi.com/api"

// XIVAPI ne sert pas le chinois.
var supported = map[domain.DataSourceLangID]bool{
	domain.LangEN: true,
	domain.LangJA: true,
	domain.LangDE: true,
	domain.LangFR: true,
}

type Source struct {
	base string
	lang domain.DataSourceLangID
	http *datasource.HTTPClient
}

// New force une langue supportée (en par défaut).
func New(base string, lang domain.DataSourceLangID, client *datasource.HTTPClient) *Source {
	if strings.TrimSpace(base) == "" {
		base = BetaXivapiBase
	}
	if !supported[lang] {
		lang = domain.LangEN
	}
	if client == nil {
		client = datasource.NewHTTPClient(0, 0)
	}
	return &Source{base: strings.TrimRight(base, "/"), lang: lang, http: client}
}

func Factory(base string, client *datasource.HTTPClient) ports.DataSourceFactory {
	return func(lang domain.DataSourceLangID) ports.DataSourceLoader {
		return func(context.Context) (ports.DataSource, error) {
			return New(base, lang, client), nil
		}
	}
}

func (s *Source) ID() domain.DataSourceID { return domain.DataSourceXivAPI }

func (s *Source) Lang() domain.DataSourceLangID { return s.lang }

type nameFields struct {
	Name string `json:"Name"`
}

type sheetRow struct {
	RowID  int        `json:"row_id"`
	Fields nameFields `json:"fields"`
}

type sheetRows struct {
	Rows []sheetRow `json:"rows"`
}

func (s *Source) query() url.Values {
	q := url.Values{}
	q.Set("fields", "Name")
	q.Set("language", string(s.lang))
	return q
}

func (s *Source) ItemInfo(ctx context.Context, id int) (domain.Item, error) {
	var row sheetRow
	u := s.base + "/sheet/Item/" + strconv.Itoa(id) + "?" + s.query().Encode()
	if err := s.http.GetJSON(ctx, u, &row); err != nil {
		return domain.Item{}, fmt.Errorf("xivapi item %d: %w", id, err)
	}
	return domain.Item{ID: row.RowID, Name: row.Fields.Name}, nil
}

func (s *Source) CraftTypes(ctx context.Context) ([]domain.CraftType, error) {
	var rows sheetRows
	if err := s.http.GetJSON(ctx, s.base+"/sheet/CraftType?"+s.query().Encode(), &rows); err != nil {
		return nil, fmt.Errorf("xivapi craft types: %w", err)
	}
	out := make([]domain.CraftType, 0, len(rows.Rows))
	for _, r := range rows.Rows {
		out = append(out, domain.CraftType{ID: r.RowID, Name: r.Fields.Name})
	}
	return out, nil
}
