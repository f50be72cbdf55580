package xivapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souraizuni/ffxiv-best-craft/internal/datasource"
	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
)

func TestNew_ForcesSupportedLang(t *testing.T) {
	assert.Equal(t, domain.LangEN, New("", domain.LangZhCN, nil).Lang())
	assert.Equal(t, domain.LangFR, New("", domain.LangFR, nil).Lang())
	assert.Equal(t, BetaXivapiBase, New("", domain.LangEN, nil).base)
}

func TestSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ja", r.URL.Query().Get("language"))
		assert.Equal(t, "Name", r.URL.Query().Get("fields"))
		switch r.URL.Path {
		case "/sheet/Item/5057":
			_, _ = w.Write([]byte(`{"row_id":5057,"fields":{"Name":"ブロンズインゴット"}}`))
		case "/sheet/CraftType":
			_, _ = w.Write([]byte(`{"rows":[{"row_id":0,"fields":{"Name":"木工"}},{"row_id":1,"fields":{"Name":"鍛冶"}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := Factory(srv.URL, datasource.NewHTTPClient(0, 0))(domain.LangJA)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DataSourceXivAPI, src.ID())

	item, err := src.ItemInfo(context.Background(), 5057)
	require.NoError(t, err)
	assert.Equal(t, domain.Item{ID: 5057, Name: "ブロンズインゴット"}, item)

	types, err := src.CraftTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CraftType{{ID: 0, Name: "木工"}, {ID: 1, Name: "鍛冶"}}, types)
}
