package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

func nopFactory(domain.DataSourceLangID) ports.DataSourceLoader {
	return func(context.Context) (ports.DataSource, error) { return nil, nil }
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Factory(domain.DataSourceLocal)
	assert.False(t, ok)

	r.Register(domain.DataSourceXivAPI, nopFactory)
	r.Register(domain.DataSourceYYYYGames, nopFactory)

	_, ok = r.Factory(domain.DataSourceXivAPI)
	assert.True(t, ok)
	assert.Equal(t, []domain.DataSourceID{domain.DataSourceXivAPI, domain.DataSourceYYYYGames}, r.IDs())
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(`{"id":5,"name":"Bronze Ingot"}`))
		case "/missing":
			http.NotFound(w, r)
		default:
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(100, 1)

	var item domain.Item
	require.NoError(t, c.GetJSON(context.Background(), srv.URL+"/ok", &item))
	assert.Equal(t, domain.Item{ID: 5, Name: "Bronze Ingot"}, item)

	err := c.GetJSON(context.Background(), srv.URL+"/missing", &item)
	assert.True(t, errors.Is(err, ports.ErrNotFound))

	err = c.GetJSON(context.Background(), srv.URL+"/boom", &item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestGetJSON_LimiterHonorsContext(t *testing.T) {
	c := NewHTTPClient(0.001, 1)
	// Consomme le seul jeton disponible.
	require.True(t, c.Limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.GetJSON(ctx, "http://127.0.0.1:1/never", &struct{}{})
	require.Error(t, err)
}
