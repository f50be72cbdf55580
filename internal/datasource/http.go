package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

const DefaultTimeout = 15 * time.Second

// HTTPClient est partagé par les sources distantes.
// Le limiter (optionnel) espace les requêtes vers l'API amont.
type HTTPClient struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func NewHTTPClient(rps float64, burst int) *HTTPClient {
	var lim *rate.Limiter
	if rps > 0 {
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &HTTPClient{
		Client:  &http.Client{Timeout: DefaultTimeout},
		Limiter: lim,
	}
}

// GetJSON décode la réponse dans out. 404 → ports.ErrNotFound.
func (c *HTTPClient) GetJSON(ctx context.Context, url string, out any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: http %d: %s", url, resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
