// Package pokeapi is a thin read-only gateway to the public PokeAPI catalog.
// It never touches local storage; it only translates catalog outcomes into
// the service's error vocabulary.
package pokeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pokebox/pokebox/internal/common"
)

// Client queries the external catalog over HTTP with a bounded timeout, so an
// unavailable upstream cannot suspend a request indefinitely.
type Client struct {
	http *resty.Client
}

// NewClient builds a catalog client for baseURL (e.g.
// "https://pokeapi.co/api/v2") with the given per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// Lookup fetches the catalog entry for name and passes the payload through
// unmodified. A catalog miss yields common.ErrorNotFound; transport failures
// and unexpected statuses collapse to common.ErrorInternal.
func (c *Client) Lookup(ctx context.Context, name string) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/pokemon/" + url.PathEscape(name))
	if err != nil {
		return nil, common.ErrorInternal
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return json.RawMessage(resp.Body()), nil
	case http.StatusNotFound:
		return nil, common.ErrorNotFound
	default:
		return nil, common.ErrorInternal
	}
}
