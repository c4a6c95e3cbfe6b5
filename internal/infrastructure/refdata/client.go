// Package refdata fetches the static per-category ore datasets.
package refdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"mining_hub/internal/domain"
	"mining_hub/internal/domain/entity"
	"mining_hub/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	documents  map[entity.Category]string
	httpClient *http.Client
}

// NewClient builds a dataset client. documents maps a category to the dataset
// file name under baseURL (e.g. "mining_ores_ship.json").
func NewClient(baseURL string, documents map[entity.Category]string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    baseURL,
		documents:  documents,
		httpClient: httpClient,
	}
}

// FetchOres downloads and decodes the dataset for one category. Any failure
// (transport, non-2xx, malformed body) maps to DatasetUnavailable.
func (c *Client) FetchOres(ctx context.Context, category entity.Category) ([]*entity.Ore, error) {
	doc, ok := c.documents[category]
	if !ok {
		return nil, domain.NewError(errcodes.DatasetUnavailable,
			fmt.Sprintf("no dataset document configured for category %s", category))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.datasetURL(doc), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.DatasetUnavailable, "dataset fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewError(errcodes.DatasetUnavailable,
			fmt.Sprintf("dataset %s: HTTP %d", doc, resp.StatusCode))
	}

	var payload oresDocument
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.WrapError(err, errcodes.DatasetUnavailable, "dataset payload malformed")
	}
	if len(payload.Ores) == 0 {
		return nil, domain.NewError(errcodes.DatasetUnavailable,
			fmt.Sprintf("dataset %s: no ores in payload", doc))
	}

	ores := make([]*entity.Ore, 0, len(payload.Ores))
	for _, dto := range payload.Ores {
		if dto.Key == "" {
			continue
		}
		ores = append(ores, dto.toEntity())
	}

	return ores, nil
}

// datasetURL appends a cache-busting query param so CDN layouts never serve a
// stale document on reload.
func (c *Client) datasetURL(doc string) string {
	u := c.baseURL + "/" + doc

	q := url.Values{}
	q.Set("v", strconv.FormatInt(time.Now().Unix(), 10))

	return u + "?" + q.Encode()
}
