// Package uexlive talks to the UEX-derived live price worker.
package uexlive

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"mining_hub/internal/domain"
	"mining_hub/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	defaultTimeout = 15 * time.Second

	// conventionalPathSuffix is where workers usually mount the API when the
	// configured base points at the host root.
	conventionalPathSuffix = "/api/mining"
)

type Client struct {
	base       string
	httpClient *http.Client
}

func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		base:       SanitizeBase(base),
		httpClient: httpClient,
	}
}

func (c *Client) Base() string {
	return c.base
}

// FetchOres queries live prices for the given keys, trying the configured
// base first and then the conventional "/api/mining" variant. The first base
// answering with a well-formed payload wins; when all fail the result is a
// LiveOverlayUnavailable error.
func (c *Client) FetchOres(ctx context.Context, keys []string, prefer string, topN int) (*Result, error) {
	uniq := lo.Uniq(lo.Filter(keys, func(k string, _ int) bool { return k != "" }))
	if len(uniq) == 0 || c.base == "" {
		return nil, nil
	}

	bases := []string{c.base}
	if !strings.HasSuffix(strings.ToLower(c.base), conventionalPathSuffix) {
		bases = append(bases, c.base+conventionalPathSuffix)
	}

	var lastErr error

	for _, base := range bases {
		result, err := c.fetchFrom(ctx, base, uniq, prefer, topN)
		if err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}

	return nil, domain.WrapError(lastErr, errcodes.LiveOverlayUnavailable, "all live base variants failed")
}

func (c *Client) fetchFrom(ctx context.Context, base string, keys []string, prefer string, topN int) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oresURL(base, keys, prefer, topN), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	var payload oresResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if payload.Message != "" {
			return nil, fmt.Errorf("live API: %s", payload.Message)
		}
		return nil, fmt.Errorf("live API: HTTP %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("json.Decode: %w", decodeErr)
	}

	// Accept both `ores` and `data` envelopes.
	entries := payload.Ores
	if entries == nil {
		entries = payload.Data
	}
	if entries == nil {
		return nil, fmt.Errorf("live API: payload has neither ores nor data")
	}

	return &Result{
		Ores: entries,
		Meta: Meta{
			UpdatedAt: payload.UpdatedAt.Unix(),
			Source:    payload.Source,
			Prefer:    payload.Prefer,
			Top:       payload.Top,
		},
	}, nil
}

func oresURL(base string, keys []string, prefer string, topN int) string {
	q := url.Values{}
	q.Set("keys", strings.Join(keys, ","))
	q.Set("prefer", prefer)
	q.Set("top", strconv.Itoa(topN))

	return base + "/ores?" + q.Encode()
}

// SanitizeBase normalizes a configured base URL: trims whitespace and
// trailing slashes, forces a scheme and strips endpoint paths the operator
// may have pasted by mistake.
func SanitizeBase(base string) string {
	b := strings.TrimSpace(base)
	if b == "" {
		return ""
	}

	b = strings.ReplaceAll(b, " ", "")
	b = strings.TrimRight(b, "/")

	if !strings.HasPrefix(b, "http://") && !strings.HasPrefix(b, "https://") {
		if strings.HasPrefix(b, "//") {
			b = "https:" + b
		} else {
			b = "https://" + b
		}
	}

	for _, suffix := range []string{"/health", "/ores", "/debug/commodities"} {
		if idx := strings.LastIndex(b, suffix); idx > 0 && idx == len(b)-len(suffix) {
			b = b[:idx]
		}
	}

	return strings.TrimRight(b, "/")
}
