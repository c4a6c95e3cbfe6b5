// Package ships provides the mining ship roster and backs the ship capacity
// lookup used by the capacity advisor.
package ships

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"mining_hub/internal/domain"
	"mining_hub/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	defaultTimeout = 15 * time.Second
	miningTag      = "Mining"
)

type Ship struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	SCU          float64  `json:"scu"`
	Tags         []string `json:"tags"`
}

type Client struct {
	rosterURL  string
	httpClient *http.Client
}

func NewClient(rosterURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		rosterURL:  rosterURL,
		httpClient: httpClient,
	}
}

// MiningShips returns the roster entries tagged for mining.
func (c *Client) MiningShips(ctx context.Context) ([]Ship, error) {
	all, err := c.fetchRoster(ctx)
	if err != nil {
		return nil, err
	}

	var mining []Ship
	for _, s := range all {
		for _, tag := range s.Tags {
			if tag == miningTag {
				mining = append(mining, s)
				break
			}
		}
	}

	return mining, nil
}

// ShipCapacitySCU implements capacity.ShipCapacityLookup. The name match is
// normalized, exact first and substring as a fallback; nil means unknown.
func (c *Client) ShipCapacitySCU(ctx context.Context, shipName string) (*float64, error) {
	target := normalizeName(shipName)
	if target == "" {
		return nil, nil
	}

	all, err := c.fetchRoster(ctx)
	if err != nil {
		return nil, err
	}

	var found *Ship
	for i := range all {
		if normalizeName(all[i].Name) == target {
			found = &all[i]
			break
		}
	}
	if found == nil {
		for i := range all {
			n := normalizeName(all[i].Name)
			if strings.Contains(n, target) || strings.Contains(target, n) {
				found = &all[i]
				break
			}
		}
	}

	if found == nil || found.SCU <= 0 {
		return nil, nil
	}

	cap := found.SCU
	return &cap, nil
}

func (c *Client) fetchRoster(ctx context.Context) ([]Ship, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rosterURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.ShipRosterUnavailable, "ship roster fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewError(errcodes.ShipRosterUnavailable,
			fmt.Sprintf("ship roster: HTTP %d", resp.StatusCode))
	}

	var ships []Ship
	if err := json.NewDecoder(resp.Body).Decode(&ships); err != nil {
		return nil, domain.WrapError(err, errcodes.ShipRosterUnavailable, "ship roster payload malformed")
	}

	return ships, nil
}

var nonNameChars = regexp.MustCompile(`[^a-z0-9 \-]`)

func normalizeName(s string) string {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.Join(strings.Fields(n), " ")
	n = nonNameChars.ReplaceAllString(n, "")
	return strings.ReplaceAll(n, " ", "")
}
