// Package subgraph implements the SwapSource against the Uniswap v3
// subgraph GraphQL API served through the Graph gateway.
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"uniLeaderboard/config"
	"uniLeaderboard/internal/domain/model"
	"uniLeaderboard/internal/domain/useCases"
)

// Default configuration values.
const (
	DefaultBatchSize = 1000
	// DefaultMaxSwaps bounds worst-case latency and gateway cost per run.
	DefaultMaxSwaps = 10000
	DefaultTimeout  = 60 * time.Second
)

var tokenAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// Client fetches swap records page by page. A run is strictly sequential:
// each page's offset depends on the previous page having succeeded, and any
// failed page aborts the whole fetch with no partial result.
type Client struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string // optional full endpoint override for all networks
	batchSize  int
	maxSwaps   int
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-run HTTP client timeout. It applies to whichever
// http.Client the fully-configured Client ends up with, regardless of option
// order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithEndpoint overrides the gateway endpoint for every network.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithBatchSize sets the page size for swap requests.
func WithBatchSize(n int) Option {
	return func(c *Client) { c.batchSize = n }
}

// WithMaxSwaps sets the hard retrieval cap per run.
func WithMaxSwaps(n int) Option {
	return func(c *Client) { c.maxSwaps = n }
}

// NewClient creates a subgraph client authenticated with the given Graph
// gateway API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		apiKey:     apiKey,
		batchSize:  DefaultBatchSize,
		maxSwaps:   DefaultMaxSwaps,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}
	return c
}

var _ useCases.SwapSource = (*Client)(nil)

type graphQLQuery struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type swapsData struct {
	Swaps []model.Swap `json:"swaps"`
}

type graphQLResponse struct {
	Data   *swapsData     `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// swapsQuery selects swaps whose pool has the target token on either side,
// most recent first. The token address is interpolated because the subgraph
// filter syntax does not take nested where-clauses as variables.
const swapsQuery = `
query GetSwaps($skip: Int!, $first: Int!) {
    swaps(
        skip: $skip,
        first: $first,
        orderBy: timestamp,
        orderDirection: desc,
        where: {
            or: [
                { pool_: { token0: %q } },
                { pool_: { token1: %q } }
            ]
        }
    ) {
        id
        timestamp
        sender
        recipient
        amount0
        amount1
        amountUSD
        pool {
            id
            token0 { id symbol name decimals }
            token1 { id symbol name decimals }
            tick
            sqrtPrice
        }
        transaction { blockNumber }
    }
}
`

// FetchAllSwaps retrieves every swap touching the token, in pages of the
// configured batch size, until a page comes back empty or short or the
// retrieval cap is reached. Records whose pool matches the token on neither
// side are silently dropped; duplicates are passed through untouched.
func (c *Client) FetchAllSwaps(ctx context.Context, network, tokenAddress string, startBlock, endBlock *uint64) ([]model.Swap, error) {
	token := strings.ToLower(tokenAddress)
	if !tokenAddressPattern.MatchString(token) {
		return nil, fmt.Errorf("invalid token address %q, expected 42-character hex string starting with 0x", tokenAddress)
	}

	netCfg, err := config.NetworkByName(network)
	if err != nil {
		return nil, err
	}
	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = netCfg.SubgraphURL(c.apiKey)
	}

	var all []model.Swap
	skip := 0
	retrieved := 0
	for {
		page, rawCount, err := c.fetchPage(ctx, endpoint, token, startBlock, endBlock, skip, c.batchSize)
		if err != nil {
			return nil, err
		}
		if rawCount == 0 {
			break
		}

		all = append(all, page...)
		retrieved += rawCount
		log.Printf("fetched %d swaps from %s (total retrieved: %d)", rawCount, netCfg.Name, retrieved)

		// Short page means the source is exhausted. The stop conditions use
		// the raw page size: client-side filtering must not end pagination.
		if rawCount < c.batchSize || retrieved >= c.maxSwaps {
			break
		}
		skip += c.batchSize
	}

	return all, nil
}

// fetchPage issues one page request. It returns the block-range-filtered,
// pool-matched records along with the raw record count of the page.
func (c *Client) fetchPage(ctx context.Context, endpoint, token string, startBlock, endBlock *uint64, skip, first int) ([]model.Swap, int, error) {
	body, err := json.Marshal(graphQLQuery{
		Query:     fmt.Sprintf(swapsQuery, token, token),
		Variables: map[string]any{"skip": skip, "first": first},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("encoding swaps query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("building swaps request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("subgraph request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading subgraph response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("subgraph returned HTTP %d: %s", resp.StatusCode, snippet(respBody))
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		if isHTML(respBody) {
			return nil, 0, fmt.Errorf("subgraph returned an HTML error page; token %s may have no Uniswap v3 pools", token)
		}
		return nil, 0, fmt.Errorf("parsing subgraph response: %w (body: %s)", err, snippet(respBody))
	}
	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			msgs[i] = e.Message
		}
		return nil, 0, fmt.Errorf("graphql errors: %s", strings.Join(msgs, ", "))
	}
	if gqlResp.Data == nil {
		return nil, 0, nil
	}

	raw := gqlResp.Data.Swaps
	kept := make([]model.Swap, 0, len(raw))
	for _, swap := range raw {
		if !inBlockRange(swap, startBlock, endBlock) {
			continue
		}
		if !swap.InPool(token) {
			continue
		}
		kept = append(kept, swap)
	}
	return kept, len(raw), nil
}

// inBlockRange applies the optional block bounds. Records with an
// unparseable block number are kept, matching the upstream behavior.
func inBlockRange(swap model.Swap, startBlock, endBlock *uint64) bool {
	block, err := strconv.ParseUint(swap.Transaction.BlockNumber, 10, 64)
	if err != nil {
		return true
	}
	if startBlock != nil && block < *startBlock {
		return false
	}
	if endBlock != nil && block > *endBlock {
		return false
	}
	return true
}

func isHTML(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "<!DOCTYPE html>") || strings.HasPrefix(trimmed, "<html")
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
