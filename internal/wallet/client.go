package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// CodeUserRejected is the JSON-RPC error code a provider returns when the
// user declines a request.
const CodeUserRejected = 4001

// RPCError is an error object returned by a JSON-RPC endpoint.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// RPCClient is a thin JSON-RPC 2.0 client for an Ethereum-style wallet
// endpoint. It handles Bearer token authentication and retries with
// exponential backoff on HTTP 429.
type RPCClient struct {
	url        string
	token      string
	httpClient *http.Client
	maxRetries int
	nextID     atomic.Uint64
}

// NewRPCClient creates a client for url. An empty token sends no
// Authorization header.
func NewRPCClient(url, token string, timeout time.Duration) *RPCClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RPCClient{
		url:   strings.TrimRight(url, "/"),
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: 3,
	}
}

// RequestAccounts asks the wallet for its accounts.
func (c *RPCClient) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := c.Call(ctx, "eth_requestAccounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetBalance returns the balance of address at block as a hex or decimal
// base-unit string.
func (c *RPCClient) GetBalance(ctx context.Context, address, block string) (string, error) {
	var balance string
	if err := c.Call(ctx, "eth_getBalance", []any{address, block}, &balance); err != nil {
		return "", err
	}
	return balance, nil
}

// Call invokes method with params and decodes the result into result.
func (c *RPCClient) Call(ctx context.Context, method string, params []any, result any) error {
	if params == nil {
		params = []any{}
	}
	data, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing %s: %w", method, err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429) on %s", method)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfterDuration(resp, attempt)):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("authentication failed (401): check the wallet RPC token for %s", c.url)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("unexpected status %d on %s: %s", resp.StatusCode, method, string(body))
		}

		var rpcResp rpcResponse
		if err := json.Unmarshal(body, &rpcResp); err != nil {
			return fmt.Errorf("unmarshaling response from %s: %w", method, err)
		}
		if rpcResp.Error != nil {
			return rpcResp.Error
		}
		if result == nil {
			return nil
		}
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
		return nil
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// IsRejected reports whether err is a user rejection from the wallet.
func IsRejected(err error) bool {
	var rpcErr *RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == CodeUserRejected
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
