package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcServer answers eth_requestAccounts and eth_getBalance. A non-nil
// reject makes eth_requestAccounts fail with that error object.
func rpcServer(t *testing.T, balance string, reject *RPCError) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		switch req.Method {
		case "eth_requestAccounts":
			if reject != nil {
				resp["error"] = reject
			} else {
				resp["result"] = []string{"0x1234567890abcdef1234567890abcdef12345678"}
			}
		case "eth_getBalance":
			assert.Equal(t, []any{"0x1234567890abcdef1234567890abcdef12345678", "latest"}, req.Params)
			resp["result"] = balance
		default:
			resp["error"] = RPCError{Code: -32601, Message: "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestConnect(t *testing.T) {
	srv := rpcServer(t, "0xde0b6b3a7640000", nil) // 1 ether
	defer srv.Close()

	c := NewConnector(NewRPCClient(srv.URL, "secret", time.Second))
	acct, err := c.Connect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0x1234567890abcdef1234567890abcdef12345678", acct.Address)
	assert.Equal(t, "0x1234...5678", acct.ShortAddress())
	assert.Equal(t, "1.0000", acct.FormatBalance(4))
}

func TestConnectRejected(t *testing.T) {
	srv := rpcServer(t, "0x0", &RPCError{Code: CodeUserRejected, Message: "User rejected the request."})
	defer srv.Close()

	c := NewConnector(NewRPCClient(srv.URL, "secret", time.Second))
	_, err := c.Connect(context.Background())
	assert.ErrorIs(t, err, ErrRejected)
}

func TestConnectWithoutProvider(t *testing.T) {
	_, err := NewConnector(nil).Connect(context.Background())
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestRetryOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x2a"}`))
	}))
	defer srv.Close()

	balance, err := NewRPCClient(srv.URL, "", time.Second).GetBalance(context.Background(), "0xabc", "latest")
	require.NoError(t, err)
	assert.Equal(t, "0x2a", balance)
	assert.Equal(t, int32(2), calls.Load())
}

func TestParseBalance(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0x0", "0"},
		{"0xDE0B6B3A7640000", "1"},
		{"1500000000000000000", "1.5"},
		{"1", "0.000000000000000001"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseBalance(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := ParseBalance("not a number")
	assert.Error(t, err)
	_, err = ParseBalance("")
	assert.Error(t, err)
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0xabc", Account{Address: "0xabc"}.ShortAddress())
}
