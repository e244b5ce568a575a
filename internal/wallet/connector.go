package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoProvider means no wallet endpoint is configured.
	ErrNoProvider = errors.New("no wallet provider available")

	// ErrRejected means the user declined the connection request.
	ErrRejected = errors.New("wallet connection rejected")

	// ErrNoAccounts means the wallet returned an empty account list.
	ErrNoAccounts = errors.New("wallet returned no accounts")
)

// weiExponent converts base units to whole coins (10^-18).
const weiExponent = -18

// Provider is the wallet capability the connector needs.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	GetBalance(ctx context.Context, address, block string) (string, error)
}

// Account is a connected wallet. It is never persisted.
type Account struct {
	Address string
	Balance decimal.Decimal
}

// ShortAddress abbreviates the address as its first 6 and last 4
// characters.
func (a Account) ShortAddress() string {
	if len(a.Address) <= 10 {
		return a.Address
	}
	return a.Address[:6] + "..." + a.Address[len(a.Address)-4:]
}

// FormatBalance renders the balance with the given number of decimals.
func (a Account) FormatBalance(places int32) string {
	return a.Balance.StringFixed(places)
}

// Connector requests an account from a provider and reads its balance.
type Connector struct {
	provider Provider
}

// NewConnector creates a Connector. A nil provider makes every Connect
// fail with ErrNoProvider.
func NewConnector(p Provider) *Connector {
	return &Connector{provider: p}
}

// Available reports whether a provider is configured.
func (c *Connector) Available() bool {
	return c != nil && c.provider != nil
}

// Connect requests accounts, takes the first one and fetches its latest
// balance in whole coins.
func (c *Connector) Connect(ctx context.Context) (Account, error) {
	if !c.Available() {
		return Account{}, ErrNoProvider
	}

	accounts, err := c.provider.RequestAccounts(ctx)
	if err != nil {
		if IsRejected(err) {
			return Account{}, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		return Account{}, fmt.Errorf("requesting accounts: %w", err)
	}
	if len(accounts) == 0 {
		return Account{}, ErrNoAccounts
	}

	address := accounts[0]
	raw, err := c.provider.GetBalance(ctx, address, "latest")
	if err != nil {
		if IsRejected(err) {
			return Account{}, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		return Account{}, fmt.Errorf("getting balance for %s: %w", address, err)
	}

	balance, err := ParseBalance(raw)
	if err != nil {
		return Account{}, err
	}
	return Account{Address: address, Balance: balance}, nil
}

// ParseBalance converts a base-unit integer, written in decimal or as
// 0x-prefixed hex, into whole coins.
func ParseBalance(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty balance")
	}
	base := 10
	if hex, found := strings.CutPrefix(strings.ToLower(s), "0x"); found {
		s, base = hex, 16
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("invalid balance %q", raw)
	}
	return decimal.NewFromBigInt(n, weiExponent), nil
}
