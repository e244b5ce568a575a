package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationJSONIsFlat(t *testing.T) {
	n := Notification{
		ID:          "1",
		Type:        CategoryAirdrop,
		Title:       "Drop",
		Description: "Claim",
		Timestamp:   1700000000000,
		Priority:    PriorityHigh,
		Airdrop:     &AirdropDetails{Status: AirdropActive, Amount: "10", EndDate: "2025-01-01"},
	}

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id":"1","type":"airdrop","title":"Drop","description":"Claim",
		"timestamp":1700000000000,"priority":"high",
		"airdropStatus":"active","amount":"10","endDate":"2025-01-01"
	}`, string(data))
}

func TestDecodeDropsAirdropFieldsFromOtherTypes(t *testing.T) {
	var n Notification
	err := json.Unmarshal([]byte(`{"id":"2","type":"Security","title":"t","amount":"5"}`), &n)
	require.NoError(t, err)

	assert.Equal(t, CategorySecurity, n.Type)
	assert.Nil(t, n.Airdrop)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"governance", CategoryGovernance, true},
		{" AIRDROP ", CategoryAirdrop, true},
		{"upgrade", CategoryUpgrade, true},
		{"memes", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestPreferencesToggles(t *testing.T) {
	p := DefaultPreferences()
	for _, c := range Categories {
		assert.True(t, p.Enabled(c))
		assert.False(t, p.WithToggled(c).Enabled(c))
	}
	assert.Equal(t, ThemeDark, p.Theme.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	d := DefaultAppConfig()
	assert.Equal(t, d.Storage.Backend, cfg.Storage.Backend)
	assert.Equal(t, d.Auth, cfg.Auth)
	assert.Equal(t, 300, cfg.Poller.IntervalSec)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poller:\n  interval_sec: 60\nstorage:\n  backend: badger\n"), 0o644))
	t.Setenv("WEB3HUB_WALLET_RPC_URL", "http://127.0.0.1:1248")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Poller.IntervalSec)
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "http://127.0.0.1:1248", cfg.Wallet.RPCURL)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.HTTP.Listen = "127.0.0.1:9999"

	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", got.HTTP.Listen)
}
