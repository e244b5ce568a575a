package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/web3hub/internal/keys"
)

func hasKey(groups [][]string, k string) bool {
	for _, g := range groups {
		for _, s := range g {
			if s == k {
				return true
			}
		}
	}
	return false
}

func helpKeys(m Model) [][]string {
	var out [][]string
	for _, g := range m.FullHelp() {
		var ks []string
		for _, b := range g {
			ks = append(ks, b.Help().Key)
		}
		out = append(out, ks)
	}
	return out
}

func TestDashboardBindingOnlyForAdmin(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	assert.False(t, hasKey(helpKeys(m), "n"))

	m.SetAdmin(true)
	assert.True(t, hasKey(helpKeys(m), "n"))
}

func TestViewListsCategories(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	v := m.View()
	assert.Contains(t, v, "Keyboard Shortcuts")
	assert.Contains(t, v, "airdrop")
}
