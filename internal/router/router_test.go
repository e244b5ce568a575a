package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/session"
)

func cat(c model.Category) *model.Category { return &c }

func sample() []model.Notification {
	return []model.Notification{
		{ID: "1", Type: model.CategorySecurity},
		{ID: "2", Type: model.CategoryGovernance},
		{ID: "3", Type: "Security"},
		{ID: "4", Type: model.CategoryAirdrop, Airdrop: &model.AirdropDetails{Status: model.AirdropActive}},
		{ID: "5", Type: model.CategoryAirdrop, Airdrop: &model.AirdropDetails{Status: model.AirdropExpired}},
		{ID: "6", Type: model.CategoryAirdrop, Airdrop: &model.AirdropDetails{Status: model.AirdropUpcoming}},
	}
}

func ids(list []model.Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}
	return out
}

func TestVisible(t *testing.T) {
	list := sample()

	assert.Equal(t, ids(list), ids(Visible(list, nil)))
	assert.Equal(t, []string{"1", "3"}, ids(Visible(list, cat(model.CategorySecurity))))
	assert.Equal(t, []string{"2"}, ids(Visible(list, cat(model.CategoryGovernance))))
	assert.Empty(t, Visible(list, cat(model.CategoryUpgrade)))
	assert.Empty(t, Visible(nil, cat(model.CategoryUpgrade)))
}

func TestActiveAirdrops(t *testing.T) {
	assert.Equal(t, []string{"4", "6"}, ids(ActiveAirdrops(sample())))
}

func TestNavigateRequiresLogin(t *testing.T) {
	r := New(session.NewGate("admin", "admin"))
	assert.Equal(t, ViewLogin, r.Current())

	assert.Equal(t, ViewLogin, r.Navigate(ViewSettings))
	assert.False(t, r.CanRender(ViewNotifications))
	assert.True(t, r.CanRender(ViewLogin))

	require.Equal(t, session.LoggedInUser, r.Login("alice", "x"))
	assert.Equal(t, ViewNotifications, r.Current())
	assert.Equal(t, ViewSettings, r.Navigate(ViewSettings))
}

func TestDashboardAdminOnly(t *testing.T) {
	r := New(session.NewGate("admin", "admin"))

	r.Login("alice", "x")
	assert.Equal(t, ViewDashboard, r.Navigate(ViewDashboard))
	assert.False(t, r.CanRender(ViewDashboard))

	r.Login("admin", "admin")
	r.Navigate(ViewDashboard)
	assert.True(t, r.CanRender(ViewDashboard))
}

func TestSetFilterSwitchesToNotifications(t *testing.T) {
	r := New(session.NewGate("admin", "admin"))
	r.Login("alice", "x")
	r.Navigate(ViewWallet)

	r.SetFilter(cat(model.CategorySecurity))
	assert.Equal(t, ViewNotifications, r.Current())
	assert.Equal(t, []string{"1", "3"}, ids(r.Visible(sample())))

	r.SetFilter(nil)
	assert.Nil(t, r.Filter())
	assert.Len(t, r.Visible(sample()), 6)
}

func TestLogoutClearsFilter(t *testing.T) {
	r := New(session.NewGate("admin", "admin"))
	r.Login("admin", "admin")
	r.SetFilter(cat(model.CategoryAirdrop))

	r.Logout()
	assert.Nil(t, r.Filter())
	assert.Equal(t, ViewLogin, r.Current())
	assert.Equal(t, session.LoggedOut, r.Session())
}
