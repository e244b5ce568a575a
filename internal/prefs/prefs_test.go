package prefs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/prefs"
	"github.com/nhle/web3hub/internal/store"
	"github.com/nhle/web3hub/tests/testutil"
)

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	s := prefs.New(testutil.NewTestStore(t), nil)

	p := s.Load(context.Background())
	assert.Equal(t, model.DefaultPreferences(), p)
}

func TestLoadDefaultsWhenUnreadable(t *testing.T) {
	kv := testutil.NewFailingStore()
	kv.FailGet = true
	s := prefs.New(kv, nil)

	assert.Equal(t, model.DefaultPreferences(), s.Load(context.Background()))
}

func TestEnsureDefaultsDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestStore(t)

	custom := model.Preferences{Security: true, Theme: model.ThemeDark}
	require.NoError(t, store.SetJSON(ctx, kv, store.NamespaceSynced, store.KeyPreferences, custom))

	s := prefs.New(kv, nil)
	require.NoError(t, s.EnsureDefaults(ctx))
	assert.Equal(t, custom, s.Load(ctx))
}

func TestEnsureDefaultsWritesOnFirstRun(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestStore(t)
	s := prefs.New(kv, nil)

	require.NoError(t, s.EnsureDefaults(ctx))

	var got model.Preferences
	require.NoError(t, store.GetJSON(ctx, kv, store.NamespaceSynced, store.KeyPreferences, &got))
	assert.Equal(t, model.DefaultPreferences(), got)
}

func TestToggleThemeFlipsOnlyTheme(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestStore(t)
	s := prefs.New(kv, nil)
	before := s.Load(ctx)

	after, err := s.ToggleTheme(ctx)
	require.NoError(t, err)

	assert.Equal(t, model.ThemeDark, after.Theme)
	after.Theme = before.Theme
	assert.Equal(t, before, after)

	reloaded := prefs.New(kv, nil).Load(ctx)
	assert.Equal(t, model.ThemeDark, reloaded.Theme)
}

func TestToggleCategory(t *testing.T) {
	ctx := context.Background()
	s := prefs.New(store.NewMemoryStore(), nil)
	s.Load(ctx)

	p, err := s.ToggleCategory(ctx, model.CategorySecurity)
	require.NoError(t, err)
	assert.False(t, p.Security)
	assert.True(t, p.Governance)
	assert.False(t, s.Enabled(model.CategorySecurity))
	assert.True(t, s.Enabled(model.CategoryAirdrop))
}

func TestSaveNotifiesBeforePersisting(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewFailingStore()
	s := prefs.New(kv, nil)

	var seen []model.Theme
	s.Subscribe(func(p model.Preferences) {
		seen = append(seen, p.Theme)
	})

	kv.FailSet = true
	_, err := s.ToggleTheme(ctx)
	require.ErrorIs(t, err, testutil.ErrInjected)

	assert.Equal(t, []model.Theme{model.ThemeDark}, seen)
	assert.Equal(t, model.ThemeDark, s.Current().Theme)
}

func TestReadSeesOtherWriters(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestStore(t)

	ui := prefs.New(kv, nil)
	background := prefs.New(kv, nil)

	var notified int
	background.Subscribe(func(model.Preferences) { notified++ })

	_, err := ui.ToggleCategory(ctx, model.CategoryGovernance)
	require.NoError(t, err)

	assert.False(t, background.Read(ctx).Governance)
	assert.True(t, background.Current().Governance)
	assert.Zero(t, notified)
}
