package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nhle/web3hub/internal/alert"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/notify"
	"github.com/nhle/web3hub/internal/prefs"
	"github.com/nhle/web3hub/internal/store"
	"github.com/nhle/web3hub/tests/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingAlerter struct {
	alerts []alert.Alert
}

func (r *recordingAlerter) Show(_ context.Context, a alert.Alert) error {
	r.alerts = append(r.alerts, a)
	return nil
}

func TestTickFromEmptyStore(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestStore(t)

	ps := prefs.New(kv, nil)
	require.NoError(t, ps.EnsureDefaults(ctx))
	assert.Equal(t, model.DefaultPreferences(), ps.Load(ctx))

	repo := notify.NewRepository(kv)
	alerter := &recordingAlerter{}
	p := New(Config{Repo: repo, Prefs: ps, Alerter: alerter})

	res := p.Tick(ctx)
	require.NoError(t, res.Error)
	assert.True(t, res.Alerted)

	list := repo.List()
	require.Len(t, list, 1)
	n := list[0]
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, model.CategoryGovernance, n.Type)
	assert.Equal(t, "New Governance Proposal", n.Title)
	assert.Equal(t, "Vote on the latest protocol upgrade proposal", n.Description)
	assert.Equal(t, model.PriorityHigh, n.Priority)
	assert.Equal(t, "https://example.com/proposal", n.ActionURL)

	require.Len(t, alerter.alerts, 1)
	assert.Equal(t, alert.Alert{
		ID:       n.ID,
		Title:    n.Title,
		Message:  n.Description,
		Priority: alert.PriorityHigh,
	}, alerter.alerts[0])
}

func TestTickRespectsCap(t *testing.T) {
	ctx := context.Background()
	repo := notify.NewRepository(store.NewMemoryStore())
	p := New(Config{Repo: repo})

	for range notify.MaxRetained + 3 {
		require.NoError(t, p.Tick(ctx).Error)
	}
	assert.Len(t, repo.List(), notify.MaxRetained)
}

func TestTickSuppressesAlertForDisabledCategory(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	ps := prefs.New(kv, nil)
	_, err := ps.ToggleCategory(ctx, model.CategoryGovernance)
	require.NoError(t, err)

	repo := notify.NewRepository(kv)
	alerter := &recordingAlerter{}
	p := New(Config{Repo: repo, Prefs: ps, Alerter: alerter})

	res := p.Tick(ctx)
	assert.False(t, res.Alerted)
	assert.Empty(t, alerter.alerts)
	assert.Len(t, repo.List(), 1)
}

func TestTickSkipsAlertWhenAppendFails(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewFailingStore()
	kv.FailSet = true

	repo := notify.NewRepository(kv)
	alerter := &recordingAlerter{}
	p := New(Config{Repo: repo, Alerter: alerter})

	res := p.Tick(ctx)
	require.ErrorIs(t, res.Error, testutil.ErrInjected)
	assert.False(t, res.Alerted)
	assert.Empty(t, alerter.alerts)
	assert.Len(t, repo.List(), 1)

	kv.FailSet = false
	res = p.Tick(ctx)
	require.NoError(t, res.Error)
	assert.True(t, res.Alerted)
	require.Len(t, alerter.alerts, 1)
	assert.Equal(t, res.Notification.ID, alerter.alerts[0].ID)
}

func TestTickFeedError(t *testing.T) {
	repo := notify.NewRepository(store.NewMemoryStore())
	p := New(Config{
		Repo: repo,
		Feed: FeedFunc(func(context.Context) (model.Notification, error) {
			return model.Notification{}, errors.New("feed down")
		}),
	})

	res := p.Tick(context.Background())
	assert.Error(t, res.Error)
	assert.Empty(t, repo.List())
}

func TestStartTwiceKeepsOneSchedule(t *testing.T) {
	repo := notify.NewRepository(store.NewMemoryStore())
	p := New(Config{Repo: repo, Interval: 10 * time.Millisecond})

	p.Start()
	p.Start()
	assert.True(t, p.Running())

	select {
	case res := <-p.Results():
		require.NoError(t, res.Error)
	case <-time.After(2 * time.Second):
		t.Fatal("no tick within 2s")
	}

	p.Stop()
	p.Stop()
	assert.False(t, p.Running())

	// No ticks after Stop.
	count := len(repo.List())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, count, len(repo.List()))
}

func TestHandleAlertClick(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	repo := notify.NewRepository(kv)

	var opened []string
	p := New(Config{
		Repo: repo,
		Opener: alert.OpenerFunc(func(url string) error {
			opened = append(opened, url)
			return nil
		}),
	})

	res := p.Tick(ctx)
	require.NoError(t, res.Error)

	noURL, err := repo.Append(ctx, model.Notification{Title: "no link"})
	require.NoError(t, err)

	require.NoError(t, p.HandleAlertClick(ctx, res.Notification.ID))
	assert.Equal(t, []string{"https://example.com/proposal"}, opened)

	require.NoError(t, p.HandleAlertClick(ctx, noURL.ID))
	assert.Len(t, opened, 1)

	require.NoError(t, repo.Delete(ctx, res.Notification.ID))
	require.NoError(t, p.HandleAlertClick(ctx, res.Notification.ID))
	assert.Len(t, opened, 1)
}

func TestHandleAlertClickSeesOtherProcess(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestStore(t)

	background := New(Config{Repo: notify.NewRepository(kv)})
	res := background.Tick(ctx)
	require.NoError(t, res.Error)

	var opened []string
	ui := New(Config{
		Repo:   notify.NewRepository(kv),
		Opener: alert.OpenerFunc(func(url string) error { opened = append(opened, url); return nil }),
	})
	require.NoError(t, ui.HandleAlertClick(ctx, res.Notification.ID))
	assert.Equal(t, []string{"https://example.com/proposal"}, opened)
}
