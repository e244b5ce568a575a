package producer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/notify"
	"github.com/nhle/web3hub/internal/store"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr bool
	}{
		{"governance ok", func(d *Draft) {}, false},
		{"missing title", func(d *Draft) { d.Title = "" }, true},
		{"missing description", func(d *Draft) { d.Description = "" }, true},
		{"airdrop complete", func(d *Draft) {
			d.Type = model.CategoryAirdrop
			d.Amount = "1000 TKN"
			d.EndDate = "next week"
		}, false},
		{"airdrop missing amount", func(d *Draft) {
			d.Type = model.CategoryAirdrop
			d.EndDate = "2026-12-31"
		}, true},
		{"airdrop missing end date", func(d *Draft) {
			d.Type = model.CategoryAirdrop
			d.Amount = "5"
		}, true},
		{"airdrop missing status", func(d *Draft) {
			d.Type = model.CategoryAirdrop
			d.AirdropStatus = ""
			d.Amount = "5"
			d.EndDate = "2026-12-31"
		}, true},
		{"unknown priority", func(d *Draft) { d.Priority = "urgent" }, true},
		{"unknown type", func(d *Draft) { d.Type = "meme" }, true},
		{"empty type and priority", func(d *Draft) {
			d.Type = ""
			d.Priority = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultDraft()
			d.Title = "Title"
			d.Description = "Description"
			tt.mutate(&d)

			err := d.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDraft)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotificationDropsAirdropFieldsForOtherTypes(t *testing.T) {
	d := DefaultDraft()
	d.Amount = "5"
	d.EndDate = "2026-12-31"

	assert.Nil(t, d.Notification().Airdrop)

	d.Type = model.CategoryAirdrop
	n := d.Notification()
	require.NotNil(t, n.Airdrop)
	assert.Equal(t, model.AirdropActive, n.Airdrop.Status)
	assert.Equal(t, "5", n.Airdrop.Amount)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	repo := notify.NewRepository(store.NewMemoryStore())
	p := New(repo)

	bad := DefaultDraft()
	bad.Type = model.CategoryAirdrop
	bad.Title = "Claim"
	bad.Description = "Claim your tokens"
	bad.EndDate = "2026-12-31"

	_, err := p.Submit(ctx, bad)
	require.ErrorIs(t, err, ErrInvalidDraft)
	assert.Empty(t, repo.List())

	good := bad
	good.Amount = "250"
	n, err := p.Submit(ctx, good)
	require.NoError(t, err)

	list := repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].ID)
	assert.Equal(t, model.CategoryAirdrop, list[0].Type)
	require.NotNil(t, list[0].Airdrop)
	assert.Equal(t, "250", list[0].Airdrop.Amount)
}

func TestRequired(t *testing.T) {
	check := Required("Title")
	assert.EqualError(t, check(""), "Title is required")
	assert.NoError(t, check("x"))
}

func TestSubmitDefaultsTypeAndPriority(t *testing.T) {
	repo := notify.NewRepository(store.NewMemoryStore())

	n, err := New(repo).Submit(context.Background(), Draft{Title: "Vote", Description: "Proposal 12"})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGovernance, n.Type)
	assert.Equal(t, model.PriorityMedium, n.Priority)
	assert.Nil(t, n.Airdrop)
	assert.Len(t, repo.List(), 1)
}
