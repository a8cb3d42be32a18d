package dashboard_test

import (
	"context"
	"metrics-dashboard/internal/dashboard"
	"metrics-dashboard/pkg/api"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonAdminViewHasNoAffordances(t *testing.T) {
	c := dashboard.NewModelListController(newStubStore(rf, svm), dashboard.Auth{IsAdmin: false}, always(true), &alerts{})
	require.NoError(t, c.FetchAll(context.Background()))

	view := c.View()
	assert.Equal(t, 2, view.Count)
	assert.False(t, view.CanAdd)
	require.Len(t, view.Cards, 2)
	for _, card := range view.Cards {
		assert.False(t, card.CanEdit)
		assert.False(t, card.CanDelete)
	}
	assert.Empty(t, view.Empty)
}

func TestAdminView(t *testing.T) {
	c := dashboard.NewModelListController(newStubStore(rf), dashboard.Auth{IsAdmin: true}, always(true), &alerts{})
	require.NoError(t, c.FetchAll(context.Background()))

	view := c.View()
	assert.True(t, view.CanAdd)
	assert.Equal(t, []dashboard.Card{{Record: rf, CanEdit: true, CanDelete: true}}, view.Cards)
}

func TestEmptyViewMessages(t *testing.T) {
	viewer := dashboard.NewModelListController(newStubStore(), dashboard.Auth{}, always(true), &alerts{})
	require.NoError(t, viewer.FetchAll(context.Background()))
	assert.Equal(t, dashboard.EmptyListMessage, viewer.View().Empty)
	assert.Equal(t, 0, viewer.View().Count)

	admin := dashboard.NewModelListController(newStubStore(), dashboard.Auth{IsAdmin: true}, always(true), &alerts{})
	require.NoError(t, admin.FetchAll(context.Background()))
	assert.Equal(t, "No models found. Add your first model to get started!", admin.View().Empty)
}

func TestFeedDropsOldestSnapshot(t *testing.T) {
	feed := dashboard.NewFeed(1)
	c := dashboard.NewModelListController(newStubStore(rf), dashboard.Auth{}, always(true), &alerts{})
	c.Subscribe(feed)

	require.NoError(t, c.FetchAll(context.Background()))
	feed.OnCollectionPublished([]api.ModelRecord{svm})

	snapshot := <-feed.Snapshots()
	assert.Equal(t, []api.ModelRecord{svm}, snapshot.Models)

	feed.Close()
	_, ok := <-feed.Snapshots()
	assert.False(t, ok)

	feed.OnCollectionPublished([]api.ModelRecord{rf})
}
