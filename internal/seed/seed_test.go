package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petspotter/internal/model"
	"petspotter/internal/repository/memory"
)

func TestFixture(t *testing.T) {
	listings, err := Fixture()
	require.NoError(t, err)
	require.NotEmpty(t, listings)
	for _, l := range listings {
		assert.Contains(t, []string{model.StatusLost, model.StatusFound}, l.Status)
	}
}

func TestReset_ReplacesExisting(t *testing.T) {
	store := memory.NewStore().Listings()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &model.Listing{ID: "old", Status: model.StatusLost}))

	n, err := Reset(ctx, store)
	require.NoError(t, err)

	fixture, _ := Fixture()
	assert.Equal(t, len(fixture), n)
	assert.Equal(t, len(fixture), store.Count())

	old, err := store.GetByID(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, old)

	all, err := store.List(ctx, model.ListingQuery{})
	require.NoError(t, err)
	assert.Equal(t, fixture[0].PetName, all[0].PetName)
}
