// Package seed resets the listing table to the embedded fixture.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"petspotter/internal/logging"
	"petspotter/internal/model"
)

//go:embed data/pet-card-data.json
var fixture []byte

type Store interface {
	DeleteAll(ctx context.Context) error
	Create(ctx context.Context, listing *model.Listing) error
}

// Fixture decodes the embedded listings. Ids and timestamps are not set.
func Fixture() ([]model.Listing, error) {
	var listings []model.Listing
	if err := json.Unmarshal(fixture, &listings); err != nil {
		return nil, fmt.Errorf("decode seed fixture failed: %w", err)
	}
	return listings, nil
}

// Reset deletes every listing and inserts the fixture. Returns the number
// of listings inserted.
func Reset(ctx context.Context, store Store) (int, error) {
	listings, err := Fixture()
	if err != nil {
		return 0, err
	}
	if err := store.DeleteAll(ctx); err != nil {
		return 0, err
	}

	base := time.Now().UTC().Truncate(time.Second)
	for i := range listings {
		listing := listings[i]
		listing.ID = uuid.NewString()
		listing.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := store.Create(ctx, &listing); err != nil {
			return i, fmt.Errorf("seed listing %d failed: %w", i, err)
		}
	}
	logging.With("seed").Info().Int("listings", len(listings)).Msg("listing table reset from fixture")
	return len(listings), nil
}
