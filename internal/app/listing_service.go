package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"petspotter/internal/logging"
	"petspotter/internal/metrics"
	"petspotter/internal/model"
)

// ListingStore holds listings. GetByID and Delete return (nil, nil) when no
// record matches.
type ListingStore interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	List(ctx context.Context, query model.ListingQuery) ([]model.Listing, error)
	Delete(ctx context.Context, id string) (*model.Listing, error)
}

type ListingCache interface {
	GetList(ctx context.Context, key string) ([]model.Listing, bool, error)
	SetList(ctx context.Context, key string, listings []model.Listing) error
	Invalidate(ctx context.Context) error
	MarkDirty(ctx context.Context) error
	IsDirty(ctx context.Context) (bool, error)
}

type ListingEventPublisher interface {
	Publish(ctx context.Context, event model.ListingEvent) error
}

type ListingService struct {
	listings  ListingStore
	filter    ListingFilter
	cache     ListingCache
	publisher ListingEventPublisher
	now       func() time.Time
}

type CreateListingInput struct {
	Status      string
	PetName     string
	Species     string
	Sex         string
	Breed       string
	Location    string
	Description string
	Email       string
	ImageURL    string
}

// NewListingService wires the query engine. cache and publisher may be nil.
func NewListingService(listings ListingStore, filter ListingFilter, cache ListingCache, publisher ListingEventPublisher) *ListingService {
	return &ListingService{
		listings:  listings,
		filter:    filter,
		cache:     cache,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *ListingService) List(ctx context.Context, params ListingFilterParams) ([]model.Listing, error) {
	query, err := s.filter.Build(params)
	if err != nil {
		return nil, err
	}
	metrics.ListingQueries.WithLabelValues(s.filter.Dialect(), queryDimension(query)).Inc()

	key := s.filter.Dialect() + ":" + queryCacheKey(query)
	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetList(ctx, key); cacheErr == nil && hit {
				metrics.ListingCacheResults.WithLabelValues("hit").Inc()
				return cached, nil
			} else if cacheErr != nil {
				logging.With("listing").Warn().Err(cacheErr).Msg("read listing cache failed")
			}
		}
		metrics.ListingCacheResults.WithLabelValues("miss").Inc()
	}

	listings, err := s.listings.List(ctx, query)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx); dirtyErr == nil && !dirty {
			if err := s.cache.SetList(ctx, key, listings); err != nil {
				logging.With("listing").Warn().Err(err).Msg("write listing cache failed")
			}
		}
	}
	return listings, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*model.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBadRequest
	}
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	return listing, nil
}

func (s *ListingService) Create(ctx context.Context, input CreateListingInput, owner *model.User) (*model.Listing, error) {
	status := strings.TrimSpace(input.Status)
	if status != model.StatusLost && status != model.StatusFound {
		return nil, ErrValidation
	}

	listing := &model.Listing{
		ID:          uuid.NewString(),
		Status:      status,
		PetName:     strings.TrimSpace(input.PetName),
		Species:     strings.TrimSpace(input.Species),
		Sex:         strings.TrimSpace(input.Sex),
		Breed:       strings.TrimSpace(input.Breed),
		Location:    strings.TrimSpace(input.Location),
		Description: strings.TrimSpace(input.Description),
		Email:       strings.TrimSpace(input.Email),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		CreatedAt:   s.now().UTC().Truncate(time.Second),
	}
	if owner != nil {
		ownerID := owner.ID
		listing.UserID = &ownerID
	}

	s.markDirty(ctx)
	if err := s.listings.Create(ctx, listing); err != nil {
		if dup, ok := asDuplicateKey(err); ok {
			return nil, dup
		}
		return nil, err
	}
	s.invalidate(ctx)
	s.publish(ctx, listing, model.ListingActionCreated)
	return listing, nil
}

func (s *ListingService) Delete(ctx context.Context, id string) (*model.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBadRequest
	}

	s.markDirty(ctx)
	deleted, err := s.listings.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, ErrNotFound
	}
	s.invalidate(ctx)
	s.publish(ctx, deleted, model.ListingActionDeleted)
	return deleted, nil
}

func (s *ListingService) markDirty(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.MarkDirty(ctx); err != nil {
		logging.With("listing").Warn().Err(err).Msg("mark listing cache dirty failed")
	}
}

func (s *ListingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logging.With("listing").Warn().Err(err).Msg("invalidate listing cache failed")
	}
}

func (s *ListingService) publish(ctx context.Context, listing *model.Listing, action string) {
	if s.publisher == nil {
		return
	}
	event := model.ListingEvent{
		ListingID:  listing.ID,
		UserID:     listing.UserID,
		Action:     action,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logging.With("listing").Warn().Err(err).Str("listing_id", listing.ID).Str("action", action).Msg("publish listing event failed")
	}
}
