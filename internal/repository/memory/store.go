// Package memory is an in-process storage driver with the same contracts as
// the gorm repositories. All collections share one mutex so unique checks
// and inserts are atomic.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"petspotter/internal/model"
	"petspotter/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	users       map[string]model.User
	userByName  map[string]string
	userByToken map[string]string
	listings    map[string]model.Listing
	images      map[string]model.PetImage
	imageByKey  map[string]string
	events      []model.ListingEvent
	nextEventID uint
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]model.User),
		userByName:  make(map[string]string),
		userByToken: make(map[string]string),
		listings:    make(map[string]model.Listing),
		images:      make(map[string]model.PetImage),
		imageByKey:  make(map[string]string),
		now:         time.Now,
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Listings() *ListingRepository {
	return &ListingRepository{s: s}
}

func (s *Store) Images() *PetImageRepository {
	return &PetImageRepository{s: s}
}

func (s *Store) Events() *ListingEventRepository {
	return &ListingEventRepository{s: s}
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.userByName[user.Username]; ok {
		return &repository.DuplicateKeyError{Fields: map[string]string{"username": user.Username}}
	}
	if _, ok := r.s.userByToken[user.AccessToken]; ok {
		return &repository.DuplicateKeyError{Fields: map[string]string{"access_token": ""}}
	}
	if _, ok := r.s.users[user.ID]; ok {
		return &repository.DuplicateKeyError{Fields: map[string]string{"id": user.ID}}
	}

	now := r.s.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	r.s.userByName[user.Username] = user.ID
	r.s.userByToken[user.AccessToken] = user.ID
	return nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.userByIndex(r.s.userByName, username), nil
}

func (r *UserRepository) GetByAccessToken(_ context.Context, token string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.userByIndex(r.s.userByToken, token), nil
}

func (s *Store) userByIndex(index map[string]string, key string) *model.User {
	id, ok := index[key]
	if !ok {
		return nil
	}
	user := s.users[id]
	return &user
}

type ListingRepository struct {
	s *Store
}

func (r *ListingRepository) Create(_ context.Context, listing *model.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.listings[listing.ID]; ok {
		return &repository.DuplicateKeyError{Fields: map[string]string{"id": listing.ID}}
	}
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = r.s.now()
	}
	r.s.listings[listing.ID] = cloneListing(*listing)
	return nil
}

func (r *ListingRepository) GetByID(_ context.Context, id string) (*model.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	listing, ok := r.s.listings[id]
	if !ok {
		return nil, nil
	}
	out := cloneListing(listing)
	return &out, nil
}

func (r *ListingRepository) List(_ context.Context, query model.ListingQuery) ([]model.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.Listing, 0, len(r.s.listings))
	for _, listing := range r.s.listings {
		if matches(listing, query) {
			out = append(out, cloneListing(listing))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func matches(listing model.Listing, query model.ListingQuery) bool {
	switch {
	case query.Status != "":
		return listing.Status == query.Status
	case query.Species != "":
		return listing.Species == query.Species
	case query.SpeciesContains != "":
		return strings.Contains(strings.ToLower(listing.Species), strings.ToLower(query.SpeciesContains))
	default:
		return true
	}
}

func (r *ListingRepository) Delete(_ context.Context, id string) (*model.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	listing, ok := r.s.listings[id]
	if !ok {
		return nil, nil
	}
	delete(r.s.listings, id)
	return &listing, nil
}

func (r *ListingRepository) DeleteAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.listings = make(map[string]model.Listing)
	return nil
}

// Count reports the number of stored listings.
func (r *ListingRepository) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.listings)
}

func cloneListing(l model.Listing) model.Listing {
	if l.UserID != nil {
		id := *l.UserID
		l.UserID = &id
	}
	return l
}

type PetImageRepository struct {
	s *Store
}

func (r *PetImageRepository) Create(_ context.Context, image *model.PetImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.imageByKey[image.ObjectKey]; ok {
		return &repository.DuplicateKeyError{Fields: map[string]string{"object_key": image.ObjectKey}}
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = r.s.now()
	}
	r.s.images[image.ID] = *image
	r.s.imageByKey[image.ObjectKey] = image.ID
	return nil
}

func (r *PetImageRepository) GetByID(_ context.Context, id string) (*model.PetImage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	image, ok := r.s.images[id]
	if !ok {
		return nil, nil
	}
	return &image, nil
}

type ListingEventRepository struct {
	s *Store
}

func (r *ListingEventRepository) Create(_ context.Context, event *model.ListingEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextEventID++
	event.ID = r.s.nextEventID
	r.s.events = append(r.s.events, *event)
	return nil
}
