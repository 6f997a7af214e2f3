package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/deppfellow/contacts-api/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryContactRepository implements ContactRepository over a map. Records are
// copied in and out so callers never share state with the store.
type MemoryContactRepository struct {
	mu       sync.RWMutex
	order    []string
	contacts map[string]*model.Contact
	now      func() time.Time
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

// NewMemoryContactRepository returns an empty store, optionally seeded.
func NewMemoryContactRepository(seed ...*model.Contact) *MemoryContactRepository {
	r := &MemoryContactRepository{
		contacts: make(map[string]*model.Contact, len(seed)),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, c := range seed {
		stored := *c
		if stored.ID == "" {
			stored.ID = primitive.NewObjectID().Hex()
		}
		r.order = append(r.order, stored.ID)
		r.contacts[stored.ID] = &stored
	}
	return r
}

func (r *MemoryContactRepository) List(_ context.Context) ([]*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]*model.Contact, 0, len(r.order))
	for _, id := range r.order {
		c := *r.contacts[id]
		contacts = append(contacts, &c)
	}
	return contacts, nil
}

func (r *MemoryContactRepository) GetByID(_ context.Context, id string) (*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.contacts[id]
	if !ok {
		return nil, ErrContactNotFound
	}
	c := *stored
	return &c, nil
}

func (r *MemoryContactRepository) Create(_ context.Context, input model.CreateContact) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := &model.Contact{
		ID:        primitive.NewObjectID().Hex(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Favorite:  input.Favorite,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.order = append(r.order, stored.ID)
	r.contacts[stored.ID] = stored

	c := *stored
	return &c, nil
}

func (r *MemoryContactRepository) UpdateByID(_ context.Context, id string, update model.ContactUpdate) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.contacts[id]
	if !ok {
		return nil, ErrContactNotFound
	}

	if update.Name != nil {
		stored.Name = *update.Name
	}
	if update.Email != nil {
		stored.Email = *update.Email
	}
	if update.Phone != nil {
		stored.Phone = *update.Phone
	}
	if update.Favorite != nil {
		stored.Favorite = *update.Favorite
	}
	stored.UpdatedAt = r.now()

	c := *stored
	return &c, nil
}

func (r *MemoryContactRepository) UpdateStatus(ctx context.Context, id string, favorite bool) (*model.Contact, error) {
	return r.UpdateByID(ctx, id, model.ContactUpdate{Favorite: &favorite})
}

func (r *MemoryContactRepository) Remove(_ context.Context, id string) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.contacts[id]
	if !ok {
		return nil, ErrContactNotFound
	}
	delete(r.contacts, id)
	r.order = slices.DeleteFunc(r.order, func(existing string) bool { return existing == id })

	return stored, nil
}

func (r *MemoryContactRepository) Ping(_ context.Context) error {
	return nil
}
