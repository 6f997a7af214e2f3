package service

import (
	"context"
	"errors"

	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/repository"
	"github.com/rs/zerolog"
)

// ErrContactNotFound is the 404 returned for unknown contact ids.
var ErrContactNotFound = errs.NewNotFoundError("Contact not found", false, nil)

// Enqueuer schedules the background work that follows a create.
type Enqueuer interface {
	EnqueueContactCreated(ctx context.Context, contact *model.Contact) error
}

// ContactService implements the contact operations on top of a
// ContactRepository.
type ContactService struct {
	repo repository.ContactRepository
	jobs Enqueuer
}

// NewContactService creates a ContactService. jobs may be nil, in which case
// no background work is scheduled.
func NewContactService(repo repository.ContactRepository, jobs Enqueuer) *ContactService {
	return &ContactService{
		repo: repo,
		jobs: jobs,
	}
}

// List returns every contact in insertion order.
func (s *ContactService) List(ctx context.Context) ([]*model.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	return contacts, nil
}

func (s *ContactService) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	contact, err := s.repo.GetByID(ctx, id)
	return contact, mapNotFound(err)
}

// Create stores a new contact and then schedules the created notification.
// A failure to schedule is logged and does not fail the request.
func (s *ContactService) Create(ctx context.Context, input model.CreateContact) (*model.Contact, error) {
	contact, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	if s.jobs != nil {
		if err := s.jobs.EnqueueContactCreated(ctx, contact); err != nil {
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Str("contact_id", contact.ID).
				Msg("failed to enqueue contact created task")
		}
	}

	return contact, nil
}

// UpdateByID merges update into the stored contact.
func (s *ContactService) UpdateByID(ctx context.Context, id string, update model.ContactUpdate) (*model.Contact, error) {
	contact, err := s.repo.UpdateByID(ctx, id, update)
	return contact, mapNotFound(err)
}

func (s *ContactService) UpdateFavorite(ctx context.Context, id string, favorite bool) (*model.Contact, error) {
	contact, err := s.repo.UpdateStatus(ctx, id, favorite)
	return contact, mapNotFound(err)
}

// Remove deletes a contact and returns the deleted record.
func (s *ContactService) Remove(ctx context.Context, id string) (*model.Contact, error) {
	contact, err := s.repo.Remove(ctx, id)
	return contact, mapNotFound(err)
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrContactNotFound) {
		return ErrContactNotFound
	}
	return err
}

// Ping checks the contact store is reachable.
func (s *ContactService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
