// Package repository handles all interactions with the contact store.
//
// ContactRepository is the persistence contract the service layer depends
// on. It has three implementations: MongoDB (the default document store),
// PostgreSQL and an in-memory map used by tests and local runs.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/contacts-api/internal/model"
)

// ErrContactNotFound is returned when no contact has the requested id.
var ErrContactNotFound = errors.New("repository: contact not found")

// ContactRepository is the persistence contract for contacts.
//
// Every method returns the affected record, or ErrContactNotFound when the id
// does not exist. Ids are 24-character hex strings; callers validate them
// before reaching the repository.
type ContactRepository interface {
	List(ctx context.Context) ([]*model.Contact, error)
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	Create(ctx context.Context, input model.CreateContact) (*model.Contact, error)

	// UpdateByID merges the non-nil fields of update into the record.
	UpdateByID(ctx context.Context, id string, update model.ContactUpdate) (*model.Contact, error)
	UpdateStatus(ctx context.Context, id string, favorite bool) (*model.Contact, error)
	Remove(ctx context.Context, id string) (*model.Contact, error)

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}
