// Package model holds the contact entity and the request payloads the
// handlers bind and validate.
package model

import (
	"time"

	"github.com/deppfellow/contacts-api/internal/validation"
)

// Contact is the sole domain entity.
//
// ID is the 24-character hex identifier assigned by the store layer and is
// serialized as `_id`, the document store's native key.
type Contact struct {
	ID        string    `json:"_id" bson:"-"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Favorite  bool      `json:"favorite" bson:"favorite"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CreateContact carries the fields of a new contact into the repository.
type CreateContact struct {
	Name     string
	Email    string
	Phone    string
	Favorite bool
}

// ContactUpdate is a partial update: nil fields are left untouched.
type ContactUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Favorite *bool
}

// IsEmpty reports whether the update changes nothing.
func (u ContactUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Favorite == nil
}

// ---------------------------------------------------------------------------
// Request payloads
// ---------------------------------------------------------------------------

// ListContactsRequest has no inputs; it exists so List goes through the same
// handler pipeline as the other operations.
type ListContactsRequest struct{}

func (r *ListContactsRequest) Validate() error {
	return nil
}

// ContactIDRequest is the payload of get-by-id and delete.
type ContactIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *ContactIDRequest) Validate() error {
	id, err := validation.NormalizeObjectID(r.ID)
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// CreateContactRequest is the body of POST /contacts.
type CreateContactRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Favorite *bool  `json:"favorite"`
}

func (r *CreateContactRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// ToCreateContact converts the request into repository input.
func (r *CreateContactRequest) ToCreateContact() CreateContact {
	favorite := false
	if r.Favorite != nil {
		favorite = *r.Favorite
	}
	return CreateContact{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Favorite: favorite,
	}
}

// UpdateContactRequest is the body of PUT/PATCH /contacts/:id. Every field is
// optional, but at least one must be present.
type UpdateContactRequest struct {
	ID       string  `param:"id" json:"-"`
	Name     *string `json:"name" validate:"omitempty,min=2,max=64"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Favorite *bool   `json:"favorite"`
}

func (r *UpdateContactRequest) Validate() error {
	id, err := validation.NormalizeObjectID(r.ID)
	if err != nil {
		return err
	}
	r.ID = id
	if r.ToContactUpdate().IsEmpty() {
		return validation.ErrEmptyBody
	}
	return validation.Validator().Struct(r)
}

// ToContactUpdate converts the request into a partial repository update.
func (r *UpdateContactRequest) ToContactUpdate() ContactUpdate {
	return ContactUpdate{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Favorite: r.Favorite,
	}
}

// UpdateFavoriteRequest is the body of PATCH /contacts/:id/favorite.
type UpdateFavoriteRequest struct {
	ID       string `param:"id" json:"-"`
	Favorite *bool  `json:"favorite" validate:"required"`
}

func (r *UpdateFavoriteRequest) Validate() error {
	id, err := validation.NormalizeObjectID(r.ID)
	if err != nil {
		return err
	}
	r.ID = id
	return validation.Validator().Struct(r)
}

// DeleteContactResponse is returned by DELETE /contacts/:id.
type DeleteContactResponse struct {
	Message string   `json:"message"`
	Contact *Contact `json:"contact"`
}
