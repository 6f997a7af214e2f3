package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const contactColumns = `id, name, email, phone, favorite, created_at, updated_at`

type contactRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Favorite  bool      `db:"favorite"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r contactRow) toModel() *model.Contact {
	return &model.Contact{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Favorite:  r.Favorite,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// PostgresContactRepository implements ContactRepository over the contacts
// table. Ids are ObjectID hex strings generated here, so both backends expose
// the same identifier shape.
//
// Driver errors are returned wrapped; the HTTP layer maps them through
// sqlerr.HandleError.
type PostgresContactRepository struct {
	pool *pgxpool.Pool
}

var _ ContactRepository = (*PostgresContactRepository)(nil)

func NewPostgresContactRepository(pool *pgxpool.Pool) *PostgresContactRepository {
	return &PostgresContactRepository{pool: pool}
}

func (r *PostgresContactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[contactRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:contacts: %w", err)
	}

	contacts := make([]*model.Contact, 0, len(collected))
	for _, row := range collected {
		contacts = append(contacts, row.toModel())
	}
	return contacts, nil
}

func (r *PostgresContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query contact %s: %w", id, err)
	}
	return collectOne(rows)
}

func (r *PostgresContactRepository) Create(ctx context.Context, input model.CreateContact) (*model.Contact, error) {
	stmt := `
		INSERT INTO contacts (id, name, email, phone, favorite)
		VALUES (@id, @name, @email, @phone, @favorite)
		RETURNING ` + contactColumns

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":       primitive.NewObjectID().Hex(),
		"name":     input.Name,
		"email":    input.Email,
		"phone":    input.Phone,
		"favorite": input.Favorite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}
	return collectOne(rows)
}

func (r *PostgresContactRepository) UpdateByID(ctx context.Context, id string, update model.ContactUpdate) (*model.Contact, error) {
	// NULL parameters keep the current column value.
	stmt := `
		UPDATE contacts SET
			name       = COALESCE(@name, name),
			email      = COALESCE(@email, email),
			phone      = COALESCE(@phone, phone),
			favorite   = COALESCE(@favorite, favorite),
			updated_at = now()
		WHERE id = @id
		RETURNING ` + contactColumns

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":       id,
		"name":     update.Name,
		"email":    update.Email,
		"phone":    update.Phone,
		"favorite": update.Favorite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update contact %s: %w", id, err)
	}
	return collectOne(rows)
}

func (r *PostgresContactRepository) UpdateStatus(ctx context.Context, id string, favorite bool) (*model.Contact, error) {
	stmt := `
		UPDATE contacts SET favorite = @favorite, updated_at = now()
		WHERE id = @id
		RETURNING ` + contactColumns

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{"id": id, "favorite": favorite})
	if err != nil {
		return nil, fmt.Errorf("failed to update favorite of contact %s: %w", id, err)
	}
	return collectOne(rows)
}

func (r *PostgresContactRepository) Remove(ctx context.Context, id string) (*model.Contact, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM contacts WHERE id = @id RETURNING `+contactColumns, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete contact %s: %w", id, err)
	}
	return collectOne(rows)
}

func (r *PostgresContactRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func collectOne(rows pgx.Rows) (*model.Contact, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[contactRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to collect row from table:contacts: %w", err)
	}
	return row.toModel(), nil
}
