package classroom

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the account repository. It layers account-specific lookups on
// the generic repository: email lookups are case-normalized, and the
// soft-delete filter applies everywhere except EmailTaken, which must see
// deleted rows because the unique index does.
type Users interface {
	repository.Repository[*User]

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	ListActive(ctx context.Context) ([]*User, error)
	Register(ctx context.Context, record *User) (*User, error)
	UpdateProfile(ctx context.Context, record *User) (*User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
	_ AccountStore                 = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("lower(?TableAlias.email) = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) || err == sql.ErrNoRows {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": NormalizeEmail(email)})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) FindActiveByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) || err == sql.ErrNoRows {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

// EmailTaken reports whether any row, live or soft deleted, holds the
// email. The unique index is declared on the column itself, so a deleted
// account still reserves its address.
func (a *users) EmailTaken(ctx context.Context, email string) (bool, error) {
	count, err := a.db.NewSelect().
		Model((*User)(nil)).
		WhereAllWithDeleted().
		Where("lower(?TableAlias.email) = ?", NormalizeEmail(email)).
		Count(ctx)

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (a *users) ListActive(ctx context.Context) ([]*User, error) {
	var records []*User
	err := a.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *users) Register(ctx context.Context, record *User) (*User, error) {
	prepareUserDefaults(record)
	return a.Repository.Create(ctx, record)
}

func (a *users) UpdateProfile(ctx context.Context, record *User) (*User, error) {
	now := Now()
	record.UpdatedAt = &now
	return a.Repository.Update(ctx, record)
}

// Deactivate soft deletes the account; bun fills deleted_at through the
// model's soft_delete tag.
func (a *users) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id.String()})
	}

	return nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	record.Email = NormalizeEmail(record.Email)

	if record.CreatedAt == nil {
		now := Now()
		record.CreatedAt = &now
		record.UpdatedAt = &now
	}
}
