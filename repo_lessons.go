package classroom

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Lessons is the lesson repository. Lessons share the account model's
// soft-delete semantics: Retire flips deleted_at and every read filters
// retired rows out.
type Lessons interface {
	repository.Repository[*Lesson]

	FindByID(ctx context.Context, id uuid.UUID) (*Lesson, error)
	ListAll(ctx context.Context) ([]*Lesson, error)
	Add(ctx context.Context, record *Lesson) (*Lesson, error)
	Amend(ctx context.Context, record *Lesson) (*Lesson, error)
	Retire(ctx context.Context, id uuid.UUID) error
}

type lessons struct {
	repository.Repository[*Lesson]
	db *bun.DB
}

var _ Lessons = (*lessons)(nil)

func NewLessonsRepository(db *bun.DB) Lessons {
	repo := repository.NewRepository[*Lesson](db, repository.ModelHandlers[*Lesson]{
		NewRecord: func() *Lesson { return &Lesson{} },
		GetID: func(l *Lesson) uuid.UUID {
			if l == nil {
				return uuid.Nil
			}
			return l.ID
		},
		SetID: func(l *Lesson, id uuid.UUID) {
			if l != nil {
				l.ID = id
			}
		},
	})

	return &lessons{
		Repository: repo,
		db:         db,
	}
}

func (a *lessons) FindByID(ctx context.Context, id uuid.UUID) (*Lesson, error) {
	record := &Lesson{}
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

func (a *lessons) ListAll(ctx context.Context) ([]*Lesson, error) {
	var records []*Lesson
	err := a.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *lessons) Add(ctx context.Context, record *Lesson) (*Lesson, error) {
	if record.CreatedAt == nil {
		now := Now()
		record.CreatedAt = &now
		record.UpdatedAt = &now
	}
	return a.Repository.Create(ctx, record)
}

// Amend stamps updated_at explicitly; there are no store-side hooks.
func (a *lessons) Amend(ctx context.Context, record *Lesson) (*Lesson, error) {
	now := Now()
	record.UpdatedAt = &now
	return a.Repository.Update(ctx, record)
}

func (a *lessons) Retire(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Lesson)(nil)).
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
