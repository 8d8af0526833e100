package classroom

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Articles is the article repository. Articles carry no soft-delete
// semantics; Remove drops the row.
type Articles interface {
	repository.Repository[*Article]

	FindByID(ctx context.Context, id uuid.UUID) (*Article, error)
	ListAll(ctx context.Context) ([]*Article, error)
	Publish(ctx context.Context, record *Article) (*Article, error)
	Amend(ctx context.Context, record *Article) (*Article, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type articles struct {
	repository.Repository[*Article]
	db *bun.DB
}

var _ Articles = (*articles)(nil)

func NewArticlesRepository(db *bun.DB) Articles {
	repo := repository.NewRepository[*Article](db, repository.ModelHandlers[*Article]{
		NewRecord: func() *Article { return &Article{} },
		GetID: func(a *Article) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Article, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
	})

	return &articles{
		Repository: repo,
		db:         db,
	}
}

func (a *articles) FindByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	record := &Article{}
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

func (a *articles) ListAll(ctx context.Context) ([]*Article, error) {
	var records []*Article
	err := a.db.NewSelect().
		Model(&records).
		Order("date DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *articles) Publish(ctx context.Context, record *Article) (*Article, error) {
	if record.Date == nil {
		now := Now()
		record.Date = &now
	}
	return a.Repository.Create(ctx, record)
}

func (a *articles) Amend(ctx context.Context, record *Article) (*Article, error) {
	return a.Repository.Update(ctx, record)
}

func (a *articles) Remove(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Article)(nil)).
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
