package classroom_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	classroom "github.com/goliatone/go-classroom"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestRepo(t *testing.T) classroom.RepositoryManager {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	assert.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	assert.NoError(t, classroom.Migrate(context.Background(), sqldb))

	db := bun.NewDB(sqldb, sqlitedialect.New())
	repo := classroom.NewRepositoryManager(db)
	assert.NoError(t, repo.Validate())

	return repo
}

func newStoredUser(t *testing.T, repo classroom.RepositoryManager, email string, role classroom.UserRole) *classroom.User {
	t.Helper()

	hash, err := classroom.HashPassword("Sup3rSecret", 4)
	assert.NoError(t, err)

	created, err := repo.Users().Register(context.Background(), &classroom.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	assert.NoError(t, err)
	return created
}

func TestUsersRepositoryEmailLookupIsCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := newStoredUser(t, repo, "Ada@Example.COM", classroom.RoleStudent)
	assert.Equal(t, "ada@example.com", created.Email)

	found, err := repo.Users().GetByEmail(ctx, "ADA@example.com")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	taken, err := repo.Users().EmailTaken(ctx, "aDa@ExAmPlE.com")
	assert.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.Users().EmailTaken(ctx, "other@example.com")
	assert.NoError(t, err)
	assert.False(t, taken)
}

func TestUsersRepositoryDeactivateKeepsEmailReserved(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := newStoredUser(t, repo, "ada@example.com", classroom.RoleStudent)

	assert.NoError(t, repo.Users().Deactivate(ctx, created.ID))

	// The account no longer resolves.
	_, err := repo.Users().FindActiveByID(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))

	_, err = repo.Users().GetByEmail(ctx, "ada@example.com")
	assert.True(t, errors.IsNotFound(err))

	// But the address stays reserved for registration checks.
	taken, err := repo.Users().EmailTaken(ctx, "ada@example.com")
	assert.NoError(t, err)
	assert.True(t, taken)

	// Deactivating twice reports the miss; the first delete consumed it.
	err = repo.Users().Deactivate(ctx, created.ID)
	assert.Error(t, err)
}

func TestUsersRepositoryListActiveSkipsDeactivated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	live := newStoredUser(t, repo, "live@example.com", classroom.RoleStudent)
	gone := newStoredUser(t, repo, "gone@example.com", classroom.RoleStudent)

	assert.NoError(t, repo.Users().Deactivate(ctx, gone.ID))

	records, err := repo.Users().ListActive(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, live.ID, records[0].ID)
}

func TestLessonsRepositoryRetireHidesLesson(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Lessons().Add(ctx, &classroom.Lesson{
		ID:          uuid.New(),
		Title:       "Intro to Analytical Engines",
		Description: "Week one overview",
	})
	assert.NoError(t, err)
	assert.NotNil(t, created.CreatedAt)

	records, err := repo.Lessons().ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)

	assert.NoError(t, repo.Lessons().Retire(ctx, created.ID))

	records, err = repo.Lessons().ListAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, records)

	_, err = repo.Lessons().FindByID(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestArticlesRepositoryHardDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Articles().Publish(ctx, &classroom.Article{
		ID:     uuid.New(),
		Title:  "On Punched Cards",
		Body:   "A thorough treatment.",
		Author: "Ada",
		Tags:   []string{"history", "computing"},
	})
	assert.NoError(t, err)
	assert.NotNil(t, created.Date)

	found, err := repo.Articles().FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "On Punched Cards", found.Title)

	assert.NoError(t, repo.Articles().Remove(ctx, created.ID))

	_, err = repo.Articles().FindByID(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))

	// A second delete reports the miss.
	err = repo.Articles().Remove(ctx, created.ID)
	assert.Error(t, err)
}

func TestLessonsRepositoryAmendStampsUpdatedAt(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Lessons().Add(ctx, &classroom.Lesson{
		ID:          uuid.New(),
		Title:       "Draft",
		Description: "v1",
	})
	assert.NoError(t, err)

	created.Description = "v2"
	updated, err := repo.Lessons().Amend(ctx, created)
	assert.NoError(t, err)
	assert.Equal(t, "v2", updated.Description)
	assert.NotNil(t, updated.UpdatedAt)
}
