package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"blogapi/internal/apperror"
	"blogapi/internal/models"
	"blogapi/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	postRowColumns       = []string{"id", "title", "content", "published", "author_id", "created_at", "updated_at"}
	postAuthorRowColumns = append(append([]string{}, postRowColumns...), "author.id", "author.username")
)

func TestPostRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("returns id and timestamps", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts (title, content, published, author_id)`)).
			WithArgs("Hello", "Hello world body", true, int64(1)).
			WillReturnRows(sqlmock.NewRows(postRowColumns).
				AddRow(int64(10), "Hello", "Hello world body", true, int64(1), now, now))

		post := &models.Post{Title: "Hello", Content: "Hello world body", Published: true, AuthorID: 1}
		require.NoError(t, repo.Create(ctx, post))

		assert.Equal(t, int64(10), post.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown author", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).
			WillReturnError(&pq.Error{Code: "23503"})

		err := repo.Create(ctx, &models.Post{AuthorID: 99})

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestPostRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("scans the author projection", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`JOIN users u ON u.id = p.author_id WHERE p.id = $1`)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(postAuthorRowColumns).
				AddRow(int64(3), "Title", "Some content here", false, int64(2), now, now, int64(2), "bob"))

		post, err := repo.GetByID(ctx, 3)

		require.NoError(t, err)
		require.NotNil(t, post.Author)
		assert.Equal(t, models.PostAuthor{ID: 2, Username: "bob"}, *post.Author)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing post", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = $1`)).
			WithArgs(int64(3)).
			WillReturnError(sql.ErrNoRows)

		post, err := repo.GetByID(ctx, 3)

		assert.Nil(t, post)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Equal(t, "Post not found", apperror.Message(err))
	})
}

func TestPostRepository_ListAndCountShareFilter(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	authorID := int64(4)
	f := PostFilter{
		Descriptor: query.Normalize(query.Input{Sort: "title", Order: "asc", Search: "go", Published: "true"}),
		AuthorID:   &authorID,
	}

	filter := `WHERE p.author_id = $1 AND (p.title ILIKE $2 OR u.username ILIKE $3) AND p.published = $4`

	mock.ExpectQuery(regexp.QuoteMeta(filter + ` ORDER BY p.title ASC, p.id ASC LIMIT $5 OFFSET $6`)).
		WithArgs(int64(4), "%go%", "%go%", true, 10, 0).
		WillReturnRows(sqlmock.NewRows(postAuthorRowColumns))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts p JOIN users u ON u.id = p.author_id ` + filter)).
		WithArgs(int64(4), "%go%", "%go%", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	posts, err := repo.List(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, posts)

	total, err := repo.Count(ctx, f)
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListPublishedAll(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	f := PostFilter{Descriptor: query.Normalize(query.Input{Page: "3", Size: "5"})}

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN users u ON u.id = p.author_id ORDER BY p.id DESC LIMIT $1 OFFSET $2`)).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows(postAuthorRowColumns))

	_, err := repo.List(ctx, f)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetOwned(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("locks the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND author_id = $2 FOR UPDATE`)).
			WithArgs(int64(1), int64(2)).
			WillReturnRows(sqlmock.NewRows(postRowColumns).
				AddRow(int64(1), "T", "C", false, int64(2), now, now))

		post, err := repo.GetOwned(ctx, 1, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(2), post.AuthorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("someone else's post is not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
			WithArgs(int64(1), int64(3)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetOwned(ctx, 1, 3)

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestPostRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	published := true

	mock.ExpectQuery(regexp.QuoteMeta(`published = COALESCE($3, published)`)).
		WithArgs(nil, nil, true, int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(int64(1), "T", "C", true, int64(2), now, now))

	post, err := repo.Update(ctx, 1, 2, PostPatch{Published: &published})

	require.NoError(t, err)
	assert.True(t, post.Published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1 AND author_id = $2 RETURNING`)).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(int64(1), "T", "C", true, int64(2), now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM posts`)).
		WithArgs(int64(1), int64(2)).
		WillReturnError(sql.ErrNoRows)

	post, err := repo.Delete(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ID)

	_, err = repo.Delete(ctx, 1, 2)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ByAuthor(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM posts WHERE author_id = $1 ORDER BY id DESC`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(int64(2), "B", "C", true, int64(2), now, now).
			AddRow(int64(1), "A", "C", false, int64(2), now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts WHERE author_id = $1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	posts, err := repo.GetByAuthorID(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	total, err := repo.CountByAuthorID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}
