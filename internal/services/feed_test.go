package services

import (
	"context"
	"testing"
	"time"

	"github.com/adrisdev/fotogram/backend/internal/apperrors"
	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeedService(t *testing.T) (*FeedService, *fakePostRepo, *memPageCache, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	posts := newFakePostRepo()
	pageCache := newMemPageCache()
	svc := NewFeedService(posts, repositories.NewPostgresUserRepository(db), pageCache, time.Minute, newTestLogger())
	return svc, posts, pageCache, db
}

func seedPosts(t *testing.T, posts *fakePostRepo, n int) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		post := &models.Post{
			AuthorID:  1,
			Title:     "post",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, posts.CreatePost(context.Background(), post))
	}
}

func TestListPageEnvelope(t *testing.T) {
	svc, posts, _, _ := newFeedService(t)
	ctx := context.Background()
	seedPosts(t, posts, 25)

	first, err := svc.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, int64(25), first.TotalCount)
	assert.Equal(t, 3, first.TotalPages)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)
	assert.Nil(t, first.PrevPage)
	require.NotNil(t, first.NextPage)
	assert.Equal(t, 2, *first.NextPage)

	last, err := svc.ListPage(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)
	assert.Nil(t, last.NextPage)
}

func TestListPageBeyondEnd(t *testing.T) {
	svc, posts, _, _ := newFeedService(t)
	ctx := context.Background()
	seedPosts(t, posts, 5)

	page, err := svc.ListPage(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.Equal(t, int64(5), page.TotalCount)
}

func TestListPageInvalidLimit(t *testing.T) {
	svc, _, _, _ := newFeedService(t)

	_, err := svc.ListPage(context.Background(), 1, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.ListPage(context.Background(), 1, -3)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

// Pagination completeness: concatenating every page yields each post exactly
// once, in strictly descending creation order.
func TestListPageCompleteness(t *testing.T) {
	svc, posts, _, _ := newFeedService(t)
	ctx := context.Background()
	seedPosts(t, posts, 25)

	seen := make(map[string]bool)
	var previous *models.Post
	for page := 1; page <= 3; page++ {
		envelope, err := svc.ListPage(ctx, page, 10)
		require.NoError(t, err)
		for i := range envelope.Items {
			post := envelope.Items[i]
			id := post.ID.Hex()
			assert.False(t, seen[id], "post %s returned twice", id)
			seen[id] = true
			if previous != nil {
				notAfter := post.CreatedAt.Before(previous.CreatedAt) ||
					(post.CreatedAt.Equal(previous.CreatedAt) && id > previous.ID.Hex())
				assert.True(t, notAfter, "feed order violated at %s", id)
			}
			previous = &post
		}
	}
	assert.Len(t, seen, 25)
}

func TestListPageServedFromCache(t *testing.T) {
	svc, posts, pageCache, _ := newFeedService(t)
	ctx := context.Background()
	seedPosts(t, posts, 3)

	first, err := svc.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, pageCache.hits)

	// a direct store write without invalidation is invisible until the TTL
	require.NoError(t, posts.CreatePost(ctx, &models.Post{AuthorID: 1, Title: "late", CreatedAt: time.Now()}))

	second, err := svc.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, pageCache.hits)
	assert.Equal(t, first.TotalCount, second.TotalCount)
}

func TestCreatePostInvalidatesFeed(t *testing.T) {
	svc, posts, _, _ := newFeedService(t)
	ctx := context.Background()
	seedPosts(t, posts, 3)

	before, err := svc.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), before.TotalCount)

	_, err = svc.CreatePost(ctx, 1, models.CreatePostRequest{Title: "fresh"})
	require.NoError(t, err)

	after, err := svc.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), after.TotalCount)
	assert.Equal(t, "fresh", after.Items[0].Title)
}

func TestDeletePostInvalidatesFeed(t *testing.T) {
	svc, posts, _, _ := newFeedService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, models.CreatePostRequest{Title: "doomed"})
	require.NoError(t, err)
	seedPosts(t, posts, 2)

	before, err := svc.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), before.TotalCount)

	require.NoError(t, svc.DeletePost(ctx, post.ID.Hex(), 1))

	after, err := svc.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), after.TotalCount)
}

func TestDeletePostOwnershipEnforced(t *testing.T) {
	svc, _, _, _ := newFeedService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, models.CreatePostRequest{Title: "mine"})
	require.NoError(t, err)

	err = svc.DeletePost(ctx, post.ID.Hex(), 2)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))

	err = svc.DeletePost(ctx, "6543210987abcdef01234567", 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestListByAuthor(t *testing.T) {
	svc, posts, _, db := newFeedService(t)
	ctx := context.Background()
	u1 := seedUser(t, db, "u1")

	require.NoError(t, posts.CreatePost(ctx, &models.Post{AuthorID: u1, Title: "a", CreatedAt: time.Now()}))
	require.NoError(t, posts.CreatePost(ctx, &models.Post{AuthorID: 999, Title: "b", CreatedAt: time.Now()}))

	mine, err := svc.ListByAuthor(ctx, u1, 1, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].Title)

	_, err = svc.ListByAuthor(ctx, 999, 1, 10)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
