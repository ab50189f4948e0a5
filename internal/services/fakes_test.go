package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the same schema and the
// same error translation as the production Postgres connection, so unique
// indexes and conditional inserts behave for real.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Follow{}, &models.Like{}))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakePostRepo is an in-memory stand-in for the MongoDB post store.
type fakePostRepo struct {
	mu       sync.Mutex
	posts    map[string]models.Post
	incCalls int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]models.Post)}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	f.posts[post.ID.Hex()] = *post
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return &post, nil
}

// sorted returns all posts in feed order, newest first with id ascending as
// the tie-break.
func (f *fakePostRepo) sorted() []models.Post {
	posts := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID.Hex() < posts[j].ID.Hex()
	})
	return posts
}

func window(posts []models.Post, skip, limit int64) []models.Post {
	if skip >= int64(len(posts)) {
		return []models.Post{}
	}
	end := skip + limit
	if end > int64(len(posts)) {
		end = int64(len(posts))
	}
	return posts[skip:end]
}

func (f *fakePostRepo) GetPostsPage(_ context.Context, skip, limit int64) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return window(f.sorted(), skip, limit), nil
}

func (f *fakePostRepo) GetPostsByAuthor(_ context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var byAuthor []models.Post
	for _, p := range f.sorted() {
		if p.AuthorID == authorID {
			byAuthor = append(byAuthor, p)
		}
	}
	return window(byAuthor, skip, limit), nil
}

func (f *fakePostRepo) CountPosts(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.posts)), nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) IncrementLikesCount(_ context.Context, postID string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	post.LikesCount += int64(delta)
	f.posts[postID] = post
	f.incCalls++
	return nil
}

// memPageCache is an in-memory stand-in for the Redis page cache. TTLs are
// honored lazily on read.
type memPageCache struct {
	mu      sync.Mutex
	entries map[string]memPageEntry
	hits    int
}

type memPageEntry struct {
	page      models.PostPage
	expiresAt time.Time
}

func newMemPageCache() *memPageCache {
	return &memPageCache{entries: make(map[string]memPageEntry)}
}

func (m *memPageCache) GetPage(_ context.Context, key string) (*models.PostPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	m.hits++
	page := entry.page
	return &page, nil
}

func (m *memPageCache) SetPage(_ context.Context, key string, page *models.PostPage, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memPageEntry{page: *page, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *memPageCache) InvalidateAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memPageEntry)
	return nil
}
