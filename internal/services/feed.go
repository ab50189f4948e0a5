package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/adrisdev/fotogram/backend/internal/apperrors"
	"github.com/adrisdev/fotogram/backend/internal/cache"
	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// FeedService serves the paginated global post feed with a TTL page cache,
// and owns the post writes (create, delete) because those are exactly the
// operations that change feed composition and must invalidate it. Likes do
// not touch ordering or membership and never invalidate.
type FeedService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
	cache cache.PageCache
	ttl   time.Duration
	log   *logrus.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(posts repositories.PostRepository, users repositories.UserRepository, pageCache cache.PageCache, ttl time.Duration, log *logrus.Logger) *FeedService {
	return &FeedService{posts: posts, users: users, cache: pageCache, ttl: ttl, log: log}
}

// DefaultPageSize is the page size used when the caller supplies none.
func DefaultPageSize() int { return defaultPageSize }

// ListPage returns one page of the feed, newest posts first. A page past the
// end returns an empty item list rather than an error. Cache failures fall
// back to recomputation; the store stays authoritative.
func (s *FeedService) ListPage(ctx context.Context, page, limit int) (*models.PostPage, error) {
	if limit <= 0 {
		return nil, apperrors.Validation("limit must be a positive integer")
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}

	key := fmt.Sprintf("p%d:l%d", page, limit)
	cached, err := s.cache.GetPage(ctx, key)
	if err != nil {
		s.log.WithError(err).Warn("feed cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	total, err := s.posts.CountPosts(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to count posts", err)
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	items := []models.Post{}
	if page <= totalPages {
		skip := int64(page-1) * int64(limit)
		items, err = s.posts.GetPostsPage(ctx, skip, int64(limit))
		if err != nil {
			return nil, apperrors.Internal("failed to list posts", err)
		}
	}

	envelope := &models.PostPage{
		Items:       items,
		TotalCount:  total,
		PageSize:    limit,
		CurrentPage: page,
		TotalPages:  totalPages,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
	}
	if envelope.HasPrev {
		prev := page - 1
		envelope.PrevPage = &prev
	}
	if envelope.HasNext {
		next := page + 1
		envelope.NextPage = &next
	}

	if err := s.cache.SetPage(ctx, key, envelope, s.ttl); err != nil {
		s.log.WithError(err).Warn("feed cache write failed")
	}
	return envelope, nil
}

// CreatePost stores a new post for the author and invalidates every cached
// feed page.
func (s *FeedService) CreatePost(ctx context.Context, authorID uint, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Photos:   req.Photos,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, apperrors.Internal("failed to create post", err)
	}
	s.invalidate(ctx)
	s.log.WithFields(logrus.Fields{"post_id": post.ID.Hex(), "author_id": authorID}).Info("post created")
	return post, nil
}

// DeletePost removes one of the caller's own posts and invalidates every
// cached feed page.
func (s *FeedService) DeletePost(ctx context.Context, id string, callerID uint) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NotFound("post not found")
		}
		return apperrors.Internal("failed to look up post", err)
	}
	if post.AuthorID != callerID {
		return apperrors.Auth("cannot delete another user's post")
	}

	if err := s.posts.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NotFound("post not found")
		}
		return apperrors.Internal("failed to delete post", err)
	}
	s.invalidate(ctx)
	s.log.WithFields(logrus.Fields{"post_id": id, "caller_id": callerID}).Info("post deleted")
	return nil
}

// GetPost retrieves a single post by id
func (s *FeedService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.NotFound("post not found")
		}
		return nil, apperrors.Internal("failed to look up post", err)
	}
	return post, nil
}

// ListByAuthor lists an existing user's posts, newest first
func (s *FeedService) ListByAuthor(ctx context.Context, authorID uint, page, limit int) ([]models.Post, error) {
	if limit <= 0 {
		return nil, apperrors.Validation("limit must be a positive integer")
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	if _, err := s.users.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to look up user", err)
	}

	skip := int64(page-1) * int64(limit)
	posts, err := s.posts.GetPostsByAuthor(ctx, authorID, skip, int64(limit))
	if err != nil {
		return nil, apperrors.Internal("failed to list posts", err)
	}
	return posts, nil
}

func (s *FeedService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		// the TTL still bounds staleness if eager invalidation fails
		s.log.WithError(err).Warn("feed cache invalidation failed")
	}
}
