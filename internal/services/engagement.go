package services

import (
	"context"
	"errors"

	"github.com/adrisdev/fotogram/backend/internal/apperrors"
	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EngagementService maintains the like relation between users and posts.
// Likes are rows with a composite unique index; the post's likes counter is
// only adjusted when a row actually changed, so repeated likes or unlikes
// never drift the count.
type EngagementService struct {
	likes repositories.LikeRepository
	posts repositories.PostRepository
	users repositories.UserRepository
	log   *logrus.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(likes repositories.LikeRepository, posts repositories.PostRepository, users repositories.UserRepository, log *logrus.Logger) *EngagementService {
	return &EngagementService{likes: likes, posts: posts, users: users, log: log}
}

func (s *EngagementService) ensureExists(ctx context.Context, postID string, userID uint) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NotFound("post not found")
		}
		return apperrors.Internal("failed to look up post", err)
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		return apperrors.Internal("failed to look up user", err)
	}
	return nil
}

// Like records that userID likes postID, doing nothing if already liked.
func (s *EngagementService) Like(ctx context.Context, postID string, userID uint) error {
	if err := s.ensureExists(ctx, postID, userID); err != nil {
		return err
	}

	created, err := s.likes.CreateLike(ctx, &models.Like{PostID: postID, UserID: userID})
	if err != nil {
		return apperrors.Internal("failed to create like", err)
	}
	if !created {
		return nil
	}

	if err := s.posts.IncrementLikesCount(ctx, postID, 1); err != nil {
		return apperrors.Internal("failed to update likes count", err)
	}
	s.log.WithFields(logrus.Fields{"post_id": postID, "user_id": userID}).Info("post liked")
	return nil
}

// Unlike removes userID's like on postID, doing nothing if absent.
func (s *EngagementService) Unlike(ctx context.Context, postID string, userID uint) error {
	if err := s.ensureExists(ctx, postID, userID); err != nil {
		return err
	}

	removed, err := s.likes.DeleteLike(ctx, postID, userID)
	if err != nil {
		return apperrors.Internal("failed to delete like", err)
	}
	if !removed {
		return nil
	}

	if err := s.posts.IncrementLikesCount(ctx, postID, -1); err != nil {
		return apperrors.Internal("failed to update likes count", err)
	}
	s.log.WithFields(logrus.Fields{"post_id": postID, "user_id": userID}).Info("post unliked")
	return nil
}

// HasLiked reports whether userID currently likes postID
func (s *EngagementService) HasLiked(ctx context.Context, postID string, userID uint) (bool, error) {
	if err := s.ensureExists(ctx, postID, userID); err != nil {
		return false, err
	}
	liked, err := s.likes.HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		return false, apperrors.Internal("failed to look up like", err)
	}
	return liked, nil
}
