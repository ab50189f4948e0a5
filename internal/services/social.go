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

// SocialGraphService maintains the directed follow graph. A relation is one
// Follow row; repeating a follow or unfollow leaves the graph unchanged.
type SocialGraphService struct {
	follows repositories.FollowRepository
	users   repositories.UserRepository
	log     *logrus.Logger
}

// NewSocialGraphService creates a new SocialGraphService
func NewSocialGraphService(follows repositories.FollowRepository, users repositories.UserRepository, log *logrus.Logger) *SocialGraphService {
	return &SocialGraphService{follows: follows, users: users, log: log}
}

func (s *SocialGraphService) ensureUser(ctx context.Context, id uint) error {
	if _, err := s.users.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		return apperrors.Internal("failed to look up user", err)
	}
	return nil
}

// Follow adds the follower -> followee edge. Following yourself is rejected;
// following someone you already follow succeeds without a state change.
func (s *SocialGraphService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return apperrors.Validation("cannot follow yourself")
	}
	if err := s.ensureUser(ctx, followerID); err != nil {
		return err
	}
	if err := s.ensureUser(ctx, followeeID); err != nil {
		return err
	}

	created, err := s.follows.CreateFollow(ctx, &models.Follow{FollowerID: followerID, FolloweeID: followeeID})
	if err != nil {
		return apperrors.Internal("failed to create follow", err)
	}
	if created {
		s.log.WithFields(logrus.Fields{"follower_id": followerID, "followee_id": followeeID}).Info("follow created")
	}
	return nil
}

// Unfollow removes the follower -> followee edge, silently succeeding when
// the relation does not exist.
func (s *SocialGraphService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if err := s.ensureUser(ctx, followerID); err != nil {
		return err
	}
	if err := s.ensureUser(ctx, followeeID); err != nil {
		return err
	}

	removed, err := s.follows.DeleteFollow(ctx, followerID, followeeID)
	if err != nil {
		return apperrors.Internal("failed to delete follow", err)
	}
	if removed {
		s.log.WithFields(logrus.Fields{"follower_id": followerID, "followee_id": followeeID}).Info("follow removed")
	}
	return nil
}

// Followers lists the users following userID
func (s *SocialGraphService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list followers", err)
	}
	return users, nil
}

// Following lists the users userID follows
func (s *SocialGraphService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list following", err)
	}
	return users, nil
}

// FollowingCount counts the users userID follows
func (s *SocialGraphService) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return 0, err
	}
	count, err := s.follows.GetFollowingCount(ctx, userID)
	if err != nil {
		return 0, apperrors.Internal("failed to count following", err)
	}
	return count, nil
}
