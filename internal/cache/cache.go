// Package cache holds the feed page cache: envelopes keyed by (page, limit)
// with a bounded TTL, invalidated wholesale when the feed composition changes.
package cache

import (
	"context"
	"time"

	"github.com/adrisdev/fotogram/backend/internal/models"
)

// PageCache stores computed feed envelopes. GetPage returns (nil, nil) on a
// miss; expiry within the TTL window is the backend's concern.
type PageCache interface {
	GetPage(ctx context.Context, key string) (*models.PostPage, error)
	SetPage(ctx context.Context, key string, page *models.PostPage, ttl time.Duration) error
	InvalidateAll(ctx context.Context) error
}
