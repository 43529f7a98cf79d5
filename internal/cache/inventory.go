package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	LandingKey      = "landing"
	PostsListKey    = "posts:list"
	PostKeyPrefix   = "post:%d"
	JourneyListKey  = "journey:list"
	DocumentListKey = "documents:list"
)

const (
	LandingTTL  = 2 * time.Minute
	ListTTL     = 5 * time.Minute
	PostTTL     = 30 * time.Minute
	JourneyTTL  = 30 * time.Minute
	DocumentTTL = 30 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidatePost drops the cached post, post list and landing payload.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), PostsListKey, LandingKey)
}

// InvalidateLanding drops every cache entry baked into the landing payload.
func InvalidateLanding(ctx context.Context) {
	Invalidate(ctx, LandingKey, PostsListKey, JourneyListKey, DocumentListKey)
}
