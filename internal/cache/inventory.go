package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/middleware"
)

const (
	UserKeyPrefix = "user:%d"
	PostKeyPrefix = "post:%d"
	UserKeyMatch  = "user:*"
	PostKeyMatch  = "post:*"
)

const (
	UserTTL = 5 * time.Minute
	PostTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePattern deletes every key matching pattern using SCAN.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache scan failed", slog.String("pattern", pattern), slog.String("error", err.Error()))
		return
	}
	if len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateAllPosts drops every cached post. Cached posts embed their author,
// so any user change makes them stale.
func InvalidateAllPosts(ctx context.Context) {
	InvalidatePattern(ctx, PostKeyMatch)
}

// InvalidateAll drops every cached user and post.
func InvalidateAll(ctx context.Context) {
	InvalidatePattern(ctx, UserKeyMatch)
	InvalidatePattern(ctx, PostKeyMatch)
}
