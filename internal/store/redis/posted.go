package redis

import (
	"context"
	"fmt"
)

// MarkPosted records that a bookmark URL has been posted, so the feed
// watcher never posts it twice.
func (s *Store) MarkPosted(ctx context.Context, url string) error {
	if err := s.client.SAdd(ctx, PostedKey(), url).Err(); err != nil {
		return fmt.Errorf("failed to mark url as posted: %w", err)
	}
	return nil
}

// WasPosted reports whether a bookmark URL has been posted before.
func (s *Store) WasPosted(ctx context.Context, url string) (bool, error) {
	posted, err := s.client.SIsMember(ctx, PostedKey(), url).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check posted set: %w", err)
	}
	return posted, nil
}
